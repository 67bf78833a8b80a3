package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ivlev/moneta/internal/domain"
)

// AccountUseCase is the account ledger: it owns account records and
// enforces the non-negative-funds invariant at write time. It performs
// no authorization; AuthorizedAccountService handles that.
type AccountUseCase struct {
	accountRepo AccountRepository
}

var _ AccountService = (*AccountUseCase)(nil)

// NewAccountUseCase creates a new AccountUseCase.
func NewAccountUseCase(accountRepo AccountRepository) *AccountUseCase {
	return &AccountUseCase{accountRepo: accountRepo}
}

// CreateAccountInput represents input for creating an account.
type CreateAccountInput struct {
	UserID   int64
	Funds    decimal.Decimal
	Currency domain.Currency
}

// CreateAccount persists a new account.
func (uc *AccountUseCase) CreateAccount(ctx context.Context, actor domain.Identity, input CreateAccountInput) (*domain.Account, error) {
	account := &domain.Account{
		UserID:    input.UserID,
		Funds:     input.Funds,
		Currency:  input.Currency,
		CreatedAt: time.Now().UTC(),
	}

	if err := account.Validate(); err != nil {
		return nil, err
	}

	if err := uc.accountRepo.Create(ctx, account); err != nil {
		return nil, wrapPersistence(err)
	}

	return account, nil
}

// GetAccount retrieves an account by ID.
func (uc *AccountUseCase) GetAccount(ctx context.Context, actor domain.Identity, id int64) (*domain.Account, error) {
	account, err := uc.accountRepo.GetByID(ctx, id)
	if err != nil {
		return nil, wrapPersistence(err)
	}

	return account, nil
}

// GetAccountsByUser lists all accounts owned by a user. An empty list
// is permitted.
func (uc *AccountUseCase) GetAccountsByUser(ctx context.Context, actor domain.Identity, userID int64) ([]*domain.Account, error) {
	accounts, err := uc.accountRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, wrapPersistence(err)
	}

	return accounts, nil
}

// UpdateAccountInput represents an administrative account replacement.
type UpdateAccountInput struct {
	UserID   int64
	Funds    decimal.Decimal
	Currency domain.Currency
}

// UpdateAccount replaces an account's mutable fields.
func (uc *AccountUseCase) UpdateAccount(ctx context.Context, actor domain.Identity, id int64, input UpdateAccountInput) (*domain.Account, error) {
	account, err := uc.accountRepo.GetByID(ctx, id)
	if err != nil {
		return nil, wrapPersistence(err)
	}

	account.UserID = input.UserID
	account.Funds = input.Funds
	account.Currency = input.Currency

	if err := account.Validate(); err != nil {
		return nil, err
	}

	if err := uc.accountRepo.Update(ctx, account); err != nil {
		return nil, wrapPersistence(err)
	}

	return account, nil
}

// DeleteAccount removes an account. Deletion is unconditional; callers
// are responsible for downstream consequences.
func (uc *AccountUseCase) DeleteAccount(ctx context.Context, actor domain.Identity, id int64) error {
	return wrapPersistence(uc.accountRepo.Delete(ctx, id))
}

// AccountExists reports whether an account exists.
func (uc *AccountUseCase) AccountExists(ctx context.Context, actor domain.Identity, id int64) (bool, error) {
	exists, err := uc.accountRepo.Exists(ctx, id)
	if err != nil {
		return false, wrapPersistence(err)
	}

	return exists, nil
}
