package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ivlev/moneta/internal/domain"
)

// WithdrawalUseCase moves funds out of an account. The balance check
// reads the row under a FOR UPDATE lock in the same transaction that
// writes it, so two concurrent withdrawals cannot both observe a stale
// sufficient balance.
type WithdrawalUseCase struct {
	txManager     TransactionManager
	accountRepo   AccountRepository
	operationRepo OperationRepository
	converter     Converter
	refGen        ReferenceGenerator
	retrier       Retrier
}

var _ WithdrawalService = (*WithdrawalUseCase)(nil)

// NewWithdrawalUseCase creates a new WithdrawalUseCase.
func NewWithdrawalUseCase(
	txManager TransactionManager,
	accountRepo AccountRepository,
	operationRepo OperationRepository,
	converter Converter,
	refGen ReferenceGenerator,
	retrier Retrier,
) *WithdrawalUseCase {
	return &WithdrawalUseCase{
		txManager:     txManager,
		accountRepo:   accountRepo,
		operationRepo: operationRepo,
		converter:     converter,
		refGen:        refGen,
		retrier:       retrier,
	}
}

// WithdrawalInput represents input for a withdrawal. Currency is the
// currency of the amount and may differ from the account's.
type WithdrawalInput struct {
	AccountID int64
	Amount    decimal.Decimal
	Currency  domain.Currency
}

// Process debits the source account by the converted amount and
// persists the operation record. On insufficient funds nothing is
// mutated and nothing is persisted.
func (uc *WithdrawalUseCase) Process(ctx context.Context, actor domain.Identity, input WithdrawalInput) (*domain.Operation, error) {
	if input.Amount.IsNegative() {
		return nil, domain.ErrInvalidAmount
	}

	if !input.Currency.IsValid() {
		return nil, domain.ErrInvalidCurrency
	}

	var op *domain.Operation

	err := uc.retrier.Retry(ctx, func() error {
		var err error

		op, err = uc.processOnce(ctx, actor, input)

		return err
	})
	if err != nil {
		return nil, err
	}

	return op, nil
}

func (uc *WithdrawalUseCase) processOnce(ctx context.Context, actor domain.Identity, input WithdrawalInput) (*domain.Operation, error) {
	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, wrapPersistence(err)
	}
	defer tx.Rollback(ctx)

	account, err := uc.accountRepo.GetByIDForUpdate(ctx, tx, input.AccountID)
	if err != nil {
		return nil, wrapPersistence(err)
	}

	debited, err := uc.converter.Convert(ctx, input.Amount, input.Currency, account.Currency)
	if err != nil {
		return nil, err
	}

	if err := account.ValidateDebit(debited); err != nil {
		return nil, err
	}

	if err := uc.accountRepo.UpdateFunds(ctx, tx, account.ID, account.ApplyDebit(debited)); err != nil {
		return nil, wrapPersistence(err)
	}

	op := &domain.Operation{
		Reference: uc.refGen.Generate(),
		Kind:      domain.OperationWithdrawal,
		UserID:    actor.UserID,
		AccountID: account.ID,
		Amount:    input.Amount,
		Currency:  input.Currency,
		CreatedAt: time.Now().UTC(),
	}

	if err := op.Validate(); err != nil {
		return nil, err
	}

	if err := uc.operationRepo.Create(ctx, tx, op); err != nil {
		return nil, wrapPersistence(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, wrapPersistence(err)
	}

	return op, nil
}
