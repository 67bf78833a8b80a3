package usecase

import (
	"context"

	"github.com/ivlev/moneta/internal/domain"
)

// Authorization proxies wrap each service interface with permission
// checks. A proxy resolves ownership through the ledger before
// deciding, never calls the wrapped service on a rejection, and keeps
// lookup failures (NotFound) distinct from authorization failures
// (AccessDenied). Edit requires owner-with-edit-self or edit-any; view
// works the same way with the view grants.

// AuthorizedAccountService wraps an AccountService.
type AuthorizedAccountService struct {
	next     AccountService
	accounts AccountRepository
}

var _ AccountService = (*AuthorizedAccountService)(nil)

// NewAuthorizedAccountService creates the account authorization proxy.
func NewAuthorizedAccountService(next AccountService, accounts AccountRepository) *AuthorizedAccountService {
	return &AuthorizedAccountService{next: next, accounts: accounts}
}

// CreateAccount requires edit permission for the account's owner.
func (s *AuthorizedAccountService) CreateAccount(ctx context.Context, actor domain.Identity, input CreateAccountInput) (*domain.Account, error) {
	if !actor.CanEditAccount(input.UserID) {
		return nil, domain.ErrAccessDenied
	}

	return s.next.CreateAccount(ctx, actor, input)
}

// GetAccount requires view permission for the account's owner.
func (s *AuthorizedAccountService) GetAccount(ctx context.Context, actor domain.Identity, id int64) (*domain.Account, error) {
	owner, err := s.resolveOwner(ctx, id)
	if err != nil {
		return nil, err
	}

	if !actor.CanViewAccount(owner) {
		return nil, domain.ErrAccessDenied
	}

	return s.next.GetAccount(ctx, actor, id)
}

// GetAccountsByUser requires view permission for the listed user.
func (s *AuthorizedAccountService) GetAccountsByUser(ctx context.Context, actor domain.Identity, userID int64) ([]*domain.Account, error) {
	if !actor.CanViewAccount(userID) {
		return nil, domain.ErrAccessDenied
	}

	return s.next.GetAccountsByUser(ctx, actor, userID)
}

// UpdateAccount requires edit permission for the current owner.
func (s *AuthorizedAccountService) UpdateAccount(ctx context.Context, actor domain.Identity, id int64, input UpdateAccountInput) (*domain.Account, error) {
	owner, err := s.resolveOwner(ctx, id)
	if err != nil {
		return nil, err
	}

	if !actor.CanEditAccount(owner) {
		return nil, domain.ErrAccessDenied
	}

	return s.next.UpdateAccount(ctx, actor, id, input)
}

// DeleteAccount requires edit permission for the current owner.
func (s *AuthorizedAccountService) DeleteAccount(ctx context.Context, actor domain.Identity, id int64) error {
	owner, err := s.resolveOwner(ctx, id)
	if err != nil {
		return err
	}

	if !actor.CanEditAccount(owner) {
		return domain.ErrAccessDenied
	}

	return s.next.DeleteAccount(ctx, actor, id)
}

// AccountExists requires view permission for the account's owner. A
// missing account reports false rather than NotFound.
func (s *AuthorizedAccountService) AccountExists(ctx context.Context, actor domain.Identity, id int64) (bool, error) {
	owner, err := s.resolveOwner(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return false, nil
		}

		return false, err
	}

	if !actor.CanViewAccount(owner) {
		return false, domain.ErrAccessDenied
	}

	return s.next.AccountExists(ctx, actor, id)
}

func (s *AuthorizedAccountService) resolveOwner(ctx context.Context, id int64) (int64, error) {
	account, err := s.accounts.GetByID(ctx, id)
	if err != nil {
		return 0, wrapPersistence(err)
	}

	return account.UserID, nil
}

// AuthorizedReplenishmentService wraps a ReplenishmentService.
type AuthorizedReplenishmentService struct {
	next     ReplenishmentService
	accounts AccountRepository
}

var _ ReplenishmentService = (*AuthorizedReplenishmentService)(nil)

// NewAuthorizedReplenishmentService creates the replenishment
// authorization proxy.
func NewAuthorizedReplenishmentService(next ReplenishmentService, accounts AccountRepository) *AuthorizedReplenishmentService {
	return &AuthorizedReplenishmentService{next: next, accounts: accounts}
}

// Process requires edit permission for the target account's owner.
func (s *AuthorizedReplenishmentService) Process(ctx context.Context, actor domain.Identity, input ReplenishmentInput) (*domain.Operation, error) {
	account, err := s.accounts.GetByID(ctx, input.AccountID)
	if err != nil {
		return nil, wrapPersistence(err)
	}

	if !actor.CanEditAccount(account.UserID) {
		return nil, domain.ErrAccessDenied
	}

	return s.next.Process(ctx, actor, input)
}

// AuthorizedWithdrawalService wraps a WithdrawalService.
type AuthorizedWithdrawalService struct {
	next     WithdrawalService
	accounts AccountRepository
}

var _ WithdrawalService = (*AuthorizedWithdrawalService)(nil)

// NewAuthorizedWithdrawalService creates the withdrawal authorization
// proxy.
func NewAuthorizedWithdrawalService(next WithdrawalService, accounts AccountRepository) *AuthorizedWithdrawalService {
	return &AuthorizedWithdrawalService{next: next, accounts: accounts}
}

// Process requires edit permission for the source account's owner.
func (s *AuthorizedWithdrawalService) Process(ctx context.Context, actor domain.Identity, input WithdrawalInput) (*domain.Operation, error) {
	account, err := s.accounts.GetByID(ctx, input.AccountID)
	if err != nil {
		return nil, wrapPersistence(err)
	}

	if !actor.CanEditAccount(account.UserID) {
		return nil, domain.ErrAccessDenied
	}

	return s.next.Process(ctx, actor, input)
}

// AuthorizedTransferService wraps a TransferService.
type AuthorizedTransferService struct {
	next     TransferService
	accounts AccountRepository
}

var _ TransferService = (*AuthorizedTransferService)(nil)

// NewAuthorizedTransferService creates the transfer authorization
// proxy.
func NewAuthorizedTransferService(next TransferService, accounts AccountRepository) *AuthorizedTransferService {
	return &AuthorizedTransferService{next: next, accounts: accounts}
}

// Process requires edit permission for the source account's owner. The
// destination account needs no permission from the caller.
func (s *AuthorizedTransferService) Process(ctx context.Context, actor domain.Identity, input TransferInput) (*domain.Operation, error) {
	account, err := s.accounts.GetByID(ctx, input.FromAccountID)
	if err != nil {
		return nil, wrapPersistence(err)
	}

	if !actor.CanEditAccount(account.UserID) {
		return nil, domain.ErrAccessDenied
	}

	return s.next.Process(ctx, actor, input)
}

// AuthorizedOperationService wraps an OperationService.
type AuthorizedOperationService struct {
	next       OperationService
	operations OperationRepository
	accounts   AccountRepository
}

var _ OperationService = (*AuthorizedOperationService)(nil)

// NewAuthorizedOperationService creates the operation authorization
// proxy.
func NewAuthorizedOperationService(next OperationService, operations OperationRepository, accounts AccountRepository) *AuthorizedOperationService {
	return &AuthorizedOperationService{next: next, operations: operations, accounts: accounts}
}

// GetOperation requires view permission for either endpoint user.
func (s *AuthorizedOperationService) GetOperation(ctx context.Context, actor domain.Identity, id int64) (*domain.Operation, error) {
	op, err := s.operations.GetByID(ctx, id)
	if err != nil {
		return nil, wrapPersistence(err)
	}

	if !s.canViewOperation(actor, op) {
		return nil, domain.ErrAccessDenied
	}

	return s.next.GetOperation(ctx, actor, id)
}

// GetOperationsByAccount requires view permission for the account's
// owner.
func (s *AuthorizedOperationService) GetOperationsByAccount(ctx context.Context, actor domain.Identity, input ListOperationsByAccountInput) ([]*domain.Operation, error) {
	account, err := s.accounts.GetByID(ctx, input.AccountID)
	if err != nil {
		return nil, wrapPersistence(err)
	}

	if !actor.CanViewOperation(account.UserID) {
		return nil, domain.ErrAccessDenied
	}

	return s.next.GetOperationsByAccount(ctx, actor, input)
}

// GetOperationsByUser requires view permission for the listed user.
func (s *AuthorizedOperationService) GetOperationsByUser(ctx context.Context, actor domain.Identity, input ListOperationsByUserInput) ([]*domain.Operation, error) {
	if !actor.CanViewOperation(input.UserID) {
		return nil, domain.ErrAccessDenied
	}

	return s.next.GetOperationsByUser(ctx, actor, input)
}

// DeleteOperation is administrative: it strictly requires the
// operation edit-any grant, ownership does not suffice.
func (s *AuthorizedOperationService) DeleteOperation(ctx context.Context, actor domain.Identity, id int64) error {
	if !actor.Has(domain.GrantOperationEditAny) {
		return domain.ErrAccessDenied
	}

	if _, err := s.operations.GetByID(ctx, id); err != nil {
		return wrapPersistence(err)
	}

	return s.next.DeleteOperation(ctx, actor, id)
}

func (s *AuthorizedOperationService) canViewOperation(actor domain.Identity, op *domain.Operation) bool {
	if actor.Has(domain.GrantOperationViewAny) {
		return true
	}

	return op.Involves(actor.UserID) && actor.Has(domain.GrantOperationViewSelf)
}
