package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ivlev/moneta/internal/domain"
)

// AccountRepository defines data access for accounts. Mutations taking
// a Transaction run inside the enclosing processor's transaction; the
// repository never opens transactions of its own.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) error
	GetByID(ctx context.Context, id int64) (*domain.Account, error)
	GetByIDForUpdate(ctx context.Context, tx Transaction, id int64) (*domain.Account, error)
	GetByIDsForUpdate(ctx context.Context, tx Transaction, ids []int64) ([]*domain.Account, error)
	GetByUserID(ctx context.Context, userID int64) ([]*domain.Account, error)
	Update(ctx context.Context, account *domain.Account) error
	UpdateFunds(ctx context.Context, tx Transaction, id int64, funds decimal.Decimal) error
	Delete(ctx context.Context, id int64) error
	Exists(ctx context.Context, id int64) (bool, error)
}

// OperationRepository defines data access for operation records.
// Records are created exactly once and never updated.
type OperationRepository interface {
	Create(ctx context.Context, tx Transaction, op *domain.Operation) error
	GetByID(ctx context.Context, id int64) (*domain.Operation, error)
	ListByAccount(ctx context.Context, accountID int64, limit, offset int) ([]*domain.Operation, error)
	ListByUser(ctx context.Context, userID int64, limit, offset int) ([]*domain.Operation, error)
	Delete(ctx context.Context, id int64) error
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// RateSource supplies current quotes for every supported currency
// against the oracle's reference currency.
type RateSource interface {
	Quotes(ctx context.Context) (map[domain.Currency]decimal.Decimal, error)
}

// Converter converts amounts between currencies.
type Converter interface {
	Rate(ctx context.Context, from, to domain.Currency) (decimal.Decimal, error)
	Convert(ctx context.Context, amount decimal.Decimal, from, to domain.Currency) (decimal.Decimal, error)
}

// ReferenceGenerator generates unique operation references.
type ReferenceGenerator interface {
	Generate() string
}

// Cache defines caching operations.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// Retrier re-runs an operation on transient storage errors.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// AccountService is the account ledger capability exposed by the
// engine. AccountUseCase implements it; AuthorizedAccountService wraps
// it with permission checks.
type AccountService interface {
	CreateAccount(ctx context.Context, actor domain.Identity, input CreateAccountInput) (*domain.Account, error)
	GetAccount(ctx context.Context, actor domain.Identity, id int64) (*domain.Account, error)
	GetAccountsByUser(ctx context.Context, actor domain.Identity, userID int64) ([]*domain.Account, error)
	UpdateAccount(ctx context.Context, actor domain.Identity, id int64, input UpdateAccountInput) (*domain.Account, error)
	DeleteAccount(ctx context.Context, actor domain.Identity, id int64) error
	AccountExists(ctx context.Context, actor domain.Identity, id int64) (bool, error)
}

// ReplenishmentService processes external funds into an account.
type ReplenishmentService interface {
	Process(ctx context.Context, actor domain.Identity, input ReplenishmentInput) (*domain.Operation, error)
}

// WithdrawalService processes funds out of an account.
type WithdrawalService interface {
	Process(ctx context.Context, actor domain.Identity, input WithdrawalInput) (*domain.Operation, error)
}

// TransferService processes funds between two accounts.
type TransferService interface {
	Process(ctx context.Context, actor domain.Identity, input TransferInput) (*domain.Operation, error)
}

// OperationService exposes the persisted operation audit trail.
type OperationService interface {
	GetOperation(ctx context.Context, actor domain.Identity, id int64) (*domain.Operation, error)
	GetOperationsByAccount(ctx context.Context, actor domain.Identity, input ListOperationsByAccountInput) ([]*domain.Operation, error)
	GetOperationsByUser(ctx context.Context, actor domain.Identity, input ListOperationsByUserInput) ([]*domain.Operation, error)
	DeleteOperation(ctx context.Context, actor domain.Identity, id int64) error
}
