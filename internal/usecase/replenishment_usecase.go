package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ivlev/moneta/internal/domain"
)

// ReplenishmentUseCase moves external funds into an account. The whole
// read-modify-write sequence runs in one transaction; no operation
// returns before its account mutation and audit record are committed.
type ReplenishmentUseCase struct {
	txManager     TransactionManager
	accountRepo   AccountRepository
	operationRepo OperationRepository
	converter     Converter
	refGen        ReferenceGenerator
	retrier       Retrier
}

var _ ReplenishmentService = (*ReplenishmentUseCase)(nil)

// NewReplenishmentUseCase creates a new ReplenishmentUseCase.
func NewReplenishmentUseCase(
	txManager TransactionManager,
	accountRepo AccountRepository,
	operationRepo OperationRepository,
	converter Converter,
	refGen ReferenceGenerator,
	retrier Retrier,
) *ReplenishmentUseCase {
	return &ReplenishmentUseCase{
		txManager:     txManager,
		accountRepo:   accountRepo,
		operationRepo: operationRepo,
		converter:     converter,
		refGen:        refGen,
		retrier:       retrier,
	}
}

// ReplenishmentInput represents input for a replenishment. Currency is
// the currency of the amount and may differ from the account's.
type ReplenishmentInput struct {
	AccountID int64
	Amount    decimal.Decimal
	Currency  domain.Currency
}

// Process credits the target account with the converted amount and
// persists the operation record.
func (uc *ReplenishmentUseCase) Process(ctx context.Context, actor domain.Identity, input ReplenishmentInput) (*domain.Operation, error) {
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

func (uc *ReplenishmentUseCase) processOnce(ctx context.Context, actor domain.Identity, input ReplenishmentInput) (*domain.Operation, error) {
	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, wrapPersistence(err)
	}
	defer tx.Rollback(ctx)

	account, err := uc.accountRepo.GetByIDForUpdate(ctx, tx, input.AccountID)
	if err != nil {
		return nil, wrapPersistence(err)
	}

	credited, err := uc.converter.Convert(ctx, input.Amount, input.Currency, account.Currency)
	if err != nil {
		return nil, err
	}

	if err := uc.accountRepo.UpdateFunds(ctx, tx, account.ID, account.ApplyCredit(credited)); err != nil {
		return nil, wrapPersistence(err)
	}

	op := &domain.Operation{
		Reference: uc.refGen.Generate(),
		Kind:      domain.OperationReplenishment,
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
