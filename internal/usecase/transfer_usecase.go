package usecase

import (
	"context"
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ivlev/moneta/internal/domain"
)

// TransferUseCase moves funds between two accounts, possibly across
// users and currencies. Both account mutations and the operation
// record form one atomic unit. Rows are locked in ascending id order
// so concurrent opposite-direction transfers between the same two
// accounts cannot deadlock.
type TransferUseCase struct {
	txManager     TransactionManager
	accountRepo   AccountRepository
	operationRepo OperationRepository
	converter     Converter
	refGen        ReferenceGenerator
	retrier       Retrier
}

var _ TransferService = (*TransferUseCase)(nil)

// NewTransferUseCase creates a new TransferUseCase.
func NewTransferUseCase(
	txManager TransactionManager,
	accountRepo AccountRepository,
	operationRepo OperationRepository,
	converter Converter,
	refGen ReferenceGenerator,
	retrier Retrier,
) *TransferUseCase {
	return &TransferUseCase{
		txManager:     txManager,
		accountRepo:   accountRepo,
		operationRepo: operationRepo,
		converter:     converter,
		refGen:        refGen,
		retrier:       retrier,
	}
}

// TransferInput represents input for a transfer. The amount is
// denominated in the source account's currency; any client-supplied
// currency is discarded.
type TransferInput struct {
	FromAccountID int64
	ToAccountID   int64
	Amount        decimal.Decimal
}

// Process withdraws the amount from the source account, deposits the
// converted amount into the destination, and persists the operation
// record with the applied rate. Check order is fixed: same-account,
// then destination existence, then balance.
func (uc *TransferUseCase) Process(ctx context.Context, actor domain.Identity, input TransferInput) (*domain.Operation, error) {
	if input.FromAccountID == input.ToAccountID {
		return nil, domain.ErrSameAccountTransfer
	}

	if input.Amount.IsNegative() {
		return nil, domain.ErrInvalidAmount
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

func (uc *TransferUseCase) processOnce(ctx context.Context, actor domain.Identity, input TransferInput) (*domain.Operation, error) {
	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, wrapPersistence(err)
	}
	defer tx.Rollback(ctx)

	// Lock both rows in ascending id order (deadlock prevention).
	ids := []int64{input.FromAccountID, input.ToAccountID}
	slices.Sort(ids)

	accounts, err := uc.accountRepo.GetByIDsForUpdate(ctx, tx, ids)
	if err != nil {
		return nil, wrapPersistence(err)
	}

	var source, destination *domain.Account

	for _, account := range accounts {
		switch account.ID {
		case input.FromAccountID:
			source = account
		case input.ToAccountID:
			destination = account
		}
	}

	if destination == nil {
		return nil, domain.ErrDestinationNotFound
	}

	if source == nil {
		return nil, domain.ErrAccountNotFound
	}

	rate, err := uc.converter.Rate(ctx, source.Currency, destination.Currency)
	if err != nil {
		return nil, err
	}

	if err := source.ValidateDebit(input.Amount); err != nil {
		return nil, err
	}

	credited := input.Amount.Mul(rate)

	if err := uc.accountRepo.UpdateFunds(ctx, tx, source.ID, source.ApplyDebit(input.Amount)); err != nil {
		return nil, wrapPersistence(err)
	}

	if err := uc.accountRepo.UpdateFunds(ctx, tx, destination.ID, destination.ApplyCredit(credited)); err != nil {
		return nil, wrapPersistence(err)
	}

	// The operation's currency is authoritative from the source account
	// and the destination user comes from the destination account, never
	// from the client.
	op := &domain.Operation{
		Reference:   uc.refGen.Generate(),
		Kind:        domain.OperationTransfer,
		UserID:      source.UserID,
		AccountID:   source.ID,
		ToUserID:    &destination.UserID,
		ToAccountID: &destination.ID,
		Amount:      input.Amount,
		Currency:    source.Currency,
		Rate:        &rate,
		CreatedAt:   time.Now().UTC(),
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
