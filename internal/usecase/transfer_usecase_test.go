package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/ivlev/moneta/internal/domain"
	"github.com/ivlev/moneta/internal/usecase"
)

func TestTransferUseCase_Process(t *testing.T) {
	deps := newProcessorDeps()
	source := deps.accountRepo.Seed(&domain.Account{UserID: 1, Funds: decimal.NewFromInt(100), Currency: domain.USD})
	destination := deps.accountRepo.Seed(&domain.Account{UserID: 2, Funds: decimal.NewFromInt(50), Currency: domain.EUR})

	// 10 USD at USD/EUR = 0.9 credits 9 EUR.
	op, err := deps.transfer().Process(context.Background(), domain.Identity{UserID: 1}, usecase.TransferInput{
		FromAccountID: source.ID,
		ToAccountID:   destination.ID,
		Amount:        decimal.NewFromInt(10),
	})
	require.NoError(t, err)

	require.True(t, deps.accountRepo.Funds(source.ID).Equal(decimal.NewFromInt(90)),
		"expected source funds 90, got %s", deps.accountRepo.Funds(source.ID))
	require.True(t, deps.accountRepo.Funds(destination.ID).Equal(decimal.NewFromInt(59)),
		"expected destination funds 59, got %s", deps.accountRepo.Funds(destination.ID))

	require.Equal(t, domain.OperationTransfer, op.Kind)
	require.Equal(t, source.UserID, op.UserID)
	require.Equal(t, source.ID, op.AccountID)
	require.Equal(t, domain.USD, op.Currency)
	require.True(t, op.Amount.Equal(decimal.NewFromInt(10)))

	require.NotNil(t, op.ToUserID)
	require.Equal(t, destination.UserID, *op.ToUserID)
	require.NotNil(t, op.ToAccountID)
	require.Equal(t, destination.ID, *op.ToAccountID)

	// The applied rate travels with the record.
	require.NotNil(t, op.Rate)
	require.True(t, op.Rate.Equal(decimal.RequireFromString("0.9")))

	// The record the processor persists satisfies its own invariants.
	require.NoError(t, op.Validate())

	require.Equal(t, 1, deps.operationRepo.Count())
	require.True(t, deps.txManager.Last.Committed)
}

func TestTransferUseCase_ProcessSameCurrency(t *testing.T) {
	deps := newProcessorDeps()
	source := deps.accountRepo.Seed(&domain.Account{UserID: 1, Funds: decimal.NewFromInt(100), Currency: domain.RUB})
	destination := deps.accountRepo.Seed(&domain.Account{UserID: 1, Funds: decimal.NewFromInt(0), Currency: domain.RUB})

	op, err := deps.transfer().Process(context.Background(), domain.Identity{UserID: 1}, usecase.TransferInput{
		FromAccountID: source.ID,
		ToAccountID:   destination.ID,
		Amount:        decimal.NewFromInt(25),
	})
	require.NoError(t, err)

	require.True(t, deps.accountRepo.Funds(source.ID).Equal(decimal.NewFromInt(75)))
	require.True(t, deps.accountRepo.Funds(destination.ID).Equal(decimal.NewFromInt(25)))
	require.True(t, op.Rate.Equal(decimal.NewFromInt(1)))
}

func TestTransferUseCase_ProcessSameAccount(t *testing.T) {
	deps := newProcessorDeps()
	account := deps.accountRepo.Seed(&domain.Account{UserID: 1, Funds: decimal.NewFromInt(100), Currency: domain.USD})

	_, err := deps.transfer().Process(context.Background(), domain.Identity{UserID: 1}, usecase.TransferInput{
		FromAccountID: account.ID,
		ToAccountID:   account.ID,
		Amount:        decimal.NewFromInt(10),
	})
	require.ErrorIs(t, err, domain.ErrSameAccountTransfer)

	// Rejected before any transaction was opened.
	require.Equal(t, 0, deps.txManager.Began)
	require.True(t, deps.accountRepo.Funds(account.ID).Equal(decimal.NewFromInt(100)))
}

func TestTransferUseCase_ProcessDestinationNotFound(t *testing.T) {
	deps := newProcessorDeps()
	source := deps.accountRepo.Seed(&domain.Account{UserID: 1, Funds: decimal.NewFromInt(100), Currency: domain.USD})

	_, err := deps.transfer().Process(context.Background(), domain.Identity{UserID: 1}, usecase.TransferInput{
		FromAccountID: source.ID,
		ToAccountID:   999,
		Amount:        decimal.NewFromInt(10),
	})
	require.ErrorIs(t, err, domain.ErrDestinationNotFound)

	require.True(t, deps.accountRepo.Funds(source.ID).Equal(decimal.NewFromInt(100)))
	require.Equal(t, 0, deps.operationRepo.Count())
}

func TestTransferUseCase_ProcessSourceNotFound(t *testing.T) {
	deps := newProcessorDeps()
	destination := deps.accountRepo.Seed(&domain.Account{UserID: 2, Funds: decimal.NewFromInt(50), Currency: domain.EUR})

	_, err := deps.transfer().Process(context.Background(), domain.Identity{UserID: 1}, usecase.TransferInput{
		FromAccountID: 999,
		ToAccountID:   destination.ID,
		Amount:        decimal.NewFromInt(10),
	})
	require.ErrorIs(t, err, domain.ErrAccountNotFound)
	require.Equal(t, 0, deps.operationRepo.Count())
}

func TestTransferUseCase_ProcessInsufficientFunds(t *testing.T) {
	deps := newProcessorDeps()
	source := deps.accountRepo.Seed(&domain.Account{UserID: 1, Funds: decimal.NewFromInt(5), Currency: domain.USD})
	destination := deps.accountRepo.Seed(&domain.Account{UserID: 2, Funds: decimal.NewFromInt(50), Currency: domain.EUR})

	_, err := deps.transfer().Process(context.Background(), domain.Identity{UserID: 1}, usecase.TransferInput{
		FromAccountID: source.ID,
		ToAccountID:   destination.ID,
		Amount:        decimal.NewFromInt(10),
	})
	require.ErrorIs(t, err, domain.ErrInsufficientFunds)

	// Neither balance moved.
	require.True(t, deps.accountRepo.Funds(source.ID).Equal(decimal.NewFromInt(5)))
	require.True(t, deps.accountRepo.Funds(destination.ID).Equal(decimal.NewFromInt(50)))
	require.Equal(t, 0, deps.operationRepo.Count())
	require.True(t, deps.txManager.Last.RolledBack)
}

func TestTransferUseCase_ProcessRateUnavailable(t *testing.T) {
	deps := newProcessorDeps()
	source := deps.accountRepo.Seed(&domain.Account{UserID: 1, Funds: decimal.NewFromInt(100), Currency: domain.EUR})
	destination := deps.accountRepo.Seed(&domain.Account{UserID: 2, Funds: decimal.NewFromInt(50), Currency: domain.RUB})

	// EUR/RUB is not in the fixture table.
	_, err := deps.transfer().Process(context.Background(), domain.Identity{UserID: 1}, usecase.TransferInput{
		FromAccountID: source.ID,
		ToAccountID:   destination.ID,
		Amount:        decimal.NewFromInt(10),
	})
	require.ErrorIs(t, err, domain.ErrRateUnavailable)

	require.True(t, deps.accountRepo.Funds(source.ID).Equal(decimal.NewFromInt(100)))
	require.True(t, deps.accountRepo.Funds(destination.ID).Equal(decimal.NewFromInt(50)))
	require.True(t, deps.txManager.Last.RolledBack)
}

func TestTransferUseCase_ProcessNegativeAmount(t *testing.T) {
	deps := newProcessorDeps()

	_, err := deps.transfer().Process(context.Background(), domain.Identity{UserID: 1}, usecase.TransferInput{
		FromAccountID: 1,
		ToAccountID:   2,
		Amount:        decimal.NewFromInt(-10),
	})
	require.ErrorIs(t, err, domain.ErrInvalidAmount)
	require.Equal(t, 0, deps.txManager.Began)
}
