package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/ivlev/moneta/internal/domain"
	"github.com/ivlev/moneta/internal/usecase"
	"github.com/ivlev/moneta/internal/usecase/mocks"
)

func seedOperations(t *testing.T, repo *mocks.MockOperationRepository) {
	t.Helper()

	toUser := int64(2)
	toAccount := int64(20)

	ops := []*domain.Operation{
		{Reference: "r1", Kind: domain.OperationReplenishment, UserID: 1, AccountID: 10, Amount: decimal.NewFromInt(100), Currency: domain.USD},
		{Reference: "r2", Kind: domain.OperationWithdrawal, UserID: 1, AccountID: 10, Amount: decimal.NewFromInt(40), Currency: domain.USD},
		{Reference: "r3", Kind: domain.OperationTransfer, UserID: 1, AccountID: 10, ToUserID: &toUser, ToAccountID: &toAccount, Amount: decimal.NewFromInt(10), Currency: domain.USD},
		{Reference: "r4", Kind: domain.OperationReplenishment, UserID: 3, AccountID: 30, Amount: decimal.NewFromInt(5), Currency: domain.RUB},
	}

	for _, op := range ops {
		if err := repo.Create(context.Background(), nil, op); err != nil {
			t.Fatalf("seed operation: %v", err)
		}
	}
}

func TestOperationUseCase_GetOperation(t *testing.T) {
	repo := mocks.NewMockOperationRepository()
	seedOperations(t, repo)

	uc := usecase.NewOperationUseCase(repo)

	op, err := uc.GetOperation(context.Background(), anyone, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if op.Reference != "r1" {
		t.Errorf("expected operation r1, got %s", op.Reference)
	}

	_, err = uc.GetOperation(context.Background(), anyone, 999)
	if !errors.Is(err, domain.ErrOperationNotFound) {
		t.Errorf("expected ErrOperationNotFound, got %v", err)
	}
}

func TestOperationUseCase_GetOperationsByAccount(t *testing.T) {
	repo := mocks.NewMockOperationRepository()
	seedOperations(t, repo)

	uc := usecase.NewOperationUseCase(repo)

	// Account 20 only appears as a transfer destination.
	ops, err := uc.GetOperationsByAccount(context.Background(), anyone, usecase.ListOperationsByAccountInput{AccountID: 20})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(ops) != 1 || ops[0].Kind != domain.OperationTransfer {
		t.Errorf("expected the incoming transfer, got %+v", ops)
	}

	ops, err = uc.GetOperationsByAccount(context.Background(), anyone, usecase.ListOperationsByAccountInput{AccountID: 10})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(ops) != 3 {
		t.Errorf("expected 3 operations for account 10, got %d", len(ops))
	}
}

func TestOperationUseCase_GetOperationsByUser(t *testing.T) {
	repo := mocks.NewMockOperationRepository()
	seedOperations(t, repo)

	uc := usecase.NewOperationUseCase(repo)

	// User 2 only receives the transfer.
	ops, err := uc.GetOperationsByUser(context.Background(), anyone, usecase.ListOperationsByUserInput{UserID: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(ops) != 1 || ops[0].Kind != domain.OperationTransfer {
		t.Errorf("expected the incoming transfer, got %+v", ops)
	}

	ops, err = uc.GetOperationsByUser(context.Background(), anyone, usecase.ListOperationsByUserInput{UserID: 42})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(ops) != 0 {
		t.Errorf("expected no operations, got %d", len(ops))
	}
}

func TestOperationUseCase_GetOperationsPagination(t *testing.T) {
	repo := mocks.NewMockOperationRepository()

	var gotLimit, gotOffset int

	repo.ListByUserFunc = func(ctx context.Context, userID int64, limit, offset int) ([]*domain.Operation, error) {
		gotLimit, gotOffset = limit, offset
		return nil, nil
	}

	uc := usecase.NewOperationUseCase(repo)

	tests := []struct {
		name       string
		limit      int
		offset     int
		wantLimit  int
		wantOffset int
	}{
		{name: "defaults applied", limit: 0, offset: -5, wantLimit: 20, wantOffset: 0},
		{name: "limit capped", limit: 1000, offset: 40, wantLimit: 100, wantOffset: 40},
		{name: "passed through", limit: 10, offset: 5, wantLimit: 10, wantOffset: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.GetOperationsByUser(context.Background(), anyone, usecase.ListOperationsByUserInput{
				UserID: 1,
				Limit:  tt.limit,
				Offset: tt.offset,
			})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if gotLimit != tt.wantLimit || gotOffset != tt.wantOffset {
				t.Errorf("expected page %d/%d, got %d/%d", tt.wantLimit, tt.wantOffset, gotLimit, gotOffset)
			}
		})
	}
}

func TestOperationUseCase_DeleteOperation(t *testing.T) {
	repo := mocks.NewMockOperationRepository()
	seedOperations(t, repo)

	uc := usecase.NewOperationUseCase(repo)

	if err := uc.DeleteOperation(context.Background(), anyone, 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if repo.Count() != 3 {
		t.Errorf("expected 3 remaining operations, got %d", repo.Count())
	}

	err := uc.DeleteOperation(context.Background(), anyone, 1)
	if !errors.Is(err, domain.ErrOperationNotFound) {
		t.Errorf("expected ErrOperationNotFound, got %v", err)
	}
}

func TestOperationUseCase_PersistenceFailure(t *testing.T) {
	repo := mocks.NewMockOperationRepository()
	repo.GetByIDFunc = func(ctx context.Context, id int64) (*domain.Operation, error) {
		return nil, errors.New("connection reset")
	}

	uc := usecase.NewOperationUseCase(repo)

	_, err := uc.GetOperation(context.Background(), anyone, 1)
	if !errors.Is(err, domain.ErrPersistence) {
		t.Errorf("expected ErrPersistence, got %v", err)
	}
}
