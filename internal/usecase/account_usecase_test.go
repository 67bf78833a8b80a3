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

var anyone = domain.Identity{UserID: 1}

func TestAccountUseCase_CreateAccount(t *testing.T) {
	tests := []struct {
		name    string
		input   usecase.CreateAccountInput
		wantErr error
	}{
		{
			name:    "successful creation",
			input:   usecase.CreateAccountInput{UserID: 1, Funds: decimal.NewFromInt(100), Currency: domain.USD},
			wantErr: nil,
		},
		{
			name:    "zero funds allowed",
			input:   usecase.CreateAccountInput{UserID: 1, Funds: decimal.Zero, Currency: domain.RUB},
			wantErr: nil,
		},
		{
			name:    "negative funds rejected",
			input:   usecase.CreateAccountInput{UserID: 1, Funds: decimal.NewFromInt(-10), Currency: domain.USD},
			wantErr: domain.ErrNegativeFunds,
		},
		{
			name:    "missing owner rejected",
			input:   usecase.CreateAccountInput{Funds: decimal.NewFromInt(10), Currency: domain.USD},
			wantErr: domain.ErrInvalidOwner,
		},
		{
			name:    "invalid currency rejected",
			input:   usecase.CreateAccountInput{UserID: 1, Funds: decimal.NewFromInt(10), Currency: "JPY"},
			wantErr: domain.ErrInvalidCurrency,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := mocks.NewMockAccountRepository()
			uc := usecase.NewAccountUseCase(repo)

			account, err := uc.CreateAccount(context.Background(), anyone, tt.input)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("expected error %v, got %v", tt.wantErr, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if account.ID == 0 {
				t.Error("expected assigned account id")
			}

			if account.CreatedAt.IsZero() {
				t.Error("expected creation date to be set")
			}
		})
	}
}

func TestAccountUseCase_CreatePersistenceFailure(t *testing.T) {
	repo := mocks.NewMockAccountRepository()
	repo.CreateFunc = func(ctx context.Context, account *domain.Account) error {
		return errors.New("connection reset")
	}

	uc := usecase.NewAccountUseCase(repo)

	_, err := uc.CreateAccount(context.Background(), anyone, usecase.CreateAccountInput{
		UserID:   1,
		Funds:    decimal.NewFromInt(10),
		Currency: domain.USD,
	})
	if !errors.Is(err, domain.ErrPersistence) {
		t.Errorf("expected ErrPersistence, got %v", err)
	}
}

func TestAccountUseCase_GetAccount(t *testing.T) {
	repo := mocks.NewMockAccountRepository()
	seeded := repo.Seed(&domain.Account{UserID: 1, Funds: decimal.NewFromInt(100), Currency: domain.USD})

	uc := usecase.NewAccountUseCase(repo)

	account, err := uc.GetAccount(context.Background(), anyone, seeded.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if account.ID != seeded.ID {
		t.Errorf("expected account %d, got %d", seeded.ID, account.ID)
	}

	_, err = uc.GetAccount(context.Background(), anyone, 999)
	if !errors.Is(err, domain.ErrAccountNotFound) {
		t.Errorf("expected ErrAccountNotFound, got %v", err)
	}
}

func TestAccountUseCase_GetAccountsByUser(t *testing.T) {
	repo := mocks.NewMockAccountRepository()
	repo.Seed(&domain.Account{UserID: 1, Funds: decimal.NewFromInt(10), Currency: domain.USD})
	repo.Seed(&domain.Account{UserID: 1, Funds: decimal.NewFromInt(20), Currency: domain.EUR})
	repo.Seed(&domain.Account{UserID: 2, Funds: decimal.NewFromInt(30), Currency: domain.RUB})

	uc := usecase.NewAccountUseCase(repo)

	accounts, err := uc.GetAccountsByUser(context.Background(), anyone, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(accounts) != 2 {
		t.Errorf("expected 2 accounts, got %d", len(accounts))
	}

	// An empty list is permitted, not an error.
	accounts, err = uc.GetAccountsByUser(context.Background(), anyone, 42)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(accounts) != 0 {
		t.Errorf("expected no accounts, got %d", len(accounts))
	}
}

func TestAccountUseCase_UpdateAccount(t *testing.T) {
	repo := mocks.NewMockAccountRepository()
	seeded := repo.Seed(&domain.Account{UserID: 1, Funds: decimal.NewFromInt(100), Currency: domain.USD})

	uc := usecase.NewAccountUseCase(repo)

	updated, err := uc.UpdateAccount(context.Background(), anyone, seeded.ID, usecase.UpdateAccountInput{
		UserID:   1,
		Funds:    decimal.NewFromInt(250),
		Currency: domain.EUR,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !updated.Funds.Equal(decimal.NewFromInt(250)) || updated.Currency != domain.EUR {
		t.Errorf("expected updated account, got %+v", updated)
	}

	_, err = uc.UpdateAccount(context.Background(), anyone, 999, usecase.UpdateAccountInput{
		UserID:   1,
		Funds:    decimal.NewFromInt(1),
		Currency: domain.USD,
	})
	if !errors.Is(err, domain.ErrAccountNotFound) {
		t.Errorf("expected ErrAccountNotFound, got %v", err)
	}

	_, err = uc.UpdateAccount(context.Background(), anyone, seeded.ID, usecase.UpdateAccountInput{
		UserID:   1,
		Funds:    decimal.NewFromInt(-1),
		Currency: domain.USD,
	})
	if !errors.Is(err, domain.ErrNegativeFunds) {
		t.Errorf("expected ErrNegativeFunds, got %v", err)
	}
}

func TestAccountUseCase_DeleteAccount(t *testing.T) {
	repo := mocks.NewMockAccountRepository()
	seeded := repo.Seed(&domain.Account{UserID: 1, Funds: decimal.NewFromInt(100), Currency: domain.USD})

	uc := usecase.NewAccountUseCase(repo)

	if err := uc.DeleteAccount(context.Background(), anyone, seeded.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err := uc.DeleteAccount(context.Background(), anyone, seeded.ID)
	if !errors.Is(err, domain.ErrAccountNotFound) {
		t.Errorf("expected ErrAccountNotFound, got %v", err)
	}
}

func TestAccountUseCase_AccountExists(t *testing.T) {
	repo := mocks.NewMockAccountRepository()
	seeded := repo.Seed(&domain.Account{UserID: 1, Funds: decimal.NewFromInt(100), Currency: domain.USD})

	uc := usecase.NewAccountUseCase(repo)

	exists, err := uc.AccountExists(context.Background(), anyone, seeded.ID)
	if err != nil || !exists {
		t.Errorf("expected account to exist, got %v, %v", exists, err)
	}

	exists, err = uc.AccountExists(context.Background(), anyone, 999)
	if err != nil || exists {
		t.Errorf("expected account to be absent, got %v, %v", exists, err)
	}
}
