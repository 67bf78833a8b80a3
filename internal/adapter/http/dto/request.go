package dto

import (
	"github.com/shopspring/decimal"

	"github.com/ivlev/moneta/internal/domain"
	"github.com/ivlev/moneta/internal/usecase"
)

// CreateAccountRequest represents a request to create an account.
type CreateAccountRequest struct {
	UserID   int64           `json:"user_id"`
	Funds    decimal.Decimal `json:"funds"`
	Currency string          `json:"currency"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateAccountRequest) ToUseCaseInput() usecase.CreateAccountInput {
	currency, _ := domain.ParseCurrency(r.Currency)

	return usecase.CreateAccountInput{
		UserID:   r.UserID,
		Funds:    r.Funds,
		Currency: currency,
	}
}

// UpdateAccountRequest represents a request to update an account.
type UpdateAccountRequest struct {
	UserID   int64           `json:"user_id"`
	Funds    decimal.Decimal `json:"funds"`
	Currency string          `json:"currency"`
}

// ToUseCaseInput converts to use case input.
func (r *UpdateAccountRequest) ToUseCaseInput() usecase.UpdateAccountInput {
	currency, _ := domain.ParseCurrency(r.Currency)

	return usecase.UpdateAccountInput{
		UserID:   r.UserID,
		Funds:    r.Funds,
		Currency: currency,
	}
}

// ReplenishmentRequest represents a request to replenish an account.
// The amount may be denominated in any supported currency; the engine
// converts it into the account's own currency.
type ReplenishmentRequest struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
}

// ToUseCaseInput converts to use case input for the given account.
func (r *ReplenishmentRequest) ToUseCaseInput(accountID int64) usecase.ReplenishmentInput {
	currency, _ := domain.ParseCurrency(r.Currency)

	return usecase.ReplenishmentInput{
		AccountID: accountID,
		Amount:    r.Amount,
		Currency:  currency,
	}
}

// WithdrawalRequest represents a request to withdraw from an account.
type WithdrawalRequest struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
}

// ToUseCaseInput converts to use case input for the given account.
func (r *WithdrawalRequest) ToUseCaseInput(accountID int64) usecase.WithdrawalInput {
	currency, _ := domain.ParseCurrency(r.Currency)

	return usecase.WithdrawalInput{
		AccountID: accountID,
		Amount:    r.Amount,
		Currency:  currency,
	}
}

// TransferRequest represents a request to transfer between accounts.
// The amount is taken in the source account's currency.
type TransferRequest struct {
	FromAccountID int64           `json:"from_account_id"`
	ToAccountID   int64           `json:"to_account_id"`
	Amount        decimal.Decimal `json:"amount"`
}

// ToUseCaseInput converts to use case input.
func (r *TransferRequest) ToUseCaseInput() usecase.TransferInput {
	return usecase.TransferInput{
		FromAccountID: r.FromAccountID,
		ToAccountID:   r.ToAccountID,
		Amount:        r.Amount,
	}
}
