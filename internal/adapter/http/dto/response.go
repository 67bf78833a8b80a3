package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/ivlev/moneta/internal/domain"
)

// AccountResponse represents an account in API responses.
type AccountResponse struct {
	ID        int64           `json:"id"`
	UserID    int64           `json:"user_id"`
	Funds     decimal.Decimal `json:"funds"`
	Currency  string          `json:"currency"`
	CreatedAt time.Time       `json:"created_at"`
}

// AccountFromDomain converts domain account to response.
func AccountFromDomain(a *domain.Account) *AccountResponse {
	return &AccountResponse{
		ID:        a.ID,
		UserID:    a.UserID,
		Funds:     a.Funds,
		Currency:  a.Currency.String(),
		CreatedAt: a.CreatedAt,
	}
}

// AccountsFromDomain converts domain accounts to responses.
func AccountsFromDomain(accounts []*domain.Account) []*AccountResponse {
	result := make([]*AccountResponse, len(accounts))
	for i, a := range accounts {
		result[i] = AccountFromDomain(a)
	}
	return result
}

// ListAccountsResponse represents a list of accounts.
type ListAccountsResponse struct {
	Accounts []*AccountResponse `json:"accounts"`
	Total    int64              `json:"total"`
}

// OperationResponse represents an operation record in API responses.
type OperationResponse struct {
	ID          int64            `json:"id"`
	Reference   string           `json:"reference"`
	Kind        string           `json:"kind"`
	UserID      int64            `json:"user_id"`
	AccountID   int64            `json:"account_id"`
	ToUserID    *int64           `json:"to_user_id,omitempty"`
	ToAccountID *int64           `json:"to_account_id,omitempty"`
	Amount      decimal.Decimal  `json:"amount"`
	Currency    string           `json:"currency"`
	Rate        *decimal.Decimal `json:"rate,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
}

// OperationFromDomain converts domain operation to response.
func OperationFromDomain(op *domain.Operation) *OperationResponse {
	return &OperationResponse{
		ID:          op.ID,
		Reference:   op.Reference,
		Kind:        string(op.Kind),
		UserID:      op.UserID,
		AccountID:   op.AccountID,
		ToUserID:    op.ToUserID,
		ToAccountID: op.ToAccountID,
		Amount:      op.Amount,
		Currency:    op.Currency.String(),
		Rate:        op.Rate,
		CreatedAt:   op.CreatedAt,
	}
}

// OperationsFromDomain converts domain operations to responses.
func OperationsFromDomain(ops []*domain.Operation) []*OperationResponse {
	result := make([]*OperationResponse, len(ops))
	for i, op := range ops {
		result[i] = OperationFromDomain(op)
	}
	return result
}

// ListOperationsResponse represents a list of operations.
type ListOperationsResponse struct {
	Operations []*OperationResponse `json:"operations"`
	Total      int64                `json:"total"`
}

// RateResponse represents an exchange rate in API responses.
type RateResponse struct {
	From string          `json:"from"`
	To   string          `json:"to"`
	Rate decimal.Decimal `json:"rate"`
}

// ExistsResponse reports resource existence.
type ExistsResponse struct {
	Exists bool `json:"exists"`
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
