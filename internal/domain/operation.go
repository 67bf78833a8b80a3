package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// OperationKind tags the three kinds of money movement.
type OperationKind string

const (
	OperationReplenishment OperationKind = "replenishment"
	OperationWithdrawal    OperationKind = "withdrawal"
	OperationTransfer      OperationKind = "transfer"
)

// IsValid checks if the kind is a known operation kind.
func (k OperationKind) IsValid() bool {
	switch k {
	case OperationReplenishment, OperationWithdrawal, OperationTransfer:
		return true
	}

	return false
}

// Operation is an immutable record of a single funds movement. Kind
// selects which fields are meaningful: ToUserID, ToAccountID and Rate
// are set only for transfers. Once persisted an operation is never
// updated, only created or administratively deleted.
type Operation struct {
	ID          int64
	Reference   string
	Kind        OperationKind
	UserID      int64
	AccountID   int64
	ToUserID    *int64
	ToAccountID *int64
	Amount      decimal.Decimal
	Currency    Currency
	Rate        *decimal.Decimal
	CreatedAt   time.Time
}

// Validate checks operation invariants. Processors run it on every
// record they build, as a last guard before the record is persisted.
func (o *Operation) Validate() error {
	if !o.Kind.IsValid() {
		return ErrInvalidOperationKind
	}

	if o.Amount.IsNegative() {
		return ErrInvalidAmount
	}

	if !o.Currency.IsValid() {
		return ErrInvalidCurrency
	}

	if o.Kind == OperationTransfer {
		if o.ToAccountID == nil {
			return ErrDestinationNotFound
		}

		if o.AccountID == *o.ToAccountID {
			return ErrSameAccountTransfer
		}
	}

	return nil
}

// Involves reports whether the given user is either endpoint of the
// operation.
func (o *Operation) Involves(userID int64) bool {
	if o.UserID == userID {
		return true
	}

	return o.ToUserID != nil && *o.ToUserID == userID
}
