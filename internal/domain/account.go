package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account represents a balance-holding record owned by one user,
// denominated in one currency. Funds never go below zero after a
// committed mutation.
type Account struct {
	ID        int64
	UserID    int64
	Funds     decimal.Decimal
	Currency  Currency
	CreatedAt time.Time
}

// Validate checks account invariants before persistence.
func (a *Account) Validate() error {
	if a.UserID <= 0 {
		return ErrInvalidOwner
	}

	if a.Funds.IsNegative() {
		return ErrNegativeFunds
	}

	if !a.Currency.IsValid() {
		return ErrInvalidCurrency
	}

	return nil
}

// ValidateDebit checks if the account holds enough funds to be debited
// by amount (denominated in the account's currency).
func (a *Account) ValidateDebit(amount decimal.Decimal) error {
	if a.Funds.LessThan(amount) {
		return ErrInsufficientFunds
	}

	return nil
}

// ApplyDebit returns the funds after a debit.
func (a *Account) ApplyDebit(amount decimal.Decimal) decimal.Decimal {
	return a.Funds.Sub(amount)
}

// ApplyCredit returns the funds after a credit.
func (a *Account) ApplyCredit(amount decimal.Decimal) decimal.Decimal {
	return a.Funds.Add(amount)
}
