package domain

import "errors"

var (
	// Validation errors
	ErrInvalidAmount        = errors.New("amount must not be negative")
	ErrInvalidCurrency      = errors.New("unsupported currency code")
	ErrInvalidOwner         = errors.New("account must belong to a user")
	ErrNegativeFunds        = errors.New("account funds must not be negative")
	ErrInvalidOperationKind = errors.New("unknown operation kind")

	// Lookup errors
	ErrAccountNotFound   = errors.New("account not found")
	ErrOperationNotFound = errors.New("operation not found")

	// Operation errors
	ErrInsufficientFunds   = errors.New("insufficient funds")
	ErrSameAccountTransfer = errors.New("cannot transfer to same account")
	ErrDestinationNotFound = errors.New("destination account not found")

	// Authorization errors
	ErrAccessDenied = errors.New("access denied")

	// Infrastructure errors
	ErrRateUnavailable = errors.New("exchange rate unavailable")
	ErrPersistence     = errors.New("persistence failure")
)

// Authentication errors surface at the transport boundary and never
// enter the operation taxonomy.
var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("expired token")
)

var domainErrors = []error{
	ErrInvalidAmount,
	ErrInvalidCurrency,
	ErrInvalidOperationKind,
	ErrInvalidOwner,
	ErrNegativeFunds,
	ErrAccountNotFound,
	ErrOperationNotFound,
	ErrInsufficientFunds,
	ErrSameAccountTransfer,
	ErrDestinationNotFound,
	ErrAccessDenied,
	ErrRateUnavailable,
	ErrPersistence,
}

// IsDomainError reports whether err belongs to the engine's error taxonomy.
func IsDomainError(err error) bool {
	for _, domainErr := range domainErrors {
		if errors.Is(err, domainErr) {
			return true
		}
	}

	return false
}
