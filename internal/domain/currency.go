package domain

import (
	"fmt"
	"strings"
)

// Currency is an ISO 4217 currency code supported by the engine.
type Currency string

const (
	RUB Currency = "RUB"
	USD Currency = "USD"
	EUR Currency = "EUR"
)

var supportedCurrencies = map[Currency]bool{
	RUB: true,
	USD: true,
	EUR: true,
}

// IsValid checks if the currency is supported.
func (c Currency) IsValid() bool {
	return supportedCurrencies[c]
}

// String returns the currency code.
func (c Currency) String() string {
	return string(c)
}

// ParseCurrency normalizes and validates a currency code.
func ParseCurrency(code string) (Currency, error) {
	c := Currency(strings.ToUpper(strings.TrimSpace(code)))
	if !c.IsValid() {
		return "", fmt.Errorf("%w: %s", ErrInvalidCurrency, code)
	}

	return c, nil
}
