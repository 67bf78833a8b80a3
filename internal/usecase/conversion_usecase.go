package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ivlev/moneta/internal/domain"
)

// ConversionUseCase converts amounts between currencies using quotes
// from an external rate source. A currency converted to itself is an
// identity with no external call. Rates are the ratio of the two
// quotes against the source's reference currency, rounded down to
// rateScale fractional digits.
type ConversionUseCase struct {
	source   RateSource
	cache    Cache
	cacheTTL time.Duration
}

var _ Converter = (*ConversionUseCase)(nil)

// NewConversionUseCase creates a new ConversionUseCase. The cache is
// optional; pass nil to hit the rate source on every call.
func NewConversionUseCase(source RateSource, cache Cache, cacheTTL time.Duration) *ConversionUseCase {
	return &ConversionUseCase{
		source:   source,
		cache:    cache,
		cacheTTL: cacheTTL,
	}
}

// Rate returns the exchange rate between two currencies.
func (uc *ConversionUseCase) Rate(ctx context.Context, from, to domain.Currency) (decimal.Decimal, error) {
	if !from.IsValid() || !to.IsValid() {
		return decimal.Decimal{}, domain.ErrInvalidCurrency
	}

	if from == to {
		return decimal.NewFromInt(1), nil
	}

	cacheKey := "rate:" + from.String() + ":" + to.String()

	if uc.cache != nil {
		if cached, err := uc.cache.Get(ctx, cacheKey); err == nil {
			if rate, err := decimal.NewFromString(cached); err == nil {
				return rate, nil
			}
		}
	}

	quotes, err := uc.source.Quotes(ctx)
	if err != nil {
		return decimal.Decimal{}, wrapRateUnavailable(err)
	}

	quoteFrom, ok := quotes[from]
	if !ok || !quoteFrom.IsPositive() {
		return decimal.Decimal{}, fmt.Errorf("%w: no quote for %s", domain.ErrRateUnavailable, from)
	}

	quoteTo, ok := quotes[to]
	if !ok || !quoteTo.IsPositive() {
		return decimal.Decimal{}, fmt.Errorf("%w: no quote for %s", domain.ErrRateUnavailable, to)
	}

	rate := quoteFrom.Div(quoteTo).RoundDown(rateScale)

	if uc.cache != nil {
		// Best effort: a cache failure never fails the conversion.
		_ = uc.cache.Set(ctx, cacheKey, rate.String(), uc.cacheTTL)
	}

	return rate, nil
}

// Convert converts amount from one currency into another.
func (uc *ConversionUseCase) Convert(ctx context.Context, amount decimal.Decimal, from, to domain.Currency) (decimal.Decimal, error) {
	if from == to {
		return amount, nil
	}

	rate, err := uc.Rate(ctx, from, to)
	if err != nil {
		return decimal.Decimal{}, err
	}

	return amount.Mul(rate), nil
}

func wrapRateUnavailable(err error) error {
	if err == nil || domain.IsDomainError(err) {
		return err
	}

	return fmt.Errorf("%w: %w", domain.ErrRateUnavailable, err)
}
