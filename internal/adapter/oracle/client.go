package oracle

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/ivlev/moneta/internal/domain"
	"github.com/ivlev/moneta/internal/infrastructure/metrics"
)

// Client fetches currency quotes from the external exchange rate
// oracle. The oracle answers a single query with a mapping from
// currency code to a decimal quote against its reference currency; any
// malformed or missing entry is the caller's problem, the client only
// relays the mapping.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     zerolog.Logger
	metrics    *metrics.Metrics
}

// NewClient creates a new oracle Client.
func NewClient(baseURL string, timeout time.Duration, logger zerolog.Logger, m *metrics.Metrics) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
		metrics:    m,
	}
}

// Quotes fetches the current quote for every currency the oracle
// knows, keyed by currency code.
func (c *Client) Quotes(ctx context.Context) (map[domain.Currency]decimal.Decimal, error) {
	start := time.Now()

	quotes, err := c.fetch(ctx)

	if c.metrics != nil {
		c.metrics.OracleDuration.Observe(time.Since(start).Seconds())

		status := "ok"
		if err != nil {
			status = "error"
		}

		c.metrics.OracleLookups.WithLabelValues(status).Inc()
	}

	if err != nil {
		c.logger.Warn().Err(err).Msg("oracle lookup failed")

		return nil, err
	}

	return quotes, nil
}

func (c *Client) fetch(ctx context.Context) (map[domain.Currency]decimal.Decimal, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build oracle request: %w", err)
	}

	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("query oracle: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("oracle returned status %d", resp.StatusCode)
	}

	var payload map[string]decimal.Decimal
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode oracle response: %w", err)
	}

	quotes := make(map[domain.Currency]decimal.Decimal, len(payload))
	for code, quote := range payload {
		quotes[domain.Currency(code)] = quote
	}

	return quotes, nil
}
