package handler

import (
	"net/http"

	"github.com/ivlev/moneta/internal/adapter/http/dto"
	"github.com/ivlev/moneta/internal/domain"
	"github.com/ivlev/moneta/internal/usecase"
)

// RateHandler exposes the current exchange rate between two supported
// currencies.
type RateHandler struct {
	converter usecase.Converter
}

// NewRateHandler creates a new RateHandler.
func NewRateHandler(converter usecase.Converter) *RateHandler {
	return &RateHandler{converter: converter}
}

// Get returns the exchange rate for the from/to query parameters.
func (h *RateHandler) Get(w http.ResponseWriter, r *http.Request) {
	from, err := domain.ParseCurrency(r.URL.Query().Get("from"))
	if err != nil {
		writeDomainError(w, "invalid source currency", err)
		return
	}

	to, err := domain.ParseCurrency(r.URL.Query().Get("to"))
	if err != nil {
		writeDomainError(w, "invalid target currency", err)
		return
	}

	rate, err := h.converter.Rate(r.Context(), from, to)
	if err != nil {
		writeDomainError(w, "failed to get rate", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.RateResponse{
		From: from.String(),
		To:   to.String(),
		Rate: rate,
	})
}
