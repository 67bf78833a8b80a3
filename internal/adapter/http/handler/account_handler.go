package handler

import (
	"encoding/json"
	"net/http"

	"github.com/ivlev/moneta/internal/adapter/http/dto"
	"github.com/ivlev/moneta/internal/infrastructure/metrics"
	"github.com/ivlev/moneta/internal/usecase"
)

// AccountHandler handles account-related HTTP requests.
type AccountHandler struct {
	accounts usecase.AccountService
	metrics  *metrics.Metrics
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(accounts usecase.AccountService, m *metrics.Metrics) *AccountHandler {
	return &AccountHandler{accounts: accounts, metrics: m}
}

// Create creates a new account.
func (h *AccountHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(w, r)
	if !ok {
		return
	}

	var req dto.CreateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	account, err := h.accounts.CreateAccount(r.Context(), actor, req.ToUseCaseInput())
	if err != nil {
		writeDomainError(w, "failed to create account", err)
		return
	}

	if h.metrics != nil {
		h.metrics.AccountsCreated.Inc()
	}

	writeJSON(w, http.StatusCreated, dto.AccountFromDomain(account))
}

// Get retrieves an account by ID.
func (h *AccountHandler) Get(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(w, r)
	if !ok {
		return
	}

	id, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid account ID", "")
		return
	}

	account, err := h.accounts.GetAccount(r.Context(), actor, id)
	if err != nil {
		writeDomainError(w, "failed to get account", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.AccountFromDomain(account))
}

// Update rewrites an account's owner, funds, and currency.
func (h *AccountHandler) Update(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(w, r)
	if !ok {
		return
	}

	id, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid account ID", "")
		return
	}

	var req dto.UpdateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	account, err := h.accounts.UpdateAccount(r.Context(), actor, id, req.ToUseCaseInput())
	if err != nil {
		writeDomainError(w, "failed to update account", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.AccountFromDomain(account))
}

// Delete removes an account.
func (h *AccountHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(w, r)
	if !ok {
		return
	}

	id, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid account ID", "")
		return
	}

	if err := h.accounts.DeleteAccount(r.Context(), actor, id); err != nil {
		writeDomainError(w, "failed to delete account", err)
		return
	}

	if h.metrics != nil {
		h.metrics.AccountsDeleted.Inc()
	}

	w.WriteHeader(http.StatusNoContent)
}

// Exists reports whether an account exists.
func (h *AccountHandler) Exists(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(w, r)
	if !ok {
		return
	}

	id, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid account ID", "")
		return
	}

	exists, err := h.accounts.AccountExists(r.Context(), actor, id)
	if err != nil {
		writeDomainError(w, "failed to check account", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ExistsResponse{Exists: exists})
}

// ListByUser lists all accounts owned by a user.
func (h *AccountHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(w, r)
	if !ok {
		return
	}

	userID, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid user ID", "")
		return
	}

	accounts, err := h.accounts.GetAccountsByUser(r.Context(), actor, userID)
	if err != nil {
		writeDomainError(w, "failed to list accounts", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ListAccountsResponse{
		Accounts: dto.AccountsFromDomain(accounts),
		Total:    int64(len(accounts)),
	})
}
