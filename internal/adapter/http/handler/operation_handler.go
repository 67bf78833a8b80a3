package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/ivlev/moneta/internal/adapter/http/dto"
	"github.com/ivlev/moneta/internal/domain"
	"github.com/ivlev/moneta/internal/infrastructure/metrics"
	"github.com/ivlev/moneta/internal/usecase"
)

// OperationHandler handles the money movement endpoints and the
// operation audit trail.
type OperationHandler struct {
	replenishments usecase.ReplenishmentService
	withdrawals    usecase.WithdrawalService
	transfers      usecase.TransferService
	operations     usecase.OperationService
	metrics        *metrics.Metrics
}

// NewOperationHandler creates a new OperationHandler.
func NewOperationHandler(
	replenishments usecase.ReplenishmentService,
	withdrawals usecase.WithdrawalService,
	transfers usecase.TransferService,
	operations usecase.OperationService,
	m *metrics.Metrics,
) *OperationHandler {
	return &OperationHandler{
		replenishments: replenishments,
		withdrawals:    withdrawals,
		transfers:      transfers,
		operations:     operations,
		metrics:        m,
	}
}

// Replenish deposits funds into an account.
func (h *OperationHandler) Replenish(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(w, r)
	if !ok {
		return
	}

	accountID, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid account ID", "")
		return
	}

	var req dto.ReplenishmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	start := time.Now()

	op, err := h.replenishments.Process(r.Context(), actor, req.ToUseCaseInput(accountID))
	if err != nil {
		h.recordError(domain.OperationReplenishment, err)
		writeDomainError(w, "failed to replenish account", err)

		return
	}

	h.recordProcessed(op, time.Since(start))
	writeJSON(w, http.StatusCreated, dto.OperationFromDomain(op))
}

// Withdraw takes funds out of an account.
func (h *OperationHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(w, r)
	if !ok {
		return
	}

	accountID, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid account ID", "")
		return
	}

	var req dto.WithdrawalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	start := time.Now()

	op, err := h.withdrawals.Process(r.Context(), actor, req.ToUseCaseInput(accountID))
	if err != nil {
		h.recordError(domain.OperationWithdrawal, err)
		writeDomainError(w, "failed to withdraw from account", err)

		return
	}

	h.recordProcessed(op, time.Since(start))
	writeJSON(w, http.StatusCreated, dto.OperationFromDomain(op))
}

// Transfer moves funds between two accounts.
func (h *OperationHandler) Transfer(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(w, r)
	if !ok {
		return
	}

	var req dto.TransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	start := time.Now()

	op, err := h.transfers.Process(r.Context(), actor, req.ToUseCaseInput())
	if err != nil {
		h.recordError(domain.OperationTransfer, err)
		writeDomainError(w, "failed to transfer", err)

		return
	}

	h.recordProcessed(op, time.Since(start))
	writeJSON(w, http.StatusCreated, dto.OperationFromDomain(op))
}

// Get retrieves an operation by ID.
func (h *OperationHandler) Get(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(w, r)
	if !ok {
		return
	}

	id, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid operation ID", "")
		return
	}

	op, err := h.operations.GetOperation(r.Context(), actor, id)
	if err != nil {
		writeDomainError(w, "failed to get operation", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.OperationFromDomain(op))
}

// Delete removes an operation record (administrative).
func (h *OperationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(w, r)
	if !ok {
		return
	}

	id, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid operation ID", "")
		return
	}

	if err := h.operations.DeleteOperation(r.Context(), actor, id); err != nil {
		writeDomainError(w, "failed to delete operation", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListByAccount lists operations touching an account.
func (h *OperationHandler) ListByAccount(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(w, r)
	if !ok {
		return
	}

	accountID, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid account ID", "")
		return
	}

	ops, err := h.operations.GetOperationsByAccount(r.Context(), actor, usecase.ListOperationsByAccountInput{
		AccountID: accountID,
		Limit:     parseIntQuery(r, "limit", 20),
		Offset:    parseIntQuery(r, "offset", 0),
	})
	if err != nil {
		writeDomainError(w, "failed to list operations", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ListOperationsResponse{
		Operations: dto.OperationsFromDomain(ops),
		Total:      int64(len(ops)),
	})
}

// ListByUser lists operations touching a user.
func (h *OperationHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(w, r)
	if !ok {
		return
	}

	userID, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid user ID", "")
		return
	}

	ops, err := h.operations.GetOperationsByUser(r.Context(), actor, usecase.ListOperationsByUserInput{
		UserID: userID,
		Limit:  parseIntQuery(r, "limit", 20),
		Offset: parseIntQuery(r, "offset", 0),
	})
	if err != nil {
		writeDomainError(w, "failed to list operations", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ListOperationsResponse{
		Operations: dto.OperationsFromDomain(ops),
		Total:      int64(len(ops)),
	})
}

func (h *OperationHandler) recordProcessed(op *domain.Operation, elapsed time.Duration) {
	if h.metrics == nil {
		return
	}

	h.metrics.OperationsProcessed.WithLabelValues(string(op.Kind)).Inc()
	h.metrics.OperationDuration.WithLabelValues(string(op.Kind)).Observe(elapsed.Seconds())

	amount, _ := op.Amount.Float64()
	h.metrics.OperationAmount.WithLabelValues(string(op.Kind), op.Currency.String()).Observe(amount)
}

func (h *OperationHandler) recordError(kind domain.OperationKind, err error) {
	if h.metrics == nil {
		return
	}

	h.metrics.OperationErrors.WithLabelValues(string(kind), errorType(err)).Inc()
}

func errorType(err error) string {
	switch mapDomainError(err) {
	case http.StatusNotFound:
		return "not_found"
	case http.StatusBadRequest:
		return "validation"
	case http.StatusUnprocessableEntity:
		return "insufficient_funds"
	case http.StatusForbidden:
		return "access_denied"
	case http.StatusBadGateway:
		return "rate_unavailable"
	default:
		return "internal"
	}
}
