package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

// readinessTimeout bounds the dependency pings so a stuck backend
// cannot hang the readiness endpoint.
const readinessTimeout = 3 * time.Second

// HealthHandler reports liveness and readiness of the engine and its
// two backing stores.
type HealthHandler struct {
	db    *pgxpool.Pool
	cache *redis.Client
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(db *pgxpool.Pool, cache *redis.Client) *HealthHandler {
	return &HealthHandler{
		db:    db,
		cache: cache,
	}
}

// Liveness returns 200 as long as the process is serving requests.
func (h *HealthHandler) Liveness(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "up",
		"service": "moneta",
	})
}

// Readiness returns 200 only when both postgres and redis answer a
// ping. The rate cache is best-effort at runtime, but a dead redis at
// startup usually means broken config, so it fails readiness too.
func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		writeError(w, http.StatusServiceUnavailable, "database unreachable", err.Error())
		return
	}

	if err := h.cache.Ping(ctx).Err(); err != nil {
		writeError(w, http.StatusServiceUnavailable, "cache unreachable", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"status":   "ready",
		"database": "ok",
		"cache":    "ok",
	})
}
