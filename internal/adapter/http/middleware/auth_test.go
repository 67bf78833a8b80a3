package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ivlev/moneta/internal/domain"
	"github.com/ivlev/moneta/internal/infrastructure/auth"
)

func identityEcho(t *testing.T, captured *domain.Identity) http.Handler {
	t.Helper()

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, ok := IdentityFromContext(r.Context())
		if !ok {
			t.Fatal("expected identity in request context")
		}
		*captured = identity
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	manager := auth.NewJWTManager("test-secret", time.Hour)
	identity := domain.Identity{
		UserID: 42,
		Grants: []domain.Grant{domain.GrantAccountViewSelf, domain.GrantOperationViewSelf},
	}

	token, err := manager.Generate(identity)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	var captured domain.Identity
	mw := AuthMiddleware(manager, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/accounts/1", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	mw(identityEcho(t, &captured)).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if captured.UserID != 42 {
		t.Fatalf("expected user 42, got %d", captured.UserID)
	}
	if !captured.Has(domain.GrantAccountViewSelf) {
		t.Fatalf("expected grants to survive the round trip, got %+v", captured.Grants)
	}
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	manager := auth.NewJWTManager("test-secret", time.Hour)
	mw := AuthMiddleware(manager, nil)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be reached without a token")
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/accounts/1", nil)
	rec := httptest.NewRecorder()

	mw(next).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthMiddleware_MalformedHeader(t *testing.T) {
	manager := auth.NewJWTManager("test-secret", time.Hour)
	mw := AuthMiddleware(manager, nil)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be reached with a malformed header")
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/accounts/1", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	rec := httptest.NewRecorder()

	mw(next).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	manager := auth.NewJWTManager("test-secret", time.Hour)
	other := auth.NewJWTManager("other-secret", time.Hour)

	token, err := other.Generate(domain.Identity{UserID: 1})
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	mw := AuthMiddleware(manager, nil)
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be reached with a foreign token")
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/accounts/1", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	mw(next).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestStaticIdentity(t *testing.T) {
	identity := domain.Identity{
		UserID: 0,
		Grants: []domain.Grant{domain.GrantAccountViewAny, domain.GrantAccountEditAny},
	}

	var captured domain.Identity
	mw := StaticIdentity(identity)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/accounts/1", nil)
	rec := httptest.NewRecorder()

	mw(identityEcho(t, &captured)).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !captured.Has(domain.GrantAccountEditAny) {
		t.Fatalf("expected static grants, got %+v", captured.Grants)
	}
}
