package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"apartment-backend/internal/auth"
	"apartment-backend/internal/config"
	"apartment-backend/internal/metrics"
	"apartment-backend/internal/models"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
)

func newJWT() *auth.JWTManager {
	cfg := &config.Config{}
	cfg.JWT.Secret = "middleware-secret"
	cfg.JWT.ExpirationHours = 1
	return auth.NewJWTManager(cfg)
}

func TestAuthenticateRejectsBadHeaders(t *testing.T) {
	called := false
	h := NewAuthMiddleware(newJWT()).Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	for _, header := range []string{"", "Token abc", "Bearer", "Bearer not-a-jwt"} {
		req := httptest.NewRequest(http.MethodGet, "/api/hokhau", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("header %q: expected 401, got %d", header, rec.Code)
		}
	}
	if called {
		t.Errorf("handler must not run without a valid token")
	}
}

func TestAuthenticatePutsUsernameInContext(t *testing.T) {
	jwtManager := newJWT()
	token, err := jwtManager.GenerateToken(&models.User{Username: "admin"})
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	var got string
	h := NewAuthMiddleware(jwtManager).Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = GetUsernameFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	h.ServeHTTP(httptest.NewRecorder(), req)

	if got != "admin" {
		t.Errorf("expected username admin in context, got %q", got)
	}
}

func TestRequestLoggingAssignsID(t *testing.T) {
	var seen string
	h := RequestLogging(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestIDFromContext(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/hokhau", nil))
	header := rec.Header().Get(RequestIDHeader)
	if _, err := uuid.Parse(header); err != nil {
		t.Fatalf("expected a UUID request id, got %q", header)
	}
	if seen != header {
		t.Errorf("context id %q does not match header %q", seen, header)
	}

	incoming := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/api/hokhau", nil)
	req.Header.Set(RequestIDHeader, incoming)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Header().Get(RequestIDHeader) != incoming {
		t.Errorf("valid incoming id should be kept")
	}
}

func TestPanicRecovery(t *testing.T) {
	h := PanicRecovery(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", rec.Code)
	}
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.0.2.1:4321"
	if ip := ClientIP(req); ip != "192.0.2.1" {
		t.Errorf("expected remote host, got %q", ip)
	}
	req.Header.Set("X-Forwarded-For", "203.0.113.5, 10.0.0.1")
	if ip := ClientIP(req); ip != "203.0.113.5" {
		t.Errorf("expected first forwarded address, got %q", ip)
	}
}

func TestMetricsLabelByRouteTemplate(t *testing.T) {
	r := mux.NewRouter()
	r.Use(MetricsMiddleware)
	r.HandleFunc("/api/hokhau/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}).Methods(http.MethodGet)

	counter := metrics.HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/api/hokhau/{id}", "404")
	before := promtest.ToFloat64(counter)

	for _, id := range []string{"HK01", "HK02"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/hokhau/"+id, nil))
	}

	if got := promtest.ToFloat64(counter) - before; got != 2 {
		t.Errorf("expected both ids under one route label, counted %v", got)
	}
}
