package app

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"habitd/cmd/security/token"
)

func testApp(t *testing.T) *App {
	t.Helper()

	t.Setenv("HABIT_TOKEN_KEY_HEX", token.NewKeyHex())

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	a, err := New(Config{LogLevel: "error"}, log)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return a
}

func TestAppServesHealthAndReadiness(t *testing.T) {
	a := testApp(t)

	mux := http.NewServeMux()
	registerHTTP(mux, a.log, a.cfg, a.dbPool, a.dbEnabled, a.metrics, a.api)

	for _, path := range []string{"/healthz", "/readyz"} {
		rr := httptest.NewRecorder()
		mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
		if rr.Code != http.StatusOK {
			t.Fatalf("GET %s: status %d", path, rr.Code)
		}
	}
}

func TestReadinessRequiresDB(t *testing.T) {
	a := testApp(t)
	a.cfg.ReadinessRequireDB = true

	mux := http.NewServeMux()
	registerHTTP(mux, a.log, a.cfg, a.dbPool, a.dbEnabled, a.metrics, a.api)

	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("readyz without db: status %d, want 503", rr.Code)
	}
}

func TestMetricsEndpointCountsRequests(t *testing.T) {
	a := testApp(t)

	mux := http.NewServeMux()
	registerHTTP(mux, a.log, a.cfg, a.dbPool, a.dbEnabled, a.metrics, a.api)
	h := WithMetrics(mux, a.metrics)

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("healthz: status %d", rr.Code)
	}

	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("metrics: status %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "habitd_http_requests_total") {
		t.Fatalf("metrics output missing request counter")
	}
}

func TestAuthRoutesAreWired(t *testing.T) {
	a := testApp(t)

	mux := http.NewServeMux()
	registerHTTP(mux, a.log, a.cfg, a.dbPool, a.dbEnabled, a.metrics, a.api)

	body := strings.NewReader(`{"email":"alice@example.com","display_name":"Alice","password":"secret123"}`)
	req := httptest.NewRequest(http.MethodPost, "/auth/register", body)
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusCreated {
		t.Fatalf("register via app wiring: status %d body %s", rr.Code, rr.Body.String())
	}
}
