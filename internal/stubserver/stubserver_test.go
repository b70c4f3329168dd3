package stubserver

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
)

func get(t *testing.T, s *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func TestHealthEndpoints(t *testing.T) {
	s := New(Config{ServiceName: "reader", Port: 8080})

	if rec := get(t, s, "/healthz"); rec.Code != http.StatusOK {
		t.Errorf("healthz: expected 200, got %d", rec.Code)
	}
	if rec := get(t, s, "/readyz"); rec.Code != http.StatusOK {
		t.Errorf("readyz: expected 200, got %d", rec.Code)
	}

	s.SetReady(func() bool { return false })
	if rec := get(t, s, "/readyz"); rec.Code != http.StatusServiceUnavailable {
		t.Errorf("readyz: expected 503 when not ready, got %d", rec.Code)
	}
}

func TestRoute(t *testing.T) {
	s := New(Config{ServiceName: "reader", Port: 8080})
	s.Route(func(r chi.Router) {
		r.Get("/search", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{"results":[]}`))
		})
	})

	rec := get(t, s, "/search")
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	if rec.Body.String() != `{"results":[]}` {
		t.Errorf("unexpected body %q", rec.Body.String())
	}
}

func TestFromEnv(t *testing.T) {
	t.Setenv("OTEL_SERVICE_NAME", "reader-renamed")
	t.Setenv("PORT", "9090")
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "http://collector:4317")
	t.Setenv("OTEL_TRACES_SAMPLER_ARG", "0.25")

	cfg := FromEnv("reader", 8080)
	if cfg.ServiceName != "reader-renamed" {
		t.Errorf("unexpected service name %q", cfg.ServiceName)
	}
	if cfg.Port != 9090 {
		t.Errorf("unexpected port %d", cfg.Port)
	}
	if cfg.OTLPEndpoint != "http://collector:4317" {
		t.Errorf("unexpected endpoint %q", cfg.OTLPEndpoint)
	}
	if cfg.SampleRatio != 0.25 {
		t.Errorf("unexpected sample ratio %v", cfg.SampleRatio)
	}
}

func TestFromEnv_Defaults(t *testing.T) {
	t.Setenv("OTEL_SERVICE_NAME", "")
	t.Setenv("PORT", "")
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "")
	t.Setenv("OTEL_TRACES_SAMPLER_ARG", "")

	cfg := FromEnv("writer", 8081)
	if cfg.ServiceName != "writer" || cfg.Port != 8081 || cfg.SampleRatio != 1 {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
}
