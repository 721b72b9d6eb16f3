package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

func TestCachedPromHandlerServesRefreshedExposition(t *testing.T) {
	registry := prometheus.NewRegistry()
	counter := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "cached_prom_test_total",
		Help: "Test counter",
	})
	registry.MustRegister(counter)
	counter.Inc()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	h := NewCachedPromHandler(ctx, registry, 25*time.Millisecond)

	// Let the background refresh run at least once.
	time.Sleep(250 * time.Millisecond)

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("got status %d, want 200", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/plain") {
		t.Errorf("Content-Type = %q, want Prometheus text exposition", ct)
	}
	if body := rr.Body.String(); !strings.Contains(body, "cached_prom_test_total 1") {
		t.Errorf("exposition missing counter, got:\n%s", body)
	}
}

func TestCachedPromHandlerServesFromCacheNotLive(t *testing.T) {
	registry := prometheus.NewRegistry()
	counter := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "cached_prom_stale_total",
		Help: "Test counter",
	})
	registry.MustRegister(counter)

	ctx, cancel := context.WithCancel(context.Background())
	h := NewCachedPromHandler(ctx, registry, 25*time.Millisecond)

	time.Sleep(250 * time.Millisecond)
	cancel()
	// Allow an in-flight refresh to finish before mutating the registry.
	time.Sleep(50 * time.Millisecond)

	// With the refresh loop stopped, unregistering the collector cannot
	// reach the cache: a scrape must still serve the last snapshot a
	// live gather would no longer contain.
	registry.Unregister(counter)

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if body := rr.Body.String(); !strings.Contains(body, "cached_prom_stale_total") {
		t.Errorf("expected cached exposition to survive unregister, got:\n%s", body)
	}
}

func TestCachedPromHandlerFallsBackBeforeFirstRefresh(t *testing.T) {
	registry := prometheus.NewRegistry()
	counter := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "cached_prom_live_total",
		Help: "Test counter",
	})
	registry.MustRegister(counter)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ttl far beyond the test duration: the cache stays empty and every
	// scrape goes through the live handler.
	h := NewCachedPromHandler(ctx, registry, time.Hour)

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("got status %d, want 200", rr.Code)
	}
	if body := rr.Body.String(); !strings.Contains(body, "cached_prom_live_total") {
		t.Errorf("live fallback missing counter, got:\n%s", body)
	}
}
