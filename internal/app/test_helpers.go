package app

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/zlahmar/EcoTri-sub000/internal/cache"
	"github.com/zlahmar/EcoTri-sub000/internal/config"
)

// upstreamBody is a minimal open-data records payload for Paris.
const upstreamBody = `{
	"total_count": 3,
	"results": [
		{"lieu": "Paris", "semaine": 1, "type_recyclable_ordures_menageresllecte": "Plastique et emballages", "jour": "Lundi"},
		{"lieu": "Paris", "semaine": 1, "type_recyclable_ordures_menageresllecte": "Verre", "jour": "Jeudi"},
		{"lieu": "Paris", "semaine": 2, "type_recyclable_ordures_menageresllecte": "Ordures ménagères", "jour": "Samedi"}
	]
}`

// newTestApplication wires a full Application against a stub upstream
// serving upstreamBody for every request.
func newTestApplication(t *testing.T) *Application {
	t.Helper()

	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(upstreamBody))
	}))
	t.Cleanup(upstream.Close)

	cfg := config.Config{
		Port:            4000,
		Env:             "testing",
		OpenDataBaseURL: upstream.URL,
		OpenDataDataset: "test-dataset",
		CacheTTL:        cache.DefaultTTL,
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	client := &http.Client{Timeout: 5 * time.Second}

	return New(cfg, logger, client, cache.NewMemory(cfg.CacheTTL), "test-version")
}
