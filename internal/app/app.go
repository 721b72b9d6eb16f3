// Package app wires the collection-schedule services together and
// exposes them over HTTP.
package app

import (
	"log/slog"
	"net/http"

	"github.com/zlahmar/EcoTri-sub000/internal/cache"
	"github.com/zlahmar/EcoTri-sub000/internal/config"
	"github.com/zlahmar/EcoTri-sub000/internal/fetch"
	"github.com/zlahmar/EcoTri-sub000/internal/opendata"
	"github.com/zlahmar/EcoTri-sub000/internal/schedule"
)

// Application holds the service dependencies for the HTTP handlers.
type Application struct {
	Config    config.Config
	Logger    *slog.Logger
	OpenData  *opendata.Client
	Schedules *schedule.Service
	Version   string
}

// New creates and wires all dependencies for the Application. The API
// client and the schedule facade share one cache store, so clearing the
// cache drops raw records and normalized schedules together.
func New(cfg config.Config, logger *slog.Logger, client *http.Client, store cache.Store, version string) *Application {
	fetcher := fetch.New(client, logger)
	openData := opendata.NewClient(cfg.OpenDataBaseURL, cfg.OpenDataDataset, fetcher, store, logger)
	schedules := schedule.NewService(openData, store, logger)

	return &Application{
		Config:    cfg,
		Logger:    logger,
		OpenData:  openData,
		Schedules: schedules,
		Version:   version,
	}
}
