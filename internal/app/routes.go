package app

import (
	"context"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/zlahmar/EcoTri-sub000/internal/middleware"
)

// Routes registers all endpoints and returns the final handler, wrapped
// with the Sentry and security-header middlewares. /metrics is served
// from a cached exposition refreshed every 10 seconds.
func (app *Application) Routes(ctx context.Context) http.Handler {
	router := httprouter.New()

	router.HandlerFunc(http.MethodGet, "/v1/healthcheck", app.healthcheckHandler)
	router.HandlerFunc(http.MethodGet, "/v1/status", app.statusHandler)
	router.HandlerFunc(http.MethodGet, "/v1/cities", app.citiesHandler)

	router.HandlerFunc(http.MethodGet, "/v1/schedules/:city", app.schedulesHandler)
	router.HandlerFunc(http.MethodGet, "/v1/schedules/:city/today", app.todayHandler)
	router.HandlerFunc(http.MethodGet, "/v1/schedules/:city/tomorrow", app.tomorrowHandler)
	router.HandlerFunc(http.MethodGet, "/v1/schedules/:city/week", app.weekHandler)
	router.HandlerFunc(http.MethodGet, "/v1/schedules/:city/next", app.nextCollectionHandler)

	router.HandlerFunc(http.MethodGet, "/v1/types/:type", app.typeInfoHandler)

	router.HandlerFunc(http.MethodGet, "/v1/cache/stats", app.cacheStatsHandler)
	router.HandlerFunc(http.MethodPost, "/v1/cache/clear", app.cacheClearHandler)
	router.HandlerFunc(http.MethodPost, "/v1/refresh", app.refreshHandler)

	router.Handler(http.MethodGet, "/metrics", middleware.NewCachedPromHandler(ctx, prometheus.DefaultGatherer, 10*time.Second))

	handler := middleware.Sentry(router)
	return middleware.SecurityHeaders(handler)
}
