package app

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"github.com/zlahmar/EcoTri-sub000/internal/schedule"
)

// HealthStatus is the JSON body of /v1/healthcheck.
type HealthStatus struct {
	Status      string `json:"status"`
	Environment string `json:"environment"`
	Version     string `json:"version"`
	Ready       bool   `json:"ready"`
}

func (app *Application) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		app.Logger.Error("failed to encode response", "error", err)
	}
}

func cityParam(r *http.Request) string {
	return httprouter.ParamsFromContext(r.Context()).ByName("city")
}

// healthcheckHandler reports local readiness only; it never calls the
// upstream API. Use /v1/status for a live probe.
func (app *Application) healthcheckHandler(w http.ResponseWriter, r *http.Request) {
	ready := app.OpenData != nil && app.Schedules != nil

	status := HealthStatus{
		Status:      "available",
		Environment: app.Config.Env,
		Version:     app.Version,
		Ready:       ready,
	}

	code := http.StatusOK
	if !ready {
		code = http.StatusInternalServerError
	}
	app.writeJSON(w, code, status)
}

// statusHandler probes the live API with a small timed request and
// reports the outcome. It answers 200 even when the upstream is down;
// the body carries the failure.
func (app *Application) statusHandler(w http.ResponseWriter, r *http.Request) {
	result := app.OpenData.TestAPI(r.Context())
	app.writeJSON(w, http.StatusOK, result)
}

// citiesHandler lists known cities, or searches them when ?q= is set.
func (app *Application) citiesHandler(w http.ResponseWriter, r *http.Request) {
	var cities []string
	if term := r.URL.Query().Get("q"); term != "" {
		cities = app.Schedules.SearchCity(r.Context(), term)
	} else {
		cities = app.Schedules.AvailableCities(r.Context())
	}
	app.writeJSON(w, http.StatusOK, map[string]any{"cities": cities})
}

func (app *Application) schedulesHandler(w http.ResponseWriter, r *http.Request) {
	city := cityParam(r)
	schedules := app.Schedules.GetCollectionSchedules(r.Context(), city)
	app.writeJSON(w, http.StatusOK, map[string]any{"city": city, "schedules": schedules})
}

func (app *Application) todayHandler(w http.ResponseWriter, r *http.Request) {
	city := cityParam(r)
	schedules := app.Schedules.TodaySchedules(r.Context(), city)
	app.writeJSON(w, http.StatusOK, map[string]any{"city": city, "schedules": schedules})
}

func (app *Application) tomorrowHandler(w http.ResponseWriter, r *http.Request) {
	city := cityParam(r)
	schedules := app.Schedules.TomorrowSchedules(r.Context(), city)
	app.writeJSON(w, http.StatusOK, map[string]any{"city": city, "schedules": schedules})
}

func (app *Application) weekHandler(w http.ResponseWriter, r *http.Request) {
	city := cityParam(r)
	week := app.Schedules.WeekSchedules(r.Context(), city)
	app.writeJSON(w, http.StatusOK, map[string]any{"city": city, "week": week})
}

// nextCollectionHandler answers when the next pickup of ?type= happens.
func (app *Application) nextCollectionHandler(w http.ResponseWriter, r *http.Request) {
	city := cityParam(r)
	wasteType := r.URL.Query().Get("type")
	if wasteType == "" {
		app.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "missing type parameter"})
		return
	}

	next := app.Schedules.NextCollectionDay(r.Context(), city, wasteType)
	if next == nil {
		app.writeJSON(w, http.StatusNotFound, map[string]string{"error": "no collection scheduled"})
		return
	}
	app.writeJSON(w, http.StatusOK, next)
}

func (app *Application) typeInfoHandler(w http.ResponseWriter, r *http.Request) {
	wasteType := httprouter.ParamsFromContext(r.Context()).ByName("type")
	app.writeJSON(w, http.StatusOK, schedule.TypeInfoFor(wasteType))
}

func (app *Application) cacheStatsHandler(w http.ResponseWriter, r *http.Request) {
	stats, err := app.Schedules.CacheStats(r.Context())
	if err != nil {
		app.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	app.writeJSON(w, http.StatusOK, stats)
}

func (app *Application) cacheClearHandler(w http.ResponseWriter, r *http.Request) {
	if err := app.Schedules.ClearCache(r.Context()); err != nil {
		app.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	app.writeJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
}

func (app *Application) refreshHandler(w http.ResponseWriter, r *http.Request) {
	city := r.URL.Query().Get("city")
	if err := app.Schedules.RefreshData(r.Context(), city); err != nil {
		app.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	app.writeJSON(w, http.StatusOK, map[string]string{"status": "refreshed", "city": city})
}
