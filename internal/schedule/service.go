package schedule

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/getsentry/sentry-go"

	"github.com/zlahmar/EcoTri-sub000/internal/cache"
	"github.com/zlahmar/EcoTri-sub000/internal/metrics"
	"github.com/zlahmar/EcoTri-sub000/internal/opendata"
	"github.com/zlahmar/EcoTri-sub000/internal/report"
)

const cacheStoreLabel = "schedules"

// NextCollection is the answer to a "when is the next pickup" query.
type NextCollection struct {
	Day  string `json:"day"`
	Time string `json:"time"`
}

// Service is the schedule query facade. It keeps normalized per-city
// schedules in its own cache store and degrades to bundled, then
// sample, data when the live API fails: the schedule listing path never
// errors outward.
type Service struct {
	client *opendata.Client
	cache  cache.Store
	logger *slog.Logger
	now    func() time.Time
}

// NewService wires the facade with its API client and cache store.
func NewService(client *opendata.Client, store cache.Store, logger *slog.Logger) *Service {
	return &Service{
		client: client,
		cache:  store,
		logger: logger,
		now:    time.Now,
	}
}

// GetCollectionSchedules returns the normalized schedules for a city,
// from cache when a valid entry exists. On a miss it fetches live data,
// falling back to the bundled datasets and finally the built-in sample,
// then normalizes, filters by city and caches the result.
func (s *Service) GetCollectionSchedules(ctx context.Context, city string) []Schedule {
	return s.getSchedules(ctx, city, false)
}

func (s *Service) getSchedules(ctx context.Context, city string, bypass bool) []Schedule {
	key := cache.CityKey(city)

	if !bypass {
		var cached []Schedule
		hit, err := cache.GetJSON(ctx, s.cache, key, &cached)
		if err != nil {
			s.logger.Warn("schedule cache read failed", "city", city, "error", err)
		}
		if hit {
			metrics.CacheHits.WithLabelValues(cacheStoreLabel).Inc()
			return cached
		}
		metrics.CacheMisses.WithLabelValues(cacheStoreLabel).Inc()
	}

	records, err := s.client.GetCollectionData(ctx, opendata.Query{City: city, BypassCache: bypass})
	if err != nil {
		report.ErrorWithOptions(err, report.Options{
			Tags:  map[string]string{"city": city},
			Level: sentry.LevelWarning,
		})
		s.logger.Warn("live fetch failed, using bundled data", "city", city, "error", err)

		records, err = opendata.LoadBundled()
		if err != nil {
			s.logger.Error("bundled data unavailable, using sample", "error", err)
			records = sampleRecords
		}
	}

	schedules := FilterByCity(Normalize(records), city)

	if err := cache.SetJSON(ctx, s.cache, key, schedules); err != nil {
		s.logger.Warn("schedule cache write failed", "city", city, "error", err)
	}
	return schedules
}

func (s *Service) schedulesForDay(ctx context.Context, city string, day int) []Schedule {
	all := s.GetCollectionSchedules(ctx, city)
	out := make([]Schedule, 0, len(all))
	for _, sched := range all {
		if sched.Enabled && sched.DayOfWeek == day {
			out = append(out, sched)
		}
	}
	return out
}

// TodaySchedules returns the enabled schedules falling on the current
// local weekday.
func (s *Service) TodaySchedules(ctx context.Context, city string) []Schedule {
	return s.schedulesForDay(ctx, city, int(s.now().Weekday()))
}

// TomorrowSchedules returns the enabled schedules falling on tomorrow's
// weekday.
func (s *Service) TomorrowSchedules(ctx context.Context, city string) []Schedule {
	return s.schedulesForDay(ctx, city, (int(s.now().Weekday())+1)%7)
}

// WeekSchedules buckets a city's enabled schedules by day name, Sunday
// first. Every day is present, empty days included.
func (s *Service) WeekSchedules(ctx context.Context, city string) map[string][]Schedule {
	all := s.GetCollectionSchedules(ctx, city)
	week := make(map[string][]Schedule, len(DayNames))
	for day, name := range DayNames {
		bucket := make([]Schedule, 0)
		for _, sched := range all {
			if sched.Enabled && sched.DayOfWeek == day {
				bucket = append(bucket, sched)
			}
		}
		week[name] = bucket
	}
	return week
}

// HasCollectionToday reports whether the city has an enabled collection
// today, optionally restricted to one waste type.
func (s *Service) HasCollectionToday(ctx context.Context, city, wasteType string) bool {
	for _, sched := range s.TodaySchedules(ctx, city) {
		if wasteType == "" || string(sched.Type) == wasteType {
			return true
		}
	}
	return false
}

// NextCollectionDay scans forward up to seven days starting tomorrow
// and returns the first enabled collection of the given type, or nil
// when the city has none.
func (s *Service) NextCollectionDay(ctx context.Context, city, wasteType string) *NextCollection {
	all := s.GetCollectionSchedules(ctx, city)
	today := int(s.now().Weekday())

	for offset := 1; offset <= 7; offset++ {
		day := (today + offset) % 7
		for _, sched := range all {
			if sched.Enabled && sched.DayOfWeek == day && string(sched.Type) == wasteType {
				return &NextCollection{Day: DayNames[day], Time: sched.Time}
			}
		}
	}
	return nil
}

// SearchCity delegates to the API client, filtering the static
// fallback list instead when the call fails.
func (s *Service) SearchCity(ctx context.Context, term string) []string {
	cities, err := s.client.SearchCities(ctx, term, 10)
	if err != nil {
		s.logger.Warn("city search failed, using fallback list", "term", term, "error", err)
		needle := strings.ToLower(strings.TrimSpace(term))
		matches := make([]string, 0, len(fallbackCities))
		for _, city := range fallbackCities {
			if strings.Contains(strings.ToLower(city), needle) {
				matches = append(matches, city)
			}
		}
		return matches
	}
	return cities
}

// AvailableCities lists every known city, or the static fallback list
// when the API call fails.
func (s *Service) AvailableCities(ctx context.Context) []string {
	cities, err := s.client.GetAllCities(ctx, true)
	if err != nil {
		s.logger.Warn("city listing failed, using fallback list", "error", err)
		return append([]string(nil), fallbackCities...)
	}
	return cities
}

// ClearCache drops every cached entry, raw records and per-city
// schedule lists alike.
func (s *Service) ClearCache(ctx context.Context) error {
	return s.cache.Clear(ctx)
}

// RefreshData evicts one city and refetches it past every cache layer,
// or clears everything when city is empty.
func (s *Service) RefreshData(ctx context.Context, city string) error {
	if city == "" {
		return s.ClearCache(ctx)
	}
	if err := s.cache.Delete(ctx, cache.CityKey(city)); err != nil {
		return err
	}
	s.getSchedules(ctx, city, true)
	return nil
}

// CacheStats exposes the schedule cache contents for the operational
// endpoints.
func (s *Service) CacheStats(ctx context.Context) (cache.Stats, error) {
	return s.cache.Stats(ctx)
}
