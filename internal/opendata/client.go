package opendata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/zlahmar/EcoTri-sub000/internal/cache"
	"github.com/zlahmar/EcoTri-sub000/internal/fetch"
	"github.com/zlahmar/EcoTri-sub000/internal/metrics"
)

const (
	// DefaultBaseURL points at the open-data portal publishing the
	// collection-schedule dataset.
	DefaultBaseURL = "https://data.grandpoitiers.fr"

	// DefaultDataset is the dataset slug under the Explore v2.1 API.
	DefaultDataset = "dechets-menagers-et-assimiles-collecte"

	// DefaultLimit is applied when a query does not set one.
	DefaultLimit = 1000

	// allRecordsLimit is used when deriving the full city list.
	allRecordsLimit = 10000

	cacheStoreLabel = "opendata"
)

// Client talks to the records endpoint through the retrying fetcher and
// keeps decoded responses in the cache store.
type Client struct {
	baseURL string
	dataset string
	fetcher *fetch.Fetcher
	cache   cache.Store
	logger  *slog.Logger
}

// NewClient wires a Client. Empty baseURL or dataset fall back to the
// published defaults.
func NewClient(baseURL, dataset string, fetcher *fetch.Fetcher, store cache.Store, logger *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if dataset == "" {
		dataset = DefaultDataset
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		dataset: dataset,
		fetcher: fetcher,
		cache:   store,
		logger:  logger,
	}
}

// BaseURL returns the portal base URL the client targets.
func (c *Client) BaseURL() string { return c.baseURL }

// Query selects which records GetCollectionData requests. The zero
// value asks for the first DefaultLimit records of every city, served
// from cache when a valid entry exists.
type Query struct {
	City        string
	Limit       int
	Offset      int
	BypassCache bool
}

func (c *Client) recordsEndpoint() string {
	return fmt.Sprintf("%s/api/explore/v2.1/catalog/datasets/%s/records", c.baseURL, c.dataset)
}

func (q Query) params() map[string]string {
	limit := q.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	params := map[string]string{
		"limit":  strconv.Itoa(limit),
		"offset": strconv.Itoa(q.Offset),
	}
	if q.City != "" {
		params["where"] = fmt.Sprintf("lieu like %q", q.City)
	}
	return params
}

// GetCollectionData fetches raw collection records, consulting the
// cache first unless the query bypasses it. Network and server
// failures come back as *APIError; decode failures are returned as-is.
func (c *Client) GetCollectionData(ctx context.Context, q Query) ([]RawCollectionRecord, error) {
	endpoint := c.recordsEndpoint()
	params := q.params()
	key := cache.Key(endpoint, params)

	if !q.BypassCache {
		var cached []RawCollectionRecord
		hit, err := cache.GetJSON(ctx, c.cache, key, &cached)
		if err != nil {
			c.logger.Warn("cache read failed", "key", key, "error", err)
		}
		if hit {
			metrics.CacheHits.WithLabelValues(cacheStoreLabel).Inc()
			return cached, nil
		}
		metrics.CacheMisses.WithLabelValues(cacheStoreLabel).Inc()
	}

	resp, err := c.fetcher.Fetch(ctx, endpoint, fetch.Options{Query: params})
	if err != nil {
		return nil, wrapAPIError(err)
	}

	var decoded recordsResponse
	if err := json.Unmarshal(resp.Body, &decoded); err != nil {
		return nil, fmt.Errorf("decoding records response: %w", err)
	}

	if err := cache.SetJSON(ctx, c.cache, key, decoded.Results); err != nil {
		c.logger.Warn("cache write failed", "key", key, "error", err)
	}
	return decoded.Results, nil
}

// GetAllCities returns the sorted, deduplicated list of places present
// in the dataset. The underlying record fetch always goes to the
// network; only the derived city list is cached.
func (c *Client) GetAllCities(ctx context.Context, useCache bool) ([]string, error) {
	key := cache.Key(c.recordsEndpoint()+"/cities", nil)

	if useCache {
		var cached []string
		hit, err := cache.GetJSON(ctx, c.cache, key, &cached)
		if err != nil {
			c.logger.Warn("cache read failed", "key", key, "error", err)
		}
		if hit {
			metrics.CacheHits.WithLabelValues(cacheStoreLabel).Inc()
			return cached, nil
		}
		metrics.CacheMisses.WithLabelValues(cacheStoreLabel).Inc()
	}

	records, err := c.GetCollectionData(ctx, Query{Limit: allRecordsLimit, BypassCache: true})
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(records))
	cities := make([]string, 0, len(records))
	for _, rec := range records {
		place := strings.TrimSpace(rec.Place)
		if place == "" {
			continue
		}
		if _, ok := seen[place]; ok {
			continue
		}
		seen[place] = struct{}{}
		cities = append(cities, place)
	}
	sort.Strings(cities)

	if err := cache.SetJSON(ctx, c.cache, key, cities); err != nil {
		c.logger.Warn("cache write failed", "key", key, "error", err)
	}
	return cities, nil
}

// SearchCities returns up to limit cities whose name contains term,
// case-insensitively, in the sorted order of GetAllCities. A limit of
// zero or less means 10.
func (c *Client) SearchCities(ctx context.Context, term string, limit int) ([]string, error) {
	if limit <= 0 {
		limit = 10
	}
	cities, err := c.GetAllCities(ctx, true)
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(strings.TrimSpace(term))
	matches := make([]string, 0, limit)
	for _, city := range cities {
		if strings.Contains(strings.ToLower(city), needle) {
			matches = append(matches, city)
			if len(matches) == limit {
				break
			}
		}
	}
	return matches, nil
}

// CheckConnectivity issues a minimal uncached request and reports
// whether it succeeded. It never returns an error; the outcome is also
// exported on the API status gauge.
func (c *Client) CheckConnectivity(ctx context.Context) bool {
	_, err := c.GetCollectionData(ctx, Query{Limit: 1, BypassCache: true})
	up := err == nil
	value := 0.0
	if up {
		value = 1.0
	}
	metrics.OpenDataAPIStatus.WithLabelValues(c.baseURL).Set(value)
	if !up {
		c.logger.Warn("open-data API unreachable", "base_url", c.baseURL, "error", err)
	}
	return up
}

// TestAPI performs a small cache-bypassing fetch and reports the
// outcome with its wall-clock duration. It never returns an error.
func (c *Client) TestAPI(ctx context.Context) TestResult {
	start := time.Now()
	records, err := c.GetCollectionData(ctx, Query{Limit: 10, BypassCache: true})
	elapsed := time.Since(start).Milliseconds()

	if err != nil {
		return TestResult{Success: false, Error: err.Error(), ResponseTimeMs: elapsed}
	}
	return TestResult{Success: true, DataCount: len(records), ResponseTimeMs: elapsed}
}

// wrapAPIError folds fetch-layer failures into the APIError shape.
func wrapAPIError(err error) error {
	var httpErr *fetch.HTTPError
	if errors.As(err, &httpErr) {
		return &APIError{Message: httpErr.Message, Code: httpErr.StatusCode}
	}
	return &APIError{Message: err.Error()}
}
