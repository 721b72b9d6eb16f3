// Package fetch issues outbound HTTP requests with a bounded retry
// budget. Client errors (4xx) are terminal; network failures and server
// errors are retried with a linearly growing delay between attempts.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/zlahmar/EcoTri-sub000/internal/metrics"
)

const (
	// DefaultAttempts is the total attempt budget, first try included.
	DefaultAttempts = 3

	// DefaultBaseDelay is multiplied by the number of attempts already
	// made to obtain the delay before the next one.
	DefaultBaseDelay = 1000 * time.Millisecond

	// DefaultUserAgent identifies the application on outbound requests.
	DefaultUserAgent = "EcoTri/1.0 (+https://github.com/zlahmar/EcoTri-sub000)"
)

// HTTPError is returned for responses outside the 2xx range. A 4xx
// status is terminal and skips the retry loop entirely.
type HTTPError struct {
	StatusCode int
	Message    string
	URL        string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("request to %s failed with status %d: %s", e.URL, e.StatusCode, e.Message)
}

// IsClientError reports whether the status lies in [400, 500).
func (e *HTTPError) IsClientError() bool {
	return e.StatusCode >= http.StatusBadRequest && e.StatusCode < http.StatusInternalServerError
}

// Options carries per-request query parameters and extra headers.
// Header values set here override the fetcher defaults on name clash.
type Options struct {
	Query   map[string]string
	Headers map[string]string
}

// Response is the successful outcome of a fetch: the first 2xx answer
// received within the attempt budget.
type Response struct {
	StatusCode int
	Body       []byte
	Header     http.Header
}

// Fetcher wraps a resty client with the retry policy. The underlying
// *http.Client (and its timeout) bounds each individual attempt.
type Fetcher struct {
	client    *resty.Client
	logger    *slog.Logger
	attempts  int
	baseDelay time.Duration
	userAgent string
}

// New builds a Fetcher on top of the given HTTP client with the default
// attempt budget and backoff base.
func New(httpClient *http.Client, logger *slog.Logger) *Fetcher {
	return NewWithPolicy(httpClient, logger, DefaultAttempts, DefaultBaseDelay)
}

// NewWithPolicy builds a Fetcher with an explicit attempt budget and
// backoff base. Retrying is handled here, not by resty, so the policy
// stays exactly as documented.
func NewWithPolicy(httpClient *http.Client, logger *slog.Logger, attempts int, baseDelay time.Duration) *Fetcher {
	if attempts < 1 {
		attempts = 1
	}
	client := resty.NewWithClient(httpClient)
	client.SetRetryCount(0)
	return &Fetcher{
		client:    client,
		logger:    logger,
		attempts:  attempts,
		baseDelay: baseDelay,
		userAgent: DefaultUserAgent,
	}
}

// Fetch performs a GET against url and returns the first successful
// response. Attempt n (1-based) is followed, on a retryable failure, by
// a sleep of baseDelay*n before attempt n+1. Exhausting the budget
// returns the last error encountered.
func (f *Fetcher) Fetch(ctx context.Context, url string, opts Options) (*Response, error) {
	var lastErr error

	for attempt := 1; attempt <= f.attempts; attempt++ {
		resp, err := f.do(ctx, url, opts)
		if err == nil {
			return resp, nil
		}

		var httpErr *HTTPError
		if errors.As(err, &httpErr) && httpErr.IsClientError() {
			return nil, err
		}

		lastErr = err
		if attempt == f.attempts {
			break
		}

		reason := "network"
		if httpErr != nil {
			reason = "server_error"
		}
		metrics.FetchRetries.WithLabelValues(reason).Inc()

		delay := f.baseDelay * time.Duration(attempt)
		f.logger.Warn("fetch attempt failed, retrying",
			"url", url, "attempt", attempt, "delay", delay, "error", err)

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delay):
		}
	}

	return nil, lastErr
}

func (f *Fetcher) do(ctx context.Context, url string, opts Options) (*Response, error) {
	req := f.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetHeader("User-Agent", f.userAgent)

	// Caller headers win over the defaults above.
	for name, value := range opts.Headers {
		req.SetHeader(name, value)
	}
	if len(opts.Query) > 0 {
		req.SetQueryParams(opts.Query)
	}

	resp, err := req.Get(url)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", url, err)
	}

	if !resp.IsSuccess() {
		return nil, &HTTPError{
			StatusCode: resp.StatusCode(),
			Message:    resp.Status(),
			URL:        url,
		}
	}

	return &Response{
		StatusCode: resp.StatusCode(),
		Body:       resp.Body(),
		Header:     resp.Header(),
	}, nil
}
