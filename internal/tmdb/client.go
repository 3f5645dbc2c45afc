// Package tmdb implements the read-only client for the external movie
// catalog. The client enforces transport-level protections only: a token
// bucket matching the provider's published rate limit and a circuit breaker
// that sheds calls while the provider is down. It never retries; callers
// decide what a failed fetch means.
package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/failsafe-go/failsafe-go"
	"github.com/failsafe-go/failsafe-go/circuitbreaker"
	"golang.org/x/time/rate"

	"github.com/ctonneslan/letterboxd-clone/internal/metrics"
)

var (
	// ErrNotFound means the provider answered 404 for the requested movie.
	ErrNotFound = errors.New("movie not found at provider")
	// ErrUnavailable means the provider could not be reached or errored.
	ErrUnavailable = errors.New("provider unavailable")
)

const requestTimeout = 10 * time.Second

type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	breaker    circuitbreaker.CircuitBreaker[*http.Response]
}

func NewClient(apiKey, baseURL string) *Client {
	// Provider allows ~50 req/s per key; stay safely under it.
	limiter := rate.NewLimiter(rate.Limit(40), 40)

	breaker := circuitbreaker.Builder[*http.Response]().
		WithFailureRateThreshold(60, 5, 10*time.Second).
		WithDelay(30 * time.Second).
		WithSuccessThreshold(1).
		OnStateChanged(func(e circuitbreaker.StateChangedEvent) {
			slog.Warn("Circuit breaker state changed",
				"component", "tmdb",
				"from", e.OldState.String(),
				"to", e.NewState.String(),
			)
		}).
		Build()

	return &Client{
		apiKey:     apiKey,
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: requestTimeout},
		limiter:    limiter,
		breaker:    breaker,
	}
}

// GetMovie fetches the full detail record for a provider movie ID.
func (c *Client) GetMovie(ctx context.Context, tmdbID int) (*MovieDetail, error) {
	params := url.Values{}
	params.Set("append_to_response", "credits,videos,images")

	var wire movieDetailWire
	if err := c.get(ctx, fmt.Sprintf("/movie/%d", tmdbID), params, &wire); err != nil {
		return nil, err
	}
	return wire.toDetail(), nil
}

// SearchMovies queries the provider's search endpoint.
func (c *Client) SearchMovies(ctx context.Context, query string, page int, includeAdult bool) (*Page, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("include_adult", fmt.Sprintf("%t", includeAdult))

	return c.getPage(ctx, "/search/movie", params, page)
}

// Popular returns the provider's popular listing.
func (c *Client) Popular(ctx context.Context, page int) (*Page, error) {
	return c.getPage(ctx, "/movie/popular", url.Values{}, page)
}

// Trending returns the provider's trending listing for a time window
// ("day" or "week"); window validation happens in the service layer.
func (c *Client) Trending(ctx context.Context, window string, page int) (*Page, error) {
	return c.getPage(ctx, "/trending/movie/"+window, url.Values{}, page)
}

// TopRated returns the provider's top-rated listing.
func (c *Client) TopRated(ctx context.Context, page int) (*Page, error) {
	return c.getPage(ctx, "/movie/top_rated", url.Values{}, page)
}

// NowPlaying returns the provider's now-playing listing.
func (c *Client) NowPlaying(ctx context.Context, page int) (*Page, error) {
	return c.getPage(ctx, "/movie/now_playing", url.Values{}, page)
}

// Upcoming returns the provider's upcoming listing.
func (c *Client) Upcoming(ctx context.Context, page int) (*Page, error) {
	return c.getPage(ctx, "/movie/upcoming", url.Values{}, page)
}

func (c *Client) getPage(ctx context.Context, endpoint string, params url.Values, page int) (*Page, error) {
	if page < 1 {
		page = 1
	}
	params.Set("page", fmt.Sprintf("%d", page))

	var wire pageResponse
	if err := c.get(ctx, endpoint, params, &wire); err != nil {
		return nil, err
	}
	return wire.toPage(), nil
}

func (c *Client) get(ctx context.Context, endpoint string, params url.Values, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter wait: %w", err)
	}

	params.Set("api_key", c.apiKey)
	params.Set("language", "en-US")
	reqURL := c.baseURL + endpoint + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := failsafe.Get(func() (*http.Response, error) {
		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, err
		}
		// Server-side failures count against the breaker; 4xx do not.
		if resp.StatusCode >= 500 {
			_ = resp.Body.Close()
			return nil, fmt.Errorf("provider returned %d", resp.StatusCode)
		}
		return resp, nil
	}, c.breaker)
	metrics.TMDBRequestDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())

	if errors.Is(err, circuitbreaker.ErrOpen) {
		metrics.TMDBRequestsTotal.WithLabelValues(endpoint, "shed").Inc()
		return fmt.Errorf("%w: circuit open", ErrUnavailable)
	}
	if err != nil {
		metrics.TMDBRequestsTotal.WithLabelValues(endpoint, "error").Inc()
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotFound {
		metrics.TMDBRequestsTotal.WithLabelValues(endpoint, "not_found").Inc()
		return ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		metrics.TMDBRequestsTotal.WithLabelValues(endpoint, "error").Inc()
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%w: status %d: %s", ErrUnavailable, resp.StatusCode, body)
	}

	metrics.TMDBRequestsTotal.WithLabelValues(endpoint, "ok").Inc()
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode provider response: %w", err)
	}
	return nil
}
