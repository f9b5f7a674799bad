// Package fetch provides a small HTTP GET client with a per-request timeout,
// bounded retry with linearly increasing backoff, and a circuit breaker. It
// is the single network primitive composed into every upstream call.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/sony/gobreaker"
)

// NetworkError is returned once every attempt against a URL has failed. It
// wraps only the final attempt's error; intermediate failures are logged.
type NetworkError struct {
	URL      string
	Attempts int
	Err      error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("request to %s failed after %d attempts: %v", e.URL, e.Attempts, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

type Options struct {
	// Timeout is the per-attempt request timeout. A request exceeding it is
	// aborted and counted as a failed attempt. Defaults to 10s.
	Timeout time.Duration
	// Retries is the number of retries after the first attempt. Zero is
	// honored; negative selects the default of 2.
	Retries int
	// BaseDelay is multiplied by the attempt number to get the wait before
	// the next attempt. Defaults to 1s.
	BaseDelay time.Duration
}

func (o *Options) withDefaults() Options {
	out := Options{Timeout: 10 * time.Second, Retries: 2, BaseDelay: time.Second}
	if o == nil {
		return out
	}
	if o.Timeout > 0 {
		out.Timeout = o.Timeout
	}
	if o.Retries >= 0 {
		out.Retries = o.Retries
	}
	if o.BaseDelay > 0 {
		out.BaseDelay = o.BaseDelay
	}
	return out
}

type Client struct {
	httpClient *http.Client
	opts       Options
	breaker    *gobreaker.CircuitBreaker
	log        zerolog.Logger
}

func New(opts *Options, log zerolog.Logger) *Client {
	o := opts.withDefaults()

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "upstream",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn().Str("breaker", name).
				Str("from", from.String()).Str("to", to.String()).
				Msg("circuit breaker state change")
		},
	})

	return &Client{
		httpClient: &http.Client{Timeout: o.Timeout},
		opts:       o,
		breaker:    breaker,
		log:        log,
	}
}

// Get performs a GET against url, retrying transient failures. The response
// body is read fully and returned. A non-2xx status is a failed attempt.
func (c *Client) Get(ctx context.Context, url string) ([]byte, error) {
	var lastErr error

	for attempt := 0; attempt <= c.opts.Retries; attempt++ {
		if attempt > 0 {
			delay := c.opts.BaseDelay * time.Duration(attempt)
			select {
			case <-ctx.Done():
				return nil, &NetworkError{URL: url, Attempts: attempt, Err: ctx.Err()}
			case <-time.After(delay):
			}
		}

		body, err := c.attempt(ctx, url)
		if err == nil {
			return body, nil
		}
		lastErr = err

		c.log.Warn().Str("url", url).Int("attempt", attempt+1).
			Int("max", c.opts.Retries+1).Err(err).Msg("fetch attempt failed")
	}

	return nil, &NetworkError{URL: url, Attempts: c.opts.Retries + 1, Err: lastErr}
}

func (c *Client) attempt(ctx context.Context, url string) ([]byte, error) {
	result, err := c.breaker.Execute(func() (any, error) {
		reqCtx, cancel := context.WithTimeout(ctx, c.opts.Timeout)
		defer cancel()

		req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, url, nil)
		if err != nil {
			return nil, fmt.Errorf("error creating http request: %w", err)
		}
		req.Header.Set("Accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("error sending http request: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
		}

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("error reading response body: %w", err)
		}
		return body, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]byte), nil
}
