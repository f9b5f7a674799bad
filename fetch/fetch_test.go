package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func newFlakyServer(failures int64) (*httptest.Server, *atomic.Int64) {
	var calls atomic.Int64
	s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) <= failures {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`{"ok":true}`))
	}))
	return s, &calls
}

func TestGetSuccess(t *testing.T) {
	s, calls := newFlakyServer(0)
	defer s.Close()

	c := New(&Options{Timeout: time.Second, Retries: 2, BaseDelay: time.Millisecond}, zerolog.Nop())

	body, err := c.Get(context.Background(), s.URL)
	if err != nil {
		t.Fatal(err)
	}
	if string(body) != `{"ok":true}` {
		t.Errorf("unexpected body %s", body)
	}
	if calls.Load() != 1 {
		t.Errorf("expected one attempt, got %d", calls.Load())
	}
}

func TestGetRecoversWithinRetryBudget(t *testing.T) {
	s, calls := newFlakyServer(2)
	defer s.Close()

	c := New(&Options{Timeout: time.Second, Retries: 2, BaseDelay: time.Millisecond}, zerolog.Nop())

	if _, err := c.Get(context.Background(), s.URL); err != nil {
		t.Fatalf("expected the third attempt to succeed, got %v", err)
	}
	if calls.Load() != 3 {
		t.Errorf("expected 3 attempts, got %d", calls.Load())
	}
}

func TestGetExhaustsRetries(t *testing.T) {
	s, calls := newFlakyServer(100)
	defer s.Close()

	c := New(&Options{Timeout: time.Second, Retries: 2, BaseDelay: time.Millisecond}, zerolog.Nop())

	_, err := c.Get(context.Background(), s.URL)
	if err == nil {
		t.Fatal("expected an error once all attempts failed")
	}

	var netErr *NetworkError
	if !errors.As(err, &netErr) {
		t.Fatalf("expected a NetworkError, got %T", err)
	}
	if netErr.Attempts != 3 {
		t.Errorf("expected 3 attempts reported, got %d", netErr.Attempts)
	}
	if netErr.URL != s.URL {
		t.Errorf("expected URL %s, got %s", s.URL, netErr.URL)
	}
	if calls.Load() != 3 {
		t.Errorf("expected 3 attempts made, got %d", calls.Load())
	}
}

func TestGetZeroRetriesMeansSingleAttempt(t *testing.T) {
	s, calls := newFlakyServer(100)
	defer s.Close()

	c := New(&Options{Timeout: time.Second, Retries: 0, BaseDelay: time.Millisecond}, zerolog.Nop())

	if _, err := c.Get(context.Background(), s.URL); err == nil {
		t.Fatal("expected an error")
	}
	if calls.Load() != 1 {
		t.Errorf("expected a single attempt, got %d", calls.Load())
	}
}

func TestGetHonorsContextCancellation(t *testing.T) {
	s, _ := newFlakyServer(100)
	defer s.Close()

	c := New(&Options{Timeout: time.Second, Retries: 5, BaseDelay: 10 * time.Second}, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()

	start := time.Now()
	_, err := c.Get(ctx, s.URL)
	if err == nil {
		t.Fatal("expected an error")
	}
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected the cancellation to surface, got %v", err)
	}
	if elapsed := time.Since(start); elapsed > 5*time.Second {
		t.Errorf("expected cancellation to interrupt the backoff wait, took %v", elapsed)
	}
}

func TestWithDefaults(t *testing.T) {
	var nilOpts *Options
	o := nilOpts.withDefaults()
	if o.Timeout != 10*time.Second || o.Retries != 2 || o.BaseDelay != time.Second {
		t.Errorf("unexpected defaults %+v", o)
	}

	o = (&Options{Retries: -1}).withDefaults()
	if o.Retries != 2 {
		t.Errorf("expected a negative retry count to select the default, got %d", o.Retries)
	}

	o = (&Options{Timeout: time.Second, Retries: 0, BaseDelay: time.Millisecond}).withDefaults()
	if o.Timeout != time.Second || o.Retries != 0 || o.BaseDelay != time.Millisecond {
		t.Errorf("unexpected options %+v", o)
	}
}
