package testutils

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/mortenhouring/guess-the-steeler/fetch"
)

// Logger returns a silent logger for tests.
func Logger() zerolog.Logger {
	return zerolog.Nop()
}

// Fetcher returns a fetch client with no retries and short timeouts so
// failure-path tests stay fast.
func Fetcher() *fetch.Client {
	return fetch.New(&fetch.Options{
		Timeout:   2 * time.Second,
		Retries:   0,
		BaseDelay: time.Millisecond,
	}, Logger())
}
