// Package testutils holds shared test fixtures: a fake Sleeper server and
// small helpers for wiring test dependencies.
package testutils

import (
	"embed"
	"fmt"
	"log"
	"net/http"
	"net/http/httptest"
	"sync/atomic"

	"github.com/go-chi/chi/v5"
)

//go:embed sleeperdata
var sleeperdata embed.FS

// FakeSleeperServer serves canned Sleeper API responses and counts directory
// requests so tests can assert that the cache prevented a second fetch.
type FakeSleeperServer struct {
	s            *httptest.Server
	playerCalls  atomic.Int64
	failRequests atomic.Bool
}

func NewFakeSleeperServer() *FakeSleeperServer {
	f := &FakeSleeperServer{}

	r := chi.NewRouter()
	r.Route("/v1", func(r chi.Router) {
		r.Get("/players/nfl", f.nflPlayersHandler)
		r.Get("/stats/nfl/{season}/{week}", f.weekStatsHandler)
		r.Get("/stats/nfl/{season}", f.seasonStatsHandler)
	})

	f.s = httptest.NewServer(r)
	return f
}

func (f *FakeSleeperServer) Close() {
	f.s.Close()
}

func (f *FakeSleeperServer) URL() string {
	return f.s.URL
}

// PlayerCalls reports how many times the player directory was requested.
func (f *FakeSleeperServer) PlayerCalls() int {
	return int(f.playerCalls.Load())
}

// SetFailing makes every subsequent request return a 500.
func (f *FakeSleeperServer) SetFailing(fail bool) {
	f.failRequests.Store(fail)
}

func (f *FakeSleeperServer) nflPlayersHandler(w http.ResponseWriter, r *http.Request) {
	f.playerCalls.Add(1)
	if f.failRequests.Load() {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	serveFile(w, "players.json")
}

func (f *FakeSleeperServer) weekStatsHandler(w http.ResponseWriter, r *http.Request) {
	if f.failRequests.Load() {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	serveFile(w, "stats_week.json")
}

func (f *FakeSleeperServer) seasonStatsHandler(w http.ResponseWriter, r *http.Request) {
	if f.failRequests.Load() {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	serveFile(w, "stats_season.json")
}

func serveFile(w http.ResponseWriter, name string) {
	b, err := sleeperdata.ReadFile(fmt.Sprintf("sleeperdata/%s", name))
	if err != nil {
		log.Printf("error reading sleeperdata/%s: %v", name, err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write(b)
}
