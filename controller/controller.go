// Package controller encapsulates the game's business logic without
// worrying about any web layers: roster acquisition with fallback, fantasy
// enrichment, session lifecycle, and the leaderboard.
package controller

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/itbasis/go-clock"
	"github.com/rs/zerolog"

	"github.com/mortenhouring/guess-the-steeler/cache"
	"github.com/mortenhouring/guess-the-steeler/leaderboard"
	"github.com/mortenhouring/guess-the-steeler/match"
	"github.com/mortenhouring/guess-the-steeler/model"
	"github.com/mortenhouring/guess-the-steeler/quiz"
	"github.com/mortenhouring/guess-the-steeler/roster"
	"github.com/mortenhouring/guess-the-steeler/sleeper"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrUnknownMode     = errors.New("unknown game mode")
)

// SessionInfo is what callers get back when a session starts.
type SessionInfo struct {
	ID      string `json:"id"`
	Mode    string `json:"mode"`
	Players int    `json:"players"`
}

type C interface {
	// Roster returns the player list for a game mode, falling back to the
	// bundled dataset when no network or cache data is available.
	Roster(ctx context.Context, mode string) ([]model.Player, error)

	StartSession(ctx context.Context, mode string) (*SessionInfo, error)
	// NextQuestion returns the next question for a session, or (nil, nil)
	// when the session's roster is exhausted.
	NextQuestion(sessionID string) (*model.Question, error)
	SubmitAnswer(sessionID, answer string) (*quiz.Feedback, error)
	// EndSession finishes a session, records its score on the leaderboard,
	// and returns the recorded entry.
	EndSession(sessionID string) (*model.ScoreEntry, error)

	Leaderboard() ([]model.ScoreEntry, error)

	// RefreshRoster drops the cached rosters and reloads from the directory.
	RefreshRoster(ctx context.Context) error
	RunPeriodicRosterRefresh(frequency time.Duration, shutdown chan bool, wg *sync.WaitGroup)
}

type Options struct {
	EnrichDelay time.Duration
}

type controller struct {
	clock   clock.Clock
	roster  *roster.Service
	sleeper sleeper.Client
	cache   *cache.Store
	matcher *match.Matcher
	board   *leaderboard.Store
	log     zerolog.Logger
	opts    Options

	mu       sync.Mutex
	sessions map[string]*quiz.Session

	// loads serializes cache loads per category so at most one fetch per
	// category is in flight at a time.
	loadMu sync.Mutex
	loads  map[string]*sync.Mutex
}

func New(clk clock.Clock, rosterSvc *roster.Service, client sleeper.Client, store *cache.Store,
	matcher *match.Matcher, board *leaderboard.Store, opts Options, log zerolog.Logger) (C, error) {
	return &controller{
		clock:    clk,
		roster:   rosterSvc,
		sleeper:  client,
		cache:    store,
		matcher:  matcher,
		board:    board,
		log:      log,
		opts:     opts,
		sessions: make(map[string]*quiz.Session),
		loads:    make(map[string]*sync.Mutex),
	}, nil
}

func (c *controller) Leaderboard() ([]model.ScoreEntry, error) {
	return c.board.Top()
}

// lockCategory takes the per-category load lock, creating it on first use.
// The returned func releases it.
func (c *controller) lockCategory(category string) func() {
	c.loadMu.Lock()
	mu, ok := c.loads[category]
	if !ok {
		mu = &sync.Mutex{}
		c.loads[category] = mu
	}
	c.loadMu.Unlock()

	mu.Lock()
	return mu.Unlock
}

func (c *controller) RunPeriodicRosterRefresh(frequency time.Duration, shutdown chan bool, wg *sync.WaitGroup) {
	ticker := time.NewTicker(frequency)
	defer wg.Done()

	for {
		select {
		case <-shutdown:
			return
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
			if err := c.RefreshRoster(ctx); err != nil {
				c.log.Warn().Err(err).Msg("periodic roster refresh failed")
			}
			cancel()
		}
	}
}
