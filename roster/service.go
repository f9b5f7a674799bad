// Package roster acquires the team roster: cache first, then the Sleeper
// player directory, then (for callers) the bundled static dataset. It owns
// the filter/transform pipeline that turns directory entries into quiz
// players.
package roster

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/rs/zerolog"

	"github.com/mortenhouring/guess-the-steeler/cache"
	"github.com/mortenhouring/guess-the-steeler/model"
	"github.com/mortenhouring/guess-the-steeler/sleeper"
)

// ErrUnavailable is returned when no path - network, fresh cache, or stale
// persisted cache - can produce a roster. Callers fall back to the bundled
// static dataset or surface a retry affordance.
var ErrUnavailable = errors.New("roster unavailable")

// Cache categories. Each has its own expiry window.
const (
	CategoryRoster     = "roster"
	CategoryNewPlayers = "new-players"
)

type Service struct {
	sleeper sleeper.Client
	cache   *cache.Store
	static  *Static
	team    string
	log     zerolog.Logger
}

func New(client sleeper.Client, store *cache.Store, static *Static, team string, log zerolog.Logger) *Service {
	return &Service{
		sleeper: client,
		cache:   store,
		static:  static,
		team:    team,
		log:     log,
	}
}

// Static exposes the bundled dataset for legacy mode and fallbacks.
func (s *Service) Static() *Static {
	return s.static
}

// Current returns the active roster for the configured team, sorted by
// jersey number.
func (s *Service) Current(ctx context.Context) ([]model.Player, error) {
	return s.load(ctx, CategoryRoster, func(p *sleeper.Player) bool { return true })
}

// NewPlayers returns the subset of the current roster that is new this
// season: rookies (zero or unknown years of experience) and players signed
// since the prior-season reference roster.
func (s *Service) NewPlayers(ctx context.Context) ([]model.Player, error) {
	players, err := s.load(ctx, CategoryNewPlayers, func(p *sleeper.Player) bool {
		return isRookie(p) || !s.static.InPriorSeason(p.FullName())
	})
	if err != nil {
		return nil, err
	}

	for i := range players {
		if players[i].YearsExp == 0 {
			players[i].Classification = model.ClassificationRookie
		} else {
			players[i].Classification = model.ClassificationNewSigning
		}
	}
	return players, nil
}

// Legacy returns the legendary-players dataset. It never consults the
// network or the cache.
func (s *Service) Legacy() []model.Player {
	return s.static.Legacy()
}

// Refresh drops the cached rosters and reloads the current one from the
// directory.
func (s *Service) Refresh(ctx context.Context) ([]model.Player, error) {
	s.cache.Invalidate(CategoryRoster)
	s.cache.Invalidate(CategoryNewPlayers)
	return s.Current(ctx)
}

func (s *Service) load(ctx context.Context, category string, keep func(*sleeper.Player) bool) ([]model.Player, error) {
	if players, ok := cache.Get[[]model.Player](s.cache, category); ok && len(players) > 0 {
		s.log.Debug().Str("category", category).Int("players", len(players)).Msg("roster served from cache")
		return players, nil
	}

	directory, err := s.sleeper.LoadPlayers(ctx)
	if err != nil {
		// The persisted tier may still hold an expired entry; serving it
		// beats failing the load outright. Version-mismatched entries are
		// never served.
		if players, ok := cache.GetStale[[]model.Player](s.cache, category); ok && len(players) > 0 {
			s.log.Warn().Str("category", category).Err(err).
				Msg("directory fetch failed, serving expired cache entry")
			return players, nil
		}
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	players := s.transform(directory, keep)
	if len(players) == 0 {
		return nil, fmt.Errorf("%w: no usable players in directory", ErrUnavailable)
	}

	cache.Put(s.cache, category, players)
	return players, nil
}

// transform filters the full directory down to usable quiz subjects for the
// configured team and maps them into the game shape.
func (s *Service) transform(directory map[string]sleeper.Player, keep func(*sleeper.Player) bool) []model.Player {
	var players []model.Player
	for id, p := range directory {
		if p.Team != s.team || !p.Active {
			continue
		}
		// Both a complete name and a jersey number are required: each is an
		// independent question key.
		if !p.HasCompleteName() || p.Jersey == nil {
			continue
		}
		if !keep(&p) {
			continue
		}

		yearsExp := 0
		if p.YearsExp != nil {
			yearsExp = *p.YearsExp
		}
		position := p.Position
		if position == "" {
			position = model.PositionUnknown
		}

		players = append(players, model.Player{
			Name:       p.FullName(),
			Number:     *p.Jersey,
			Position:   position,
			Trivia:     synthesizeTrivia(&p),
			College:    p.College,
			YearsExp:   yearsExp,
			Height:     p.Height,
			Weight:     p.Weight,
			ImageURL:   sleeper.PlayerImageURL(id),
			ExternalID: id,
		})
	}

	// Deterministic ordering for question generation.
	sort.Slice(players, func(i, j int) bool { return players[i].Number < players[j].Number })

	return dedupe(players, s.log)
}

// dedupe enforces the roster invariant: names and numbers are unique. A
// duplicate would make some prompts permanently unanswerable since a
// question key, once used, is never reissued.
func dedupe(players []model.Player, log zerolog.Logger) []model.Player {
	seenName := make(map[string]bool, len(players))
	seenNumber := make(map[int]bool, len(players))

	out := players[:0]
	for _, p := range players {
		if seenName[p.Name] || seenNumber[p.Number] {
			log.Warn().Str("player", p.Name).Int("number", p.Number).
				Msg("dropping duplicate roster entry")
			continue
		}
		seenName[p.Name] = true
		seenNumber[p.Number] = true
		out = append(out, p)
	}
	return out
}

func isRookie(p *sleeper.Player) bool {
	return p.YearsExp == nil || *p.YearsExp == 0
}
