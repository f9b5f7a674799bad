package controller

import (
	"context"
	"errors"
	"fmt"

	"github.com/mortenhouring/guess-the-steeler/cache"
	"github.com/mortenhouring/guess-the-steeler/fantasy"
	"github.com/mortenhouring/guess-the-steeler/match"
	"github.com/mortenhouring/guess-the-steeler/model"
	"github.com/mortenhouring/guess-the-steeler/quiz"
	"github.com/mortenhouring/guess-the-steeler/roster"
	"github.com/mortenhouring/guess-the-steeler/sleeper"
)

// Stats cache categories. Short windows: live stats change during games.
const (
	categoryWeekStats   = "stats-week"
	categorySeasonStats = "stats-season"
)

func (c *controller) Roster(ctx context.Context, mode string) ([]model.Player, error) {
	switch mode {
	case quiz.ModeLegacy:
		return c.roster.Legacy(), nil

	case quiz.ModeCurrent:
		return c.currentWithFallback(ctx)

	case quiz.ModeNewPlayers:
		unlock := c.lockCategory(roster.CategoryNewPlayers)
		players, err := c.roster.NewPlayers(ctx)
		unlock()
		if err != nil {
			if errors.Is(err, roster.ErrUnavailable) {
				c.log.Warn().Err(err).Msg("new players unavailable, using bundled dataset")
				return c.roster.Static().NewPlayerFallback(), nil
			}
			return nil, err
		}
		return players, nil

	case quiz.ModeFantasy:
		players, err := c.currentWithFallback(ctx)
		if err != nil {
			return nil, err
		}
		return c.enrich(ctx, players), nil

	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownMode, mode)
	}
}

func (c *controller) currentWithFallback(ctx context.Context) ([]model.Player, error) {
	unlock := c.lockCategory(roster.CategoryRoster)
	players, err := c.roster.Current(ctx)
	unlock()
	if err != nil {
		if errors.Is(err, roster.ErrUnavailable) {
			c.log.Warn().Err(err).Msg("roster unavailable, using bundled dataset")
			return c.roster.Static().Fallback(), nil
		}
		return nil, err
	}
	return players, nil
}

func (c *controller) RefreshRoster(ctx context.Context) error {
	unlock := c.lockCategory(roster.CategoryRoster)
	defer unlock()

	c.cache.Invalidate(categoryWeekStats)
	c.cache.Invalidate(categorySeasonStats)
	_, err := c.roster.Refresh(ctx)
	return err
}

// enrich attaches fantasy records to a roster. Any player that cannot be
// matched or scored is degraded to "no fantasy data" without aborting the
// batch. Players are processed one at a time with a fixed delay between
// lookups to stay polite to the upstream service.
func (c *controller) enrich(ctx context.Context, players []model.Player) []model.Player {
	directory, err := c.sleeper.LoadPlayers(ctx)
	if err != nil {
		c.log.Warn().Err(err).Msg("directory unavailable, skipping fantasy enrichment")
		return players
	}

	candidates := make([]match.Candidate, 0, len(directory))
	for id, p := range directory {
		jersey := 0
		if p.Jersey != nil {
			jersey = *p.Jersey
		}
		candidates = append(candidates, match.Candidate{
			ID:     id,
			Name:   p.FullName(),
			Jersey: jersey,
		})
	}

	now := c.clock.Now()
	season := sleeper.CurrentSeason(now)
	week := sleeper.CurrentWeek(now)

	weekStats := c.loadStats(ctx, categoryWeekStats, func(ctx context.Context) (map[string]model.StatLine, error) {
		return c.sleeper.WeekStats(ctx, season, week)
	})
	seasonStats := c.loadStats(ctx, categorySeasonStats, func(ctx context.Context) (map[string]model.StatLine, error) {
		return c.sleeper.SeasonStats(ctx, season)
	})

	out := make([]model.Player, len(players))
	for i, p := range players {
		if i > 0 && c.opts.EnrichDelay > 0 {
			c.clock.Sleep(c.opts.EnrichDelay)
		}

		out[i] = p
		candidate, ok := c.matcher.Match(&p, candidates)
		if !ok {
			c.log.Debug().Str("player", p.Name).Msg("no directory match, no fantasy data")
			continue
		}

		week := weekStats[candidate.ID]
		season := seasonStats[candidate.ID]
		out[i].ExternalID = candidate.ID
		out[i].Fantasy = &model.FantasyRecord{
			ExternalID:   candidate.ID,
			WeekStats:    week,
			SeasonStats:  season,
			WeekPoints:   fantasy.Score(week),
			SeasonPoints: fantasy.Score(season),
		}
	}
	return out
}

// loadStats reads a stats category through the cache, fetching on a miss.
// Failures degrade to an empty stats map.
func (c *controller) loadStats(ctx context.Context, category string,
	load func(context.Context) (map[string]model.StatLine, error)) map[string]model.StatLine {

	unlock := c.lockCategory(category)
	defer unlock()

	if stats, ok := cache.Get[map[string]model.StatLine](c.cache, category); ok {
		return stats
	}

	stats, err := load(ctx)
	if err != nil {
		if stats, ok := cache.GetStale[map[string]model.StatLine](c.cache, category); ok {
			c.log.Warn().Str("category", category).Err(err).Msg("stats fetch failed, serving expired cache entry")
			return stats
		}
		c.log.Warn().Str("category", category).Err(err).Msg("stats unavailable")
		return nil
	}

	cache.Put(c.cache, category, stats)
	return stats
}
