// Package sleeper is a read-only client for the Sleeper API: the full NFL
// player directory and the weekly/season statistics endpoints.
package sleeper

import (
	"context"
	"fmt"

	json "github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/mortenhouring/guess-the-steeler/fetch"
	"github.com/mortenhouring/guess-the-steeler/model"
)

const SleeperURL = "https://api.sleeper.app"

const (
	imageBaseURL = "https://sleepercdn.com/content/nfl/players/thumb"
	// FallbackImageURL is served when a player has no directory ID.
	FallbackImageURL = "https://sleepercdn.com/images/v2/icons/player_default.webp"
)

type Client interface {
	// LoadPlayers fetches the entire NFL player directory keyed by Sleeper
	// player ID. The directory is large; callers are expected to cache it.
	LoadPlayers(ctx context.Context) (map[string]Player, error)
	// WeekStats returns the sparse per-player stat lines for one week.
	WeekStats(ctx context.Context, season, week int) (map[string]model.StatLine, error)
	// SeasonStats returns cumulative per-player stat lines for a season.
	SeasonStats(ctx context.Context, season int) (map[string]model.StatLine, error)
}

type client struct {
	url     string
	fetcher *fetch.Client
	log     zerolog.Logger
}

func New(fetcher *fetch.Client, log zerolog.Logger) (Client, error) {
	return &client{
		url:     SleeperURL,
		fetcher: fetcher,
		log:     log,
	}, nil
}

// NewForTest returns a client pointed at a fake server.
func NewForTest(url string, fetcher *fetch.Client, log zerolog.Logger) Client {
	return &client{url: url, fetcher: fetcher, log: log}
}

func (c *client) LoadPlayers(ctx context.Context) (map[string]Player, error) {
	body, err := c.fetcher.Get(ctx, fmt.Sprintf("%s/v1/players/nfl", c.url))
	if err != nil {
		return nil, fmt.Errorf("error fetching player directory: %w", err)
	}

	var parsed map[string]rawPlayer
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("error parsing response from sleeper: %w", err)
	}

	result := make(map[string]Player, len(parsed))
	for id, p := range parsed {
		if p.FirstName == "Player" && p.LastName == "Invalid" {
			continue
		}
		result[id] = p.toPlayer(id, c.log)
	}

	return result, nil
}

func (c *client) WeekStats(ctx context.Context, season, week int) (map[string]model.StatLine, error) {
	return c.loadStats(ctx, fmt.Sprintf("%s/v1/stats/nfl/%d/%d", c.url, season, week))
}

func (c *client) SeasonStats(ctx context.Context, season int) (map[string]model.StatLine, error) {
	return c.loadStats(ctx, fmt.Sprintf("%s/v1/stats/nfl/%d", c.url, season))
}

func (c *client) loadStats(ctx context.Context, url string) (map[string]model.StatLine, error) {
	body, err := c.fetcher.Get(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("error fetching stats: %w", err)
	}

	var parsed map[string]model.StatLine
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("error parsing stats from sleeper: %w", err)
	}
	return parsed, nil
}

// PlayerImageURL returns the CDN thumbnail for a directory ID, or the
// fallback silhouette when the ID is unknown.
func PlayerImageURL(id string) string {
	if id == "" {
		return FallbackImageURL
	}
	return fmt.Sprintf("%s/%s.jpg", imageBaseURL, id)
}
