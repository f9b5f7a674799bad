package main

import (
	"errors"
	"log"
	"os"
	"os/signal"
	"sync"
	"time"

	"github.com/itbasis/go-clock"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/mortenhouring/guess-the-steeler/cache"
	"github.com/mortenhouring/guess-the-steeler/config"
	"github.com/mortenhouring/guess-the-steeler/controller"
	"github.com/mortenhouring/guess-the-steeler/fetch"
	"github.com/mortenhouring/guess-the-steeler/leaderboard"
	"github.com/mortenhouring/guess-the-steeler/match"
	"github.com/mortenhouring/guess-the-steeler/roster"
	"github.com/mortenhouring/guess-the-steeler/sleeper"
	"github.com/mortenhouring/guess-the-steeler/web"
)

func main() {
	err := godotenv.Load()
	if err != nil && !os.IsNotExist(err) {
		log.Fatalf("Error loading .env file: %v", err)
	}

	conf, err := config.Load(os.Getenv("GTS_CONFIG"))
	if err != nil {
		log.Fatalf("error loading config: %v", err)
	}

	logger := newLogger(conf.LogLevel)
	clk := clock.New()

	kv, err := cache.NewFileKV(conf.Cache.Dir)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot open cache storage")
	}

	store := cache.New(kv, clk, cache.Options{
		MemorySize: conf.Cache.MemorySizeMB * 1024 * 1024,
		Default:    cache.TTL{Memory: conf.Cache.StatsTTL, Persisted: conf.Cache.StatsTTL},
		Categories: map[string]cache.TTL{
			roster.CategoryRoster:     {Memory: conf.Cache.RosterTTL, Persisted: conf.Cache.PersistedTTL},
			roster.CategoryNewPlayers: {Memory: conf.Cache.RosterTTL, Persisted: conf.Cache.PersistedTTL},
		},
	}, logger)

	fetcher := fetch.New(&fetch.Options{
		Timeout:   conf.Fetch.Timeout,
		Retries:   conf.Fetch.Retries,
		BaseDelay: conf.Fetch.BaseDelay,
	}, logger)

	sleeperClient, err := sleeper.New(fetcher, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("error creating sleeper client")
	}
	if conf.SleeperURL != "" {
		sleeperClient = sleeper.NewForTest(conf.SleeperURL, fetcher, logger)
	}

	static, err := roster.LoadStatic()
	if err != nil {
		logger.Fatal().Err(err).Msg("error loading bundled datasets")
	}

	rosterSvc := roster.New(sleeperClient, store, static, conf.Team, logger)
	matcher := match.New(match.Config{
		KnownIDs:  static.KnownIDs(),
		Threshold: conf.Match.Threshold,
	})
	board := leaderboard.New(kv, logger)

	ctrl, err := controller.New(clk, rosterSvc, sleeperClient, store, matcher, board,
		controller.Options{EnrichDelay: conf.Enrich.Delay}, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("error creating a new controller")
	}

	server, err := web.NewServer(conf.Port, ctrl, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("error creating new web server")
	}

	shutdown := make(chan bool)
	wg := &sync.WaitGroup{}

	// Setup a handler to catch ctrl-c signals and properly shutdown everything.
	intChannel := make(chan os.Signal, 2)
	signal.Notify(intChannel, os.Interrupt)
	go func() {
		<-intChannel
		close(shutdown)

		if err := waitTimeout(wg, 10*time.Second); err != nil {
			logger.Error().Msg("timed out waiting for proper shutdown")
			os.Exit(255)
		}
	}()

	// Refresh the cached roster from sleeper every 24-hours so the first
	// player of the day is not the one who pays for the fetch.
	wg.Add(1)
	go ctrl.RunPeriodicRosterRefresh(24*time.Hour, shutdown, wg)

	// Start the web server
	wg.Add(1)
	go server.ListenAndServe(shutdown, wg)

	// Wait for everything to stop.
	wg.Wait()
	logger.Info().Msg("server shutdown")
}

func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(os.Stderr).Level(lvl).With().Timestamp().Logger()
}

func waitTimeout(wg *sync.WaitGroup, timeout time.Duration) error {
	c := make(chan any)
	go func() {
		defer close(c)
		wg.Wait()
	}()

	select {
	case <-c:
		return nil // completed normally
	case <-time.After(timeout):
		return errors.New("timed out waiting")
	}
}
