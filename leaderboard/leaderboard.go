// Package leaderboard keeps the local top-10 finished games.
package leaderboard

import (
	"fmt"
	"sort"
	"sync"

	json "github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/mortenhouring/guess-the-steeler/cache"
	"github.com/mortenhouring/guess-the-steeler/model"
)

const storageKey = "leaderboard"

// MaxEntries is how many finished games are kept.
const MaxEntries = 10

// Store persists an ordered list of score entries in the same key-value
// storage the cache uses. Entries are re-sorted on every write by correct
// answers descending, then accuracy descending.
type Store struct {
	kv  cache.KV
	log zerolog.Logger
	mu  sync.Mutex
}

func New(kv cache.KV, log zerolog.Logger) *Store {
	return &Store{kv: kv, log: log}
}

// Record inserts an entry, re-sorts, and trims to MaxEntries.
func (s *Store) Record(entry model.ScoreEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.read()
	if err != nil {
		// A corrupt leaderboard should not lose the new score: start over.
		s.log.Warn().Err(err).Msg("error reading leaderboard, resetting")
		entries = nil
	}

	entries = append(entries, entry)
	sortEntries(entries)
	if len(entries) > MaxEntries {
		entries = entries[:MaxEntries]
	}

	raw, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("error serializing leaderboard: %w", err)
	}
	if err := s.kv.Set(storageKey, raw); err != nil {
		return fmt.Errorf("error persisting leaderboard: %w", err)
	}
	return nil
}

// Top returns the stored entries, best first.
func (s *Store) Top() ([]model.ScoreEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.read()
	if err != nil {
		return nil, err
	}
	sortEntries(entries)
	return entries, nil
}

func (s *Store) read() ([]model.ScoreEntry, error) {
	raw, found, err := s.kv.Get(storageKey)
	if err != nil {
		return nil, fmt.Errorf("error reading leaderboard: %w", err)
	}
	if !found {
		return nil, nil
	}

	var entries []model.ScoreEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("error parsing leaderboard: %w", err)
	}
	return entries, nil
}

func sortEntries(entries []model.ScoreEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Correct != entries[j].Correct {
			return entries[i].Correct > entries[j].Correct
		}
		return entries[i].Accuracy > entries[j].Accuracy
	})
}
