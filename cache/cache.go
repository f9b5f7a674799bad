// Package cache implements a two-tier cache: a freecache-backed in-process
// tier over a persisted key-value tier that survives restarts. Entries are
// wrapped in a versioned envelope; a schema-version mismatch evicts an
// entry, an elapsed category timeout hides it from Get but leaves it
// readable through GetStale as a last resort.
package cache

import (
	"time"

	"github.com/coocood/freecache"
	json "github.com/goccy/go-json"
	"github.com/itbasis/go-clock"
	"github.com/rs/zerolog"
)

// SchemaVersion is stamped on every persisted write. Bump it whenever the
// shape of a cached payload changes so stale envelopes are evicted on read.
const SchemaVersion = "1.1"

const defaultMemorySize = 2 * 1024 * 1024

// TTL holds the independent expiry windows for the two tiers. The persisted
// window is normally longer than the in-process one: persisted entries are
// cheap to keep but still must expire to reflect roster changes.
type TTL struct {
	Memory    time.Duration
	Persisted time.Duration
}

// KV is the persisted storage consumed by the slower tier. Implementations
// must survive process restarts but are not assumed durable across devices.
type KV interface {
	Get(key string) ([]byte, bool, error)
	Set(key string, value []byte) error
	Delete(key string) error
	Keys() ([]string, error)
}

type Options struct {
	Version    string // defaults to SchemaVersion
	MemorySize int    // bytes for the in-process tier
	Default    TTL
	Categories map[string]TTL
}

type envelope struct {
	Payload       json.RawMessage `json:"payload"`
	StoredAt      time.Time       `json:"storedAt"`
	SchemaVersion string          `json:"schemaVersion"`
	Category      string          `json:"category"`
}

type Store struct {
	mem     *freecache.Cache
	kv      KV
	clock   clock.Clock
	log     zerolog.Logger
	version string
	opts    Options
}

func New(kv KV, clock clock.Clock, opts Options, log zerolog.Logger) *Store {
	version := opts.Version
	if version == "" {
		version = SchemaVersion
	}
	size := opts.MemorySize
	if size <= 0 {
		size = defaultMemorySize
	}

	return &Store{
		mem:     freecache.NewCache(size),
		kv:      kv,
		clock:   clock,
		log:     log,
		version: version,
		opts:    opts,
	}
}

func (s *Store) ttl(category string) TTL {
	if t, ok := s.opts.Categories[category]; ok {
		return t
	}
	return s.opts.Default
}

// Get returns the raw payload for a category, consulting the in-process tier
// first and the persisted tier second. A persisted hit repopulates the
// in-process tier. Invalid entries are evicted and reported as misses.
func (s *Store) Get(category string) ([]byte, bool) {
	if raw, err := s.mem.Get([]byte(category)); err == nil {
		if env, ok := s.decode(raw, category, s.ttl(category).Memory); ok {
			return env.Payload, true
		}
		s.mem.Del([]byte(category))
	}

	raw, found, err := s.kv.Get(category)
	if err != nil {
		s.log.Warn().Str("category", category).Err(err).Msg("persisted cache read failed")
		return nil, false
	}
	if !found {
		return nil, false
	}

	env, ok := s.decode(raw, category, 0)
	if !ok {
		// Corrupt or written under a different schema version: never usable
		// again, so evict.
		if err := s.kv.Delete(category); err != nil {
			s.log.Warn().Str("category", category).Err(err).Msg("error evicting persisted cache entry")
		}
		return nil, false
	}
	if s.expired(env, s.ttl(category).Persisted) {
		// Timed out but structurally sound. Kept around so GetStale can
		// serve it when the upstream is unreachable.
		return nil, false
	}

	s.storeMemory(category, raw)
	return env.Payload, true
}

// GetStale returns a payload from the persisted tier even if its timeout has
// elapsed. The schema-version gate still applies: an entry of the wrong
// shape is never served. Used as a last resort when the upstream is down.
func (s *Store) GetStale(category string) ([]byte, bool) {
	raw, found, err := s.kv.Get(category)
	if err != nil || !found {
		return nil, false
	}

	env, ok := s.decode(raw, category, 0)
	if !ok {
		return nil, false
	}
	return env.Payload, true
}

// Put writes a payload through to both tiers, stamping the current time and
// schema version. Storage failures are logged and swallowed: caching is an
// optimization, not a correctness requirement.
func (s *Store) Put(category string, payload []byte) {
	env := envelope{
		Payload:       payload,
		StoredAt:      s.clock.Now(),
		SchemaVersion: s.version,
		Category:      category,
	}

	raw, err := json.Marshal(env)
	if err != nil {
		s.log.Warn().Str("category", category).Err(err).Msg("error serializing cache entry")
		return
	}

	s.storeMemory(category, raw)
	if err := s.kv.Set(category, raw); err != nil {
		s.log.Warn().Str("category", category).Err(err).Msg("persisted cache write failed")
	}
}

func (s *Store) Invalidate(category string) {
	s.mem.Del([]byte(category))
	if err := s.kv.Delete(category); err != nil {
		s.log.Warn().Str("category", category).Err(err).Msg("error removing persisted cache entry")
	}
}

func (s *Store) InvalidateAll() {
	s.mem.Clear()
	keys, err := s.kv.Keys()
	if err != nil {
		s.log.Warn().Err(err).Msg("error listing persisted cache entries")
		return
	}
	for _, k := range keys {
		if err := s.kv.Delete(k); err != nil {
			s.log.Warn().Str("category", k).Err(err).Msg("error removing persisted cache entry")
		}
	}
}

// decode unmarshals an envelope and validates it. A maxAge of 0 skips the
// age check.
func (s *Store) decode(raw []byte, category string, maxAge time.Duration) (*envelope, bool) {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		s.log.Warn().Str("category", category).Err(err).Msg("error decoding cache entry")
		return nil, false
	}

	if env.SchemaVersion != s.version {
		s.log.Debug().Str("category", category).
			Str("got", env.SchemaVersion).Str("want", s.version).
			Msg("cache schema version mismatch, evicting")
		return nil, false
	}

	if s.expired(&env, maxAge) {
		return nil, false
	}

	return &env, true
}

func (s *Store) expired(env *envelope, maxAge time.Duration) bool {
	return maxAge > 0 && s.clock.Now().Sub(env.StoredAt) >= maxAge
}

func (s *Store) storeMemory(category string, raw []byte) {
	ttl := int(s.ttl(category).Memory / time.Second)
	if err := s.mem.Set([]byte(category), raw, ttl); err != nil {
		s.log.Warn().Str("category", category).Err(err).Msg("in-process cache write failed")
	}
}

// Get decodes the cached payload for a category into T.
func Get[T any](s *Store, category string) (T, bool) {
	var v T
	raw, ok := s.Get(category)
	if !ok {
		return v, false
	}
	if err := json.Unmarshal(raw, &v); err != nil {
		s.log.Warn().Str("category", category).Err(err).Msg("error decoding cache payload")
		s.Invalidate(category)
		return v, false
	}
	return v, true
}

// GetStale is like Get but reads through Store.GetStale.
func GetStale[T any](s *Store, category string) (T, bool) {
	var v T
	raw, ok := s.GetStale(category)
	if !ok {
		return v, false
	}
	if err := json.Unmarshal(raw, &v); err != nil {
		return v, false
	}
	return v, true
}

// Put encodes v and writes it through both tiers.
func Put[T any](s *Store, category string, v T) {
	raw, err := json.Marshal(v)
	if err != nil {
		s.log.Warn().Str("category", category).Err(err).Msg("error serializing cache payload")
		return
	}
	s.Put(category, raw)
}
