// Package match reconciles a locally known player against an externally
// keyed directory. Strategies are tried in order: curated ID table, exact
// normalized name, then fuzzy name similarity gated by jersey-number
// agreement. No match is an explicit absent result, never an error.
package match

import (
	"regexp"
	"strings"

	"github.com/mortenhouring/guess-the-steeler/model"
)

// DefaultThreshold is the token-overlap ratio a fuzzy candidate must exceed.
// Empirically chosen; override via Config.
const DefaultThreshold = 0.7

// Candidate is one record from the external directory, reduced to the fields
// matching needs.
type Candidate struct {
	ID     string
	Name   string
	Jersey int
}

type Config struct {
	// KnownIDs maps a player's display name to its external directory ID. It
	// is curated outside the matcher and consulted before any name matching.
	KnownIDs map[string]string
	// Threshold overrides DefaultThreshold when > 0.
	Threshold float64
}

type Matcher struct {
	knownIDs  map[string]string
	threshold float64
}

func New(cfg Config) *Matcher {
	threshold := cfg.Threshold
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	return &Matcher{
		knownIDs:  cfg.KnownIDs,
		threshold: threshold,
	}
}

// Match finds the directory candidate for a player, or reports absent.
func (m *Matcher) Match(p *model.Player, directory []Candidate) (*Candidate, bool) {
	if id, ok := m.knownIDs[p.Name]; ok {
		for i := range directory {
			if directory[i].ID == id {
				return &directory[i], true
			}
		}
	}

	want := NormalizeName(p.Name)

	for i := range directory {
		if NormalizeName(directory[i].Name) == want {
			return &directory[i], true
		}
	}

	for i := range directory {
		c := &directory[i]
		if c.Jersey != p.Number {
			continue
		}
		if Similarity(want, NormalizeName(c.Name)) > m.threshold {
			return c, true
		}
	}

	return nil, false
}

var nonLetters = regexp.MustCompile(`[^a-z\s]`)
var whitespace = regexp.MustCompile(`\s+`)

// NormalizeName lowercases a name, strips everything that is not a letter,
// and collapses whitespace.
func NormalizeName(name string) string {
	name = strings.ToLower(name)
	name = nonLetters.ReplaceAllString(name, "")
	name = whitespace.ReplaceAllString(name, " ")
	return strings.TrimSpace(name)
}

// Similarity is the token overlap ratio between two normalized names:
// matched-token-count over the larger token count. Two tokens match when
// either contains the other.
func Similarity(a, b string) float64 {
	wordsA := strings.Fields(a)
	wordsB := strings.Fields(b)

	total := max(len(wordsA), len(wordsB))
	if total == 0 {
		return 0
	}

	matches := 0
	for _, wa := range wordsA {
		for _, wb := range wordsB {
			if strings.Contains(wa, wb) || strings.Contains(wb, wa) {
				matches++
				break
			}
		}
	}

	return float64(matches) / float64(total)
}
