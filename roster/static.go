package roster

import (
	"embed"
	"fmt"

	json "github.com/goccy/go-json"

	"github.com/mortenhouring/guess-the-steeler/model"
	"github.com/mortenhouring/guess-the-steeler/sleeper"
)

//go:embed data
var staticData embed.FS

// Static is the bundled dataset: the ultimate fallback when no network or
// cache data is available, and the authoritative source for the legacy mode
// which never consults the network. It is versioned by deployment.
type Static struct {
	fallback    []model.Player
	newPlayers  []model.Player
	legacy      []model.Player
	priorSeason map[string]bool
	knownIDs    map[string]string
}

// LoadStatic parses the embedded datasets. It fails only when the embedded
// files are malformed, which is a build problem, not a runtime one.
func LoadStatic() (*Static, error) {
	var fallback, newPlayers, legacy []model.Player
	if err := readStatic("data/current.json", &fallback); err != nil {
		return nil, err
	}
	if err := readStatic("data/new_players.json", &newPlayers); err != nil {
		return nil, err
	}
	if err := readStatic("data/legacy.json", &legacy); err != nil {
		return nil, err
	}

	var priorNames []string
	if err := readStatic("data/prior_season.json", &priorNames); err != nil {
		return nil, err
	}
	prior := make(map[string]bool, len(priorNames))
	for _, n := range priorNames {
		prior[n] = true
	}

	knownIDs := make(map[string]string)
	if err := readStatic("data/known_ids.json", &knownIDs); err != nil {
		return nil, err
	}

	s := &Static{
		fallback:    fallback,
		newPlayers:  newPlayers,
		legacy:      legacy,
		priorSeason: prior,
		knownIDs:    knownIDs,
	}
	s.fillImageURLs(s.fallback)
	s.fillImageURLs(s.newPlayers)
	s.fillImageURLs(s.legacy)
	return s, nil
}

func readStatic(name string, v any) error {
	b, err := staticData.ReadFile(name)
	if err != nil {
		return fmt.Errorf("error reading embedded %s: %w", name, err)
	}
	if err := json.Unmarshal(b, v); err != nil {
		return fmt.Errorf("error parsing embedded %s: %w", name, err)
	}
	return nil
}

func (s *Static) fillImageURLs(players []model.Player) {
	for i := range players {
		if players[i].ExternalID == "" {
			players[i].ExternalID = s.knownIDs[players[i].Name]
		}
		if players[i].ImageURL == "" {
			players[i].ImageURL = sleeper.PlayerImageURL(players[i].ExternalID)
		}
	}
}

// Fallback returns a copy of the bundled current-roster dataset.
func (s *Static) Fallback() []model.Player {
	return clonePlayers(s.fallback)
}

// NewPlayerFallback returns a copy of the bundled new-players dataset.
func (s *Static) NewPlayerFallback() []model.Player {
	return clonePlayers(s.newPlayers)
}

// Legacy returns a copy of the legendary-players dataset.
func (s *Static) Legacy() []model.Player {
	return clonePlayers(s.legacy)
}

// InPriorSeason reports whether a player name appeared on the reference
// prior-season roster. Used to classify new signings.
func (s *Static) InPriorSeason(name string) bool {
	return s.priorSeason[name]
}

// KnownIDs is the curated name to external-directory-ID mapping consumed by
// the identity matcher.
func (s *Static) KnownIDs() map[string]string {
	return s.knownIDs
}

func clonePlayers(in []model.Player) []model.Player {
	out := make([]model.Player, len(in))
	copy(out, in)
	return out
}
