package model

import (
	"fmt"
	"strings"
)

// PositionUnknown is used when the upstream directory has no position listed
// for a player.
const PositionUnknown = "N/A"

// Classification marks how a player ended up on the "new players" list.
type Classification string

const (
	ClassificationNone       Classification = ""
	ClassificationRookie     Classification = "rookie"
	ClassificationNewSigning Classification = "new-signing"
)

// Player is one quiz subject. Within a loaded roster both Name and Number
// are unique, since each is used as an independent question key.
type Player struct {
	Name           string         `json:"name"`
	Number         int            `json:"number"`
	Position       string         `json:"position"`
	Trivia         string         `json:"trivia"`
	College        string         `json:"college,omitempty"`
	YearsExp       int            `json:"yearsExp,omitempty"`
	Height         int            `json:"height,omitempty"` // inches
	Weight         int            `json:"weight,omitempty"` // pounds
	ImageURL       string         `json:"imageUrl,omitempty"`
	ExternalID     string         `json:"externalId,omitempty"`
	Classification Classification `json:"classification,omitempty"`
	Fantasy        *FantasyRecord `json:"fantasy,omitempty"`
}

func (p *Player) String() string {
	return fmt.Sprintf("%s #%d (%s)", p.Name, p.Number, p.Position)
}

// FantasyRecord holds the stats and derived fantasy points attached to a
// player for the enriched quiz mode. It is recomputed every session and
// never persisted.
type FantasyRecord struct {
	ExternalID   string   `json:"externalId"`
	WeekStats    StatLine `json:"weekStats"`
	SeasonStats  StatLine `json:"seasonStats"`
	WeekPoints   float64  `json:"weekPoints"`
	SeasonPoints float64  `json:"seasonPoints"`
}

// Take a full name, like "Deebo Samuel Sr." and return "Deebo Samuel".
func TrimNameSuffix(fullName string) string {
	// III must come before II or only the trailing "II" gets trimmed.
	suffixList := []string{
		"Jr.",
		"Sr.",
		"III",
		"II",
		"IV",
	}

	for _, s := range suffixList {
		fullName = strings.TrimSuffix(fullName, s)
	}

	return strings.TrimSpace(fullName)
}
