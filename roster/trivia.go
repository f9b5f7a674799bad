package roster

import (
	"fmt"
	"strings"

	"github.com/mortenhouring/guess-the-steeler/sleeper"
)

// Stock phrases keyed by position code, appended to synthesized trivia.
var positionPhrases = map[string]string{
	"QB": "leading the Steelers offense",
	"RB": "contributing to the ground game",
	"WR": "part of the receiving corps",
	"TE": "versatile weapon in the passing game",
	"OL": "protecting the quarterback",
	"OT": "protecting the quarterback",
	"G":  "protecting the quarterback",
	"C":  "protecting the quarterback",
	"DL": "part of the defensive front",
	"DT": "part of the defensive front",
	"DE": "part of the defensive front",
	"LB": "key defender in the Steel Curtain",
	"CB": "defending the secondary",
	"S":  "last line of defense",
	"K":  "handling scoring duties",
	"P":  "special teams specialist",
}

// synthesizeTrivia builds the descriptive text shown on the feedback screen
// from whatever directory fields are present: college affiliation, an
// experience-tier phrase, physical measurements, and a position stock
// phrase.
func synthesizeTrivia(p *sleeper.Player) string {
	var parts []string

	if p.College != "" {
		parts = append(parts, fmt.Sprintf("%s product", p.College))
	}

	parts = append(parts, experiencePhrase(p.YearsExp))

	if p.Height > 0 && p.Weight > 0 {
		parts = append(parts, fmt.Sprintf("%s %d lbs", formatHeight(p.Height), p.Weight))
	}

	if phrase, ok := positionPhrases[p.Position]; ok {
		parts = append(parts, phrase)
	}

	if len(parts) == 0 {
		pos := p.Position
		if pos == "" {
			pos = "player"
		}
		return fmt.Sprintf("Current Pittsburgh Steelers %s.", pos)
	}

	return strings.Join(parts, ", ") + "."
}

func experiencePhrase(yearsExp *int) string {
	if yearsExp == nil {
		// Sleeper reports null years_exp for players who have not taken a
		// regular-season snap yet.
		return "rookie season - new to the NFL"
	}

	switch years := *yearsExp; years {
	case 0:
		return "rookie season - new to the Steel City"
	case 1:
		return "second-year player building on rookie experience"
	default:
		return fmt.Sprintf("%d years of NFL experience", years)
	}
}

func formatHeight(inches int) string {
	return fmt.Sprintf("%d'%d\"", inches/12, inches%12)
}
