package sleeper

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/rs/zerolog"
)

var heightRegex = regexp.MustCompile(`(?P<feet>\d+)'(?P<inches>\d+)"`)

// rawPlayer mirrors one entry of the /v1/players/nfl response. Jersey number
// and years of experience are pointers because Sleeper reports null for
// players without them, and both absences are meaningful to callers.
type rawPlayer struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Position  string `json:"position"`
	Team      string `json:"team"`
	Weight    string `json:"weight"`
	Height    string `json:"height"`
	Jersey    *int   `json:"number"`
	YearsExp  *int   `json:"years_exp"`
	College   string `json:"college"`
	Active    bool   `json:"active"`
}

// Player is a parsed directory record.
type Player struct {
	ID        string
	FirstName string
	LastName  string
	Position  string
	Team      string
	Weight    int // pounds
	Height    int // inches
	Jersey    *int
	YearsExp  *int
	College   string
	Active    bool
}

func (p *Player) FullName() string {
	return fmt.Sprintf("%s %s", p.FirstName, p.LastName)
}

// HasCompleteName reports whether both name parts are present. Directory
// entries without a complete name cannot be used as quiz subjects.
func (p *Player) HasCompleteName() bool {
	return p.FirstName != "" && p.LastName != ""
}

func (p rawPlayer) toPlayer(id string, log zerolog.Logger) Player {
	return Player{
		ID:        id,
		FirstName: p.FirstName,
		LastName:  p.LastName,
		Position:  p.Position,
		Team:      p.Team,
		Weight:    parseInt(p.Weight, id, log),
		Height:    parseHeight(p.Height, id, log),
		Jersey:    p.Jersey,
		YearsExp:  p.YearsExp,
		College:   p.College,
		Active:    p.Active,
	}
}

func parseInt(i, playerID string, log zerolog.Logger) int {
	if i == "" {
		return 0
	}
	v, err := strconv.Atoi(i)
	if err != nil {
		log.Warn().Str("player", playerID).Str("value", i).Msg("error converting string to int")
		return 0
	}
	return v
}

// Get the height of the player in inches.
func parseHeight(h, playerID string, log zerolog.Logger) int {
	if h == "" {
		return 0
	}

	// Sometimes the heights are listed like `5'11"` and we must convert that
	// to inches before returning it.
	m := heightRegex.FindStringSubmatch(h)
	if m != nil {
		feet := m[heightRegex.SubexpIndex("feet")]
		inches := m[heightRegex.SubexpIndex("inches")]
		f := parseInt(feet, playerID, log)
		if f == 0 {
			return 0
		}
		i := parseInt(inches, playerID, log)
		return (f * 12) + i
	}

	// Default case, the height is just listed in inches, but as a string.
	height, err := strconv.Atoi(h)
	if err != nil {
		log.Warn().Str("player", playerID).Str("value", h).Msg("error parsing player height")
		return 0
	}
	return height
}
