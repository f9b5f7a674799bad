package model

// StatLine is a sparse per-category statistics record keyed by the Sleeper
// stat codes below. Missing categories mean zero.
type StatLine map[string]float64

// Stat codes used by the Sleeper statistics endpoints. Only the categories
// that feed the fantasy scoring table are listed.
const (
	StatPassYards      = "pass_yd"
	StatPassTD         = "pass_td"
	StatPassInt        = "pass_int"
	StatRushYards      = "rush_yd"
	StatRushTD         = "rush_td"
	StatReceptions     = "rec"
	StatRecYards       = "rec_yd"
	StatRecTD          = "rec_td"
	StatDefInt         = "def_int"
	StatDefFumbleRec   = "def_fumrec"
	StatDefTD          = "def_td"
	StatDefSack        = "def_sack"
	StatFieldGoals     = "fg"
	StatExtraPoints    = "xp"
)

func (s StatLine) Get(code string) float64 {
	if s == nil {
		return 0
	}
	return s[code]
}
