package model

import "fmt"

// QuestionKind identifies the archetype of a quiz question.
type QuestionKind string

const (
	// Base archetypes.
	KindJerseyNumber QuestionKind = "jersey-number" // "What number does X wear?"
	KindPlayerName   QuestionKind = "player-name"   // "Who wears jersey number N?"

	// Fantasy-enriched archetypes.
	KindFantasyTopScorer   QuestionKind = "fantasy-top-scorer"
	KindFantasyPointsGuess QuestionKind = "fantasy-points-guess"
	KindFantasyWeeklyStat  QuestionKind = "fantasy-weekly-stat"
	KindFantasySeasonTotal QuestionKind = "fantasy-season-total"
)

// Question is a single quiz turn. It is created by the synthesizer, consumed
// once by the UI layer, and discarded after feedback is shown. Key is
// recorded in the session's used-question set so the same prompt is never
// repeated within a session.
type Question struct {
	Prompt   string       `json:"prompt"`
	Expected string       `json:"-"`
	Subject  Player       `json:"subject"`
	Kind     QuestionKind `json:"kind"`
	Key      string       `json:"-"`

	// Options is populated only for multiple-choice archetypes.
	Options []string `json:"options,omitempty"`

	// Tolerance is the inclusive [low, high] band accepted as correct for
	// numeric fantasy answers.
	Tolerance *[2]float64 `json:"tolerance,omitempty"`
}

// QuestionKey builds the composite used-question key for a kind and subject
// identity.
func QuestionKey(kind QuestionKind, subject string) string {
	return fmt.Sprintf("%s-%s", kind, subject)
}
