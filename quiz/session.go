package quiz

import (
	"errors"
	"strconv"
	"time"

	"github.com/mortenhouring/guess-the-steeler/model"
)

// Game modes.
const (
	ModeCurrent    = "current"
	ModeNewPlayers = "new-players"
	ModeLegacy     = "legacy"
	ModeFantasy    = "fantasy"
)

var ErrNoActiveQuestion = errors.New("no active question")

// Feedback is what the UI shows after an answer is submitted.
type Feedback struct {
	Correct   bool         `json:"correct"`
	Expected  string       `json:"expected"`
	Subject   model.Player `json:"subject"`
	Score     Score        `json:"score"`
	Exhausted bool         `json:"exhausted"`
}

type Score struct {
	Correct   int `json:"correct"`
	Incorrect int `json:"incorrect"`
}

// Session is one play-through: a fixed roster snapshot, the set of used
// question keys, and the running score. Sessions are owned and serialized by
// the controller.
type Session struct {
	ID      string
	Mode    string
	Started time.Time

	roster  []model.Player
	fantasy bool
	used    map[string]bool
	current *model.Question
	score   Score
	synth   *Synthesizer
}

func NewSession(id, mode string, roster []model.Player, seed int64) *Session {
	return &Session{
		ID:      id,
		Mode:    mode,
		roster:  roster,
		fantasy: mode == ModeFantasy,
		used:    make(map[string]bool),
		synth:   NewSynthesizer(seed),
	}
}

// Next generates the next question, recording its key as used. In fantasy
// mode the fantasy archetypes are tried first with base mode as the
// fallback. Returns false when the roster is exhausted.
func (s *Session) Next() (*model.Question, bool) {
	if s.fantasy {
		if q, ok := s.synth.NextFantasy(s.roster, s.used); ok {
			s.current = q
			return q, true
		}
	}

	q, ok := s.synth.Next(s.roster, s.used)
	if !ok {
		s.current = nil
		return nil, false
	}
	s.current = q
	return q, true
}

// Submit checks an answer against the current question and updates the
// score. The question is consumed: a second submit without a Next is an
// error.
func (s *Session) Submit(answer string) (*Feedback, error) {
	if s.current == nil {
		return nil, ErrNoActiveQuestion
	}

	q := s.current
	s.current = nil

	correct := CheckAnswer(q, answer)
	if correct {
		s.score.Correct++
	} else {
		s.score.Incorrect++
	}

	return &Feedback{
		Correct:   correct,
		Expected:  q.Expected,
		Subject:   q.Subject,
		Score:     s.score,
		Exhausted: s.exhausted(),
	}, nil
}

// Summary produces the leaderboard entry for this session.
func (s *Session) Summary(now time.Time) model.ScoreEntry {
	return model.ScoreEntry{
		Correct:   s.score.Correct,
		Incorrect: s.score.Incorrect,
		Accuracy:  model.ComputeAccuracy(s.score.Correct, s.score.Incorrect),
		Mode:      s.Mode,
		Date:      now,
	}
}

func (s *Session) Score() Score {
	return s.score
}

// exhausted reports whether base mode can still produce a question. Fantasy
// archetypes alone never keep a session alive.
func (s *Session) exhausted() bool {
	for _, p := range s.roster {
		if !s.used[model.QuestionKey(model.KindJerseyNumber, p.Name)] {
			return false
		}
	}
	for _, p := range s.roster {
		if !s.used[model.QuestionKey(model.KindPlayerName, strconv.Itoa(p.Number))] {
			return false
		}
	}
	return true
}
