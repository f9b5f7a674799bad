// Package quiz turns a roster into trivia questions and tracks a player's
// session: used-question keys, score, and answer checking.
package quiz

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"

	"github.com/mortenhouring/guess-the-steeler/model"
)

// Synthesizer produces questions from a roster, never repeating a question
// key. It is not safe for concurrent use; each session owns its own.
type Synthesizer struct {
	rng *rand.Rand
}

func NewSynthesizer(seed int64) *Synthesizer {
	return &Synthesizer{rng: rand.New(rand.NewSource(seed))}
}

// Next produces a base-mode question: either "what number does X wear" or
// "who wears number N". A player stays eligible until both of its keys have
// been used. Returns false once the roster is exhausted.
func (s *Synthesizer) Next(roster []model.Player, used map[string]bool) (*model.Question, bool) {
	type option struct {
		player model.Player
		kind   model.QuestionKind
	}

	var available []option
	for _, p := range roster {
		numberKey := model.QuestionKey(model.KindJerseyNumber, p.Name)
		nameKey := model.QuestionKey(model.KindPlayerName, strconv.Itoa(p.Number))
		if !used[numberKey] && !used[nameKey] {
			// Both framings open: pick one uniformly.
			kind := model.KindJerseyNumber
			if s.rng.Intn(2) == 0 {
				kind = model.KindPlayerName
			}
			available = append(available, option{player: p, kind: kind})
		} else if !used[numberKey] {
			available = append(available, option{player: p, kind: model.KindJerseyNumber})
		} else if !used[nameKey] {
			available = append(available, option{player: p, kind: model.KindPlayerName})
		}
	}

	if len(available) == 0 {
		return nil, false
	}

	chosen := available[s.rng.Intn(len(available))]
	p := chosen.player

	q := &model.Question{
		Subject: p,
		Kind:    chosen.kind,
	}
	switch chosen.kind {
	case model.KindJerseyNumber:
		q.Prompt = fmt.Sprintf("What number does %s wear?", p.Name)
		q.Expected = strconv.Itoa(p.Number)
		q.Key = model.QuestionKey(model.KindJerseyNumber, p.Name)
	case model.KindPlayerName:
		q.Prompt = fmt.Sprintf("Who wears jersey number %d?", p.Number)
		q.Expected = p.Name
		q.Key = model.QuestionKey(model.KindPlayerName, strconv.Itoa(p.Number))
	}

	used[q.Key] = true
	return q, true
}

// NextFantasy produces a fantasy-enriched question, choosing uniformly among
// the archetypes and skipping any whose required stat is absent. Returns
// false when no archetype can produce a question; the caller falls back to
// base mode.
func (s *Synthesizer) NextFantasy(roster []model.Player, used map[string]bool) (*model.Question, bool) {
	var scored []model.Player
	for _, p := range roster {
		if p.Fantasy != nil && p.Fantasy.WeekPoints > 0 {
			scored = append(scored, p)
		}
	}
	if len(scored) == 0 {
		return nil, false
	}

	archetypes := []func([]model.Player, map[string]bool) (*model.Question, bool){
		s.topScorerQuestion,
		s.pointsGuessQuestion,
		s.weeklyStatQuestion,
		s.seasonTotalQuestion,
	}
	for _, i := range s.rng.Perm(len(archetypes)) {
		if q, ok := archetypes[i](scored, used); ok {
			used[q.Key] = true
			return q, true
		}
	}

	return nil, false
}

// topScorerQuestion is multiple-choice among the top four weekly scorers.
func (s *Synthesizer) topScorerQuestion(scored []model.Player, used map[string]bool) (*model.Question, bool) {
	if len(scored) < 2 {
		return nil, false
	}

	top := scored[0]
	for _, p := range scored[1:] {
		if p.Fantasy.WeekPoints > top.Fantasy.WeekPoints {
			top = p
		}
	}

	key := model.QuestionKey(model.KindFantasyTopScorer, top.Name)
	if used[key] {
		return nil, false
	}

	options := []string{top.Name}
	for _, i := range s.rng.Perm(len(scored)) {
		if len(options) == 4 {
			break
		}
		if scored[i].Name != top.Name {
			options = append(options, scored[i].Name)
		}
	}
	s.rng.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})

	return &model.Question{
		Prompt:   "Which Steelers player has the most fantasy points this week?",
		Expected: top.Name,
		Subject:  top,
		Kind:     model.KindFantasyTopScorer,
		Key:      key,
		Options:  options,
	}, true
}

func (s *Synthesizer) pointsGuessQuestion(scored []model.Player, used map[string]bool) (*model.Question, bool) {
	p, ok := s.pick(scored, used, model.KindFantasyPointsGuess, func(model.Player) bool { return true })
	if !ok {
		return nil, false
	}

	points := p.Fantasy.WeekPoints
	return &model.Question{
		Prompt:    fmt.Sprintf("How many fantasy points did %s score this week?", p.Name),
		Expected:  formatPoints(points),
		Subject:   p,
		Kind:      model.KindFantasyPointsGuess,
		Key:       model.QuestionKey(model.KindFantasyPointsGuess, p.Name),
		Tolerance: &[2]float64{points - 2, points + 2},
	}, true
}

// weeklyStatQuestion asks about a counting stat present in the player's
// week: passing yards, rushing yards, or receptions.
func (s *Synthesizer) weeklyStatQuestion(scored []model.Player, used map[string]bool) (*model.Question, bool) {
	type statPrompt struct {
		code   string
		phrase string
	}
	candidates := []statPrompt{
		{model.StatPassYards, "passing yards"},
		{model.StatRushYards, "rushing yards"},
		{model.StatReceptions, "receptions"},
	}

	p, ok := s.pick(scored, used, model.KindFantasyWeeklyStat, func(p model.Player) bool {
		for _, c := range candidates {
			if p.Fantasy.WeekStats.Get(c.code) > 0 {
				return true
			}
		}
		return false
	})
	if !ok {
		return nil, false
	}

	var present []statPrompt
	for _, c := range candidates {
		if p.Fantasy.WeekStats.Get(c.code) > 0 {
			present = append(present, c)
		}
	}
	chosen := present[s.rng.Intn(len(present))]
	value := p.Fantasy.WeekStats.Get(chosen.code)

	return &model.Question{
		Prompt:   fmt.Sprintf("How many %s did %s have this week?", chosen.phrase, p.Name),
		Expected: formatPoints(value),
		Subject:  p,
		Kind:     model.KindFantasyWeeklyStat,
		Key:      model.QuestionKey(model.KindFantasyWeeklyStat, p.Name),
	}, true
}

func (s *Synthesizer) seasonTotalQuestion(scored []model.Player, used map[string]bool) (*model.Question, bool) {
	p, ok := s.pick(scored, used, model.KindFantasySeasonTotal, func(p model.Player) bool {
		return p.Fantasy.SeasonPoints > 0
	})
	if !ok {
		return nil, false
	}

	points := p.Fantasy.SeasonPoints
	return &model.Question{
		Prompt:    fmt.Sprintf("What are %s's total fantasy points for the season?", p.Name),
		Expected:  formatPoints(points),
		Subject:   p,
		Kind:      model.KindFantasySeasonTotal,
		Key:       model.QuestionKey(model.KindFantasySeasonTotal, p.Name),
		Tolerance: &[2]float64{points - 5, points + 5},
	}, true
}

// pick chooses uniformly among players that satisfy eligible and whose key
// for the kind has not been used.
func (s *Synthesizer) pick(scored []model.Player, used map[string]bool, kind model.QuestionKind, eligible func(model.Player) bool) (model.Player, bool) {
	var pool []model.Player
	for _, p := range scored {
		if used[model.QuestionKey(kind, p.Name)] {
			continue
		}
		if eligible(p) {
			pool = append(pool, p)
		}
	}
	if len(pool) == 0 {
		return model.Player{}, false
	}
	return pool[s.rng.Intn(len(pool))], true
}

func formatPoints(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// CheckAnswer compares a free-text answer against a question. Numeric
// questions with a tolerance band accept any value inside the band; all
// questions accept an exact match after normalization, with or without a
// generational name suffix.
func CheckAnswer(q *model.Question, answer string) bool {
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return false
	}

	if q.Tolerance != nil {
		if v, err := strconv.ParseFloat(answer, 64); err == nil {
			if v >= q.Tolerance[0] && v <= q.Tolerance[1] {
				return true
			}
		}
	}

	got := normalizeAnswer(answer)
	if got == normalizeAnswer(q.Expected) {
		return true
	}
	// "Joey Porter" is close enough for "Joey Porter Jr.".
	trimmed := model.TrimNameSuffix(q.Expected)
	return trimmed != q.Expected && got == normalizeAnswer(trimmed)
}

// normalizeAnswer lowercases and strips everything that is not a letter or
// digit, so "T.J. Watt" and "tj watt" compare equal.
func normalizeAnswer(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}
