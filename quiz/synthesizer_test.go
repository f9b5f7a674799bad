package quiz

import (
	"strconv"
	"testing"

	"github.com/mortenhouring/guess-the-steeler/model"
)

func baseRoster() []model.Player {
	return []model.Player{
		{Name: "Russell Wilson", Number: 3, Position: "QB"},
		{Name: "George Pickens", Number: 14, Position: "WR"},
		{Name: "T.J. Watt", Number: 90, Position: "LB"},
	}
}

func fantasyRoster() []model.Player {
	return []model.Player{
		{Name: "Russell Wilson", Number: 3, Fantasy: &model.FantasyRecord{
			WeekPoints:   17.5,
			SeasonPoints: 120.5,
			WeekStats:    model.StatLine{model.StatPassYards: 250, model.StatPassTD: 2},
		}},
		{Name: "Najee Harris", Number: 22, Fantasy: &model.FantasyRecord{
			WeekPoints:   11.2,
			SeasonPoints: 88.4,
			WeekStats:    model.StatLine{model.StatRushYards: 92, model.StatRushTD: 1},
		}},
		{Name: "George Pickens", Number: 14, Fantasy: &model.FantasyRecord{
			WeekPoints:   9.8,
			SeasonPoints: 70.1,
			WeekStats:    model.StatLine{model.StatRecYards: 68, model.StatReceptions: 5},
		}},
	}
}

func TestNextExhaustsBothKeysPerPlayer(t *testing.T) {
	roster := baseRoster()
	synth := NewSynthesizer(1)
	used := make(map[string]bool)

	seen := make(map[string]bool)
	var count int
	for {
		q, ok := synth.Next(roster, used)
		if !ok {
			break
		}
		count++
		if seen[q.Key] {
			t.Fatalf("question key %q was issued twice", q.Key)
		}
		seen[q.Key] = true
		if count > 2*len(roster) {
			t.Fatal("synthesizer produced more questions than the roster holds")
		}
	}

	// Each player contributes two independent keys: one per framing.
	if count != 2*len(roster) {
		t.Errorf("expected %d questions, got %d", 2*len(roster), count)
	}
}

func TestNextPromptsAndAnswers(t *testing.T) {
	roster := []model.Player{{Name: "T.J. Watt", Number: 90, Position: "LB"}}
	synth := NewSynthesizer(7)
	used := make(map[string]bool)

	// A single player yields exactly two questions, one of each framing.
	kinds := make(map[model.QuestionKind]*model.Question)
	for i := 0; i < 2; i++ {
		q, ok := synth.Next(roster, used)
		if !ok {
			t.Fatal("expected a question")
		}
		kinds[q.Kind] = q
	}
	if _, ok := synth.Next(roster, used); ok {
		t.Fatal("expected the single-player roster to be exhausted")
	}

	number := kinds[model.KindJerseyNumber]
	if number == nil {
		t.Fatal("expected a jersey-number question")
	}
	if number.Prompt != "What number does T.J. Watt wear?" {
		t.Errorf("unexpected prompt %q", number.Prompt)
	}
	if number.Expected != "90" {
		t.Errorf("expected answer 90, got %q", number.Expected)
	}

	name := kinds[model.KindPlayerName]
	if name == nil {
		t.Fatal("expected a player-name question")
	}
	if name.Prompt != "Who wears jersey number 90?" {
		t.Errorf("unexpected prompt %q", name.Prompt)
	}
	if name.Expected != "T.J. Watt" {
		t.Errorf("expected answer T.J. Watt, got %q", name.Expected)
	}
}

func TestNextFantasyRequiresScoredPlayers(t *testing.T) {
	synth := NewSynthesizer(1)

	if _, ok := synth.NextFantasy(baseRoster(), make(map[string]bool)); ok {
		t.Fatal("expected no fantasy question without scored players")
	}
}

func TestNextFantasyNeverRepeatsKeys(t *testing.T) {
	roster := fantasyRoster()
	synth := NewSynthesizer(3)
	used := make(map[string]bool)

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		q, ok := synth.NextFantasy(roster, used)
		if !ok {
			return
		}
		if seen[q.Key] {
			t.Fatalf("fantasy question key %q was issued twice", q.Key)
		}
		seen[q.Key] = true
	}
	t.Fatal("expected the fantasy archetypes to run out")
}

func TestTopScorerQuestion(t *testing.T) {
	synth := NewSynthesizer(5)

	q, ok := synth.topScorerQuestion(fantasyRoster(), make(map[string]bool))
	if !ok {
		t.Fatal("expected a top-scorer question")
	}
	if q.Expected != "Russell Wilson" {
		t.Errorf("expected Russell Wilson as top scorer, got %q", q.Expected)
	}
	if len(q.Options) < 2 || len(q.Options) > 4 {
		t.Fatalf("expected 2-4 options, got %d", len(q.Options))
	}
	var found bool
	for _, o := range q.Options {
		if o == q.Expected {
			found = true
		}
	}
	if !found {
		t.Error("expected the correct answer among the options")
	}
}

func TestPointsGuessTolerance(t *testing.T) {
	synth := NewSynthesizer(5)

	// Only one scored player so the subject is deterministic.
	roster := fantasyRoster()[:1]
	q, ok := synth.pointsGuessQuestion(roster, make(map[string]bool))
	if !ok {
		t.Fatal("expected a points-guess question")
	}
	if q.Tolerance == nil {
		t.Fatal("expected a tolerance band")
	}
	if q.Tolerance[0] != 15.5 || q.Tolerance[1] != 19.5 {
		t.Errorf("expected band [15.5, 19.5], got %v", *q.Tolerance)
	}
}

func TestSeasonTotalTolerance(t *testing.T) {
	synth := NewSynthesizer(5)

	roster := fantasyRoster()[:1]
	q, ok := synth.seasonTotalQuestion(roster, make(map[string]bool))
	if !ok {
		t.Fatal("expected a season-total question")
	}
	if q.Tolerance == nil {
		t.Fatal("expected a tolerance band")
	}
	if q.Tolerance[0] != 115.5 || q.Tolerance[1] != 125.5 {
		t.Errorf("expected band [115.5, 125.5], got %v", *q.Tolerance)
	}
}

func TestCheckAnswer(t *testing.T) {
	tests := []struct {
		name     string
		question model.Question
		answer   string
		correct  bool
	}{
		{
			name:     "exact name",
			question: model.Question{Expected: "T.J. Watt"},
			answer:   "T.J. Watt",
			correct:  true,
		},
		{
			name:     "normalized name",
			question: model.Question{Expected: "T.J. Watt"},
			answer:   "tj watt",
			correct:  true,
		},
		{
			name:     "suffix omitted",
			question: model.Question{Expected: "Joey Porter Jr."},
			answer:   "Joey Porter",
			correct:  true,
		},
		{
			name:     "wrong name",
			question: model.Question{Expected: "T.J. Watt"},
			answer:   "Cam Heyward",
			correct:  false,
		},
		{
			name:     "number with whitespace",
			question: model.Question{Expected: "90"},
			answer:   " 90 ",
			correct:  true,
		},
		{
			name:     "inside tolerance band",
			question: model.Question{Expected: "17.5", Tolerance: &[2]float64{15.5, 19.5}},
			answer:   "16",
			correct:  true,
		},
		{
			name:     "band edge",
			question: model.Question{Expected: "17.5", Tolerance: &[2]float64{15.5, 19.5}},
			answer:   "19.5",
			correct:  true,
		},
		{
			name:     "outside tolerance band",
			question: model.Question{Expected: "17.5", Tolerance: &[2]float64{15.5, 19.5}},
			answer:   "20",
			correct:  false,
		},
		{
			name:     "empty answer",
			question: model.Question{Expected: "90"},
			answer:   "",
			correct:  false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := CheckAnswer(&tc.question, tc.answer); got != tc.correct {
				t.Errorf("expected correct=%v for answer %q, got %v", tc.correct, tc.answer, got)
			}
		})
	}
}

func TestQuestionKeyIsPerFraming(t *testing.T) {
	p := model.Player{Name: "T.J. Watt", Number: 90}

	numberKey := model.QuestionKey(model.KindJerseyNumber, p.Name)
	nameKey := model.QuestionKey(model.KindPlayerName, strconv.Itoa(p.Number))
	if numberKey == nameKey {
		t.Errorf("expected distinct keys per framing, both were %q", numberKey)
	}
}
