package match

import (
	"testing"

	"github.com/mortenhouring/guess-the-steeler/model"
)

var directory = []Candidate{
	{ID: "14881", Name: "Russell Wilson", Jersey: 3},
	{ID: "3051926", Name: "T.J. Watt", Jersey: 90},
	{ID: "4431455", Name: "Joey Porter Jr.", Jersey: 24},
	{ID: "4568318", Name: "Jaylen Warren", Jersey: 30},
}

func TestMatchExactName(t *testing.T) {
	m := New(Config{})

	p := &model.Player{Name: "Russell Wilson", Number: 3}
	c, ok := m.Match(p, directory)
	if !ok {
		t.Fatal("expected a match")
	}
	if c.ID != "14881" {
		t.Errorf("expected candidate 14881, got %s", c.ID)
	}
}

func TestMatchKnownID(t *testing.T) {
	m := New(Config{KnownIDs: map[string]string{"Watt": "3051926"}})

	// Neither the exact nor the fuzzy path would resolve this name; the
	// curated table is consulted first and wins.
	p := &model.Player{Name: "Watt", Number: 55}
	c, ok := m.Match(p, directory)
	if !ok {
		t.Fatal("expected a match via the known-ID table")
	}
	if c.ID != "3051926" {
		t.Errorf("expected candidate 3051926, got %s", c.ID)
	}
}

func TestMatchFuzzyWithJersey(t *testing.T) {
	m := New(Config{})

	// Abbreviated first name; jersey number agrees and every token of the
	// shorter name is contained in the longer one.
	p := &model.Player{Name: "J Porter Jr", Number: 24}
	c, ok := m.Match(p, directory)
	if !ok {
		t.Fatal("expected a fuzzy match gated by jersey number")
	}
	if c.ID != "4431455" {
		t.Errorf("expected candidate 4431455, got %s", c.ID)
	}
}

func TestMatchFuzzyRequiresJerseyAgreement(t *testing.T) {
	m := New(Config{})

	// Same similar name but the jersey number disagrees, so the fuzzy path
	// must not fire.
	p := &model.Player{Name: "J Porter Jr", Number: 55}
	if _, ok := m.Match(p, directory); ok {
		t.Fatal("expected no match when jersey numbers disagree")
	}
}

func TestMatchAbsent(t *testing.T) {
	m := New(Config{})

	p := &model.Player{Name: "Completely Unrelated", Number: 1}
	if c, ok := m.Match(p, directory); ok {
		t.Fatalf("expected no match, got %s", c.ID)
	}
}

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		in       string
		expected string
	}{
		{in: "T.J. Watt", expected: "tj watt"},
		{in: "Joey  Porter   Jr.", expected: "joey porter jr"},
		{in: "  Calvin Austin III ", expected: "calvin austin iii"},
		{in: "O'Neal", expected: "oneal"},
	}

	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			if got := NormalizeName(tc.in); got != tc.expected {
				t.Errorf("expected %q, got %q", tc.expected, got)
			}
		})
	}
}

func TestSimilarity(t *testing.T) {
	tests := []struct {
		name     string
		a, b     string
		expected float64
	}{
		{name: "identical", a: "joey porter", b: "joey porter", expected: 1},
		{name: "suffix token", a: "joey porter", b: "joey porter jr", expected: 2.0 / 3.0},
		{name: "substring tokens", a: "cam heyward", b: "cameron heyward", expected: 1},
		{name: "unrelated", a: "john smith", b: "alex brown", expected: 0},
		{name: "empty", a: "", b: "", expected: 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Similarity(tc.a, tc.b); got != tc.expected {
				t.Errorf("expected %v, got %v", tc.expected, got)
			}
		})
	}
}
