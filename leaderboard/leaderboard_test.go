package leaderboard

import (
	"testing"
	"time"

	"github.com/mortenhouring/guess-the-steeler/cache"
	"github.com/mortenhouring/guess-the-steeler/model"
	"github.com/mortenhouring/guess-the-steeler/testutils"
)

func entry(correct, incorrect int) model.ScoreEntry {
	return model.ScoreEntry{
		Correct:   correct,
		Incorrect: incorrect,
		Accuracy:  model.ComputeAccuracy(correct, incorrect),
		Mode:      "current",
		Date:      time.Date(2025, time.October, 5, 12, 0, 0, 0, time.UTC),
	}
}

func TestRecordAndTop(t *testing.T) {
	s := New(cache.NewMemKV(), testutils.Logger())

	for _, e := range []model.ScoreEntry{entry(3, 2), entry(8, 0), entry(5, 5)} {
		if err := s.Record(e); err != nil {
			t.Fatal(err)
		}
	}

	top, err := s.Top()
	if err != nil {
		t.Fatal(err)
	}
	if len(top) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(top))
	}
	for i, want := range []int{8, 5, 3} {
		if top[i].Correct != want {
			t.Errorf("expected %d correct at index %d, got %d", want, i, top[i].Correct)
		}
	}
}

func TestAccuracyBreaksTies(t *testing.T) {
	s := New(cache.NewMemKV(), testutils.Logger())

	if err := s.Record(entry(6, 6)); err != nil {
		t.Fatal(err)
	}
	if err := s.Record(entry(6, 0)); err != nil {
		t.Fatal(err)
	}

	top, err := s.Top()
	if err != nil {
		t.Fatal(err)
	}
	if top[0].Accuracy != 100 {
		t.Errorf("expected the perfect game first, got accuracy %v", top[0].Accuracy)
	}
}

func TestTrimsToMaxEntries(t *testing.T) {
	s := New(cache.NewMemKV(), testutils.Logger())

	for i := 0; i <= MaxEntries+3; i++ {
		if err := s.Record(entry(i, 1)); err != nil {
			t.Fatal(err)
		}
	}

	top, err := s.Top()
	if err != nil {
		t.Fatal(err)
	}
	if len(top) != MaxEntries {
		t.Fatalf("expected %d entries, got %d", MaxEntries, len(top))
	}
	// The weakest games fell off the bottom.
	if top[len(top)-1].Correct != 4 {
		t.Errorf("expected the lowest kept score to be 4, got %d", top[len(top)-1].Correct)
	}
}

func TestCorruptStorageResets(t *testing.T) {
	kv := cache.NewMemKV()
	if err := kv.Set("leaderboard", []byte("not json")); err != nil {
		t.Fatal(err)
	}

	s := New(kv, testutils.Logger())
	if err := s.Record(entry(2, 0)); err != nil {
		t.Fatal(err)
	}

	top, err := s.Top()
	if err != nil {
		t.Fatal(err)
	}
	if len(top) != 1 || top[0].Correct != 2 {
		t.Errorf("expected the new score to survive a corrupt board, got %+v", top)
	}
}

func TestTopOnEmptyBoard(t *testing.T) {
	s := New(cache.NewMemKV(), testutils.Logger())

	top, err := s.Top()
	if err != nil {
		t.Fatal(err)
	}
	if len(top) != 0 {
		t.Errorf("expected an empty board, got %d entries", len(top))
	}
}
