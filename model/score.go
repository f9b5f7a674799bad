package model

import "time"

// ScoreEntry is one finished game recorded on the local leaderboard.
type ScoreEntry struct {
	Correct   int       `json:"correct"`
	Incorrect int       `json:"incorrect"`
	Accuracy  float64   `json:"accuracy"` // percentage, 0-100
	Mode      string    `json:"mode"`
	Date      time.Time `json:"date"`
}

// ComputeAccuracy returns the percentage of correct answers, rounded the way
// the score summary screen displays it. Zero answered questions is 0%.
func ComputeAccuracy(correct, incorrect int) float64 {
	total := correct + incorrect
	if total == 0 {
		return 0
	}
	return float64(correct) / float64(total) * 100
}
