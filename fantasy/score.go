// Package fantasy computes standard fantasy-football point values from raw
// per-category statistics.
package fantasy

import (
	"math"

	"github.com/mortenhouring/guess-the-steeler/model"
)

// The standard scoring table. Each coefficient is points per unit of the
// stat category.
var scoringTable = map[string]float64{
	model.StatPassYards:    0.04, // 1 point per 25 yards
	model.StatPassTD:       4,
	model.StatPassInt:      -2,
	model.StatRushYards:    0.1, // 1 point per 10 yards
	model.StatRushTD:       6,
	model.StatRecYards:     0.1,
	model.StatReceptions:   1, // PPR
	model.StatRecTD:        6,
	model.StatDefInt:       2,
	model.StatDefFumbleRec: 2,
	model.StatDefTD:        6,
	model.StatDefSack:      1,
	model.StatFieldGoals:   3,
	model.StatExtraPoints:  1,
}

// Score applies the standard scoring table to a stat line. Missing
// categories count as zero. The result is rounded to one decimal place.
func Score(stats model.StatLine) float64 {
	var points float64
	for code, coeff := range scoringTable {
		points += stats.Get(code) * coeff
	}
	return math.Round(points*10) / 10
}
