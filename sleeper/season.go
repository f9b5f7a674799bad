package sleeper

import "time"

// CurrentSeason returns the NFL season year for a point in time. Seasons are
// labeled by the calendar year they start in; January playoff weeks still
// belong to the previous year's season.
func CurrentSeason(now time.Time) int {
	if now.Month() < time.September {
		return now.Year() - 1
	}
	return now.Year()
}

// CurrentWeek approximates the NFL week number for a point in time, counting
// seven-day weeks from September 1st and clamping to the 1-18 regular
// season.
func CurrentWeek(now time.Time) int {
	seasonStart := time.Date(CurrentSeason(now), time.September, 1, 0, 0, 0, 0, now.Location())
	weeks := int(now.Sub(seasonStart)/(7*24*time.Hour)) + 1
	if weeks < 1 {
		return 1
	}
	if weeks > 18 {
		return 18
	}
	return weeks
}
