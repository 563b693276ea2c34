package model

import (
	"time"
)

// SeasonWeeks is the number of weeks in the regular season.
const SeasonWeeks = 16

// Season maps calendar dates to week numbers. Yahoo rolls a fantasy week
// over on Thursdays, so a date belongs to the week whose boundary is the
// most recent Thursday on or before it.
type Season struct {
	boundaries [SeasonWeeks]time.Time
}

// NewSeason builds the boundary table from the season's first Thursday.
// If start is not a Thursday it is moved back to the Thursday before it.
func NewSeason(start time.Time) Season {
	var s Season
	first := lastThursday(start)
	for i := range s.boundaries {
		s.boundaries[i] = first.AddDate(0, 0, 7*i)
	}
	return s
}

// WeekFor returns the 1-based week number containing d, or false when d
// falls outside the season.
func (s Season) WeekFor(d time.Time) (int, bool) {
	th := lastThursday(d)
	for i, b := range s.boundaries {
		if th.Equal(b) {
			return i + 1, true
		}
	}
	return 0, false
}

// lastThursday normalizes t to midnight UTC on the most recent Thursday on
// or before it.
func lastThursday(t time.Time) time.Time {
	d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	offset := (int(d.Weekday()) - int(time.Thursday) + 7) % 7
	return d.AddDate(0, 0, -offset)
}
