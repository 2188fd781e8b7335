// Package availability decides whether a candidate slot on a court is free,
// and which of the bookable durations fit at a given start time. All
// functions are pure over the reservation list they are handed; persistence
// and locking stay in the service layer.
package availability

import (
	"sort"

	"chedoparti/pkg/model"
	"chedoparti/pkg/timeslot"
)

// CandidateDurations are the durations the booking surface offers, in
// minutes, ascending. Enumeration results are always a subset of this set.
var CandidateDurations = []int{30, 60, 90, 120, 150, 180}

// Candidate is a slot a user is trying to book.
type Candidate struct {
	CourtID  string
	Date     string // YYYY-MM-DD
	StartMin int    // minutes from midnight
	EndMin   int
	// ExcludeID skips one reservation during the check, so that editing a
	// reservation in place never conflicts with itself.
	ExcludeID string
}

// Result reports a conflict check outcome. Conflicts carries the blocking
// reservations for diagnostic display; it is nil when HasConflict is false.
type Result struct {
	HasConflict bool
	Conflicts   []model.Reservation
}

// CheckConflict reports whether the candidate overlaps any active reservation
// on the same court and date. Cancelled reservations never block, and
// intervals that merely touch (one ends exactly when the other starts) are
// not conflicts.
func CheckConflict(c Candidate, reservations []model.Reservation) Result {
	want := timeslot.Interval{Start: c.StartMin, End: c.EndMin}
	if want.Empty() {
		return Result{}
	}

	var conflicts []model.Reservation
	for _, r := range reservations {
		if r.CourtID != c.CourtID || r.Date != c.Date {
			continue
		}
		if c.ExcludeID != "" && r.ID == c.ExcludeID {
			continue
		}
		if !r.Active() {
			continue
		}

		start := timeslot.ClockToMinutes(r.StartTime)
		have := timeslot.NewInterval(start, r.DurationMin)
		if have.Empty() {
			continue
		}
		if timeslot.Overlaps(want, have) {
			conflicts = append(conflicts, r)
		}
	}

	return Result{HasConflict: len(conflicts) > 0, Conflicts: conflicts}
}

// DurationOption is one bookable duration at a given start time.
type DurationOption struct {
	Minutes int    `json:"minutes"`
	Value   string `json:"value"` // "HH:MM" form, what the booking form submits
	Label   string `json:"label"`
}

// AvailableDurations returns the subset of CandidateDurations that fit at
// startMin on the given court and date without conflicting with any active
// reservation. The result is sorted ascending and may be empty; an empty
// result is a legitimate "no options" terminal state, not an error.
func AvailableDurations(courtID, date string, startMin int, reservations []model.Reservation, excludeID string) []DurationOption {
	options := make([]DurationOption, 0, len(CandidateDurations))

	for _, d := range CandidateDurations {
		res := CheckConflict(Candidate{
			CourtID:   courtID,
			Date:      date,
			StartMin:  startMin,
			EndMin:    startMin + d,
			ExcludeID: excludeID,
		}, reservations)
		if res.HasConflict {
			continue
		}
		options = append(options, DurationOption{
			Minutes: d,
			Value:   timeslot.MinutesToClock(d),
			Label:   durationLabel(d),
		})
	}

	sort.Slice(options, func(i, j int) bool { return options[i].Minutes < options[j].Minutes })
	return options
}

func durationLabel(minutes int) string {
	switch minutes {
	case 30:
		return "30 min"
	case 60:
		return "1 h"
	case 90:
		return "1 h 30 min"
	case 120:
		return "2 h"
	case 150:
		return "2 h 30 min"
	case 180:
		return "3 h"
	}
	return timeslot.MinutesToClock(minutes)
}
