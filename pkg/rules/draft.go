package rules

import (
	"time"

	"chedoparti/pkg/model"
	"chedoparti/pkg/timeslot"
)

// DraftOptions tunes ValidateDraft. AllowPast lets admins backfill
// reservations that already started.
type DraftOptions struct {
	AllowPast bool
}

// ValidateDraft checks a reservation draft field by field and returns a map
// of field name to a human-readable problem. An empty map means the draft is
// bookable, pending a conflict check.
func ValidateDraft(r *model.Reservation, now time.Time, opts DraftOptions) map[string]string {
	problems := map[string]string{}

	if r.CourtID == "" {
		problems["court_id"] = "a court is required"
	}

	if r.Date == "" {
		problems["date"] = "a date is required"
	} else if _, err := time.Parse("2006-01-02", r.Date); err != nil {
		problems["date"] = "date must be YYYY-MM-DD"
	}

	if r.StartTime == "" {
		problems["start_time"] = "a start time is required"
	} else if _, err := time.Parse("15:04", r.StartTime); err != nil {
		problems["start_time"] = "start time must be HH:MM"
	}

	switch {
	case r.DurationMin <= 0:
		problems["duration_min"] = "a duration is required"
	case !allowedDuration(r.DurationMin):
		problems["duration_min"] = "duration must be one of the offered slots"
	case timeslot.ClockToMinutes(r.StartTime)+r.DurationMin > 24*60:
		problems["duration_min"] = "reservation must end before midnight"
	}

	if !opts.AllowPast {
		if _, ok := problems["date"]; !ok {
			if _, ok := problems["start_time"]; !ok {
				if start, ok := StartAt(r); ok && start.Before(now) {
					problems["start_time"] = "start time is in the past"
				}
			}
		}
	}

	return problems
}

func allowedDuration(minutes int) bool {
	return minutes >= 30 && minutes <= 180 && minutes%30 == 0
}
