// Package timeslot converts the "HH:MM" clock strings used across the booking
// surface into minutes-from-midnight and provides the half-open interval
// arithmetic every availability check is built on.
//
// Parsing is deliberately forgiving: malformed or empty input degrades to 0,
// which callers must treat as "unspecified", never as a zero-length slot. The
// UI feeds partially filled forms through these functions on every change, so
// they must not error out mid-typing.
package timeslot

import (
	"fmt"
	"strconv"
	"strings"
)

// DurationToMinutes parses a "HH:MM" duration into total minutes.
// "01:30" -> 90. Malformed or empty input yields 0.
func DurationToMinutes(s string) int {
	h, m, ok := splitClock(s)
	if !ok {
		return 0
	}
	return h*60 + m
}

// ClockToMinutes parses a "HH:MM" time of day into minutes from midnight.
// Same degradation rules as DurationToMinutes.
func ClockToMinutes(s string) int {
	return DurationToMinutes(s)
}

// MinutesToClock formats minutes as a zero-padded "HH:MM" string.
// 90 -> "01:30". Negative input yields "00:00".
func MinutesToClock(minutes int) string {
	if minutes < 0 {
		minutes = 0
	}
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// HourOf returns the hour component of a "HH:MM" string, or 0 when malformed.
func HourOf(s string) int {
	h, _, ok := splitClock(s)
	if !ok {
		return 0
	}
	return h
}

func splitClock(s string) (hours, minutes int, ok bool) {
	parts := strings.SplitN(strings.TrimSpace(s), ":", 2)
	if len(parts) != 2 {
		return 0, 0, false
	}
	h, errH := strconv.Atoi(parts[0])
	m, errM := strconv.Atoi(parts[1])
	if errH != nil || errM != nil || h < 0 || m < 0 || m > 59 {
		return 0, 0, false
	}
	return h, m, true
}

// Interval is a half-open [Start, End) time window in minutes from midnight.
type Interval struct {
	Start int
	End   int
}

// NewInterval builds an interval from a start and a duration, both in minutes.
func NewInterval(start, durationMin int) Interval {
	return Interval{Start: start, End: start + durationMin}
}

// Overlaps reports whether two half-open intervals share any point in time.
// Touching endpoints (a ends exactly when b starts) do not overlap.
func Overlaps(a, b Interval) bool {
	return a.Start < b.End && a.End > b.Start
}

// Empty reports whether the interval covers no time at all.
func (i Interval) Empty() bool {
	return i.End <= i.Start
}

// Minutes returns the interval length in minutes.
func (i Interval) Minutes() int {
	if i.Empty() {
		return 0
	}
	return i.End - i.Start
}
