package locale

import "time"

// Only regions whose weekend deviates from Saturday/Sunday need an entry.
var weekendDays = map[string][]time.Weekday{
	"IL": {time.Friday, time.Saturday},
}

// WeekendDays returns the weekend for a region. Unknown regions get the
// Saturday/Sunday weekend.
func WeekendDays(region string) []time.Weekday {
	if days, ok := weekendDays[region]; ok {
		return days
	}
	return []time.Weekday{time.Saturday, time.Sunday}
}

// IsWeekend reports whether t falls on the region's weekend.
func IsWeekend(t time.Time, region string) bool {
	day := t.Weekday()
	for _, d := range WeekendDays(region) {
		if day == d {
			return true
		}
	}
	return false
}
