package locale

import (
	"testing"
	"time"
)

func TestWeekendDays(t *testing.T) {
	tests := []struct {
		region string
		want   []time.Weekday
	}{
		{"AR", []time.Weekday{time.Saturday, time.Sunday}},
		{"IL", []time.Weekday{time.Friday, time.Saturday}},
		{"US", []time.Weekday{time.Saturday, time.Sunday}},
		{"ZZ", []time.Weekday{time.Saturday, time.Sunday}},
		{"", []time.Weekday{time.Saturday, time.Sunday}},
	}

	for _, tt := range tests {
		got := WeekendDays(tt.region)
		if len(got) != len(tt.want) {
			t.Errorf("WeekendDays(%q) = %v, want %v", tt.region, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("WeekendDays(%q)[%d] = %v, want %v", tt.region, i, got[i], tt.want[i])
			}
		}
	}
}

func TestIsWeekend(t *testing.T) {
	friday := time.Date(2026, 9, 4, 12, 0, 0, 0, time.UTC)
	saturday := time.Date(2026, 9, 5, 12, 0, 0, 0, time.UTC)
	sunday := time.Date(2026, 9, 6, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		t      time.Time
		region string
		want   bool
	}{
		{"saturday in AR", saturday, "AR", true},
		{"sunday in AR", sunday, "AR", true},
		{"friday in AR", friday, "AR", false},
		{"friday in IL", friday, "IL", true},
		{"sunday in IL", sunday, "IL", false},
		{"sunday in unknown region", sunday, "ZZ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsWeekend(tt.t, tt.region); got != tt.want {
				t.Errorf("IsWeekend(%s, %q) = %v, want %v", tt.t.Weekday(), tt.region, got, tt.want)
			}
		})
	}
}
