package timeslot

import "testing"

func TestDurationToMinutes(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int
	}{
		{"hour and a half", "01:30", 90},
		{"one hour", "01:00", 60},
		{"half hour", "00:30", 30},
		{"three hours", "03:00", 180},
		{"no leading zero", "9:15", 555},
		{"empty string", "", 0},
		{"missing colon", "90", 0},
		{"garbage", "ab:cd", 0},
		{"negative hour", "-1:30", 0},
		{"minutes out of range", "01:75", 0},
		{"whitespace padded", " 02:00 ", 120},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DurationToMinutes(tt.input); got != tt.want {
				t.Errorf("DurationToMinutes(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestMinutesToClockRoundTrip(t *testing.T) {
	for _, minutes := range []int{30, 60, 90, 120, 150, 180, 555} {
		clock := MinutesToClock(minutes)
		if got := DurationToMinutes(clock); got != minutes {
			t.Errorf("round trip of %d via %q = %d", minutes, clock, got)
		}
	}

	if got := MinutesToClock(-10); got != "00:00" {
		t.Errorf("MinutesToClock(-10) = %q, want 00:00", got)
	}
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name string
		a, b Interval
		want bool
	}{
		{"contained", Interval{600, 660}, Interval{630, 650}, true},
		{"partial left", Interval{600, 660}, Interval{570, 630}, true},
		{"partial right", Interval{600, 660}, Interval{630, 690}, true},
		{"identical", Interval{600, 660}, Interval{600, 660}, true},
		{"touching end to start", Interval{540, 600}, Interval{600, 660}, false},
		{"touching start to end", Interval{600, 660}, Interval{540, 600}, false},
		{"disjoint", Interval{540, 600}, Interval{720, 780}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Overlaps(tt.a, tt.b); got != tt.want {
				t.Errorf("Overlaps(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
			// overlap is symmetric
			if got := Overlaps(tt.b, tt.a); got != tt.want {
				t.Errorf("Overlaps(%v, %v) = %v, want %v", tt.b, tt.a, got, tt.want)
			}
		})
	}
}

func TestIntervalMinutes(t *testing.T) {
	if got := NewInterval(600, 90).Minutes(); got != 90 {
		t.Errorf("Minutes() = %d, want 90", got)
	}
	if got := (Interval{Start: 600, End: 600}).Minutes(); got != 0 {
		t.Errorf("empty interval Minutes() = %d, want 0", got)
	}
	if !(Interval{Start: 660, End: 600}).Empty() {
		t.Error("inverted interval should be empty")
	}
}
