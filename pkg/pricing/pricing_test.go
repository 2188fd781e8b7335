package pricing

import (
	"testing"

	"chedoparti/pkg/model"
)

// 2026-09-01 is a Tuesday, 2026-09-04 a Friday, 2026-09-05 a Saturday and
// 2026-09-06 a Sunday.

func TestQuoteBaseline(t *testing.T) {
	calc := New(DefaultConfig())

	tests := []struct {
		name string
		req  Request
		want int64
	}{
		{
			name: "one hour at default rate",
			req:  Request{Date: "2026-09-01", StartMin: 10 * 60, DurationMin: 60},
			want: 2000,
		},
		{
			name: "ninety minutes scales proportionally",
			req:  Request{Date: "2026-09-01", StartMin: 10 * 60, DurationMin: 90},
			want: 3000,
		},
		{
			name: "half hour",
			req:  Request{Date: "2026-09-01", StartMin: 10 * 60, DurationMin: 30},
			want: 1000,
		},
		{
			name: "member gets ten percent off",
			req:  Request{Date: "2026-09-01", StartMin: 10 * 60, DurationMin: 60, Member: true},
			want: 1800,
		},
		{
			name: "peak with default multipliers costs the same",
			req:  Request{Date: "2026-09-01", StartMin: 19 * 60, DurationMin: 60},
			want: 2000,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := calc.Quote(tc.req)
			if got.Incomplete {
				t.Fatal("quote unexpectedly incomplete")
			}
			if got.Total != tc.want {
				t.Fatalf("Total = %d, want %d", got.Total, tc.want)
			}
		})
	}
}

func TestQuoteMultipliers(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Sports = map[string]SportPricing{
		model.SportPadel: {HourlyRate: 2500, PeakMultiplier: 1.3, WeekendMultiplier: 1.2},
	}
	calc := New(cfg)

	t.Run("peak surcharge", func(t *testing.T) {
		got := calc.Quote(Request{Sport: model.SportPadel, Date: "2026-09-01", StartMin: 19 * 60, DurationMin: 60})
		if !got.IsPeakHour {
			t.Error("expected peak hour")
		}
		if got.IsWeekend {
			t.Error("Tuesday is not a weekend")
		}
		// 2500 * 1.3 = 3250, rounds to 3300
		if got.Total != 3300 {
			t.Fatalf("Total = %d, want 3300", got.Total)
		}
		if got.PremiumSurcharge != 750 {
			t.Errorf("PremiumSurcharge = %d, want 750", got.PremiumSurcharge)
		}
	})

	t.Run("weekend surcharge", func(t *testing.T) {
		got := calc.Quote(Request{Sport: model.SportPadel, Date: "2026-09-05", StartMin: 10 * 60, DurationMin: 60})
		if !got.IsWeekend {
			t.Error("Saturday is a weekend")
		}
		// 2500 * 1.2 = 3000
		if got.Total != 3000 {
			t.Fatalf("Total = %d, want 3000", got.Total)
		}
	})

	t.Run("friday is a weekday by default", func(t *testing.T) {
		got := calc.Quote(Request{Sport: model.SportPadel, Date: "2026-09-04", StartMin: 10 * 60, DurationMin: 60})
		if got.IsWeekend {
			t.Error("Friday should not be a weekend by default")
		}
		if got.Total != 2500 {
			t.Fatalf("Total = %d, want 2500", got.Total)
		}
	})

	t.Run("peak and weekend stack", func(t *testing.T) {
		got := calc.Quote(Request{Sport: model.SportPadel, Date: "2026-09-05", StartMin: 20 * 60, DurationMin: 60})
		// 2500 * 1.3 * 1.2 = 3900
		if got.Total != 3900 {
			t.Fatalf("Total = %d, want 3900", got.Total)
		}
	})

	t.Run("member discount applies after multipliers", func(t *testing.T) {
		got := calc.Quote(Request{Sport: model.SportPadel, Date: "2026-09-01", StartMin: 19 * 60, DurationMin: 60, Member: true})
		// 3250 - 325 = 2925, rounds to 2900
		if got.Total != 2900 {
			t.Fatalf("Total = %d, want 2900", got.Total)
		}
		if got.MemberDiscount != 325 {
			t.Errorf("MemberDiscount = %d, want 325", got.MemberDiscount)
		}
	})
}

func TestQuoteWeekendByRegion(t *testing.T) {
	t.Run("default config flags saturday and sunday", func(t *testing.T) {
		calc := New(DefaultConfig())
		for _, date := range []string{"2026-09-05", "2026-09-06"} {
			got := calc.Quote(Request{Date: date, StartMin: 10 * 60, DurationMin: 60})
			if !got.IsWeekend {
				t.Errorf("IsWeekend = false for %s, want true", date)
			}
		}
		got := calc.Quote(Request{Date: "2026-09-04", StartMin: 10 * 60, DurationMin: 60})
		if got.IsWeekend {
			t.Error("IsWeekend = true for Friday 2026-09-04, want false")
		}
	})

	t.Run("IL override moves the weekend to friday and saturday", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Region = "IL"
		calc := New(cfg)
		got := calc.Quote(Request{Date: "2026-09-04", StartMin: 10 * 60, DurationMin: 60})
		if !got.IsWeekend {
			t.Error("IsWeekend = false for Friday under IL, want true")
		}
		got = calc.Quote(Request{Date: "2026-09-06", StartMin: 10 * 60, DurationMin: 60})
		if got.IsWeekend {
			t.Error("IsWeekend = true for Sunday under IL, want false")
		}
	})
}

func TestQuoteRateResolution(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Sports = map[string]SportPricing{
		model.SportTennis: {HourlyRate: 1800},
	}
	calc := New(cfg)

	t.Run("sport rate overrides default", func(t *testing.T) {
		got := calc.Quote(Request{Sport: model.SportTennis, Date: "2026-09-01", StartMin: 10 * 60, DurationMin: 60})
		if got.Total != 1800 {
			t.Fatalf("Total = %d, want 1800", got.Total)
		}
	})

	t.Run("court rate overrides sport rate", func(t *testing.T) {
		court := &model.Court{Sport: model.SportTennis, HourlyRate: 2200}
		got := calc.Quote(Request{Court: court, Date: "2026-09-01", StartMin: 10 * 60, DurationMin: 60})
		if got.Total != 2200 {
			t.Fatalf("Total = %d, want 2200", got.Total)
		}
	})
}

func TestQuoteIncomplete(t *testing.T) {
	calc := New(DefaultConfig())

	for _, tc := range []struct {
		name string
		req  Request
	}{
		{"zero duration", Request{Date: "2026-09-01", StartMin: 10 * 60}},
		{"negative duration", Request{Date: "2026-09-01", StartMin: 10 * 60, DurationMin: -60}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			got := calc.Quote(tc.req)
			if !got.Incomplete {
				t.Fatal("expected incomplete quote")
			}
			if got.Total != 0 || got.BasePrice != 0 {
				t.Fatalf("incomplete quote must be zero, got total %d base %d", got.Total, got.BasePrice)
			}
		})
	}

	t.Run("zero rate config", func(t *testing.T) {
		calc := New(Config{RoundingUnit: 100})
		got := calc.Quote(Request{Date: "2026-09-01", StartMin: 10 * 60, DurationMin: 60})
		if !got.Incomplete {
			t.Fatal("expected incomplete quote without a rate")
		}
	})
}

func TestQuoteRounding(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DefaultHourlyRate = 2150
	calc := New(cfg)

	// 2150 * 0.5 = 1075, half-up to 1100
	got := calc.Quote(Request{Date: "2026-09-01", StartMin: 10 * 60, DurationMin: 30})
	if got.Total != 1100 {
		t.Fatalf("Total = %d, want 1100", got.Total)
	}

	// already on the unit stays put
	got = calc.Quote(Request{Date: "2026-09-01", StartMin: 10 * 60, DurationMin: 60})
	if got.Total != 2200 {
		t.Fatalf("Total = %d, want 2200", got.Total)
	}
}

func TestMemberNeverPaysMore(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Sports = map[string]SportPricing{
		model.SportPadel: {HourlyRate: 2500, PeakMultiplier: 1.3, WeekendMultiplier: 1.2},
	}
	calc := New(cfg)

	for _, start := range []int{8 * 60, 19 * 60} {
		for _, date := range []string{"2026-09-01", "2026-09-04"} {
			req := Request{Sport: model.SportPadel, Date: date, StartMin: start, DurationMin: 90}
			full := calc.Quote(req)
			req.Member = true
			member := calc.Quote(req)
			if member.Total > full.Total {
				t.Errorf("member total %d exceeds non-member %d at %s %d", member.Total, full.Total, date, start)
			}
		}
	}
}
