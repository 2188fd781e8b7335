// Package pricing computes reservation quotes. A quote is deterministic over
// its inputs and the configured rate table; nothing here reads the clock or
// touches storage, so the same request always prices the same.
package pricing

import (
	"math"
	"time"

	"chedoparti/pkg/locale"
	"chedoparti/pkg/model"
)

// SportPricing overrides the default rate and multipliers for one sport.
type SportPricing struct {
	HourlyRate        int64   `json:"hourly_rate"`
	PeakMultiplier    float64 `json:"peak_multiplier"`
	WeekendMultiplier float64 `json:"weekend_multiplier"`
}

// Config is the rate table a Calculator prices against. Zero multipliers are
// treated as 1.0 so a sparsely populated config never zeroes a quote.
type Config struct {
	DefaultHourlyRate  int64                   `json:"default_hourly_rate"`
	PeakStartHour      int                     `json:"peak_start_hour"` // inclusive
	PeakEndHour        int                     `json:"peak_end_hour"`   // exclusive
	PeakMultiplier     float64                 `json:"peak_multiplier"`
	WeekendMultiplier  float64                 `json:"weekend_multiplier"`
	MemberDiscountRate float64                 `json:"member_discount_rate"`
	RoundingUnit       int64                   `json:"rounding_unit"`
	Region             string                  `json:"region"`
	Sports             map[string]SportPricing `json:"sports,omitempty"`
}

// DefaultConfig returns the baseline table: flat 2000 per hour, peak between
// 18:00 and 22:00 with no surcharge, 10% member discount, totals rounded to
// the nearest 100. The default region carries a Saturday/Sunday weekend;
// regions with a different weekend (IL) must be set explicitly.
func DefaultConfig() Config {
	return Config{
		DefaultHourlyRate:  2000,
		PeakStartHour:      18,
		PeakEndHour:        22,
		PeakMultiplier:     1.0,
		WeekendMultiplier:  1.0,
		MemberDiscountRate: 0.10,
		RoundingUnit:       100,
		Region:             "AR",
	}
}

// Request carries everything a quote depends on. Court may be nil when the
// caller only knows the sport.
type Request struct {
	Court       *model.Court
	Sport       string
	Date        string // YYYY-MM-DD
	StartMin    int    // minutes from midnight
	DurationMin int
	Member      bool
}

// Breakdown is a priced quote. When Incomplete is true the request lacked a
// duration or a resolvable rate and every amount is zero; callers render that
// as "price pending", not as free.
type Breakdown struct {
	Total            int64   `json:"total"`
	BasePrice        int64   `json:"base_price"`
	PremiumSurcharge int64   `json:"premium_surcharge"`
	MemberDiscount   int64   `json:"member_discount"`
	IsPeakHour       bool    `json:"is_peak_hour"`
	IsWeekend        bool    `json:"is_weekend"`
	DurationHours    float64 `json:"duration_hours"`
	Incomplete       bool    `json:"incomplete,omitempty"`
}

type Calculator struct {
	cfg Config
}

func New(cfg Config) *Calculator {
	return &Calculator{cfg: cfg}
}

// Quote prices a request: hourly rate scaled by duration, peak and weekend
// multipliers applied on top, then the member discount, with the total
// rounded half-up to the configured unit.
func (c *Calculator) Quote(req Request) Breakdown {
	rate, peakMult, weekendMult := c.resolve(req)
	if req.DurationMin <= 0 || rate <= 0 {
		return Breakdown{Incomplete: true}
	}

	hours := float64(req.DurationMin) / 60.0
	base := float64(rate) * hours

	isPeak := c.isPeak(req.StartMin)
	isWeekend := c.isWeekend(req.Date)

	mult := 1.0
	if isPeak {
		mult *= peakMult
	}
	if isWeekend {
		mult *= weekendMult
	}

	subtotal := base * mult
	premium := subtotal - base

	var discount float64
	if req.Member {
		discount = subtotal * c.cfg.MemberDiscountRate
	}

	return Breakdown{
		Total:            c.round(subtotal - discount),
		BasePrice:        roundHalfUp(base, 1),
		PremiumSurcharge: roundHalfUp(premium, 1),
		MemberDiscount:   roundHalfUp(discount, 1),
		IsPeakHour:       isPeak,
		IsWeekend:        isWeekend,
		DurationHours:    hours,
	}
}

func (c *Calculator) resolve(req Request) (rate int64, peakMult, weekendMult float64) {
	peakMult = orOne(c.cfg.PeakMultiplier)
	weekendMult = orOne(c.cfg.WeekendMultiplier)
	rate = c.cfg.DefaultHourlyRate

	sport := req.Sport
	if req.Court != nil {
		sport = req.Court.Sport
	}
	if sp, ok := c.cfg.Sports[sport]; ok {
		if sp.HourlyRate > 0 {
			rate = sp.HourlyRate
		}
		if sp.PeakMultiplier > 0 {
			peakMult = sp.PeakMultiplier
		}
		if sp.WeekendMultiplier > 0 {
			weekendMult = sp.WeekendMultiplier
		}
	}
	if req.Court != nil && req.Court.HourlyRate > 0 {
		rate = req.Court.HourlyRate
	}
	return rate, peakMult, weekendMult
}

func (c *Calculator) isPeak(startMin int) bool {
	hour := startMin / 60
	return hour >= c.cfg.PeakStartHour && hour < c.cfg.PeakEndHour
}

func (c *Calculator) isWeekend(date string) bool {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return false
	}
	return locale.IsWeekend(t, c.cfg.Region)
}

func (c *Calculator) round(v float64) int64 {
	unit := c.cfg.RoundingUnit
	if unit <= 0 {
		unit = 1
	}
	return roundHalfUp(v, unit)
}

func roundHalfUp(v float64, unit int64) int64 {
	return int64(math.Floor(v/float64(unit)+0.5)) * unit
}

func orOne(v float64) float64 {
	if v <= 0 {
		return 1.0
	}
	return v
}
