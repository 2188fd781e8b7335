package testutil

import (
	"fmt"
	"time"

	"chedoparti/pkg/model"
)

// FutureDate returns a date string the given number of days ahead, so
// fixtures always clear the booking lead time checks.
func FutureDate(days int) string {
	return time.Now().AddDate(0, 0, days).Format("2006-01-02")
}

type CourtBuilder struct {
	court model.Court
}

func NewCourtBuilder() *CourtBuilder {
	return &CourtBuilder{
		court: model.Court{
			InstitutionID: "inst-001",
			Name:          "Center Court",
			Sport:         model.SportPadel,
			HourlyRate:    2000,
			Indoor:        true,
			Lighting:      true,
		},
	}
}

func (b *CourtBuilder) WithName(name string) *CourtBuilder {
	b.court.Name = name
	return b
}

func (b *CourtBuilder) WithSport(sport string) *CourtBuilder {
	b.court.Sport = sport
	return b
}

func (b *CourtBuilder) WithHourlyRate(rate int64) *CourtBuilder {
	b.court.HourlyRate = rate
	return b
}

func (b *CourtBuilder) Build() model.Court {
	return b.court
}

type ReservationBuilder struct {
	reservation model.Reservation
}

func NewReservationBuilder() *ReservationBuilder {
	return &ReservationBuilder{
		reservation: model.Reservation{
			CourtID:     "court-001",
			Date:        FutureDate(7),
			StartTime:   "10:00",
			DurationMin: 60,
			Type:        model.TypeNormal,
			Players:     4,
		},
	}
}

func (b *ReservationBuilder) WithCourt(courtID string) *ReservationBuilder {
	b.reservation.CourtID = courtID
	return b
}

func (b *ReservationBuilder) WithDate(date string) *ReservationBuilder {
	b.reservation.Date = date
	return b
}

func (b *ReservationBuilder) WithStartTime(start string) *ReservationBuilder {
	b.reservation.StartTime = start
	return b
}

func (b *ReservationBuilder) WithDuration(minutes int) *ReservationBuilder {
	b.reservation.DurationMin = minutes
	return b
}

func (b *ReservationBuilder) WithType(reservationType string) *ReservationBuilder {
	b.reservation.Type = reservationType
	return b
}

func (b *ReservationBuilder) Build() model.Reservation {
	return b.reservation
}

type OpenMatchBuilder struct {
	match model.OpenMatch
}

func NewOpenMatchBuilder() *OpenMatchBuilder {
	return &OpenMatchBuilder{
		match: model.OpenMatch{
			CourtID:       "court-001",
			Sport:         model.SportPadel,
			Date:          FutureDate(7),
			StartTime:     "19:00",
			DurationMin:   90,
			OrganizerName: "Dana",
			Level:         "intermediate",
			Capacity:      4,
		},
	}
}

func (b *OpenMatchBuilder) WithCourt(courtID string) *OpenMatchBuilder {
	b.match.CourtID = courtID
	return b
}

func (b *OpenMatchBuilder) WithCapacity(capacity int) *OpenMatchBuilder {
	b.match.Capacity = capacity
	return b
}

func (b *OpenMatchBuilder) WithOrganizerName(name string) *OpenMatchBuilder {
	b.match.OrganizerName = name
	return b
}

func (b *OpenMatchBuilder) Build() model.OpenMatch {
	return b.match
}

// UniqueUserID returns a user id namespaced by test run time, so repeated
// runs against one database do not collide.
func UniqueUserID(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, time.Now().UnixNano())
}
