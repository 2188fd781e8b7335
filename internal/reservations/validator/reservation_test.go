package validator

import (
	"io"
	"testing"

	"chedoparti/pkg/logger"
	"chedoparti/pkg/model"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Output: io.Discard})
}

func validReservation() *model.Reservation {
	return &model.Reservation{
		CourtID:     "court-1",
		Date:        "2026-09-01",
		StartTime:   "10:00",
		DurationMin: 90,
		Type:        model.TypeNormal,
		Status:      model.StatusPending,
		OwnerID:     "member-1",
	}
}

func TestValidate(t *testing.T) {
	v := NewReservationValidator(testLogger())

	t.Run("valid reservation", func(t *testing.T) {
		if err := v.Validate(validReservation()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	tests := []struct {
		name   string
		mutate func(*model.Reservation)
	}{
		{"missing court", func(r *model.Reservation) { r.CourtID = "" }},
		{"missing owner", func(r *model.Reservation) { r.OwnerID = "" }},
		{"bad date format", func(r *model.Reservation) { r.Date = "01-09-2026" }},
		{"bad start time", func(r *model.Reservation) { r.StartTime = "10:75" }},
		{"start time with seconds", func(r *model.Reservation) { r.StartTime = "10:00:00" }},
		{"duration too short", func(r *model.Reservation) { r.DurationMin = 15 }},
		{"duration too long", func(r *model.Reservation) { r.DurationMin = 210 }},
		{"duration off grid", func(r *model.Reservation) { r.DurationMin = 45 }},
		{"unknown type", func(r *model.Reservation) { r.Type = "party" }},
		{"unknown status", func(r *model.Reservation) { r.Status = "archived" }},
		{"too many players", func(r *model.Reservation) { r.Players = 31 }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := validReservation()
			tc.mutate(r)
			if err := v.Validate(r); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestValidateUpdate(t *testing.T) {
	v := NewReservationValidator(testLogger())

	t.Run("empty update is fine", func(t *testing.T) {
		if err := v.ValidateUpdate(&model.ReservationUpdate{}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("partial update is fine", func(t *testing.T) {
		d := 120
		if err := v.ValidateUpdate(&model.ReservationUpdate{DurationMin: &d, StartTime: "18:30"}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("bad duration rejected", func(t *testing.T) {
		d := 45
		if err := v.ValidateUpdate(&model.ReservationUpdate{DurationMin: &d}); err == nil {
			t.Fatal("expected validation error")
		}
	})

	t.Run("bad start time rejected", func(t *testing.T) {
		if err := v.ValidateUpdate(&model.ReservationUpdate{StartTime: "25:00"}); err == nil {
			t.Fatal("expected validation error")
		}
	})
}
