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

func validOpenMatch() *model.OpenMatch {
	return &model.OpenMatch{
		SlotToken:     "token-abc",
		CourtID:       "court-1",
		Sport:         model.SportPadel,
		Date:          "2030-06-04",
		StartTime:     "19:00",
		DurationMin:   90,
		OrganizerID:   "user-1",
		OrganizerName: "Dana",
		Capacity:      4,
		Players:       map[string]string{"Dana": "+972501234567"},
		Status:        model.MatchOpen,
	}
}

func TestValidate_ValidMatch(t *testing.T) {
	v := NewOpenMatchValidator(testLogger())

	if err := v.Validate(validOpenMatch()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_TableCases(t *testing.T) {
	v := NewOpenMatchValidator(testLogger())

	tests := []struct {
		name   string
		mutate func(m *model.OpenMatch)
	}{
		{
			name:   "missing slot token",
			mutate: func(m *model.OpenMatch) { m.SlotToken = "" },
		},
		{
			name:   "bad start time",
			mutate: func(m *model.OpenMatch) { m.StartTime = "25:00" },
		},
		{
			name:   "capacity below minimum",
			mutate: func(m *model.OpenMatch) { m.Capacity = 1 },
		},
		{
			name:   "unknown status",
			mutate: func(m *model.OpenMatch) { m.Status = "done" },
		},
		{
			name:   "unknown level",
			mutate: func(m *model.OpenMatch) { m.Level = "pro" },
		},
		{
			name:   "single character player name",
			mutate: func(m *model.OpenMatch) { m.Players = map[string]string{"D": ""} },
		},
		{
			name: "roster over capacity",
			mutate: func(m *model.OpenMatch) {
				m.Capacity = 2
				m.Players = map[string]string{"Dana": "", "Omer": "", "Noa": ""}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := validOpenMatch()
			tt.mutate(m)
			if err := v.Validate(m); err == nil {
				t.Error("expected validation error, got nil")
			}
		})
	}
}

func TestValidateUpdate_PartialFields(t *testing.T) {
	v := NewOpenMatchValidator(testLogger())

	capacity := 6
	update := &model.OpenMatchUpdate{Capacity: &capacity}
	if err := v.ValidateUpdate(update); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	badCapacity := 1
	update = &model.OpenMatchUpdate{Capacity: &badCapacity}
	if err := v.ValidateUpdate(update); err == nil {
		t.Error("expected validation error for capacity below minimum")
	}
}
