package model

import "time"

// Open match statuses.
const (
	MatchOpen      = "open"
	MatchFull      = "full"
	MatchCancelled = "cancelled"
)

// OpenMatch is a public call for players on a reserved slot. The slot itself
// is referenced through an opaque token so invite links never expose raw
// court/reservation ids.
type OpenMatch struct {
	ID            string            `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	SlotToken     string            `json:"slot_token" bson:"slot_token" validate:"required"`
	CourtID       string            `json:"court_id" bson:"court_id" validate:"required"`
	Sport         string            `json:"sport" bson:"sport" validate:"required,oneof=padel tennis football basketball"`
	Date          string            `json:"date" bson:"date" validate:"required,datetime=2006-01-02"`
	StartTime     string            `json:"start_time" bson:"start_time" validate:"required,clock_time"`
	DurationMin   int               `json:"duration_min" bson:"duration_min" validate:"required,min=30,max=180"`
	OrganizerID   string            `json:"organizer_id" bson:"organizer_id" validate:"required"`
	OrganizerName string            `json:"organizer_name" bson:"organizer_name" validate:"required,min=2,max=100"`
	Level         string            `json:"level,omitempty" bson:"level" validate:"omitempty,oneof=beginner intermediate advanced"`
	Capacity      int               `json:"capacity" bson:"capacity" validate:"required,min=2,max=30"`
	Players       map[string]string `json:"players" bson:"players" validate:"omitempty,players_map"`
	Status        string            `json:"status" bson:"status" validate:"required,oneof=open full cancelled"`
	Notes         string            `json:"notes,omitempty" bson:"notes" validate:"omitempty,max=500"`
	CreatedAt     time.Time         `json:"created_at" bson:"created_at" validate:"omitempty"`
}

type OpenMatchUpdate struct {
	Level    string             `json:"level,omitempty" validate:"omitempty,oneof=beginner intermediate advanced"`
	Capacity *int               `json:"capacity,omitempty" validate:"omitempty,min=2,max=30"`
	Players  *map[string]string `json:"players,omitempty" validate:"omitempty,players_map"`
	Status   string             `json:"status,omitempty" validate:"omitempty,oneof=open full cancelled"`
	Notes    *string            `json:"notes,omitempty" validate:"omitempty,max=500"`
}

// SpotsLeft returns the number of open player spots.
func (m *OpenMatch) SpotsLeft() int {
	left := m.Capacity - len(m.Players)
	if left < 0 {
		return 0
	}
	return left
}
