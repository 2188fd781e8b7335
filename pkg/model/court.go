package model

import "time"

// Sports offered by institutions. The list mirrors what the booking surface
// exposes; pricing falls back to the institution default for anything else.
const (
	SportPadel      = "padel"
	SportTennis     = "tennis"
	SportFootball   = "football"
	SportBasketball = "basketball"
)

type Court struct {
	ID            string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	InstitutionID string    `json:"institution_id" bson:"institution_id" validate:"required"`
	Name          string    `json:"name" bson:"name" validate:"required,min=2,max=100"`
	Sport         string    `json:"sport" bson:"sport" validate:"required,oneof=padel tennis football basketball"`
	HourlyRate    int64     `json:"hourly_rate,omitempty" bson:"hourly_rate" validate:"omitempty,min=1"`
	Indoor        bool      `json:"indoor,omitempty" bson:"indoor"`
	Lighting      bool      `json:"lighting,omitempty" bson:"lighting"`
	Active        bool      `json:"active" bson:"active"`
	CreatedAt     time.Time `json:"created_at" bson:"created_at" validate:"omitempty"`
}

type CourtUpdate struct {
	Name       string `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	Sport      string `json:"sport,omitempty" validate:"omitempty,oneof=padel tennis football basketball"`
	HourlyRate *int64 `json:"hourly_rate,omitempty" validate:"omitempty,min=1"`
	Indoor     *bool  `json:"indoor,omitempty"`
	Lighting   *bool  `json:"lighting,omitempty"`
	Active     *bool  `json:"active,omitempty"`
}
