package model

import (
	"time"
)

// Reservation statuses. Only confirmed (or pending) reservations may move to
// cancelled/completed; both of those are terminal. Cancelled reservations are
// never deleted, they stay in the collection as a soft-delete record.
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
	StatusCompleted = "completed"
)

// Reservation types. Who may create which type is decided by pkg/rules.
const (
	TypeNormal     = "normal"
	TypeClass      = "class"
	TypeTournament = "tournament"
	TypeSchool     = "school"
	TypeBirthday   = "birthday"
	TypeSeason     = "season"
)

type Reservation struct {
	ID            string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	Code          string    `json:"code,omitempty" bson:"code" validate:"omitempty,min=4,max=36"`
	CourtID       string    `json:"court_id" bson:"court_id" validate:"required"`
	InstitutionID string    `json:"institution_id,omitempty" bson:"institution_id" validate:"omitempty,mongodb"`
	Date          string    `json:"date" bson:"date" validate:"required,datetime=2006-01-02"`
	StartTime     string    `json:"start_time" bson:"start_time" validate:"required,clock_time"`
	DurationMin   int       `json:"duration_min" bson:"duration_min" validate:"required,min=30,max=180"`
	Type          string    `json:"type" bson:"type" validate:"required,oneof=normal class tournament school birthday season"`
	Status        string    `json:"status" bson:"status" validate:"required,oneof=pending confirmed cancelled completed"`
	Price         int64     `json:"price" bson:"price" validate:"omitempty,min=0"`
	OwnerID       string    `json:"owner_id" bson:"owner_id" validate:"required"`
	OwnerIsMember bool      `json:"owner_is_member,omitempty" bson:"owner_is_member"`
	Players       int       `json:"players,omitempty" bson:"players" validate:"omitempty,min=1,max=30"`
	Notes         string    `json:"notes,omitempty" bson:"notes" validate:"omitempty,max=1000"`
	CancelledBy   string    `json:"cancelled_by,omitempty" bson:"cancelled_by,omitempty"`
	CancelReason  string    `json:"cancel_reason,omitempty" bson:"cancel_reason,omitempty" validate:"omitempty,max=500"`
	CreatedAt     time.Time `json:"created_at" bson:"created_at" validate:"omitempty"`
	UpdatedAt     time.Time `json:"updated_at,omitempty" bson:"updated_at,omitempty"`
}

type ReservationUpdate struct {
	CourtID     string `json:"court_id,omitempty" validate:"omitempty"`
	Date        string `json:"date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	StartTime   string `json:"start_time,omitempty" validate:"omitempty,clock_time"`
	DurationMin *int   `json:"duration_min,omitempty" validate:"omitempty,min=30,max=180"`
	Type        string `json:"type,omitempty" validate:"omitempty,oneof=normal class tournament school birthday season"`
	Status      string `json:"status,omitempty" validate:"omitempty,oneof=pending confirmed cancelled completed"`
	Players     *int    `json:"players,omitempty" validate:"omitempty,min=1,max=30"`
	Notes       *string `json:"notes,omitempty" validate:"omitempty,max=1000"`
}

// Active reports whether the reservation still occupies its slot. Cancelled
// reservations release the slot; everything else keeps blocking it.
func (r *Reservation) Active() bool {
	return r.Status != StatusCancelled
}

// Terminal reports whether the reservation reached a final status.
func (r *Reservation) Terminal() bool {
	return r.Status == StatusCancelled || r.Status == StatusCompleted
}
