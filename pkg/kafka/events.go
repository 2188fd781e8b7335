package kafka

import "time"

// Topics the booking platform publishes on.
const (
	TopicReservations    = "chedoparti.reservations"
	TopicReservationsDLQ = "chedoparti.reservations.dlq"
	TopicOpenMatches     = "chedoparti.open-matches"
	TopicOpenMatchesDLQ  = "chedoparti.open-matches.dlq"
)

// Event types carried in the event-type header.
const (
	EventReservationCreated   = "reservation.created"
	EventReservationUpdated   = "reservation.updated"
	EventReservationCancelled = "reservation.cancelled"

	EventOpenMatchCreated      = "openmatch.created"
	EventOpenMatchPlayerJoined = "openmatch.player_joined"
	EventOpenMatchPlayerLeft   = "openmatch.player_left"
	EventOpenMatchFull         = "openmatch.full"
	EventOpenMatchCancelled    = "openmatch.cancelled"
)

// ReservationEvent is the payload for reservation lifecycle events. Keyed by
// reservation id so one reservation's events stay ordered on a partition.
type ReservationEvent struct {
	ReservationID string    `json:"reservation_id"`
	CourtID       string    `json:"court_id"`
	InstitutionID string    `json:"institution_id,omitempty"`
	OwnerID       string    `json:"owner_id"`
	Date          string    `json:"date"`
	StartTime     string    `json:"start_time"`
	DurationMin   int       `json:"duration_min"`
	Type          string    `json:"type"`
	Status        string    `json:"status"`
	Price         int64     `json:"price"`
	CancelledBy   string    `json:"cancelled_by,omitempty"`
	CancelReason  string    `json:"cancel_reason,omitempty"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// OpenMatchEvent is the payload for open match lifecycle events.
type OpenMatchEvent struct {
	MatchID    string    `json:"match_id"`
	CourtID    string    `json:"court_id"`
	HostID     string    `json:"host_id"`
	Date       string    `json:"date"`
	StartTime  string    `json:"start_time"`
	Capacity   int       `json:"capacity"`
	SpotsLeft  int       `json:"spots_left"`
	PlayerName string    `json:"player_name,omitempty"`
	Status     string    `json:"status"`
	OccurredAt time.Time `json:"occurred_at"`
}
