package model

import "time"

// SlotLock is an advisory lock held while a reservation slot is being booked.
// It prevents two concurrent requests from passing the overlap check for the
// same court/date/start and both inserting.
type SlotLock struct {
	ID        string    `bson:"_id" json:"id"`
	ExpiresAt time.Time `bson:"expires_at" json:"expires_at"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
