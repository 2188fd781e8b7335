package errors

import "errors"

var (
	ErrNotFound = errors.New("open match not found")

	ErrInvalidID = errors.New("invalid open match ID format")

	ErrMatchFull = errors.New("open match has no spots left")

	ErrAlreadyJoined = errors.New("player already joined this match")

	ErrNotJoined = errors.New("player is not part of this match")
)
