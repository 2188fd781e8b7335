package errors

import "errors"

var (
	ErrNotFound = errors.New("reservation not found")

	ErrInvalidID = errors.New("invalid reservation ID format")

	ErrSlotConflict = errors.New("reservation overlaps an existing reservation")

	ErrTerminalStatus = errors.New("reservation is in a terminal status")
)
