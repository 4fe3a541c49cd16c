package errors

import "errors"

var (
	ErrNotFound = errors.New("booking not found")

	ErrInvalidID = errors.New("invalid booking ID format")

	ErrSlotConflict = errors.New("time slot already booked")

	ErrDuplicateID = errors.New("booking ID already in use")
)
