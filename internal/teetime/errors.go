package teetime

import "errors"

var (
	ErrUnknownSlot         = errors.New("tee time not found")
	ErrReservationNotFound = errors.New("reservation not found")
)

var (
	ErrSlotFull         = errors.New("tee time is full")
	ErrDuplicateBooking = errors.New("player already holds this tee time")
	ErrPositionTaken    = errors.New("requested slot is already taken")
)

var (
	ErrValidation = errors.New("validation error")
)
