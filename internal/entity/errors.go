package entity

import "errors"

var (
	// Booking / reservation errors
	ErrBookingNotFound     = errors.New("booking not found")
	ErrReservationNotFound = errors.New("reservation not found")
	ErrDateConflict        = errors.New("date is already taken")
	ErrPastDate            = errors.New("date cannot be in the past")
	ErrAlreadyCancelled    = errors.New("record is already cancelled")
	ErrPastEventCancel     = errors.New("cannot cancel a past event")

	// Game errors
	ErrGameNotFound = errors.New("game not found")

	// User errors
	ErrUserNotFound       = errors.New("user not found")
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")

	// General errors
	ErrInvalidInput     = errors.New("invalid input")
	ErrUnauthenticated  = errors.New("unauthenticated")
	ErrForbidden        = errors.New("forbidden operation")
	ErrStoreUnreachable = errors.New("datastore unreachable")
)
