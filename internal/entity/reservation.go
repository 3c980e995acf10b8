package entity

import (
	"time"
)

type ReservationStatus string

const (
	ReservationStatusActive    ReservationStatus = "active"
	ReservationStatusCancelled ReservationStatus = "cancelled"
)

// Reservation rents one game for one calendar day. At most one active
// reservation may exist per game per day.
type Reservation struct {
	ID           string            `json:"id" db:"id"`
	GameID       int64             `json:"game_id" db:"game_id"`
	UserID       int64             `json:"user_id" db:"user_id"`
	UserEmail    string            `json:"user_email" db:"user_email"`
	ReservedDate time.Time         `json:"reserved_date" db:"reserved_date"`
	Status       ReservationStatus `json:"status" db:"status"`
	CreatedAt    time.Time         `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at" db:"updated_at"`
	UpdatedBy    string            `json:"updated_by,omitempty" db:"updated_by"`
}
