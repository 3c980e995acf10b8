package entity

import (
	"time"
)

type BookingStatus string

const (
	BookingStatusActive    BookingStatus = "active"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// Booking is a show request against the band's single calendar. At most one
// active booking may exist per calendar day.
type Booking struct {
	ID        string        `json:"id" db:"id"`
	Name      string        `json:"name" db:"name"`
	Email     string        `json:"email" db:"email"`
	Phone     string        `json:"phone" db:"phone"`
	EventDate time.Time     `json:"event_date" db:"event_date"`
	Location  string        `json:"location" db:"location"`
	EventType string        `json:"event_type" db:"event_type"`
	Details   string        `json:"details" db:"details"`
	UserID    int64         `json:"user_id" db:"user_id"`
	UserEmail string        `json:"user_email" db:"user_email"`
	Status    BookingStatus `json:"status" db:"status"`
	CreatedAt time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt time.Time     `json:"updated_at" db:"updated_at"`
	UpdatedBy string        `json:"updated_by,omitempty" db:"updated_by"`
}
