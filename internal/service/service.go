package service

import (
	"context"

	"github.com/kollapso/booking/internal/entity"
)

// AuthService defines signup, login and token verification
type AuthService interface {
	Signup(ctx context.Context, req *SignupRequest) (*entity.User, error)
	Login(ctx context.Context, req *LoginRequest) (*LoginResponse, error)
	Logout(ctx context.Context, token string) error
	Verify(ctx context.Context, token string) (*entity.Identity, error)
}

// BookingService defines operations on the band's show calendar
type BookingService interface {
	// Availability
	OccupiedDates(ctx context.Context) ([]string, error)

	// CRUD operations
	CreateBooking(ctx context.Context, caller *entity.Identity, req *CreateBookingRequest) (*entity.Booking, error)
	ListBookings(ctx context.Context, caller *entity.Identity) ([]*entity.Booking, error)
	GetBooking(ctx context.Context, caller *entity.Identity, id string) (*entity.Booking, error)
	UpdateBooking(ctx context.Context, caller *entity.Identity, id string, req *UpdateBookingRequest) (*entity.Booking, error)
	CancelBooking(ctx context.Context, caller *entity.Identity, id string) error
	DeleteBooking(ctx context.Context, caller *entity.Identity, id string) error
}

// GameService defines the rental catalog operations
type GameService interface {
	CreateGame(ctx context.Context, req *GameRequest) (*entity.Game, error)
	GetGame(ctx context.Context, id int64) (*entity.Game, error)
	ListGames(ctx context.Context) ([]*entity.Game, error)
	UpdateGame(ctx context.Context, id int64, req *GameRequest) (*entity.Game, error)
	DeleteGame(ctx context.Context, id int64) error
}

// ReservationService defines operations on per-game rental calendars
type ReservationService interface {
	// Availability
	ReservedDates(ctx context.Context, gameID int64) ([]string, error)

	// CRUD operations
	CreateReservation(ctx context.Context, caller *entity.Identity, gameID int64, req *CreateReservationRequest) (*entity.Reservation, error)
	ListReservations(ctx context.Context, caller *entity.Identity) ([]*entity.Reservation, error)
	GetReservation(ctx context.Context, caller *entity.Identity, id string) (*entity.Reservation, error)
	UpdateReservation(ctx context.Context, caller *entity.Identity, id string, req *UpdateReservationRequest) (*entity.Reservation, error)
	CancelReservation(ctx context.Context, caller *entity.Identity, id string) error
	DeleteReservation(ctx context.Context, caller *entity.Identity, id string) error
}
