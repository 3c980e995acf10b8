package repository

import (
	"context"
	"time"

	"github.com/kollapso/booking/internal/entity"
)

type BookingRepository interface {
	// Basic CRUD operations
	Create(ctx context.Context, booking *entity.Booking) error
	GetByID(ctx context.Context, id string) (*entity.Booking, error)
	Update(ctx context.Context, booking *entity.Booking) error
	UpdateStatus(ctx context.Context, id string, status entity.BookingStatus, updatedBy string) error
	Delete(ctx context.Context, id string) error

	// Query operations
	GetAll(ctx context.Context) ([]*entity.Booking, error)
	GetByUserID(ctx context.Context, userID int64) ([]*entity.Booking, error)
	GetActive(ctx context.Context) ([]*entity.Booking, error)

	// Retention operations
	PurgeCancelled(ctx context.Context, before time.Time) (int64, error)
}

type GameRepository interface {
	Create(ctx context.Context, game *entity.Game) error
	GetByID(ctx context.Context, id int64) (*entity.Game, error)
	GetAll(ctx context.Context) ([]*entity.Game, error)
	Update(ctx context.Context, game *entity.Game) error
	Delete(ctx context.Context, id int64) error
}

type ReservationRepository interface {
	// Basic CRUD operations
	Create(ctx context.Context, reservation *entity.Reservation) error
	GetByID(ctx context.Context, id string) (*entity.Reservation, error)
	Update(ctx context.Context, reservation *entity.Reservation) error
	UpdateStatus(ctx context.Context, id string, status entity.ReservationStatus, updatedBy string) error
	Delete(ctx context.Context, id string) error

	// Query operations
	GetAll(ctx context.Context) ([]*entity.Reservation, error)
	GetByUserID(ctx context.Context, userID int64) ([]*entity.Reservation, error)
	GetByGameID(ctx context.Context, gameID int64) ([]*entity.Reservation, error)
	GetActiveByGameID(ctx context.Context, gameID int64) ([]*entity.Reservation, error)

	// Retention operations
	PurgeCancelled(ctx context.Context, before time.Time) (int64, error)
}

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id int64) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
}
