package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/kollapso/booking/internal/entity"
)

type bookingRepository struct {
	db *sql.DB
}

func NewBookingRepository(db *sql.DB) BookingRepository {
	return &bookingRepository{db: db}
}

const bookingColumns = `
	id, name, email, phone, event_date, location, event_type, details,
	user_id, user_email, status, created_at, updated_at, updated_by
`

func scanBooking(row interface {
	Scan(dest ...interface{}) error
}) (*entity.Booking, error) {
	var booking entity.Booking
	var updatedBy sql.NullString
	err := row.Scan(
		&booking.ID,
		&booking.Name,
		&booking.Email,
		&booking.Phone,
		&booking.EventDate,
		&booking.Location,
		&booking.EventType,
		&booking.Details,
		&booking.UserID,
		&booking.UserEmail,
		&booking.Status,
		&booking.CreatedAt,
		&booking.UpdatedAt,
		&updatedBy,
	)
	if err != nil {
		return nil, err
	}
	booking.UpdatedBy = updatedBy.String
	return &booking, nil
}

func (r *bookingRepository) Create(ctx context.Context, booking *entity.Booking) error {
	query := `
		INSERT INTO bookings (
			id, name, email, phone, event_date, location, event_type, details,
			user_id, user_email, status, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	now := time.Now()
	_, err := r.db.ExecContext(ctx, query,
		booking.ID,
		booking.Name,
		booking.Email,
		booking.Phone,
		booking.EventDate,
		booking.Location,
		booking.EventType,
		booking.Details,
		booking.UserID,
		booking.UserEmail,
		booking.Status,
		now,
		now,
	)
	if err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}

	booking.CreatedAt = now
	booking.UpdatedAt = now
	return nil
}

func (r *bookingRepository) GetByID(ctx context.Context, id string) (*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	booking, err := scanBooking(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, entity.ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", entity.ErrStoreUnreachable, err)
	}
	return booking, nil
}

func (r *bookingRepository) Update(ctx context.Context, booking *entity.Booking) error {
	query := `
		UPDATE bookings
		SET name = $1, email = $2, phone = $3, event_date = $4, location = $5,
			event_type = $6, details = $7, status = $8, updated_at = $9, updated_by = $10
		WHERE id = $11
	`

	now := time.Now()
	result, err := r.db.ExecContext(ctx, query,
		booking.Name,
		booking.Email,
		booking.Phone,
		booking.EventDate,
		booking.Location,
		booking.EventType,
		booking.Details,
		booking.Status,
		now,
		booking.UpdatedBy,
		booking.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update booking: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return entity.ErrBookingNotFound
	}

	booking.UpdatedAt = now
	return nil
}

func (r *bookingRepository) UpdateStatus(ctx context.Context, id string, status entity.BookingStatus, updatedBy string) error {
	query := `UPDATE bookings SET status = $1, updated_at = $2, updated_by = $3 WHERE id = $4`

	result, err := r.db.ExecContext(ctx, query, status, time.Now(), updatedBy, id)
	if err != nil {
		return fmt.Errorf("failed to update booking status: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return entity.ErrBookingNotFound
	}
	return nil
}

func (r *bookingRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM bookings WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete booking: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return entity.ErrBookingNotFound
	}
	return nil
}

func (r *bookingRepository) GetAll(ctx context.Context) ([]*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings ORDER BY event_date`
	return r.queryBookings(ctx, query)
}

func (r *bookingRepository) GetByUserID(ctx context.Context, userID int64) ([]*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE user_id = $1 ORDER BY event_date`
	return r.queryBookings(ctx, query, userID)
}

// GetActive is the whole-collection scan the occupied-dates feed and the
// conflict check are built from.
func (r *bookingRepository) GetActive(ctx context.Context) ([]*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE status = 'active'`
	return r.queryBookings(ctx, query)
}

func (r *bookingRepository) PurgeCancelled(ctx context.Context, before time.Time) (int64, error) {
	query := `DELETE FROM bookings WHERE status = 'cancelled' AND updated_at < $1`

	result, err := r.db.ExecContext(ctx, query, before)
	if err != nil {
		return 0, fmt.Errorf("failed to purge cancelled bookings: %w", err)
	}
	return result.RowsAffected()
}

func (r *bookingRepository) queryBookings(ctx context.Context, query string, args ...interface{}) ([]*entity.Booking, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", entity.ErrStoreUnreachable, err)
	}
	defer rows.Close()

	var bookings []*entity.Booking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, booking)
	}

	return bookings, rows.Err()
}
