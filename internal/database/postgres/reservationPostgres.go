package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/kollapso/booking/internal/entity"
)

type reservationRepository struct {
	db *sql.DB
}

func NewReservationRepository(db *sql.DB) ReservationRepository {
	return &reservationRepository{db: db}
}

const reservationColumns = `
	id, game_id, user_id, user_email, reserved_date, status,
	created_at, updated_at, updated_by
`

func scanReservation(row interface {
	Scan(dest ...interface{}) error
}) (*entity.Reservation, error) {
	var reservation entity.Reservation
	var updatedBy sql.NullString
	err := row.Scan(
		&reservation.ID,
		&reservation.GameID,
		&reservation.UserID,
		&reservation.UserEmail,
		&reservation.ReservedDate,
		&reservation.Status,
		&reservation.CreatedAt,
		&reservation.UpdatedAt,
		&updatedBy,
	)
	if err != nil {
		return nil, err
	}
	reservation.UpdatedBy = updatedBy.String
	return &reservation, nil
}

func (r *reservationRepository) Create(ctx context.Context, reservation *entity.Reservation) error {
	query := `
		INSERT INTO reservations (
			id, game_id, user_id, user_email, reserved_date, status, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	now := time.Now()
	_, err := r.db.ExecContext(ctx, query,
		reservation.ID,
		reservation.GameID,
		reservation.UserID,
		reservation.UserEmail,
		reservation.ReservedDate,
		reservation.Status,
		now,
		now,
	)
	if err != nil {
		return fmt.Errorf("failed to create reservation: %w", err)
	}

	reservation.CreatedAt = now
	reservation.UpdatedAt = now
	return nil
}

func (r *reservationRepository) GetByID(ctx context.Context, id string) (*entity.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE id = $1`

	reservation, err := scanReservation(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, entity.ErrReservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", entity.ErrStoreUnreachable, err)
	}
	return reservation, nil
}

func (r *reservationRepository) Update(ctx context.Context, reservation *entity.Reservation) error {
	query := `
		UPDATE reservations
		SET game_id = $1, reserved_date = $2, status = $3, updated_at = $4, updated_by = $5
		WHERE id = $6
	`

	now := time.Now()
	result, err := r.db.ExecContext(ctx, query,
		reservation.GameID,
		reservation.ReservedDate,
		reservation.Status,
		now,
		reservation.UpdatedBy,
		reservation.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update reservation: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return entity.ErrReservationNotFound
	}

	reservation.UpdatedAt = now
	return nil
}

func (r *reservationRepository) UpdateStatus(ctx context.Context, id string, status entity.ReservationStatus, updatedBy string) error {
	query := `UPDATE reservations SET status = $1, updated_at = $2, updated_by = $3 WHERE id = $4`

	result, err := r.db.ExecContext(ctx, query, status, time.Now(), updatedBy, id)
	if err != nil {
		return fmt.Errorf("failed to update reservation status: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return entity.ErrReservationNotFound
	}
	return nil
}

func (r *reservationRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM reservations WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete reservation: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return entity.ErrReservationNotFound
	}
	return nil
}

func (r *reservationRepository) GetAll(ctx context.Context) ([]*entity.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations ORDER BY reserved_date`
	return r.queryReservations(ctx, query)
}

func (r *reservationRepository) GetByUserID(ctx context.Context, userID int64) ([]*entity.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE user_id = $1 ORDER BY reserved_date`
	return r.queryReservations(ctx, query, userID)
}

func (r *reservationRepository) GetByGameID(ctx context.Context, gameID int64) ([]*entity.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE game_id = $1 ORDER BY reserved_date`
	return r.queryReservations(ctx, query, gameID)
}

// GetActiveByGameID is the per-game scan the reserved-dates feed and the
// conflict check are built from.
func (r *reservationRepository) GetActiveByGameID(ctx context.Context, gameID int64) ([]*entity.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE game_id = $1 AND status = 'active'`
	return r.queryReservations(ctx, query, gameID)
}

func (r *reservationRepository) PurgeCancelled(ctx context.Context, before time.Time) (int64, error) {
	query := `DELETE FROM reservations WHERE status = 'cancelled' AND updated_at < $1`

	result, err := r.db.ExecContext(ctx, query, before)
	if err != nil {
		return 0, fmt.Errorf("failed to purge cancelled reservations: %w", err)
	}
	return result.RowsAffected()
}

func (r *reservationRepository) queryReservations(ctx context.Context, query string, args ...interface{}) ([]*entity.Reservation, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", entity.ErrStoreUnreachable, err)
	}
	defer rows.Close()

	var reservations []*entity.Reservation
	for rows.Next() {
		reservation, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		reservations = append(reservations, reservation)
	}

	return reservations, rows.Err()
}
