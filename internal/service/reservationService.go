package service

import (
	"context"
	"fmt"
	"time"

	repository "github.com/kollapso/booking/internal/database/postgres"
	"github.com/kollapso/booking/internal/entity"
	"github.com/kollapso/booking/internal/schedule"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// CreateReservationRequest rents a game for one calendar day
type CreateReservationRequest struct {
	ReservedDate entity.DateOnly `json:"reserved_date" binding:"required"`
}

// UpdateReservationRequest is a partial edit. Admins may also move the
// reservation to another game; owners may only move the date.
type UpdateReservationRequest struct {
	GameID       *int64           `json:"game_id"`
	ReservedDate *entity.DateOnly `json:"reserved_date"`
}

type reservationService struct {
	reservationRepo repository.ReservationRepository
	gameRepo        repository.GameRepository
	now             func() time.Time
}

// NewReservationService creates a new ReservationService
func NewReservationService(reservationRepo repository.ReservationRepository, gameRepo repository.GameRepository) ReservationService {
	return &reservationService{
		reservationRepo: reservationRepo,
		gameRepo:        gameRepo,
		now:             time.Now,
	}
}

// reservedIndex recomputes the availability index for one game from the
// datastore. Rebuilt inside every request, never cached.
func (s *reservationService) reservedIndex(ctx context.Context, gameID int64) (schedule.Index, error) {
	active, err := s.reservationRepo.GetActiveByGameID(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to load active reservations: %w", err)
	}

	entries := make([]schedule.Entry, 0, len(active))
	for _, r := range active {
		entries = append(entries, schedule.Entry{
			Date:      r.ReservedDate,
			Cancelled: r.Status == entity.ReservationStatusCancelled,
		})
	}
	return schedule.BuildIndex(entries), nil
}

// ReservedDates returns every taken day for one game, for the calendar
// widget to disable.
func (s *reservationService) ReservedDates(ctx context.Context, gameID int64) ([]string, error) {
	if _, err := s.gameRepo.GetByID(ctx, gameID); err != nil {
		return nil, err
	}

	idx, err := s.reservedIndex(ctx, gameID)
	if err != nil {
		return nil, err
	}
	return idx.Keys(), nil
}

// CreateReservation persists a rental after the authoritative conflict check
// for that game's calendar. The client pre-filters against the reserved-dates
// feed, but the server check is the one that counts.
func (s *reservationService) CreateReservation(ctx context.Context, caller *entity.Identity, gameID int64, req *CreateReservationRequest) (*entity.Reservation, error) {
	if _, err := s.gameRepo.GetByID(ctx, gameID); err != nil {
		return nil, err
	}

	date := req.ReservedDate.Time

	if schedule.IsPast(date, s.now()) {
		return nil, entity.ErrPastDate
	}

	idx, err := s.reservedIndex(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if idx.Occupied(date) {
		return nil, entity.ErrDateConflict
	}

	reservation := &entity.Reservation{
		ID:           uuid.NewString(),
		GameID:       gameID,
		UserID:       caller.ID,
		UserEmail:    caller.Email,
		ReservedDate: date,
		Status:       entity.ReservationStatusActive,
	}

	if err := s.reservationRepo.Create(ctx, reservation); err != nil {
		return nil, fmt.Errorf("failed to create reservation: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"reservation_id": reservation.ID,
		"game_id":        gameID,
		"reserved_date":  schedule.DateKey(date),
		"user_id":        caller.ID,
	}).Info("Reservation created")

	return reservation, nil
}

// ListReservations returns all reservations for admins and only the caller's
// own for everyone else.
func (s *reservationService) ListReservations(ctx context.Context, caller *entity.Identity) ([]*entity.Reservation, error) {
	if caller.IsAdmin() {
		return s.reservationRepo.GetAll(ctx)
	}
	return s.reservationRepo.GetByUserID(ctx, caller.ID)
}

func (s *reservationService) GetReservation(ctx context.Context, caller *entity.Identity, id string) (*entity.Reservation, error) {
	reservation, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !caller.IsAdmin() && reservation.UserID != caller.ID {
		return nil, entity.ErrForbidden
	}
	return reservation, nil
}

// UpdateReservation applies an edit. A date or game change re-runs the
// conflict check against the target game's other active reservations.
func (s *reservationService) UpdateReservation(ctx context.Context, caller *entity.Identity, id string, req *UpdateReservationRequest) (*entity.Reservation, error) {
	reservation, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !caller.IsAdmin() {
		if reservation.UserID != caller.ID {
			return nil, entity.ErrForbidden
		}
		if req.GameID != nil {
			return nil, entity.ErrForbidden
		}
	}

	targetGame := reservation.GameID
	if req.GameID != nil {
		if _, err := s.gameRepo.GetByID(ctx, *req.GameID); err != nil {
			return nil, err
		}
		targetGame = *req.GameID
	}

	targetDate := reservation.ReservedDate
	if req.ReservedDate != nil {
		targetDate = req.ReservedDate.Time
	}

	if req.ReservedDate != nil || req.GameID != nil {
		if schedule.IsPast(targetDate, s.now()) {
			return nil, entity.ErrPastDate
		}

		idx, err := s.reservedIndex(ctx, targetGame)
		if err != nil {
			return nil, err
		}
		// within the same game the record may keep its own day
		if targetGame == reservation.GameID {
			delete(idx, schedule.DateKey(reservation.ReservedDate))
		}
		if idx.Occupied(targetDate) {
			return nil, entity.ErrDateConflict
		}
	}

	reservation.GameID = targetGame
	reservation.ReservedDate = targetDate
	reservation.UpdatedBy = caller.Email

	if err := s.reservationRepo.Update(ctx, reservation); err != nil {
		return nil, fmt.Errorf("failed to update reservation: %w", err)
	}

	return reservation, nil
}

// CancelReservation flips an active reservation to cancelled. Owners may only
// cancel their own future rentals; admins may cancel any.
func (s *reservationService) CancelReservation(ctx context.Context, caller *entity.Identity, id string) error {
	reservation, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if !caller.IsAdmin() {
		if reservation.UserID != caller.ID {
			return entity.ErrForbidden
		}
		if schedule.IsPast(reservation.ReservedDate, s.now()) {
			return entity.ErrPastEventCancel
		}
	}

	if reservation.Status == entity.ReservationStatusCancelled {
		return entity.ErrAlreadyCancelled
	}

	if err := s.reservationRepo.UpdateStatus(ctx, id, entity.ReservationStatusCancelled, caller.Email); err != nil {
		return fmt.Errorf("failed to cancel reservation: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"reservation_id": id,
		"by":             caller.Email,
	}).Info("Reservation cancelled")

	return nil
}

// DeleteReservation removes the record entirely. Admin only.
func (s *reservationService) DeleteReservation(ctx context.Context, caller *entity.Identity, id string) error {
	if !caller.IsAdmin() {
		return entity.ErrForbidden
	}
	return s.reservationRepo.Delete(ctx, id)
}
