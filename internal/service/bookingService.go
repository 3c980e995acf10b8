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

// CreateBookingRequest carries the show request form. The date arrives as a
// plain YYYY-MM-DD day.
type CreateBookingRequest struct {
	Name      string          `json:"name" binding:"required"`
	Email     string          `json:"email" binding:"required,email"`
	Phone     string          `json:"phone" binding:"required"`
	EventDate entity.DateOnly `json:"event_date" binding:"required"`
	Location  string          `json:"location" binding:"required"`
	EventType string          `json:"event_type" binding:"required"`
	Details   string          `json:"details"`
}

// UpdateBookingRequest is a partial edit. Admins may set any field; owners
// may only move the date.
type UpdateBookingRequest struct {
	Name      *string          `json:"name"`
	Email     *string          `json:"email"`
	Phone     *string          `json:"phone"`
	EventDate *entity.DateOnly `json:"event_date"`
	Location  *string          `json:"location"`
	EventType *string          `json:"event_type"`
	Details   *string          `json:"details"`
}

func (r *UpdateBookingRequest) touchesOnlyDate() bool {
	return r.Name == nil && r.Email == nil && r.Phone == nil &&
		r.Location == nil && r.EventType == nil && r.Details == nil
}

type bookingService struct {
	bookingRepo repository.BookingRepository
	now         func() time.Time
}

// NewBookingService creates a new BookingService
func NewBookingService(bookingRepo repository.BookingRepository) BookingService {
	return &bookingService{
		bookingRepo: bookingRepo,
		now:         time.Now,
	}
}

// occupiedIndex recomputes the availability index from the datastore. It is
// rebuilt inside every request; nothing is cached between requests.
func (s *bookingService) occupiedIndex(ctx context.Context) (schedule.Index, error) {
	active, err := s.bookingRepo.GetActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load active bookings: %w", err)
	}

	entries := make([]schedule.Entry, 0, len(active))
	for _, b := range active {
		entries = append(entries, schedule.Entry{
			Date:      b.EventDate,
			Cancelled: b.Status == entity.BookingStatusCancelled,
		})
	}
	return schedule.BuildIndex(entries), nil
}

// OccupiedDates returns every taken day of the band calendar, for the
// client-side calendar to disable.
func (s *bookingService) OccupiedDates(ctx context.Context) ([]string, error) {
	idx, err := s.occupiedIndex(ctx)
	if err != nil {
		return nil, err
	}
	return idx.Keys(), nil
}

// CreateBooking persists a new show request after the authoritative conflict
// check. The client already pre-filtered against the occupied-dates feed, but
// two clients can race between fetch and submit, so the check runs again here.
func (s *bookingService) CreateBooking(ctx context.Context, caller *entity.Identity, req *CreateBookingRequest) (*entity.Booking, error) {
	date := req.EventDate.Time

	if schedule.IsPast(date, s.now()) {
		return nil, entity.ErrPastDate
	}

	idx, err := s.occupiedIndex(ctx)
	if err != nil {
		return nil, err
	}
	if idx.Occupied(date) {
		return nil, entity.ErrDateConflict
	}

	booking := &entity.Booking{
		ID:        uuid.NewString(),
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		EventDate: date,
		Location:  req.Location,
		EventType: req.EventType,
		Details:   req.Details,
		UserID:    caller.ID,
		UserEmail: caller.Email,
		Status:    entity.BookingStatusActive,
	}

	if err := s.bookingRepo.Create(ctx, booking); err != nil {
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"booking_id": booking.ID,
		"event_date": schedule.DateKey(booking.EventDate),
		"user_id":    caller.ID,
	}).Info("Booking created")

	return booking, nil
}

// ListBookings returns all bookings for admins and only the caller's own
// bookings for everyone else.
func (s *bookingService) ListBookings(ctx context.Context, caller *entity.Identity) ([]*entity.Booking, error) {
	if caller.IsAdmin() {
		return s.bookingRepo.GetAll(ctx)
	}
	return s.bookingRepo.GetByUserID(ctx, caller.ID)
}

func (s *bookingService) GetBooking(ctx context.Context, caller *entity.Identity, id string) (*entity.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !caller.IsAdmin() && booking.UserID != caller.ID {
		return nil, entity.ErrForbidden
	}
	return booking, nil
}

// UpdateBooking applies an edit. Admins edit every field; the owner may only
// move the event date. A date change re-runs the conflict check against all
// other active bookings.
func (s *bookingService) UpdateBooking(ctx context.Context, caller *entity.Identity, id string, req *UpdateBookingRequest) (*entity.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !caller.IsAdmin() {
		if booking.UserID != caller.ID {
			return nil, entity.ErrForbidden
		}
		if !req.touchesOnlyDate() {
			return nil, entity.ErrForbidden
		}
	}

	if req.EventDate != nil {
		date := req.EventDate.Time
		if schedule.IsPast(date, s.now()) {
			return nil, entity.ErrPastDate
		}

		idx, err := s.occupiedIndex(ctx)
		if err != nil {
			return nil, err
		}
		// the record being edited may keep its own day
		delete(idx, schedule.DateKey(booking.EventDate))
		if idx.Occupied(date) {
			return nil, entity.ErrDateConflict
		}
		booking.EventDate = date
	}

	if req.Name != nil {
		booking.Name = *req.Name
	}
	if req.Email != nil {
		booking.Email = *req.Email
	}
	if req.Phone != nil {
		booking.Phone = *req.Phone
	}
	if req.Location != nil {
		booking.Location = *req.Location
	}
	if req.EventType != nil {
		booking.EventType = *req.EventType
	}
	if req.Details != nil {
		booking.Details = *req.Details
	}
	booking.UpdatedBy = caller.Email

	if err := s.bookingRepo.Update(ctx, booking); err != nil {
		return nil, fmt.Errorf("failed to update booking: %w", err)
	}

	return booking, nil
}

// CancelBooking flips an active booking to cancelled. Owners may only cancel
// their own future shows; admins may cancel any.
func (s *bookingService) CancelBooking(ctx context.Context, caller *entity.Identity, id string) error {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if !caller.IsAdmin() {
		if booking.UserID != caller.ID {
			return entity.ErrForbidden
		}
		if schedule.IsPast(booking.EventDate, s.now()) {
			return entity.ErrPastEventCancel
		}
	}

	if booking.Status == entity.BookingStatusCancelled {
		return entity.ErrAlreadyCancelled
	}

	if err := s.bookingRepo.UpdateStatus(ctx, id, entity.BookingStatusCancelled, caller.Email); err != nil {
		return fmt.Errorf("failed to cancel booking: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"booking_id": id,
		"by":         caller.Email,
	}).Info("Booking cancelled")

	return nil
}

// DeleteBooking removes the record entirely. Admin only.
func (s *bookingService) DeleteBooking(ctx context.Context, caller *entity.Identity, id string) error {
	if !caller.IsAdmin() {
		return entity.ErrForbidden
	}
	return s.bookingRepo.Delete(ctx, id)
}
