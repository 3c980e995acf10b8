package service

import (
	"context"
	"testing"
	"time"

	"github.com/kollapso/booking/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeBookingRepo is an in-memory BookingRepository for service tests
type fakeBookingRepo struct {
	bookings map[string]*entity.Booking
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{bookings: make(map[string]*entity.Booking)}
}

func (r *fakeBookingRepo) Create(_ context.Context, b *entity.Booking) error {
	cp := *b
	r.bookings[b.ID] = &cp
	return nil
}

func (r *fakeBookingRepo) GetByID(_ context.Context, id string) (*entity.Booking, error) {
	b, ok := r.bookings[id]
	if !ok {
		return nil, entity.ErrBookingNotFound
	}
	cp := *b
	return &cp, nil
}

func (r *fakeBookingRepo) Update(_ context.Context, b *entity.Booking) error {
	if _, ok := r.bookings[b.ID]; !ok {
		return entity.ErrBookingNotFound
	}
	cp := *b
	r.bookings[b.ID] = &cp
	return nil
}

func (r *fakeBookingRepo) UpdateStatus(_ context.Context, id string, status entity.BookingStatus, updatedBy string) error {
	b, ok := r.bookings[id]
	if !ok {
		return entity.ErrBookingNotFound
	}
	b.Status = status
	b.UpdatedBy = updatedBy
	return nil
}

func (r *fakeBookingRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.bookings[id]; !ok {
		return entity.ErrBookingNotFound
	}
	delete(r.bookings, id)
	return nil
}

func (r *fakeBookingRepo) GetAll(_ context.Context) ([]*entity.Booking, error) {
	out := make([]*entity.Booking, 0, len(r.bookings))
	for _, b := range r.bookings {
		cp := *b
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeBookingRepo) GetByUserID(_ context.Context, userID int64) ([]*entity.Booking, error) {
	var out []*entity.Booking
	for _, b := range r.bookings {
		if b.UserID == userID {
			cp := *b
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeBookingRepo) GetActive(_ context.Context) ([]*entity.Booking, error) {
	var out []*entity.Booking
	for _, b := range r.bookings {
		if b.Status == entity.BookingStatusActive {
			cp := *b
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeBookingRepo) PurgeCancelled(_ context.Context, before time.Time) (int64, error) {
	var n int64
	for id, b := range r.bookings {
		if b.Status == entity.BookingStatusCancelled && b.UpdatedAt.Before(before) {
			delete(r.bookings, id)
			n++
		}
	}
	return n, nil
}

var testNow = time.Date(2025, 11, 10, 12, 0, 0, 0, time.UTC)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func newTestBookingService(repo *fakeBookingRepo) *bookingService {
	return &bookingService{
		bookingRepo: repo,
		now:         func() time.Time { return testNow },
	}
}

func seedBooking(repo *fakeBookingRepo, id string, userID int64, date time.Time, status entity.BookingStatus) {
	repo.bookings[id] = &entity.Booking{
		ID:        id,
		Name:      "Someone",
		Email:     "someone@example.com",
		Phone:     "+55 11 99999-0000",
		EventDate: date,
		Location:  "São Paulo",
		EventType: "wedding",
		UserID:    userID,
		UserEmail: "someone@example.com",
		Status:    status,
	}
}

func userIdentity(id int64) *entity.Identity {
	return &entity.Identity{ID: id, Email: "user@example.com", Role: entity.RoleUser}
}

func adminIdentity() *entity.Identity {
	return &entity.Identity{ID: 99, Email: "admin@kollapso.com.br", Role: entity.RoleAdmin}
}

func TestOccupiedDates(t *testing.T) {
	repo := newFakeBookingRepo()
	seedBooking(repo, "b1", 1, day(2025, 11, 16), entity.BookingStatusActive)
	seedBooking(repo, "b2", 2, day(2025, 12, 24), entity.BookingStatusActive)
	seedBooking(repo, "b3", 3, day(2025, 11, 20), entity.BookingStatusCancelled)

	svc := newTestBookingService(repo)

	dates, err := svc.OccupiedDates(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"2025-11-16", "2025-12-24"}, dates)
}

func TestCreateBooking(t *testing.T) {
	tests := []struct {
		name    string
		date    time.Time
		wantErr error
	}{
		{
			name: "free future day is accepted",
			date: day(2025, 11, 17),
		},
		{
			name:    "occupied day is rejected",
			date:    day(2025, 11, 16),
			wantErr: entity.ErrDateConflict,
		},
		{
			name:    "past day is rejected",
			date:    day(2025, 11, 1),
			wantErr: entity.ErrPastDate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeBookingRepo()
			seedBooking(repo, "taken", 2, day(2025, 11, 16), entity.BookingStatusActive)
			svc := newTestBookingService(repo)

			req := &CreateBookingRequest{
				Name:      "The Band",
				Email:     "fan@example.com",
				Phone:     "+55 11 98888-0000",
				EventDate: entity.DateOnly{Time: tt.date},
				Location:  "Rio de Janeiro",
				EventType: "festival",
			}

			booking, err := svc.CreateBooking(context.Background(), userIdentity(1), req)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, booking.ID)
			assert.Equal(t, entity.BookingStatusActive, booking.Status)
			assert.Equal(t, int64(1), booking.UserID)
		})
	}
}

// Cancelled records release their day for new bookings
func TestCreateBookingOnCancelledDay(t *testing.T) {
	repo := newFakeBookingRepo()
	seedBooking(repo, "old", 2, day(2025, 11, 16), entity.BookingStatusCancelled)
	svc := newTestBookingService(repo)

	req := &CreateBookingRequest{
		Name:      "The Band",
		Email:     "fan@example.com",
		Phone:     "+55 11 98888-0000",
		EventDate: entity.DateOnly{Time: day(2025, 11, 16)},
		Location:  "Curitiba",
		EventType: "private",
	}

	_, err := svc.CreateBooking(context.Background(), userIdentity(1), req)
	assert.NoError(t, err)
}

// A second submit for the same day after the first one landed must lose
func TestCreateBookingDoubleSubmit(t *testing.T) {
	repo := newFakeBookingRepo()
	svc := newTestBookingService(repo)

	req := &CreateBookingRequest{
		Name:      "The Band",
		Email:     "fan@example.com",
		Phone:     "+55 11 98888-0000",
		EventDate: entity.DateOnly{Time: day(2025, 11, 17)},
		Location:  "Belo Horizonte",
		EventType: "festival",
	}

	_, err := svc.CreateBooking(context.Background(), userIdentity(1), req)
	require.NoError(t, err)

	_, err = svc.CreateBooking(context.Background(), userIdentity(2), req)
	assert.ErrorIs(t, err, entity.ErrDateConflict)
}

func TestListBookings(t *testing.T) {
	repo := newFakeBookingRepo()
	seedBooking(repo, "mine", 1, day(2025, 11, 16), entity.BookingStatusActive)
	seedBooking(repo, "theirs", 2, day(2025, 11, 17), entity.BookingStatusActive)
	svc := newTestBookingService(repo)

	own, err := svc.ListBookings(context.Background(), userIdentity(1))
	require.NoError(t, err)
	require.Len(t, own, 1)
	assert.Equal(t, "mine", own[0].ID)

	all, err := svc.ListBookings(context.Background(), adminIdentity())
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestGetBooking(t *testing.T) {
	repo := newFakeBookingRepo()
	seedBooking(repo, "b1", 1, day(2025, 11, 16), entity.BookingStatusActive)
	svc := newTestBookingService(repo)

	_, err := svc.GetBooking(context.Background(), userIdentity(2), "b1")
	assert.ErrorIs(t, err, entity.ErrForbidden)

	_, err = svc.GetBooking(context.Background(), userIdentity(1), "b1")
	assert.NoError(t, err)

	_, err = svc.GetBooking(context.Background(), adminIdentity(), "missing")
	assert.ErrorIs(t, err, entity.ErrBookingNotFound)
}

func TestUpdateBooking(t *testing.T) {
	location := "Porto Alegre"
	newDate := entity.DateOnly{Time: day(2025, 11, 18)}
	takenDate := entity.DateOnly{Time: day(2025, 11, 20)}
	sameDate := entity.DateOnly{Time: day(2025, 11, 16)}

	tests := []struct {
		name    string
		caller  *entity.Identity
		id      string
		req     *UpdateBookingRequest
		wantErr error
	}{
		{
			name:   "owner moves own date",
			caller: userIdentity(1),
			id:     "b1",
			req:    &UpdateBookingRequest{EventDate: &newDate},
		},
		{
			name:    "owner may not touch other fields",
			caller:  userIdentity(1),
			id:      "b1",
			req:     &UpdateBookingRequest{Location: &location},
			wantErr: entity.ErrForbidden,
		},
		{
			name:    "owner may not edit someone else's booking",
			caller:  userIdentity(2),
			id:      "b1",
			req:     &UpdateBookingRequest{EventDate: &newDate},
			wantErr: entity.ErrForbidden,
		},
		{
			name:   "admin edits any field",
			caller: adminIdentity(),
			id:     "b1",
			req:    &UpdateBookingRequest{Location: &location},
		},
		{
			name:   "keeping the same day is not a conflict",
			caller: userIdentity(1),
			id:     "b1",
			req:    &UpdateBookingRequest{EventDate: &sameDate},
		},
		{
			name:    "moving onto another booking's day conflicts",
			caller:  userIdentity(1),
			id:      "b1",
			req:     &UpdateBookingRequest{EventDate: &takenDate},
			wantErr: entity.ErrDateConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeBookingRepo()
			seedBooking(repo, "b1", 1, day(2025, 11, 16), entity.BookingStatusActive)
			seedBooking(repo, "b2", 2, day(2025, 11, 20), entity.BookingStatusActive)
			svc := newTestBookingService(repo)

			updated, err := svc.UpdateBooking(context.Background(), tt.caller, tt.id, tt.req)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.caller.Email, updated.UpdatedBy)
		})
	}
}

// Moving a booking must free its previous day
func TestUpdateBookingFreesOldDay(t *testing.T) {
	repo := newFakeBookingRepo()
	seedBooking(repo, "b1", 1, day(2025, 11, 16), entity.BookingStatusActive)
	svc := newTestBookingService(repo)

	newDate := entity.DateOnly{Time: day(2025, 11, 18)}
	_, err := svc.UpdateBooking(context.Background(), adminIdentity(), "b1", &UpdateBookingRequest{EventDate: &newDate})
	require.NoError(t, err)

	req := &CreateBookingRequest{
		Name:      "The Band",
		Email:     "fan@example.com",
		Phone:     "+55 11 97777-0000",
		EventDate: entity.DateOnly{Time: day(2025, 11, 16)},
		Location:  "Salvador",
		EventType: "festival",
	}
	_, err = svc.CreateBooking(context.Background(), userIdentity(2), req)
	assert.NoError(t, err)
}

func TestCancelBooking(t *testing.T) {
	tests := []struct {
		name    string
		caller  *entity.Identity
		seed    func(*fakeBookingRepo)
		wantErr error
	}{
		{
			name:   "owner cancels future booking",
			caller: userIdentity(1),
			seed: func(r *fakeBookingRepo) {
				seedBooking(r, "b1", 1, day(2025, 11, 16), entity.BookingStatusActive)
			},
		},
		{
			name:   "owner may not cancel past booking",
			caller: userIdentity(1),
			seed: func(r *fakeBookingRepo) {
				seedBooking(r, "b1", 1, day(2025, 11, 1), entity.BookingStatusActive)
			},
			wantErr: entity.ErrPastEventCancel,
		},
		{
			name:   "admin cancels past booking",
			caller: adminIdentity(),
			seed: func(r *fakeBookingRepo) {
				seedBooking(r, "b1", 1, day(2025, 11, 1), entity.BookingStatusActive)
			},
		},
		{
			name:   "second cancel reports already cancelled",
			caller: adminIdentity(),
			seed: func(r *fakeBookingRepo) {
				seedBooking(r, "b1", 1, day(2025, 11, 16), entity.BookingStatusCancelled)
			},
			wantErr: entity.ErrAlreadyCancelled,
		},
		{
			name:   "owner may not cancel someone else's booking",
			caller: userIdentity(2),
			seed: func(r *fakeBookingRepo) {
				seedBooking(r, "b1", 1, day(2025, 11, 16), entity.BookingStatusActive)
			},
			wantErr: entity.ErrForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeBookingRepo()
			tt.seed(repo)
			svc := newTestBookingService(repo)

			err := svc.CancelBooking(context.Background(), tt.caller, "b1")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, entity.BookingStatusCancelled, repo.bookings["b1"].Status)
		})
	}
}

func TestDeleteBooking(t *testing.T) {
	repo := newFakeBookingRepo()
	seedBooking(repo, "b1", 1, day(2025, 11, 16), entity.BookingStatusActive)
	svc := newTestBookingService(repo)

	err := svc.DeleteBooking(context.Background(), userIdentity(1), "b1")
	assert.ErrorIs(t, err, entity.ErrForbidden)

	err = svc.DeleteBooking(context.Background(), adminIdentity(), "b1")
	require.NoError(t, err)
	assert.Empty(t, repo.bookings)
}
