package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"clinic/internal/domain"
	"clinic/internal/pkg/metrics"
	"clinic/internal/repository"
)

type Service struct {
	bookings BookingRepository
	services ServiceLookup
	notifs   NotificationSender
	log      zerolog.Logger
}

func NewService(bookings BookingRepository, services ServiceLookup, notifs NotificationSender, log zerolog.Logger) *Service {
	return &Service{
		bookings: bookings,
		services: services,
		notifs:   notifs,
		log:      log.With().Str("module", "booking").Logger(),
	}
}

// CreateBooking stores a new Pending booking. userID is 0 for anonymous
// visitors.
func (s *Service) CreateBooking(ctx context.Context, req CreateBookingRequest, userID int64) (*domain.Booking, error) {
	if _, err := s.services.GetByID(ctx, req.ServiceID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUnknownService
		}
		return nil, fmt.Errorf("lookup service: %w", err)
	}

	b := &domain.Booking{
		Name:      strings.TrimSpace(req.Name),
		Phone:     strings.TrimSpace(req.Phone),
		Date:      req.Date,
		Time:      req.Time,
		ServiceID: req.ServiceID,
		Status:    domain.BookingPending,
	}
	if userID > 0 {
		b.UserID = &userID
	}

	if err := s.bookings.Create(ctx, b); err != nil {
		return nil, fmt.Errorf("create booking: %w", err)
	}

	s.notifs.NotifyBookingCreated(ctx, b)
	return b, nil
}

func (s *Service) GetBooking(ctx context.Context, id int64) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get booking: %w", err)
	}
	return b, nil
}

func (s *Service) ListBookings(ctx context.Context, q ListQuery) ([]domain.Booking, int64, error) {
	if q.Status != "" && !q.Status.Valid() {
		return nil, 0, ErrInvalidStatus
	}
	items, total, err := s.bookings.List(ctx, repository.BookingFilter{
		Status:   q.Status,
		DateFrom: q.DateFrom,
		DateTo:   q.DateTo,
		Page:     repository.Page{Limit: q.Limit, Offset: q.Offset},
	})
	if err != nil {
		return nil, 0, fmt.Errorf("list bookings: %w", err)
	}
	if items == nil {
		items = []domain.Booking{}
	}
	return items, total, nil
}

// ListUserBookings returns the bookings made by a signed-in user.
func (s *Service) ListUserBookings(ctx context.Context, userID int64, p repository.Page) ([]domain.Booking, int64, error) {
	items, total, err := s.bookings.List(ctx, repository.BookingFilter{UserID: &userID, Page: p})
	if err != nil {
		return nil, 0, fmt.Errorf("list user bookings: %w", err)
	}
	if items == nil {
		items = []domain.Booking{}
	}
	return items, total, nil
}

// Advance moves the booking one step along Pending, Confirmed, In Progress,
// Completed. A terminal booking is returned unchanged.
func (s *Service) Advance(ctx context.Context, id int64) (*TransitionResult, error) {
	return s.transition(ctx, id, "advance", (*domain.Booking).Advance)
}

// Cancel moves the booking to Cancelled unless it is Completed or already
// Cancelled, in which case it is returned unchanged.
func (s *Service) Cancel(ctx context.Context, id int64) (*TransitionResult, error) {
	return s.transition(ctx, id, "cancel", (*domain.Booking).Cancel)
}

func (s *Service) transition(ctx context.Context, id int64, op string, step func(*domain.Booking) bool) (*TransitionResult, error) {
	b, err := s.GetBooking(ctx, id)
	if err != nil {
		return nil, err
	}

	from := b.Status
	if !from.Valid() {
		return nil, ErrInvalidStatus
	}
	if !step(b) {
		return &TransitionResult{Booking: b, From: from, Changed: false}, nil
	}

	ok, err := s.bookings.UpdateStatus(ctx, id, from, b.Status)
	if err != nil {
		return nil, fmt.Errorf("update booking status: %w", err)
	}
	if !ok {
		// row left status from between the read and the write
		return nil, ErrStatusConflict
	}

	metrics.IncBookingTransition(string(from), string(b.Status))
	s.log.Info().
		Int64("booking_id", id).
		Str("op", op).
		Str("from", string(from)).
		Str("to", string(b.Status)).
		Msg("booking status changed")

	s.notifs.NotifyBookingStatusChanged(ctx, b, from)
	return &TransitionResult{Booking: b, From: from, Changed: true}, nil
}

func (s *Service) DeleteBooking(ctx context.Context, id int64) error {
	if err := s.bookings.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("delete booking: %w", err)
	}
	return nil
}
