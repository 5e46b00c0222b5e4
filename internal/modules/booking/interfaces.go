package booking

import (
	"context"

	"clinic/internal/domain"
	"clinic/internal/repository"
)

// BookingRepository defines the interface for booking operations
type BookingRepository interface {
	Create(ctx context.Context, b *domain.Booking) error
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	List(ctx context.Context, f repository.BookingFilter) ([]domain.Booking, int64, error)
	UpdateStatus(ctx context.Context, id int64, from, to domain.BookingStatus) (bool, error)
	Delete(ctx context.Context, id int64) error
}

// ServiceLookup resolves the clinic service a booking refers to.
type ServiceLookup interface {
	GetByID(ctx context.Context, id int64) (*domain.Service, error)
}

type NotificationSender interface {
	NotifyBookingCreated(ctx context.Context, b *domain.Booking)
	NotifyBookingStatusChanged(ctx context.Context, b *domain.Booking, from domain.BookingStatus)
}
