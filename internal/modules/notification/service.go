package notification

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"clinic/internal/domain"
	"clinic/internal/pkg/metrics"
	"clinic/internal/pkg/readstate"
	"clinic/internal/repository"
)

type Service struct {
	repo    NotificationRepositoryInterface
	tracker *readstate.Tracker
	pub     Publisher
	log     zerolog.Logger
}

func NewService(repo NotificationRepositoryInterface, pub Publisher, concurrency int, log zerolog.Logger) *Service {
	return &Service{
		repo:    repo,
		tracker: readstate.New(repo, concurrency),
		pub:     pub,
		log:     log.With().Str("module", "notification").Logger(),
	}
}

func scopeFilter(role domain.UserRole) repository.NotificationFilter {
	all, refs := domain.NotificationScope(role)
	return repository.NotificationFilter{All: all, Refs: refs}
}

// List returns the notifications role may see, newest first.
func (s *Service) List(ctx context.Context, role domain.UserRole, unreadOnly bool, p repository.Page) ([]domain.Notification, error) {
	f := scopeFilter(role)
	f.UnreadOnly = unreadOnly
	f.Page = p

	items, err := s.repo.List(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	return domain.ScopeFor(role, items), nil
}

func (s *Service) UnreadCount(ctx context.Context, role domain.UserRole) (int64, error) {
	f := scopeFilter(role)
	f.UnreadOnly = true
	n, err := s.repo.Count(ctx, f)
	if err != nil {
		return 0, fmt.Errorf("count unread notifications: %w", err)
	}
	return n, nil
}

// MarkRead marks one notification read. Notifications outside the caller's
// scope are reported as not found.
func (s *Service) MarkRead(ctx context.Context, role domain.UserRole, id int64) error {
	n, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("get notification: %w", err)
	}
	if !domain.NotificationVisible(role, *n) {
		return ErrNotFound
	}

	if err := s.tracker.MarkRead(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("mark notification read: %w", err)
	}
	return nil
}

// MarkAllRead marks every unread notification in the caller's scope.
// Per-item failures are reported in the result and nothing is rolled back.
func (s *Service) MarkAllRead(ctx context.Context, role domain.UserRole) (readstate.Result, error) {
	ids, err := s.repo.UnreadIDs(ctx, scopeFilter(role))
	if err != nil {
		return readstate.Result{}, fmt.Errorf("list unread notifications: %w", err)
	}

	res := s.tracker.MarkAll(ctx, ids)
	if len(res.Failed) > 0 {
		metrics.AddReadStateFailures("notifications", len(res.Failed))
		s.log.Warn().
			Str("role", string(role)).
			Int("requested", res.Requested).
			Int("failed", len(res.Failed)).
			Msg("mark all notifications read partially failed")
	}
	return res, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("delete notification: %w", err)
	}
	return nil
}

// DeleteMany removes notifications matching f and returns the count.
func (s *Service) DeleteMany(ctx context.Context, f repository.NotificationDeleteFilter) (int64, error) {
	if f.IsEmpty() {
		return 0, ErrEmptyFilter
	}
	n, err := s.repo.DeleteMany(ctx, f)
	if err != nil {
		return 0, fmt.Errorf("delete notifications: %w", err)
	}
	return n, nil
}

// Create stores n and pushes it to connected clients.
func (s *Service) Create(ctx context.Context, n *domain.Notification) error {
	if err := s.repo.Create(ctx, n); err != nil {
		return fmt.Errorf("create notification: %w", err)
	}
	if s.pub != nil {
		s.pub.Publish(*n)
	}
	return nil
}

// The Notify helpers are best effort: the triggering write already
// succeeded, so a failure is only logged.

func (s *Service) notify(ctx context.Context, n *domain.Notification) {
	if err := s.Create(ctx, n); err != nil {
		s.log.Error().Err(err).
			Str("ref", string(n.Ref)).
			Int64("ref_id", n.RefID).
			Msg("failed to create notification")
	}
}

func (s *Service) NotifyBookingCreated(ctx context.Context, b *domain.Booking) {
	s.notify(ctx, &domain.Notification{
		Title:   "New booking",
		Message: fmt.Sprintf("%s booked for %s at %s", b.Name, b.Date, b.Time),
		Type:    domain.NotifBookingCreated,
		Ref:     domain.RefBooking,
		RefID:   b.ID,
	})
}

func (s *Service) NotifyBookingStatusChanged(ctx context.Context, b *domain.Booking, from domain.BookingStatus) {
	s.notify(ctx, &domain.Notification{
		Title:   "Booking status changed",
		Message: fmt.Sprintf("Booking #%d for %s: %s -> %s", b.ID, b.Name, from, b.Status),
		Type:    domain.NotifBookingStatus,
		Ref:     domain.RefBooking,
		RefID:   b.ID,
	})
}

func (s *Service) NotifyNewMessage(ctx context.Context, m *domain.Message) {
	s.notify(ctx, &domain.Notification{
		Title:   "New message",
		Message: fmt.Sprintf("Message from %s", m.Name),
		Type:    domain.NotifNewMessage,
		Ref:     domain.RefMessage,
		RefID:   m.ID,
	})
}

func (s *Service) NotifyBlogPublished(ctx context.Context, b *domain.Blog) {
	s.notify(ctx, &domain.Notification{
		Title:   "Blog post published",
		Message: b.Title.EN,
		Type:    domain.NotifBlogPublished,
		Ref:     domain.RefBlog,
		RefID:   b.ID,
	})
}

func (s *Service) NotifyNewOffer(ctx context.Context, o *domain.Offer) {
	s.notify(ctx, &domain.Notification{
		Title:   "New offer",
		Message: o.Title.EN,
		Type:    domain.NotifNewOffer,
		Ref:     domain.RefOffer,
		RefID:   o.ID,
	})
}
