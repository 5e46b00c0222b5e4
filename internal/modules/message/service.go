package message

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"clinic/internal/domain"
	"clinic/internal/pkg/metrics"
	"clinic/internal/pkg/readstate"
	"clinic/internal/repository"
)

type Service struct {
	repo    MessageRepository
	tracker *readstate.Tracker
	notifs  MessageNotifier
	log     zerolog.Logger
}

func NewService(repo MessageRepository, notifs MessageNotifier, concurrency int, log zerolog.Logger) *Service {
	return &Service{
		repo:    repo,
		tracker: readstate.New(repo, concurrency),
		notifs:  notifs,
		log:     log.With().Str("module", "message").Logger(),
	}
}

// Create stores a contact form submission as unread.
func (s *Service) Create(ctx context.Context, req CreateMessageRequest) (*domain.Message, error) {
	m := &domain.Message{
		Name:    strings.TrimSpace(req.Name),
		Phone:   strings.TrimSpace(req.Phone),
		Email:   strings.ToLower(strings.TrimSpace(req.Email)),
		Message: strings.TrimSpace(req.Message),
	}
	if err := s.repo.Create(ctx, m); err != nil {
		return nil, fmt.Errorf("create message: %w", err)
	}
	s.notifs.NotifyNewMessage(ctx, m)
	return m, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Message, error) {
	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get message: %w", err)
	}
	return m, nil
}

func (s *Service) List(ctx context.Context, unreadOnly bool, p repository.Page) ([]domain.Message, int64, error) {
	items, total, err := s.repo.List(ctx, repository.MessageFilter{UnreadOnly: unreadOnly, Page: p})
	if err != nil {
		return nil, 0, fmt.Errorf("list messages: %w", err)
	}
	if items == nil {
		items = []domain.Message{}
	}
	return items, total, nil
}

// UnreadCount is recomputed from the store on every call.
func (s *Service) UnreadCount(ctx context.Context) (int64, error) {
	n, err := s.repo.CountUnread(ctx)
	if err != nil {
		return 0, fmt.Errorf("count unread messages: %w", err)
	}
	return n, nil
}

// MarkRead is idempotent; an already-read message is not an error.
func (s *Service) MarkRead(ctx context.Context, id int64) error {
	if err := s.tracker.MarkRead(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("mark message read: %w", err)
	}
	return nil
}

// MarkAllRead marks every unread message with one concurrent update per
// item. Failures are collected, not rolled back.
func (s *Service) MarkAllRead(ctx context.Context) (readstate.Result, error) {
	ids, err := s.repo.UnreadIDs(ctx)
	if err != nil {
		return readstate.Result{}, fmt.Errorf("list unread messages: %w", err)
	}

	res := s.tracker.MarkAll(ctx, ids)
	if len(res.Failed) > 0 {
		metrics.AddReadStateFailures("messages", len(res.Failed))
		s.log.Warn().
			Int("requested", res.Requested).
			Int("failed", len(res.Failed)).
			Msg("mark all messages read partially failed")
	}
	return res, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("delete message: %w", err)
	}
	return nil
}
