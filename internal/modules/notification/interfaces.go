package notification

import (
	"context"

	"clinic/internal/domain"
	"clinic/internal/repository"
)

type NotificationRepositoryInterface interface {
	Create(ctx context.Context, n *domain.Notification) error
	GetByID(ctx context.Context, id int64) (*domain.Notification, error)
	List(ctx context.Context, f repository.NotificationFilter) ([]domain.Notification, error)
	Count(ctx context.Context, f repository.NotificationFilter) (int64, error)
	UnreadIDs(ctx context.Context, f repository.NotificationFilter) ([]int64, error)
	MarkRead(ctx context.Context, id int64) error
	Delete(ctx context.Context, id int64) error
	DeleteMany(ctx context.Context, f repository.NotificationDeleteFilter) (int64, error)
}

// Publisher pushes a stored notification to live clients.
type Publisher interface {
	Publish(n domain.Notification)
}
