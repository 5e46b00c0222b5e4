package message

import (
	"context"

	"clinic/internal/domain"
	"clinic/internal/repository"
)

type MessageRepository interface {
	Create(ctx context.Context, m *domain.Message) error
	GetByID(ctx context.Context, id int64) (*domain.Message, error)
	List(ctx context.Context, f repository.MessageFilter) ([]domain.Message, int64, error)
	CountUnread(ctx context.Context) (int64, error)
	UnreadIDs(ctx context.Context) ([]int64, error)
	MarkRead(ctx context.Context, id int64) error
	Delete(ctx context.Context, id int64) error
}

type MessageNotifier interface {
	NotifyNewMessage(ctx context.Context, m *domain.Message)
}
