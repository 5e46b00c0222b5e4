package blog

import (
	"context"

	"clinic/internal/domain"
	"clinic/internal/repository"
)

type BlogRepository interface {
	Create(ctx context.Context, b *domain.Blog) error
	GetByID(ctx context.Context, id int64) (*domain.Blog, error)
	List(ctx context.Context, publishedOnly bool, p repository.Page) ([]domain.Blog, int64, error)
	Update(ctx context.Context, b *domain.Blog) error
	Delete(ctx context.Context, id int64) error
}

type BlogNotifier interface {
	NotifyBlogPublished(ctx context.Context, b *domain.Blog)
}
