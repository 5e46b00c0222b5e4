package auth

import (
	"context"

	"clinic/internal/domain"
	"clinic/internal/repository"
)

// UserRepositoryInterface lists the user store methods auth needs.
type UserRepositoryInterface interface {
	Create(ctx context.Context, u *domain.User) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByLogin(ctx context.Context, login string) (*domain.User, error)
	List(ctx context.Context, role domain.UserRole, p repository.Page) ([]domain.User, error)
	SetActive(ctx context.Context, id int64, active bool) error
}

type tokenIssuer interface {
	GenerateToken(userID int64, role string) (string, error)
}
