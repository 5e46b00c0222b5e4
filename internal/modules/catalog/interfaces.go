package catalog

import (
	"context"

	"clinic/internal/domain"
)

type ServiceRepository interface {
	Create(ctx context.Context, s *domain.Service) error
	GetByID(ctx context.Context, id int64) (*domain.Service, error)
	List(ctx context.Context) ([]domain.Service, error)
	Update(ctx context.Context, s *domain.Service) error
	Delete(ctx context.Context, id int64) error
}

type DoctorRepository interface {
	Create(ctx context.Context, d *domain.Doctor) error
	GetByID(ctx context.Context, id int64) (*domain.Doctor, error)
	List(ctx context.Context, serviceID *int64) ([]domain.Doctor, error)
	Update(ctx context.Context, d *domain.Doctor) error
	Delete(ctx context.Context, id int64) error
}
