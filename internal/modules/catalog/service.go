package catalog

import (
	"context"
	"errors"
	"fmt"

	"clinic/internal/domain"
	"clinic/internal/repository"
)

type Service struct {
	services ServiceRepository
	doctors  DoctorRepository
}

func NewService(services ServiceRepository, doctors DoctorRepository) *Service {
	return &Service{services: services, doctors: doctors}
}

func mapNotFound(err error, notFound error, op string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return notFound
	}
	return fmt.Errorf("%s: %w", op, err)
}

/* ---------- SERVICES ---------- */

func (s *Service) ListServices(ctx context.Context) ([]domain.Service, error) {
	out, err := s.services.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list services: %w", err)
	}
	if out == nil {
		out = []domain.Service{}
	}
	return out, nil
}

func (s *Service) GetService(ctx context.Context, id int64) (*domain.Service, error) {
	svc, err := s.services.GetByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err, ErrServiceNotFound, "get service")
	}
	return svc, nil
}

func (s *Service) CreateService(ctx context.Context, req ServiceRequest) (*domain.Service, error) {
	svc := &domain.Service{
		Name:        req.Name.toDomain(),
		Description: req.Description,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
	}
	if err := s.services.Create(ctx, svc); err != nil {
		return nil, fmt.Errorf("create service: %w", err)
	}
	return svc, nil
}

func (s *Service) UpdateService(ctx context.Context, id int64, req ServiceRequest) (*domain.Service, error) {
	svc, err := s.GetService(ctx, id)
	if err != nil {
		return nil, err
	}
	svc.Name = req.Name.toDomain()
	svc.Description = req.Description
	svc.Price = req.Price
	svc.ImageURL = req.ImageURL

	if err := s.services.Update(ctx, svc); err != nil {
		return nil, mapNotFound(err, ErrServiceNotFound, "update service")
	}
	return svc, nil
}

func (s *Service) DeleteService(ctx context.Context, id int64) error {
	if err := s.services.Delete(ctx, id); err != nil {
		return mapNotFound(err, ErrServiceNotFound, "delete service")
	}
	return nil
}

/* ---------- DOCTORS ---------- */

func (s *Service) ListDoctors(ctx context.Context, serviceID *int64) ([]domain.Doctor, error) {
	out, err := s.doctors.List(ctx, serviceID)
	if err != nil {
		return nil, fmt.Errorf("list doctors: %w", err)
	}
	if out == nil {
		out = []domain.Doctor{}
	}
	return out, nil
}

func (s *Service) GetDoctor(ctx context.Context, id int64) (*domain.Doctor, error) {
	d, err := s.doctors.GetByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err, ErrDoctorNotFound, "get doctor")
	}
	return d, nil
}

func (s *Service) CreateDoctor(ctx context.Context, req DoctorRequest) (*domain.Doctor, error) {
	if err := s.checkService(ctx, req.ServiceID); err != nil {
		return nil, err
	}
	d := &domain.Doctor{
		Name:      req.Name.toDomain(),
		Specialty: req.Specialty,
		ImageURL:  req.ImageURL,
		ServiceID: req.ServiceID,
	}
	if err := s.doctors.Create(ctx, d); err != nil {
		return nil, fmt.Errorf("create doctor: %w", err)
	}
	return d, nil
}

func (s *Service) UpdateDoctor(ctx context.Context, id int64, req DoctorRequest) (*domain.Doctor, error) {
	d, err := s.GetDoctor(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.checkService(ctx, req.ServiceID); err != nil {
		return nil, err
	}
	d.Name = req.Name.toDomain()
	d.Specialty = req.Specialty
	d.ImageURL = req.ImageURL
	d.ServiceID = req.ServiceID

	if err := s.doctors.Update(ctx, d); err != nil {
		return nil, mapNotFound(err, ErrDoctorNotFound, "update doctor")
	}
	return d, nil
}

func (s *Service) DeleteDoctor(ctx context.Context, id int64) error {
	if err := s.doctors.Delete(ctx, id); err != nil {
		return mapNotFound(err, ErrDoctorNotFound, "delete doctor")
	}
	return nil
}

func (s *Service) checkService(ctx context.Context, id *int64) error {
	if id == nil {
		return nil
	}
	_, err := s.GetService(ctx, *id)
	return err
}
