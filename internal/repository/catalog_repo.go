package repository

import (
	"context"

	"gorm.io/gorm"

	"clinic/internal/domain"
)

type ServiceRepository struct {
	db *gorm.DB
}

func NewServiceRepository(db *gorm.DB) *ServiceRepository {
	return &ServiceRepository{db: db}
}

func (r *ServiceRepository) Create(ctx context.Context, s *domain.Service) error {
	return translate(r.db.WithContext(ctx).Create(s).Error)
}

func (r *ServiceRepository) GetByID(ctx context.Context, id int64) (*domain.Service, error) {
	var s domain.Service
	if err := r.db.WithContext(ctx).First(&s, id).Error; err != nil {
		return nil, translate(err)
	}
	return &s, nil
}

func (r *ServiceRepository) List(ctx context.Context) ([]domain.Service, error) {
	var out []domain.Service
	err := r.db.WithContext(ctx).Order("id").Find(&out).Error
	return out, err
}

func (r *ServiceRepository) Update(ctx context.Context, s *domain.Service) error {
	res := r.db.WithContext(ctx).Model(s).Select("*").Omit("id", "created_at").Updates(s)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ServiceRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&domain.Service{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

type DoctorRepository struct {
	db *gorm.DB
}

func NewDoctorRepository(db *gorm.DB) *DoctorRepository {
	return &DoctorRepository{db: db}
}

func (r *DoctorRepository) Create(ctx context.Context, d *domain.Doctor) error {
	return translate(r.db.WithContext(ctx).Create(d).Error)
}

func (r *DoctorRepository) GetByID(ctx context.Context, id int64) (*domain.Doctor, error) {
	var d domain.Doctor
	if err := r.db.WithContext(ctx).First(&d, id).Error; err != nil {
		return nil, translate(err)
	}
	return &d, nil
}

// List returns doctors, optionally only those attached to serviceID.
func (r *DoctorRepository) List(ctx context.Context, serviceID *int64) ([]domain.Doctor, error) {
	q := r.db.WithContext(ctx).Order("id")
	if serviceID != nil {
		q = q.Where("service_id = ?", *serviceID)
	}
	var out []domain.Doctor
	err := q.Find(&out).Error
	return out, err
}

func (r *DoctorRepository) Update(ctx context.Context, d *domain.Doctor) error {
	res := r.db.WithContext(ctx).Model(d).Select("*").Omit("id", "created_at").Updates(d)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *DoctorRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&domain.Doctor{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
