package repository

import (
	"context"

	"gorm.io/gorm"

	"clinic/internal/domain"
)

type OfferRepository struct {
	db *gorm.DB
}

func NewOfferRepository(db *gorm.DB) *OfferRepository {
	return &OfferRepository{db: db}
}

func (r *OfferRepository) Create(ctx context.Context, o *domain.Offer) error {
	return translate(r.db.WithContext(ctx).Create(o).Error)
}

func (r *OfferRepository) GetByID(ctx context.Context, id int64) (*domain.Offer, error) {
	var o domain.Offer
	if err := r.db.WithContext(ctx).First(&o, id).Error; err != nil {
		return nil, translate(err)
	}
	return &o, nil
}

func (r *OfferRepository) List(ctx context.Context) ([]domain.Offer, error) {
	var out []domain.Offer
	err := r.db.WithContext(ctx).Order("expiry_date DESC").Order("id DESC").Find(&out).Error
	return out, err
}

func (r *OfferRepository) Update(ctx context.Context, o *domain.Offer) error {
	res := r.db.WithContext(ctx).Model(o).Select("*").Omit("id", "created_at").Updates(o)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ExpireFlags persists the expiry fix-up. Repeating it is harmless.
func (r *OfferRepository) ExpireFlags(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).
		Model(&domain.Offer{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"is_active":             false,
			"show_in_notifications": false,
		}).Error
}

func (r *OfferRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&domain.Offer{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
