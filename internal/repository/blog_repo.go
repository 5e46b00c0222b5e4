package repository

import (
	"context"

	"gorm.io/gorm"

	"clinic/internal/domain"
)

type BlogRepository struct {
	db *gorm.DB
}

func NewBlogRepository(db *gorm.DB) *BlogRepository {
	return &BlogRepository{db: db}
}

func (r *BlogRepository) Create(ctx context.Context, b *domain.Blog) error {
	return translate(r.db.WithContext(ctx).Create(b).Error)
}

func (r *BlogRepository) GetByID(ctx context.Context, id int64) (*domain.Blog, error) {
	var b domain.Blog
	if err := r.db.WithContext(ctx).First(&b, id).Error; err != nil {
		return nil, translate(err)
	}
	return &b, nil
}

func (r *BlogRepository) List(ctx context.Context, publishedOnly bool, p Page) ([]domain.Blog, int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.Blog{})
	if publishedOnly {
		q = q.Where("published = ?", true)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var out []domain.Blog
	if err := p.apply(q.Order("created_at DESC").Order("id DESC")).Find(&out).Error; err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (r *BlogRepository) Update(ctx context.Context, b *domain.Blog) error {
	res := r.db.WithContext(ctx).Model(b).Select("*").Omit("id", "created_at", "author_id").Updates(b)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *BlogRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&domain.Blog{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
