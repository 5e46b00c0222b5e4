package repository

import (
	"context"

	"gorm.io/gorm"

	"clinic/internal/domain"
)

type MessageFilter struct {
	UnreadOnly bool
	Page
}

type MessageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

func (r *MessageRepository) Create(ctx context.Context, m *domain.Message) error {
	return translate(r.db.WithContext(ctx).Create(m).Error)
}

func (r *MessageRepository) GetByID(ctx context.Context, id int64) (*domain.Message, error) {
	var m domain.Message
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, translate(err)
	}
	return &m, nil
}

func (r *MessageRepository) List(ctx context.Context, f MessageFilter) ([]domain.Message, int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.Message{})
	if f.UnreadOnly {
		q = q.Where("is_read = ?", false)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var out []domain.Message
	if err := f.Page.apply(q.Order("created_at DESC").Order("id DESC")).Find(&out).Error; err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (r *MessageRepository) CountUnread(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.Message{}).Where("is_read = ?", false).Count(&n).Error
	return n, err
}

func (r *MessageRepository) UnreadIDs(ctx context.Context) ([]int64, error) {
	var ids []int64
	err := r.db.WithContext(ctx).Model(&domain.Message{}).Where("is_read = ?", false).Order("id").Pluck("id", &ids).Error
	return ids, err
}

func (r *MessageRepository) MarkRead(ctx context.Context, id int64) error {
	return markRead(ctx, r.db, &domain.Message{}, id)
}

func (r *MessageRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&domain.Message{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
