package repository

import (
	"context"

	"gorm.io/gorm"

	"clinic/internal/domain"
)

// NotificationFilter selects notifications. With All unset only rows whose
// ref is in Refs match, so a zero filter matches nothing.
type NotificationFilter struct {
	All        bool
	Refs       []domain.NotificationRef
	UnreadOnly bool
	Page
}

func (f NotificationFilter) matchesNothing() bool {
	return !f.All && len(f.Refs) == 0
}

// NotificationDeleteFilter selects rows for bulk deletion. At least one
// condition (or All) is required.
type NotificationDeleteFilter struct {
	All  bool
	Read *bool
	Ref  domain.NotificationRef
}

func (f NotificationDeleteFilter) IsEmpty() bool {
	return !f.All && f.Read == nil && f.Ref == ""
}

type NotificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) scoped(ctx context.Context, f NotificationFilter) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&domain.Notification{})
	if !f.All {
		q = q.Where("ref IN ?", f.Refs)
	}
	if f.UnreadOnly {
		q = q.Where("is_read = ?", false)
	}
	return q
}

func (r *NotificationRepository) Create(ctx context.Context, n *domain.Notification) error {
	return translate(r.db.WithContext(ctx).Create(n).Error)
}

func (r *NotificationRepository) GetByID(ctx context.Context, id int64) (*domain.Notification, error) {
	var n domain.Notification
	if err := r.db.WithContext(ctx).First(&n, id).Error; err != nil {
		return nil, translate(err)
	}
	return &n, nil
}

func (r *NotificationRepository) List(ctx context.Context, f NotificationFilter) ([]domain.Notification, error) {
	if f.matchesNothing() {
		return []domain.Notification{}, nil
	}
	var out []domain.Notification
	q := f.Page.apply(r.scoped(ctx, f).Order("created_at DESC").Order("id DESC"))
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *NotificationRepository) Count(ctx context.Context, f NotificationFilter) (int64, error) {
	if f.matchesNothing() {
		return 0, nil
	}
	var n int64
	err := r.scoped(ctx, f).Count(&n).Error
	return n, err
}

func (r *NotificationRepository) UnreadIDs(ctx context.Context, f NotificationFilter) ([]int64, error) {
	if f.matchesNothing() {
		return []int64{}, nil
	}
	f.UnreadOnly = true
	var ids []int64
	err := r.scoped(ctx, f).Order("id").Pluck("id", &ids).Error
	return ids, err
}

func (r *NotificationRepository) MarkRead(ctx context.Context, id int64) error {
	return markRead(ctx, r.db, &domain.Notification{}, id)
}

func (r *NotificationRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&domain.Notification{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteMany removes every row matching f and returns how many were removed.
func (r *NotificationRepository) DeleteMany(ctx context.Context, f NotificationDeleteFilter) (int64, error) {
	q := r.db.WithContext(ctx)
	if f.All {
		q = q.Where("1 = 1")
	}
	if f.Read != nil {
		q = q.Where("is_read = ?", *f.Read)
	}
	if f.Ref != "" {
		q = q.Where("ref = ?", f.Ref)
	}
	res := q.Delete(&domain.Notification{})
	return res.RowsAffected, res.Error
}
