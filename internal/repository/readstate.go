package repository

import (
	"context"

	"gorm.io/gorm"
)

// markRead flips is_read on one row of model's table. A row that is already
// read is left alone and still counts as success.
func markRead(ctx context.Context, db *gorm.DB, model any, id int64) error {
	res := db.WithContext(ctx).
		Model(model).
		Where("id = ? AND is_read = ?", id, false).
		Update("is_read", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected > 0 {
		return nil
	}

	var n int64
	if err := db.WithContext(ctx).Model(model).Where("id = ?", id).Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
