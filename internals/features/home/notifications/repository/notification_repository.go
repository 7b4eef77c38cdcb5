package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"campushub_backend/internals/features/home/notifications/model"
)

type NotificationRepository interface {
	Create(ctx context.Context, n *model.NotificationModel) error
	ListByRecipient(ctx context.Context, userID uuid.UUID, offset, limit int) ([]model.NotificationModel, int64, error)
	CountUnread(ctx context.Context, userID uuid.UUID) (int64, error)
	MarkRead(ctx context.Context, id, userID uuid.UUID) error
	Delete(ctx context.Context, id, userID uuid.UUID) error
}

type notificationGormRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationGormRepository{db: db}
}

func (r *notificationGormRepository) Create(ctx context.Context, n *model.NotificationModel) error {
	return r.db.WithContext(ctx).Create(n).Error
}

func (r *notificationGormRepository) ListByRecipient(ctx context.Context, userID uuid.UUID, offset, limit int) ([]model.NotificationModel, int64, error) {
	q := r.db.WithContext(ctx).
		Model(&model.NotificationModel{}).
		Where("notification_user_id = ?", userID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []model.NotificationModel
	q = q.Order("notification_created_at DESC")
	if limit > 0 {
		q = q.Offset(offset).Limit(limit)
	}
	if err := q.Find(&items).Error; err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *notificationGormRepository) CountUnread(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.NotificationModel{}).
		Where("notification_user_id = ? AND notification_is_read = false", userID).
		Count(&count).Error
	return count, err
}

func (r *notificationGormRepository) MarkRead(ctx context.Context, id, userID uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Model(&model.NotificationModel{}).
		Where("notification_id = ? AND notification_user_id = ?", id, userID).
		Update("notification_is_read", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *notificationGormRepository) Delete(ctx context.Context, id, userID uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Where("notification_id = ? AND notification_user_id = ?", id, userID).
		Delete(&model.NotificationModel{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
