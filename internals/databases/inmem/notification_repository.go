package inmem

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"campushub_backend/internals/features/home/notifications/model"
	"campushub_backend/internals/features/home/notifications/repository"
)

type notificationRepository struct {
	store *Store
}

func NewNotificationRepository(store *Store) repository.NotificationRepository {
	return &notificationRepository{store: store}
}

func (r *notificationRepository) Create(ctx context.Context, n *model.NotificationModel) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if n.NotificationID == uuid.Nil {
		n.NotificationID = uuid.New()
	}
	now := time.Now().UTC()
	n.NotificationCreatedAt = now
	n.NotificationUpdatedAt = now

	s.notifications = append(s.notifications, *n)
	s.persist()
	return nil
}

func (r *notificationRepository) ListByRecipient(ctx context.Context, userID uuid.UUID, offset, limit int) ([]model.NotificationModel, int64, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	var items []model.NotificationModel
	for i := range s.notifications {
		if s.notifications[i].NotificationUserID == userID {
			items = append(items, s.notifications[i])
		}
	}
	sort.Slice(items, func(i, j int) bool {
		return items[j].NotificationCreatedAt.Before(items[i].NotificationCreatedAt)
	})

	total := int64(len(items))
	if limit > 0 {
		if offset >= len(items) {
			return nil, total, nil
		}
		end := offset + limit
		if end > len(items) {
			end = len(items)
		}
		items = items[offset:end]
	}
	return items, total, nil
}

func (r *notificationRepository) CountUnread(ctx context.Context, userID uuid.UUID) (int64, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int64
	for i := range s.notifications {
		if s.notifications[i].NotificationUserID == userID && !s.notifications[i].NotificationIsRead {
			count++
		}
	}
	return count, nil
}

func (r *notificationRepository) MarkRead(ctx context.Context, id, userID uuid.UUID) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.notifications {
		n := &s.notifications[i]
		if n.NotificationID == id && n.NotificationUserID == userID {
			n.NotificationIsRead = true
			n.NotificationUpdatedAt = time.Now().UTC()
			s.persist()
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *notificationRepository) Delete(ctx context.Context, id, userID uuid.UUID) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.notifications {
		n := s.notifications[i]
		if n.NotificationID == id && n.NotificationUserID == userID {
			s.notifications = append(s.notifications[:i], s.notifications[i+1:]...)
			s.persist()
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}
