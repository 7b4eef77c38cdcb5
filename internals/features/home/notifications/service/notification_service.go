package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"campushub_backend/internals/constants"
	"campushub_backend/internals/features/home/notifications/model"
	"campushub_backend/internals/features/home/notifications/repository"
	userRepo "campushub_backend/internals/features/users/user/repository"
)

var ErrRecipientNotTeacher = errors.New("recipient is not a teacher")

type NotificationService struct {
	Notifications repository.NotificationRepository
	Users         userRepo.UserRepository
}

func NewNotificationService(notifications repository.NotificationRepository, users userRepo.UserRepository) *NotificationService {
	return &NotificationService{Notifications: notifications, Users: users}
}

// AskTeacher files a student's question into the teacher's inbox. The sender
// identity is denormalized onto the notification so the inbox stays readable
// even if the sender account is later removed.
func (s *NotificationService) AskTeacher(ctx context.Context, senderID, teacherID uuid.UUID, message string, tags []string) (*model.NotificationModel, error) {
	teacher, err := s.Users.FindByID(ctx, teacherID)
	if err != nil {
		return nil, err
	}
	if teacher.Role != constants.RoleTeacher {
		return nil, ErrRecipientNotTeacher
	}

	sender, err := s.Users.FindByID(ctx, senderID)
	if err != nil {
		return nil, err
	}

	n := &model.NotificationModel{
		NotificationUserID:      teacher.ID,
		NotificationSenderID:    sender.ID,
		NotificationSenderName:  sender.UserName,
		NotificationSenderEmail: sender.Email,
		NotificationMessage:     message,
		NotificationTags:        pq.StringArray(tags),
	}
	if err := s.Notifications.Create(ctx, n); err != nil {
		return nil, err
	}
	return n, nil
}

func (s *NotificationService) Inbox(ctx context.Context, userID uuid.UUID, offset, limit int) ([]model.NotificationModel, int64, error) {
	return s.Notifications.ListByRecipient(ctx, userID, offset, limit)
}

func (s *NotificationService) UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	return s.Notifications.CountUnread(ctx, userID)
}

func (s *NotificationService) MarkRead(ctx context.Context, id, userID uuid.UUID) error {
	return s.Notifications.MarkRead(ctx, id, userID)
}

func (s *NotificationService) Delete(ctx context.Context, id, userID uuid.UUID) error {
	return s.Notifications.Delete(ctx, id, userID)
}
