package dto

import (
	"time"

	"campushub_backend/internals/features/home/notifications/model"
)

type NotificationDTO struct {
	NotificationID          string    `json:"notification_id"`
	NotificationSenderID    string    `json:"notification_sender_id"`
	NotificationSenderName  string    `json:"notification_sender_name"`
	NotificationSenderEmail string    `json:"notification_sender_email"`
	NotificationMessage     string    `json:"notification_message"`
	NotificationTags        []string  `json:"notification_tags"`
	NotificationIsRead      bool      `json:"notification_is_read"`
	NotificationCreatedAt   time.Time `json:"notification_created_at"`
}

type AskQuestionRequest struct {
	TeacherID string   `json:"teacher_id" validate:"required,uuid4"`
	Message   string   `json:"message" validate:"required,min=5,max=2000"`
	Tags      []string `json:"tags" validate:"omitempty,max=10,dive,min=1,max=30"`
}

func ToNotificationDTO(n model.NotificationModel) NotificationDTO {
	tags := []string(n.NotificationTags)
	if tags == nil {
		tags = []string{}
	}
	return NotificationDTO{
		NotificationID:          n.NotificationID.String(),
		NotificationSenderID:    n.NotificationSenderID.String(),
		NotificationSenderName:  n.NotificationSenderName,
		NotificationSenderEmail: n.NotificationSenderEmail,
		NotificationMessage:     n.NotificationMessage,
		NotificationTags:        tags,
		NotificationIsRead:      n.NotificationIsRead,
		NotificationCreatedAt:   n.NotificationCreatedAt,
	}
}
