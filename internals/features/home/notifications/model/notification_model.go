package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// NotificationModel is a question a student sent to a teacher's inbox.
// The message body is append-only; only the read flag changes afterwards.
type NotificationModel struct {
	NotificationID          uuid.UUID `gorm:"column:notification_id;primaryKey;type:uuid;default:gen_random_uuid()" json:"notification_id"`
	NotificationUserID      uuid.UUID `gorm:"column:notification_user_id;type:uuid;not null;index:idx_notifications_user_id" json:"notification_user_id"`
	NotificationSenderID    uuid.UUID `gorm:"column:notification_sender_id;type:uuid;not null" json:"notification_sender_id"`
	NotificationSenderName  string    `gorm:"column:notification_sender_name;type:varchar(50);not null" json:"notification_sender_name"`
	NotificationSenderEmail string    `gorm:"column:notification_sender_email;type:varchar(255);not null" json:"notification_sender_email"`

	NotificationMessage string         `gorm:"column:notification_message;type:text;not null" json:"notification_message"`
	NotificationTags    pq.StringArray `gorm:"column:notification_tags;type:text[]" json:"notification_tags"`
	NotificationIsRead  bool           `gorm:"column:notification_is_read;not null;default:false" json:"notification_is_read"`

	NotificationCreatedAt time.Time `gorm:"column:notification_created_at;autoCreateTime" json:"notification_created_at"`
	NotificationUpdatedAt time.Time `gorm:"column:notification_updated_at;autoUpdateTime" json:"notification_updated_at"`
}

func (NotificationModel) TableName() string {
	return "notifications"
}

func (n *NotificationModel) BeforeCreate(tx *gorm.DB) error {
	if n.NotificationID == uuid.Nil {
		n.NotificationID = uuid.New()
	}
	return nil
}
