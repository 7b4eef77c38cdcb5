package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type EventModel struct {
	EventID          uuid.UUID `gorm:"column:event_id;type:uuid;default:gen_random_uuid();primaryKey" json:"event_id"`
	EventTitle       string    `gorm:"column:event_title;type:varchar(255);not null" json:"event_title"`
	EventDescription string    `gorm:"column:event_description;type:text" json:"event_description"`
	EventCategory    string    `gorm:"column:event_category;type:varchar(50);index" json:"event_category"`
	EventPosterURL   *string   `gorm:"column:event_poster_url;type:varchar(512)" json:"event_poster_url,omitempty"`

	// Lookup key for the owning teacher, not a hard ownership reference.
	EventTeacherID uuid.UUID `gorm:"column:event_teacher_id;type:uuid;not null;index:idx_events_teacher_id" json:"event_teacher_id"`

	EventStartsAt time.Time `gorm:"column:event_starts_at;type:timestamptz;not null" json:"event_starts_at"`
	EventDeadline time.Time `gorm:"column:event_deadline;type:timestamptz;not null" json:"event_deadline"`

	// 0 means unlimited participants.
	EventParticipantLimit int `gorm:"column:event_participant_limit;not null;default:0" json:"event_participant_limit"`

	EventCreatedAt time.Time      `gorm:"column:event_created_at;type:timestamptz;autoCreateTime" json:"event_created_at"`
	EventUpdatedAt time.Time      `gorm:"column:event_updated_at;type:timestamptz;autoUpdateTime" json:"event_updated_at"`
	EventDeletedAt gorm.DeletedAt `gorm:"column:event_deleted_at;type:timestamptz;index" json:"event_deleted_at,omitempty"`
}

func (EventModel) TableName() string {
	return "events"
}

func (e *EventModel) BeforeCreate(tx *gorm.DB) error {
	if e.EventID == uuid.Nil {
		e.EventID = uuid.New()
	}
	return nil
}
