package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EventRegistrationModel links a student to an event. Deleting an event does
// not cascade here; readers must tolerate rows whose event is gone.
type EventRegistrationModel struct {
	EventRegistrationID      uuid.UUID `gorm:"column:event_registration_id;type:uuid;default:gen_random_uuid();primaryKey" json:"event_registration_id"`
	EventRegistrationEventID uuid.UUID `gorm:"column:event_registration_event_id;type:uuid;not null;uniqueIndex:ux_event_registrations_event_user" json:"event_registration_event_id"`
	EventRegistrationUserID  uuid.UUID `gorm:"column:event_registration_user_id;type:uuid;not null;uniqueIndex:ux_event_registrations_event_user" json:"event_registration_user_id"`

	EventRegistrationCreatedAt time.Time `gorm:"column:event_registration_created_at;type:timestamptz;autoCreateTime" json:"event_registration_created_at"`
}

func (EventRegistrationModel) TableName() string {
	return "event_registrations"
}

func (r *EventRegistrationModel) BeforeCreate(tx *gorm.DB) error {
	if r.EventRegistrationID == uuid.Nil {
		r.EventRegistrationID = uuid.New()
	}
	return nil
}
