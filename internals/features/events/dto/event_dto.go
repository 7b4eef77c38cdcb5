package dto

import (
	"time"

	"github.com/google/uuid"

	"campushub_backend/internals/features/events/model"
)

// ====================
// Response DTO
// ====================

type EventDTO struct {
	EventID               string    `json:"event_id"`
	EventTitle            string    `json:"event_title"`
	EventDescription      string    `json:"event_description"`
	EventCategory         string    `json:"event_category"`
	EventPosterURL        *string   `json:"event_poster_url,omitempty"`
	EventTeacherID        string    `json:"event_teacher_id"`
	EventStartsAt         time.Time `json:"event_starts_at"`
	EventDeadline         time.Time `json:"event_deadline"`
	EventParticipantLimit int       `json:"event_participant_limit"`
	EventParticipantCount *int64    `json:"event_participant_count,omitempty"`
	EventCreatedAt        time.Time `json:"event_created_at"`
}

// ====================
// Request DTO
// ====================

type CreateEventRequest struct {
	EventTitle            string    `json:"event_title" validate:"required,min=3,max=255"`
	EventDescription      string    `json:"event_description" validate:"max=5000"`
	EventCategory         string    `json:"event_category" validate:"required,max=50"`
	EventStartsAt         time.Time `json:"event_starts_at" validate:"required"`
	EventDeadline         time.Time `json:"event_deadline" validate:"required"`
	EventParticipantLimit int       `json:"event_participant_limit" validate:"min=0"`
}

type UpdateEventRequest struct {
	EventTitle            *string    `json:"event_title,omitempty" validate:"omitempty,min=3,max=255"`
	EventDescription      *string    `json:"event_description,omitempty" validate:"omitempty,max=5000"`
	EventCategory         *string    `json:"event_category,omitempty" validate:"omitempty,max=50"`
	EventStartsAt         *time.Time `json:"event_starts_at,omitempty"`
	EventDeadline         *time.Time `json:"event_deadline,omitempty"`
	EventParticipantLimit *int       `json:"event_participant_limit,omitempty" validate:"omitempty,min=0"`
}

// ====================
// Converter
// ====================

func ToEventDTO(e model.EventModel) EventDTO {
	return EventDTO{
		EventID:               e.EventID.String(),
		EventTitle:            e.EventTitle,
		EventDescription:      e.EventDescription,
		EventCategory:         e.EventCategory,
		EventPosterURL:        e.EventPosterURL,
		EventTeacherID:        e.EventTeacherID.String(),
		EventStartsAt:         e.EventStartsAt,
		EventDeadline:         e.EventDeadline,
		EventParticipantLimit: e.EventParticipantLimit,
		EventCreatedAt:        e.EventCreatedAt,
	}
}

func ToEventDTOWithCount(e model.EventModel, count int64) EventDTO {
	out := ToEventDTO(e)
	out.EventParticipantCount = &count
	return out
}

func (r CreateEventRequest) ToModel(teacherID uuid.UUID) model.EventModel {
	return model.EventModel{
		EventTitle:            r.EventTitle,
		EventDescription:      r.EventDescription,
		EventCategory:         r.EventCategory,
		EventTeacherID:        teacherID,
		EventStartsAt:         r.EventStartsAt,
		EventDeadline:         r.EventDeadline,
		EventParticipantLimit: r.EventParticipantLimit,
	}
}

func (r UpdateEventRequest) Apply(e *model.EventModel) {
	if r.EventTitle != nil {
		e.EventTitle = *r.EventTitle
	}
	if r.EventDescription != nil {
		e.EventDescription = *r.EventDescription
	}
	if r.EventCategory != nil {
		e.EventCategory = *r.EventCategory
	}
	if r.EventStartsAt != nil {
		e.EventStartsAt = *r.EventStartsAt
	}
	if r.EventDeadline != nil {
		e.EventDeadline = *r.EventDeadline
	}
	if r.EventParticipantLimit != nil {
		e.EventParticipantLimit = *r.EventParticipantLimit
	}
}
