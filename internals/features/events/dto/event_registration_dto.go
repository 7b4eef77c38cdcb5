package dto

import (
	"time"

	"campushub_backend/internals/features/events/model"
)

type RegistrationDTO struct {
	EventRegistrationID string    `json:"event_registration_id"`
	EventID             string    `json:"event_id"`
	UserID              string    `json:"user_id"`
	RegisteredAt        time.Time `json:"registered_at"`
}

// StudentRegistrationDTO pairs a registration with the event it points to,
// for the student's own registration listing.
type StudentRegistrationDTO struct {
	EventRegistrationID string    `json:"event_registration_id"`
	RegisteredAt        time.Time `json:"registered_at"`
	Event               EventDTO  `json:"event"`
}

func ToRegistrationDTO(r model.EventRegistrationModel) RegistrationDTO {
	return RegistrationDTO{
		EventRegistrationID: r.EventRegistrationID.String(),
		EventID:             r.EventRegistrationEventID.String(),
		UserID:              r.EventRegistrationUserID.String(),
		RegisteredAt:        r.EventRegistrationCreatedAt,
	}
}
