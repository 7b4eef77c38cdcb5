package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"campushub_backend/internals/features/events/model"
	"campushub_backend/internals/features/events/repository"
)

var (
	ErrNotOwner       = errors.New("event belongs to another teacher")
	ErrDeadlinePassed = errors.New("registration deadline has passed")
)

type EventService struct {
	Events repository.EventRepository
	Now    func() time.Time
}

func NewEventService(events repository.EventRepository) *EventService {
	return &EventService{Events: events, Now: time.Now}
}

// ====================
// Teacher-side operations
// ====================

func (s *EventService) Create(ctx context.Context, event *model.EventModel) error {
	return s.Events.Create(ctx, event)
}

// FindOwned loads the event and rejects access when it belongs to another
// teacher. Returns gorm.ErrRecordNotFound when the event does not exist.
func (s *EventService) FindOwned(ctx context.Context, teacherID, eventID uuid.UUID) (*model.EventModel, error) {
	event, err := s.Events.FindByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event.EventTeacherID != teacherID {
		return nil, ErrNotOwner
	}
	return event, nil
}

func (s *EventService) Update(ctx context.Context, teacherID uuid.UUID, event *model.EventModel) error {
	if event.EventTeacherID != teacherID {
		return ErrNotOwner
	}
	return s.Events.Update(ctx, event)
}

// Delete removes the event unconditionally. Registrations pointing at the
// event are kept; student-facing reads filter them out.
func (s *EventService) Delete(ctx context.Context, teacherID, eventID uuid.UUID) error {
	if _, err := s.FindOwned(ctx, teacherID, eventID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	return s.Events.Delete(ctx, eventID)
}

func (s *EventService) ListRegistrants(ctx context.Context, teacherID, eventID uuid.UUID) ([]model.EventRegistrationModel, error) {
	if _, err := s.FindOwned(ctx, teacherID, eventID); err != nil {
		return nil, err
	}
	return s.Events.ListRegistrationsByEvent(ctx, eventID)
}

// ====================
// Public / student-side operations
// ====================

func (s *EventService) List(ctx context.Context, filter repository.ListFilter) ([]model.EventModel, int64, error) {
	return s.Events.List(ctx, filter)
}

func (s *EventService) Detail(ctx context.Context, eventID uuid.UUID) (*model.EventModel, int64, error) {
	event, err := s.Events.FindByID(ctx, eventID)
	if err != nil {
		return nil, 0, err
	}
	count, err := s.Events.CountRegistrations(ctx, eventID)
	if err != nil {
		return nil, 0, err
	}
	return event, count, nil
}

// Register checks the deadline, then delegates the limit and duplicate
// checks to the repository so both happen under one lock/transaction.
func (s *EventService) Register(ctx context.Context, eventID, userID uuid.UUID) (*model.EventRegistrationModel, error) {
	event, err := s.Events.FindByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if s.Now().After(event.EventDeadline) {
		return nil, ErrDeadlinePassed
	}
	return s.Events.CreateRegistration(ctx, event, userID)
}

func (s *EventService) CancelRegistration(ctx context.Context, eventID, userID uuid.UUID) error {
	return s.Events.DeleteRegistration(ctx, eventID, userID)
}

// StudentRegistration pairs a registration with the event it refers to.
type StudentRegistration struct {
	Registration model.EventRegistrationModel
	Event        model.EventModel
}

// ListStudentRegistrations resolves each registration's event and drops
// entries whose event has since been deleted.
func (s *EventService) ListStudentRegistrations(ctx context.Context, userID uuid.UUID) ([]StudentRegistration, error) {
	regs, err := s.Events.ListRegistrationsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := make([]StudentRegistration, 0, len(regs))
	for _, reg := range regs {
		event, err := s.Events.FindByID(ctx, reg.EventRegistrationEventID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return nil, err
		}
		out = append(out, StudentRegistration{Registration: reg, Event: *event})
	}
	return out, nil
}
