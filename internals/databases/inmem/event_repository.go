package inmem

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"campushub_backend/internals/features/events/model"
	"campushub_backend/internals/features/events/repository"
)

type eventRepository struct {
	store *Store
}

func NewEventRepository(store *Store) repository.EventRepository {
	return &eventRepository{store: store}
}

func (r *eventRepository) Create(ctx context.Context, event *model.EventModel) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if event.EventID == uuid.Nil {
		event.EventID = uuid.New()
	}
	now := time.Now().UTC()
	event.EventCreatedAt = now
	event.EventUpdatedAt = now

	s.events = append(s.events, *event)
	s.persist()
	return nil
}

func (r *eventRepository) Update(ctx context.Context, event *model.EventModel) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.events {
		if s.events[i].EventID == event.EventID {
			event.EventUpdatedAt = time.Now().UTC()
			s.events[i] = *event
			s.persist()
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *eventRepository) Delete(ctx context.Context, id uuid.UUID) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.events {
		if s.events[i].EventID == id {
			s.events = append(s.events[:i], s.events[i+1:]...)
			s.persist()
			return nil
		}
	}
	// Delete is idempotent, same as the gorm medium.
	return nil
}

func (r *eventRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.EventModel, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := range s.events {
		if s.events[i].EventID == id {
			e := s.events[i]
			return &e, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *eventRepository) List(ctx context.Context, filter repository.ListFilter) ([]model.EventModel, int64, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	var matched []model.EventModel
	for i := range s.events {
		e := s.events[i]
		if filter.TeacherID != uuid.Nil && e.EventTeacherID != filter.TeacherID {
			continue
		}
		if filter.Category != "" && e.EventCategory != filter.Category {
			continue
		}
		matched = append(matched, e)
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].EventStartsAt.Before(matched[j].EventStartsAt)
	})

	total := int64(len(matched))
	if filter.Limit > 0 {
		if filter.Offset >= len(matched) {
			return nil, total, nil
		}
		end := filter.Offset + filter.Limit
		if end > len(matched) {
			end = len(matched)
		}
		matched = matched[filter.Offset:end]
	}
	return matched, total, nil
}

func (r *eventRepository) CreateRegistration(ctx context.Context, event *model.EventModel, userID uuid.UUID) (*model.EventRegistrationModel, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	var count int
	for i := range s.registrations {
		reg := s.registrations[i]
		if reg.EventRegistrationEventID != event.EventID {
			continue
		}
		if reg.EventRegistrationUserID == userID {
			return nil, repository.ErrAlreadyRegistered
		}
		count++
	}
	if event.EventParticipantLimit > 0 && count >= event.EventParticipantLimit {
		return nil, repository.ErrEventFull
	}

	reg := model.EventRegistrationModel{
		EventRegistrationID:        uuid.New(),
		EventRegistrationEventID:   event.EventID,
		EventRegistrationUserID:    userID,
		EventRegistrationCreatedAt: time.Now().UTC(),
	}
	s.registrations = append(s.registrations, reg)
	s.persist()
	return &reg, nil
}

func (r *eventRepository) DeleteRegistration(ctx context.Context, eventID, userID uuid.UUID) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.registrations {
		reg := s.registrations[i]
		if reg.EventRegistrationEventID == eventID && reg.EventRegistrationUserID == userID {
			s.registrations = append(s.registrations[:i], s.registrations[i+1:]...)
			s.persist()
			return nil
		}
	}
	return nil
}

func (r *eventRepository) ListRegistrationsByEvent(ctx context.Context, eventID uuid.UUID) ([]model.EventRegistrationModel, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	var regs []model.EventRegistrationModel
	for i := range s.registrations {
		if s.registrations[i].EventRegistrationEventID == eventID {
			regs = append(regs, s.registrations[i])
		}
	}
	sort.Slice(regs, func(i, j int) bool {
		return regs[i].EventRegistrationCreatedAt.Before(regs[j].EventRegistrationCreatedAt)
	})
	return regs, nil
}

func (r *eventRepository) ListRegistrationsByUser(ctx context.Context, userID uuid.UUID) ([]model.EventRegistrationModel, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	var regs []model.EventRegistrationModel
	for i := range s.registrations {
		if s.registrations[i].EventRegistrationUserID == userID {
			regs = append(regs, s.registrations[i])
		}
	}
	sort.Slice(regs, func(i, j int) bool {
		return regs[j].EventRegistrationCreatedAt.Before(regs[i].EventRegistrationCreatedAt)
	})
	return regs, nil
}

func (r *eventRepository) CountRegistrations(ctx context.Context, eventID uuid.UUID) (int64, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int64
	for i := range s.registrations {
		if s.registrations[i].EventRegistrationEventID == eventID {
			count++
		}
	}
	return count, nil
}
