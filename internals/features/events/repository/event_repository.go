package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"campushub_backend/internals/features/events/model"
)

var (
	ErrEventFull         = errors.New("event participant limit reached")
	ErrAlreadyRegistered = errors.New("user already registered for event")
)

// ListFilter narrows event listings. Zero values mean "no filter".
type ListFilter struct {
	TeacherID uuid.UUID
	Category  string
	Offset    int
	Limit     int
}

type EventRepository interface {
	Create(ctx context.Context, event *model.EventModel) error
	Update(ctx context.Context, event *model.EventModel) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.EventModel, error)
	List(ctx context.Context, filter ListFilter) ([]model.EventModel, int64, error)

	// CreateRegistration enforces the participant limit and the unique
	// (event, user) pair atomically; it returns ErrEventFull or
	// ErrAlreadyRegistered on violation.
	CreateRegistration(ctx context.Context, event *model.EventModel, userID uuid.UUID) (*model.EventRegistrationModel, error)
	DeleteRegistration(ctx context.Context, eventID, userID uuid.UUID) error
	ListRegistrationsByEvent(ctx context.Context, eventID uuid.UUID) ([]model.EventRegistrationModel, error)
	ListRegistrationsByUser(ctx context.Context, userID uuid.UUID) ([]model.EventRegistrationModel, error)
	CountRegistrations(ctx context.Context, eventID uuid.UUID) (int64, error)
}

type eventGormRepository struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) EventRepository {
	return &eventGormRepository{db: db}
}

func (r *eventGormRepository) Create(ctx context.Context, event *model.EventModel) error {
	return r.db.WithContext(ctx).Create(event).Error
}

func (r *eventGormRepository) Update(ctx context.Context, event *model.EventModel) error {
	return r.db.WithContext(ctx).Save(event).Error
}

func (r *eventGormRepository) Delete(ctx context.Context, id uuid.UUID) error {
	// Registrations are left in place; readers filter dangling rows.
	return r.db.WithContext(ctx).
		Delete(&model.EventModel{}, "event_id = ?", id).Error
}

func (r *eventGormRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.EventModel, error) {
	var event model.EventModel
	if err := r.db.WithContext(ctx).First(&event, "event_id = ?", id).Error; err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *eventGormRepository) List(ctx context.Context, filter ListFilter) ([]model.EventModel, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.EventModel{})
	if filter.TeacherID != uuid.Nil {
		q = q.Where("event_teacher_id = ?", filter.TeacherID)
	}
	if filter.Category != "" {
		q = q.Where("event_category = ?", filter.Category)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var events []model.EventModel
	q = q.Order("event_starts_at ASC")
	if filter.Limit > 0 {
		q = q.Offset(filter.Offset).Limit(filter.Limit)
	}
	if err := q.Find(&events).Error; err != nil {
		return nil, 0, err
	}
	return events, total, nil
}

func (r *eventGormRepository) CreateRegistration(ctx context.Context, event *model.EventModel, userID uuid.UUID) (*model.EventRegistrationModel, error) {
	reg := &model.EventRegistrationModel{
		EventRegistrationEventID: event.EventID,
		EventRegistrationUserID:  userID,
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing int64
		if err := tx.Model(&model.EventRegistrationModel{}).
			Where("event_registration_event_id = ? AND event_registration_user_id = ?", event.EventID, userID).
			Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return ErrAlreadyRegistered
		}

		if event.EventParticipantLimit > 0 {
			var count int64
			if err := tx.Model(&model.EventRegistrationModel{}).
				Where("event_registration_event_id = ?", event.EventID).
				Count(&count).Error; err != nil {
				return err
			}
			if count >= int64(event.EventParticipantLimit) {
				return ErrEventFull
			}
		}

		return tx.Create(reg).Error
	})
	if err != nil {
		return nil, err
	}
	return reg, nil
}

func (r *eventGormRepository) DeleteRegistration(ctx context.Context, eventID, userID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("event_registration_event_id = ? AND event_registration_user_id = ?", eventID, userID).
		Delete(&model.EventRegistrationModel{}).Error
}

func (r *eventGormRepository) ListRegistrationsByEvent(ctx context.Context, eventID uuid.UUID) ([]model.EventRegistrationModel, error) {
	var regs []model.EventRegistrationModel
	err := r.db.WithContext(ctx).
		Where("event_registration_event_id = ?", eventID).
		Order("event_registration_created_at ASC").
		Find(&regs).Error
	return regs, err
}

func (r *eventGormRepository) ListRegistrationsByUser(ctx context.Context, userID uuid.UUID) ([]model.EventRegistrationModel, error) {
	var regs []model.EventRegistrationModel
	err := r.db.WithContext(ctx).
		Where("event_registration_user_id = ?", userID).
		Order("event_registration_created_at DESC").
		Find(&regs).Error
	return regs, err
}

func (r *eventGormRepository) CountRegistrations(ctx context.Context, eventID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.EventRegistrationModel{}).
		Where("event_registration_event_id = ?", eventID).
		Count(&count).Error
	return count, err
}
