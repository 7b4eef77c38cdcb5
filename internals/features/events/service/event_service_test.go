package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"campushub_backend/internals/databases/inmem"
	"campushub_backend/internals/features/events/model"
	"campushub_backend/internals/features/events/repository"
)

func newTestService(t *testing.T) *EventService {
	t.Helper()
	store := inmem.Open("")
	return NewEventService(inmem.NewEventRepository(store))
}

func makeEvent(t *testing.T, svc *EventService, teacherID uuid.UUID, limit int) *model.EventModel {
	t.Helper()
	now := time.Now()
	event := &model.EventModel{
		EventTitle:            "Go Workshop",
		EventDescription:      "Hands-on session",
		EventCategory:         "workshop",
		EventTeacherID:        teacherID,
		EventStartsAt:         now.Add(48 * time.Hour),
		EventDeadline:         now.Add(24 * time.Hour),
		EventParticipantLimit: limit,
	}
	require.NoError(t, svc.Create(context.Background(), event))
	return event
}

func TestRegisterHappyPath(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	event := makeEvent(t, svc, uuid.New(), 10)

	studentID := uuid.New()
	reg, err := svc.Register(ctx, event.EventID, studentID)
	require.NoError(t, err)
	assert.Equal(t, event.EventID, reg.EventRegistrationEventID)
	assert.Equal(t, studentID, reg.EventRegistrationUserID)

	_, count, err := svc.Detail(ctx, event.EventID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestRegisterTwiceConflicts(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	event := makeEvent(t, svc, uuid.New(), 10)

	studentID := uuid.New()
	_, err := svc.Register(ctx, event.EventID, studentID)
	require.NoError(t, err)

	_, err = svc.Register(ctx, event.EventID, studentID)
	assert.ErrorIs(t, err, repository.ErrAlreadyRegistered)
}

func TestRegisterRespectsParticipantLimit(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	event := makeEvent(t, svc, uuid.New(), 2)

	_, err := svc.Register(ctx, event.EventID, uuid.New())
	require.NoError(t, err)
	_, err = svc.Register(ctx, event.EventID, uuid.New())
	require.NoError(t, err)

	_, err = svc.Register(ctx, event.EventID, uuid.New())
	assert.ErrorIs(t, err, repository.ErrEventFull)
}

func TestRegisterZeroLimitMeansUnlimited(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	event := makeEvent(t, svc, uuid.New(), 0)

	for i := 0; i < 25; i++ {
		_, err := svc.Register(ctx, event.EventID, uuid.New())
		require.NoError(t, err)
	}
}

func TestRegisterAfterDeadline(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	event := makeEvent(t, svc, uuid.New(), 10)

	svc.Now = func() time.Time { return event.EventDeadline.Add(time.Minute) }

	_, err := svc.Register(ctx, event.EventID, uuid.New())
	assert.ErrorIs(t, err, ErrDeadlinePassed)
}

func TestRegisterUnknownEvent(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Register(context.Background(), uuid.New(), uuid.New())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestCancelThenRegisterAgain(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	event := makeEvent(t, svc, uuid.New(), 1)

	studentID := uuid.New()
	_, err := svc.Register(ctx, event.EventID, studentID)
	require.NoError(t, err)

	require.NoError(t, svc.CancelRegistration(ctx, event.EventID, studentID))

	_, err = svc.Register(ctx, event.EventID, studentID)
	require.NoError(t, err)
}

func TestOwnershipChecks(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	owner := uuid.New()
	event := makeEvent(t, svc, owner, 10)

	_, err := svc.FindOwned(ctx, uuid.New(), event.EventID)
	assert.ErrorIs(t, err, ErrNotOwner)

	_, err = svc.ListRegistrants(ctx, uuid.New(), event.EventID)
	assert.ErrorIs(t, err, ErrNotOwner)

	got, err := svc.FindOwned(ctx, owner, event.EventID)
	require.NoError(t, err)
	assert.Equal(t, event.EventID, got.EventID)
}

func TestDeleteLeavesRegistrationsButFiltersThem(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	owner := uuid.New()
	kept := makeEvent(t, svc, owner, 10)
	doomed := makeEvent(t, svc, owner, 10)

	studentID := uuid.New()
	_, err := svc.Register(ctx, kept.EventID, studentID)
	require.NoError(t, err)
	_, err = svc.Register(ctx, doomed.EventID, studentID)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, owner, doomed.EventID))

	// The raw registration row survives the delete...
	regs, err := svc.Events.ListRegistrationsByUser(ctx, studentID)
	require.NoError(t, err)
	assert.Len(t, regs, 2)

	// ...but the student-facing listing drops the dangling one.
	visible, err := svc.ListStudentRegistrations(ctx, studentID)
	require.NoError(t, err)
	require.Len(t, visible, 1)
	assert.Equal(t, kept.EventID, visible[0].Event.EventID)
}

func TestDeleteIsIdempotentAndOwnerScoped(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	owner := uuid.New()
	event := makeEvent(t, svc, owner, 10)

	assert.ErrorIs(t, svc.Delete(ctx, uuid.New(), event.EventID), ErrNotOwner)

	require.NoError(t, svc.Delete(ctx, owner, event.EventID))
	require.NoError(t, svc.Delete(ctx, owner, event.EventID))
}
