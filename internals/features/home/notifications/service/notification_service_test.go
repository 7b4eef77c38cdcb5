package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"campushub_backend/internals/databases/inmem"
	userModel "campushub_backend/internals/features/users/user/model"
	userRepo "campushub_backend/internals/features/users/user/repository"
)

func newTestService(t *testing.T) (*NotificationService, userRepo.UserRepository) {
	t.Helper()
	store := inmem.Open("")
	users := inmem.NewUserRepository(store)
	return NewNotificationService(inmem.NewNotificationRepository(store), users), users
}

func createUser(t *testing.T, users userRepo.UserRepository, name, role string) *userModel.UserModel {
	t.Helper()
	u := &userModel.UserModel{
		UserName: name,
		Email:    name + "@campus.test",
		Password: "hashed",
		Role:     role,
		IsActive: true,
	}
	require.NoError(t, users.Create(context.Background(), u))
	return u
}

func TestAskTeacherDeliversToInbox(t *testing.T) {
	svc, users := newTestService(t)
	ctx := context.Background()

	teacher := createUser(t, users, "dina", "teacher")
	student := createUser(t, users, "aisyah", "student")

	n, err := svc.AskTeacher(ctx, student.ID, teacher.ID, "When is the next workshop?", []string{"events"})
	require.NoError(t, err)
	assert.Equal(t, teacher.ID, n.NotificationUserID)
	assert.Equal(t, student.ID, n.NotificationSenderID)
	assert.Equal(t, "aisyah", n.NotificationSenderName)
	assert.False(t, n.NotificationIsRead)

	inbox, total, err := svc.Inbox(ctx, teacher.ID, 0, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, inbox, 1)
	assert.Equal(t, "When is the next workshop?", inbox[0].NotificationMessage)

	unread, err := svc.UnreadCount(ctx, teacher.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, unread)
}

func TestAskTeacherRejectsNonTeacherRecipient(t *testing.T) {
	svc, users := newTestService(t)
	ctx := context.Background()

	student := createUser(t, users, "aisyah", "student")
	other := createUser(t, users, "bram", "student")

	_, err := svc.AskTeacher(ctx, student.ID, other.ID, "Hi?", nil)
	assert.ErrorIs(t, err, ErrRecipientNotTeacher)

	_, err = svc.AskTeacher(ctx, student.ID, uuid.New(), "Hi?", nil)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestMarkReadAndDeleteAreRecipientScoped(t *testing.T) {
	svc, users := newTestService(t)
	ctx := context.Background()

	teacher := createUser(t, users, "dina", "teacher")
	student := createUser(t, users, "aisyah", "student")

	n, err := svc.AskTeacher(ctx, student.ID, teacher.ID, "Question one", nil)
	require.NoError(t, err)

	// Another user cannot touch the teacher's inbox entry.
	assert.ErrorIs(t, svc.MarkRead(ctx, n.NotificationID, student.ID), gorm.ErrRecordNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, n.NotificationID, student.ID), gorm.ErrRecordNotFound)

	require.NoError(t, svc.MarkRead(ctx, n.NotificationID, teacher.ID))
	unread, err := svc.UnreadCount(ctx, teacher.ID)
	require.NoError(t, err)
	assert.Zero(t, unread)

	require.NoError(t, svc.Delete(ctx, n.NotificationID, teacher.ID))
	_, total, err := svc.Inbox(ctx, teacher.ID, 0, 0)
	require.NoError(t, err)
	assert.Zero(t, total)
}
