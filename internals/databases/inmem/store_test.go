package inmem

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	faqModel "campushub_backend/internals/features/home/faqs/model"
	authModel "campushub_backend/internals/features/users/auth/model"
	userModel "campushub_backend/internals/features/users/user/model"
)

func TestOpenMissingSnapshotStartsEmpty(t *testing.T) {
	store := Open(filepath.Join(t.TempDir(), "does-not-exist.json"))
	require.NotNil(t, store)

	users, err := NewUserRepository(store).ListTeachers(context.Background())
	require.NoError(t, err)
	assert.Empty(t, users)
}

func TestOpenMalformedSnapshotStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	store := Open(path)
	require.NotNil(t, store)

	faqs, total, err := NewFaqRepository(store).List(context.Background(), 0, 0)
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, faqs)
}

func TestOpenEmptyPathIsMemoryOnly(t *testing.T) {
	store := Open("")
	require.NoError(t, store.Flush())
}

func TestSnapshotRoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "snapshot.json")

	store := Open(path)
	users := NewUserRepository(store)
	faqs := NewFaqRepository(store)

	require.NoError(t, users.Create(ctx, &userModel.UserModel{
		UserName: "Prof. Dina",
		Email:    "dina@campus.test",
		Password: "hashed",
		Role:     "teacher",
		IsActive: true,
	}))
	require.NoError(t, faqs.Create(ctx, &faqModel.FaqModel{
		FaqQuestion: "How do I register?",
		FaqAnswer:   "Use the event page.",
	}))
	require.NoError(t, store.Flush())

	reopened := Open(path)
	user, err := NewUserRepository(reopened).FindByEmail(ctx, "dina@campus.test")
	require.NoError(t, err)
	assert.Equal(t, "Prof. Dina", user.UserName)

	list, total, err := NewFaqRepository(reopened).List(ctx, 0, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, list, 1)
	assert.Equal(t, "How do I register?", list[0].FaqQuestion)
}

func TestRefreshTokensAreNotSnapshotted(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "snapshot.json")

	store := Open(path)
	tokens := NewTokenRepository(store)

	user := userModel.UserModel{
		UserName: "Aisyah",
		Email:    "aisyah@campus.test",
		Password: "hashed",
		Role:     "student",
		IsActive: true,
	}
	require.NoError(t, NewUserRepository(store).Create(ctx, &user))
	require.NoError(t, tokens.CreateRefreshToken(ctx, &authModel.RefreshToken{
		UserID:    user.ID,
		TokenHash: []byte("hash"),
		ExpiresAt: time.Now().Add(time.Hour),
	}))

	exists, err := tokens.RefreshTokenExists(ctx, []byte("hash"))
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, store.Flush())

	reopened := Open(path)
	exists, err = NewTokenRepository(reopened).RefreshTokenExists(ctx, []byte("hash"))
	require.NoError(t, err)
	assert.False(t, exists, "refresh tokens must not survive a restart")
}
