package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campushub_backend/internals/configs"
	"campushub_backend/internals/databases/inmem"
)

func newTestService(t *testing.T) *AuthService {
	t.Helper()
	configs.JWTSecret = "test-access-secret"
	configs.JWTRefreshSecret = "test-refresh-secret"

	store := inmem.Open("")
	return NewAuthService(inmem.NewUserRepository(store), inmem.NewTokenRepository(store))
}

func registerStudent(t *testing.T, svc *AuthService, email string) {
	t.Helper()
	_, err := svc.Register(context.Background(), RegisterInput{
		UserName: "Aisyah Putri",
		Email:    email,
		Password: "correct-horse",
		Role:     "student",
	})
	require.NoError(t, err)
}

func TestRegisterAndLogin(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	registerStudent(t, svc, "Aisyah.Putri@Campus.Test")

	// The stored email is lowercased and login is case-insensitive.
	user, pair, err := svc.Login(ctx, "aisyah.putri@campus.test", "correct-horse", "student")
	require.NoError(t, err)
	assert.Equal(t, "aisyah.putri@campus.test", user.Email)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)

	_, _, err = svc.Login(ctx, "AISYAH.PUTRI@CAMPUS.TEST", "correct-horse", "")
	require.NoError(t, err)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	registerStudent(t, svc, "dup@campus.test")

	_, err := svc.Register(ctx, RegisterInput{
		UserName: "Someone Else",
		Email:    "DUP@campus.test",
		Password: "another-pass",
		Role:     "teacher",
	})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestRegisterRejectsUnknownRole(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Register(context.Background(), RegisterInput{
		UserName: "Odd Role",
		Email:    "odd@campus.test",
		Password: "long-enough",
		Role:     "admin",
	})
	assert.ErrorIs(t, err, ErrRoleUnknown)
}

func TestLoginInvalidCredentials(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	registerStudent(t, svc, "aisyah@campus.test")

	_, _, err := svc.Login(ctx, "aisyah@campus.test", "wrong-password", "")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.Login(ctx, "nobody@campus.test", "whatever-pass", "")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginRoleMismatchReportsActualRole(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	registerStudent(t, svc, "aisyah@campus.test")

	_, _, err := svc.Login(ctx, "aisyah@campus.test", "correct-horse", "teacher")
	var mismatch *RoleMismatchError
	require.True(t, errors.As(err, &mismatch))
	assert.Equal(t, "student", mismatch.ActualRole)
}

func TestRefreshRotatesToken(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	registerStudent(t, svc, "aisyah@campus.test")
	_, pair, err := svc.Login(ctx, "aisyah@campus.test", "correct-horse", "")
	require.NoError(t, err)

	user, next, err := svc.Refresh(ctx, pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, "aisyah@campus.test", user.Email)
	assert.NotEqual(t, pair.RefreshToken, next.RefreshToken)

	// The presented token was rotated out and must not work twice.
	_, _, err = svc.Refresh(ctx, pair.RefreshToken)
	assert.ErrorIs(t, err, ErrRefreshInvalid)

	_, _, err = svc.Refresh(ctx, next.RefreshToken)
	require.NoError(t, err)
}

func TestIssueTokenPairRefreshTokensAreUnique(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	registerStudent(t, svc, "aisyah@campus.test")
	user, err := svc.Users.FindByEmail(ctx, "aisyah@campus.test")
	require.NoError(t, err)

	// Two pairs issued back-to-back share the same iat second; the jti
	// claim must still make their refresh tokens distinct.
	first, err := svc.IssueTokenPair(ctx, user)
	require.NoError(t, err)
	second, err := svc.IssueTokenPair(ctx, user)
	require.NoError(t, err)
	assert.NotEqual(t, first.RefreshToken, second.RefreshToken)
}

func TestRefreshRejectsGarbage(t *testing.T) {
	svc := newTestService(t)

	_, _, err := svc.Refresh(context.Background(), "not-a-jwt")
	assert.ErrorIs(t, err, ErrRefreshInvalid)
}

func TestLogoutBlacklistsAccessAndRevokesRefresh(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	registerStudent(t, svc, "aisyah@campus.test")
	user, pair, err := svc.Login(ctx, "aisyah@campus.test", "correct-horse", "")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, pair.AccessToken, user.ID))

	blacklisted, err := svc.Tokens.IsTokenBlacklisted(ctx, pair.AccessToken)
	require.NoError(t, err)
	assert.True(t, blacklisted)

	_, _, err = svc.Refresh(ctx, pair.RefreshToken)
	assert.ErrorIs(t, err, ErrRefreshInvalid)
}

func TestChangePasswordRevokesSessions(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	registerStudent(t, svc, "aisyah@campus.test")
	user, pair, err := svc.Login(ctx, "aisyah@campus.test", "correct-horse", "")
	require.NoError(t, err)

	require.NoError(t, svc.ChangePassword(ctx, user.ID, "correct-horse", "brand-new-pass"))

	_, _, err = svc.Login(ctx, "aisyah@campus.test", "correct-horse", "")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.Refresh(ctx, pair.RefreshToken)
	assert.ErrorIs(t, err, ErrRefreshInvalid)

	_, _, err = svc.Login(ctx, "aisyah@campus.test", "brand-new-pass", "")
	require.NoError(t, err)
}
