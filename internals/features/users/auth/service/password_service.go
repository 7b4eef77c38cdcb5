package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	authHelper "campushub_backend/internals/features/users/auth/helper"
)

var (
	ErrSecurityAnswerMismatch = errors.New("security answer does not match")
	ErrNoSecurityQuestion     = errors.New("account has no security question configured")
)

// ========================== CHANGE PASSWORD ==========================
func (s *AuthService) ChangePassword(ctx context.Context, userID uuid.UUID, currentPassword, newPassword string) error {
	if len(newPassword) < 8 {
		return errors.New("password must be at least 8 characters")
	}

	user, err := s.Users.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if !authHelper.CheckPassword(user.Password, currentPassword) {
		return ErrInvalidCredentials
	}

	hashed, err := authHelper.HashPassword(newPassword)
	if err != nil {
		return err
	}
	if err := s.Users.UpdatePassword(ctx, user.ID, hashed); err != nil {
		return err
	}
	// Old sessions should not survive a password change.
	return s.Tokens.DeleteRefreshTokensByUser(ctx, userID)
}

// ========================== FORGOT PASSWORD ==========================
// ResetPasswordWithSecurityAnswer resets the password after checking the
// account's security answer (case-insensitive).
func (s *AuthService) ResetPasswordWithSecurityAnswer(ctx context.Context, email, answer, newPassword string) error {
	if err := authHelper.ValidateResetPassword(email, newPassword); err != nil {
		return err
	}

	user, err := s.Users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInvalidCredentials
		}
		return err
	}
	if user.SecurityQuestion == nil || user.SecurityAnswer == nil {
		return ErrNoSecurityQuestion
	}
	if !strings.EqualFold(strings.TrimSpace(answer), strings.TrimSpace(*user.SecurityAnswer)) {
		return ErrSecurityAnswerMismatch
	}

	hashed, err := authHelper.HashPassword(newPassword)
	if err != nil {
		return err
	}
	if err := s.Users.UpdatePassword(ctx, user.ID, hashed); err != nil {
		return err
	}
	return s.Tokens.DeleteRefreshTokensByUser(ctx, user.ID)
}
