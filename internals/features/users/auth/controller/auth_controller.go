package controller

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"campushub_backend/internals/features/users/auth/service"
	userModel "campushub_backend/internals/features/users/user/model"
	helpers "campushub_backend/internals/helpers"
)

type AuthController struct {
	Service *service.AuthService
}

func NewAuthController(svc *service.AuthService) *AuthController {
	return &AuthController{Service: svc}
}

// ======================
// Register
// ======================
func (ac *AuthController) Register(c *fiber.Ctx) error {
	var input service.RegisterInput
	if err := c.BodyParser(&input); err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	user, err := ac.Service.Register(c.UserContext(), input)
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			return helpers.JsonError(c, fiber.StatusConflict, "Email is already registered")
		}
		if errors.Is(err, service.ErrRoleUnknown) {
			return helpers.JsonError(c, fiber.StatusBadRequest, err.Error())
		}
		return helpers.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	return helpers.JsonCreated(c, "Registration successful", userPayload(user))
}

// ======================
// Login
// ======================
func (ac *AuthController) Login(c *fiber.Ctx) error {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		Role     string `json:"role"`
	}
	if err := c.BodyParser(&input); err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	user, pair, err := ac.Service.Login(c.UserContext(), input.Email, input.Password, input.Role)
	if err != nil {
		var mismatch *service.RoleMismatchError
		switch {
		case errors.As(err, &mismatch):
			return helpers.JsonErrorWithData(c, fiber.StatusForbidden,
				"Role mismatch", fiber.Map{"actual_role": mismatch.ActualRole})
		case errors.Is(err, service.ErrInvalidCredentials):
			return helpers.JsonError(c, fiber.StatusUnauthorized, "Invalid email or password")
		case errors.Is(err, service.ErrAccountDisabled):
			return helpers.JsonError(c, fiber.StatusForbidden, "Your account has been deactivated")
		default:
			return helpers.JsonError(c, fiber.StatusInternalServerError, "Login failed")
		}
	}

	setSessionCookies(c, pair)
	return helpers.JsonOK(c, "Login successful", fiber.Map{
		"user":   userPayload(user),
		"tokens": pair,
	})
}

// ======================
// Login with Google
// ======================
func (ac *AuthController) LoginGoogle(c *fiber.Ctx) error {
	var input struct {
		IDToken string `json:"id_token"`
	}
	if err := c.BodyParser(&input); err != nil || input.IDToken == "" {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Missing id_token")
	}

	user, pair, err := ac.Service.LoginGoogle(c.UserContext(), input.IDToken)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			return helpers.JsonError(c, fiber.StatusUnauthorized, "Google token verification failed")
		}
		if errors.Is(err, service.ErrAccountDisabled) {
			return helpers.JsonError(c, fiber.StatusForbidden, "Your account has been deactivated")
		}
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Login failed")
	}

	setSessionCookies(c, pair)
	return helpers.JsonOK(c, "Login successful", fiber.Map{
		"user":   userPayload(user),
		"tokens": pair,
	})
}

// ======================
// Refresh token
// ======================
func (ac *AuthController) RefreshToken(c *fiber.Ctx) error {
	refresh := helpers.GetRefreshTokenFromCookie(c)
	if refresh == "" {
		var input struct {
			RefreshToken string `json:"refresh_token"`
		}
		_ = c.BodyParser(&input)
		refresh = input.RefreshToken
	}
	if refresh == "" {
		return helpers.JsonError(c, fiber.StatusUnauthorized, "Missing refresh token")
	}

	user, pair, err := ac.Service.Refresh(c.UserContext(), refresh)
	if err != nil {
		if errors.Is(err, service.ErrRefreshInvalid) {
			return helpers.JsonError(c, fiber.StatusUnauthorized, "Refresh token invalid")
		}
		if errors.Is(err, service.ErrAccountDisabled) {
			return helpers.JsonError(c, fiber.StatusForbidden, "Your account has been deactivated")
		}
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Refresh failed")
	}

	setSessionCookies(c, pair)
	return helpers.JsonOK(c, "Token refreshed", fiber.Map{
		"user":   userPayload(user),
		"tokens": pair,
	})
}

// ======================
// Logout
// ======================
func (ac *AuthController) Logout(c *fiber.Ctx) error {
	userID, err := helpers.GetUserID(c)
	if err != nil {
		return err
	}
	token := helpers.GetRawAccessToken(c)
	if token == "" {
		return helpers.JsonError(c, fiber.StatusUnauthorized, "Missing token")
	}

	if err := ac.Service.Logout(c.UserContext(), token, userID); err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Logout failed")
	}

	clearSessionCookies(c)
	return helpers.JsonOK(c, "Logout successful", nil)
}

// ======================
// Change password
// ======================
func (ac *AuthController) ChangePassword(c *fiber.Ctx) error {
	userID, err := helpers.GetUserID(c)
	if err != nil {
		return err
	}

	var input struct {
		CurrentPassword string `json:"current_password"`
		NewPassword     string `json:"new_password"`
	}
	if err := c.BodyParser(&input); err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Invalid input format")
	}

	if err := ac.Service.ChangePassword(c.UserContext(), userID, input.CurrentPassword, input.NewPassword); err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			return helpers.JsonError(c, fiber.StatusUnauthorized, "Current password is incorrect")
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helpers.JsonError(c, fiber.StatusNotFound, "User not found")
		}
		return helpers.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	return helpers.JsonUpdated(c, "Password changed successfully", nil)
}

// ======================
// Forgot password
// ======================
func (ac *AuthController) ForgotPassword(c *fiber.Ctx) error {
	var input struct {
		Email          string `json:"email"`
		SecurityAnswer string `json:"security_answer"`
		NewPassword    string `json:"new_password"`
	}
	if err := c.BodyParser(&input); err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Invalid request format")
	}

	err := ac.Service.ResetPasswordWithSecurityAnswer(c.UserContext(), input.Email, input.SecurityAnswer, input.NewPassword)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSecurityAnswerMismatch):
			return helpers.JsonError(c, fiber.StatusForbidden, "Security answer does not match")
		case errors.Is(err, service.ErrNoSecurityQuestion):
			return helpers.JsonError(c, fiber.StatusBadRequest, "Account has no security question configured")
		case errors.Is(err, service.ErrInvalidCredentials):
			return helpers.JsonError(c, fiber.StatusNotFound, "User not found")
		default:
			return helpers.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
		}
	}

	return helpers.JsonUpdated(c, "Password reset successfully", nil)
}

/* ==========================
   Helpers
========================== */

func userPayload(user *userModel.UserModel) fiber.Map {
	return fiber.Map{
		"id":        user.ID,
		"user_name": user.UserName,
		"email":     user.Email,
		"role":      user.Role,
	}
}

func setSessionCookies(c *fiber.Ctx, pair *service.TokenPair) {
	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    pair.AccessToken,
		Expires:  pair.AccessExpiresAt,
		HTTPOnly: true,
		SameSite: "Lax",
		Path:     "/",
	})
	c.Cookie(&fiber.Cookie{
		Name:     "refresh_token",
		Value:    pair.RefreshToken,
		Expires:  pair.RefreshExpiresAt,
		HTTPOnly: true,
		SameSite: "Lax",
		Path:     "/api/auth",
	})
}

func clearSessionCookies(c *fiber.Ctx) {
	expired := time.Now().Add(-time.Hour)
	c.Cookie(&fiber.Cookie{Name: "access_token", Value: "", Expires: expired, Path: "/"})
	c.Cookie(&fiber.Cookie{Name: "refresh_token", Value: "", Expires: expired, Path: "/api/auth"})
}
