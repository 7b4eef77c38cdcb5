package helper

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Locals keys populated by the auth middleware.
const (
	LocRawToken  = "raw_token"
	LocUserID    = "user_id"
	LocUserName  = "user_name"
	LocUserEmail = "user_email"
	LocUserRole  = "user_role"
)

// GetRawAccessToken returns the access token from:
// 1) cookie "access_token"
// 2) Locals set by the middleware
// 3) Authorization header "Bearer <token>"
func GetRawAccessToken(c *fiber.Ctx) string {
	if v := strings.TrimSpace(c.Cookies("access_token")); v != "" {
		return v
	}
	if v, ok := c.Locals(LocRawToken).(string); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	const p = "Bearer "
	auth := c.Get("Authorization")
	if len(auth) > len(p) && strings.HasPrefix(auth, p) {
		return strings.TrimSpace(auth[len(p):])
	}
	return ""
}

func GetRefreshTokenFromCookie(c *fiber.Ctx) string {
	return strings.TrimSpace(c.Cookies("refresh_token"))
}

// GetUserID parses the session user id out of Locals.
func GetUserID(c *fiber.Ctx) (uuid.UUID, error) {
	raw, ok := c.Locals(LocUserID).(string)
	if !ok || raw == "" {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "Missing user ID in context")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid user ID in context")
	}
	return id, nil
}

func GetUserRole(c *fiber.Ctx) string {
	if v, ok := c.Locals(LocUserRole).(string); ok {
		return v
	}
	return ""
}

func GetUserEmail(c *fiber.Ctx) string {
	if v, ok := c.Locals(LocUserEmail).(string); ok {
		return v
	}
	return ""
}

func GetUserName(c *fiber.Ctx) string {
	if v, ok := c.Locals(LocUserName).(string); ok {
		return v
	}
	return ""
}
