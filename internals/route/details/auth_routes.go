package details

import (
	"github.com/gofiber/fiber/v2"

	authController "campushub_backend/internals/features/users/auth/controller"
	rateLimiter "campushub_backend/internals/middlewares"
)

// AuthRoutes mounts the session endpoints.
// Base: /api/auth
func AuthRoutes(app *fiber.App, ctrl *authController.AuthController, authMW fiber.Handler) {
	baseAuth := app.Group("/api/auth")

	// Public
	baseAuth.Post("/register", rateLimiter.RegisterRateLimiter(), ctrl.Register)
	baseAuth.Post("/login", rateLimiter.LoginRateLimiter(), ctrl.Login)
	baseAuth.Post("/login-google", rateLimiter.LoginRateLimiter(), ctrl.LoginGoogle)
	baseAuth.Post("/forgot-password/reset", rateLimiter.ForgotPasswordRateLimiter(), ctrl.ForgotPassword)

	// Refresh stays here to match the refresh cookie path
	baseAuth.Post("/refresh-token", ctrl.RefreshToken)

	// Session required
	baseAuth.Post("/logout", authMW, ctrl.Logout)
	baseAuth.Post("/change-password", authMW, ctrl.ChangePassword)
}
