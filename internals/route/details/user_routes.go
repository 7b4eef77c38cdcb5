package details

import (
	"github.com/gofiber/fiber/v2"

	userController "campushub_backend/internals/features/users/user/controller"
)

// UserRoutes mounts profile and navigation endpoints.
func UserRoutes(app *fiber.App, ctrl *userController.UserController, authMW fiber.Handler) {
	// Public directory of teachers (used by the ask-a-question picker)
	public := app.Group("/api/public")
	public.Get("/teachers", ctrl.ListTeachers)

	// Any signed-in user
	user := app.Group("/api/u", authMW)
	user.Get("/me", ctrl.Me)
	user.Patch("/me", ctrl.UpdateMe)
	user.Put("/me/avatar", ctrl.UploadAvatar)
	user.Get("/navigation", ctrl.Navigation)
}
