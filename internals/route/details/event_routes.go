package details

import (
	"github.com/gofiber/fiber/v2"

	eventController "campushub_backend/internals/features/events/controller"
	authMiddleware "campushub_backend/internals/middlewares/auth"
)

// EventRoutes mounts the event catalog, teacher management, and student
// registration endpoints.
func EventRoutes(app *fiber.App, ctrl *eventController.EventController, regCtrl *eventController.EventRegistrationController, authMW fiber.Handler) {
	// Public catalog
	public := app.Group("/api/public")
	public.Get("/events", ctrl.GetAllEvents)
	public.Get("/events/:id", ctrl.GetEventByID)

	// Students
	student := app.Group("/api/u", authMW, authMiddleware.OnlyStudents("event registration"))
	student.Post("/events/:id/register", regCtrl.RegisterForEvent)
	student.Delete("/events/:id/register", regCtrl.CancelRegistration)
	student.Get("/registrations", regCtrl.GetMyRegistrations)

	// Teachers
	teacher := app.Group("/api/t", authMW, authMiddleware.OnlyTeachers("event management"))
	teacher.Get("/events", ctrl.GetMyEvents)
	teacher.Post("/events", ctrl.CreateEvent)
	teacher.Patch("/events/:id", ctrl.UpdateEvent)
	teacher.Put("/events/:id/poster", ctrl.UploadPoster)
	teacher.Delete("/events/:id", ctrl.DeleteEvent)
	teacher.Get("/events/:id/registrations", ctrl.GetEventRegistrants)
}
