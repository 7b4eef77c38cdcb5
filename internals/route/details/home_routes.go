package details

import (
	"github.com/gofiber/fiber/v2"

	faqController "campushub_backend/internals/features/home/faqs/controller"
	notifController "campushub_backend/internals/features/home/notifications/controller"
	authMiddleware "campushub_backend/internals/middlewares/auth"
)

// HomeRoutes mounts FAQ and teacher-inbox endpoints.
func HomeRoutes(app *fiber.App, faqCtrl *faqController.FaqController, notifCtrl *notifController.NotificationController, authMW fiber.Handler) {
	// Public FAQ list
	public := app.Group("/api/public")
	public.Get("/faqs", faqCtrl.GetAllFaqs)

	// Students send questions to a teacher's inbox
	student := app.Group("/api/u", authMW, authMiddleware.OnlyStudents("asking questions"))
	student.Post("/questions", notifCtrl.AskQuestion)

	// Teachers curate FAQs and work their inbox
	teacher := app.Group("/api/t", authMW, authMiddleware.OnlyTeachers("faq management"))
	teacher.Post("/faqs", faqCtrl.CreateFaq)
	teacher.Patch("/faqs/:id", faqCtrl.UpdateFaq)
	teacher.Delete("/faqs/:id", faqCtrl.DeleteFaq)
	teacher.Post("/faqs/generate", faqCtrl.GenerateFaqs)

	teacher.Get("/notifications", notifCtrl.GetInbox)
	teacher.Get("/notifications/unread-count", notifCtrl.GetUnreadCount)
	teacher.Patch("/notifications/:id/read", notifCtrl.MarkAsRead)
	teacher.Delete("/notifications/:id", notifCtrl.DeleteNotification)
}
