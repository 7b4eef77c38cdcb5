package routes

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	eventController "campushub_backend/internals/features/events/controller"
	eventRepository "campushub_backend/internals/features/events/repository"
	eventService "campushub_backend/internals/features/events/service"
	faqController "campushub_backend/internals/features/home/faqs/controller"
	faqRepository "campushub_backend/internals/features/home/faqs/repository"
	faqService "campushub_backend/internals/features/home/faqs/service"
	notifController "campushub_backend/internals/features/home/notifications/controller"
	notifRepository "campushub_backend/internals/features/home/notifications/repository"
	notifService "campushub_backend/internals/features/home/notifications/service"
	authController "campushub_backend/internals/features/users/auth/controller"
	authRepository "campushub_backend/internals/features/users/auth/repository"
	authService "campushub_backend/internals/features/users/auth/service"
	userController "campushub_backend/internals/features/users/user/controller"
	userRepository "campushub_backend/internals/features/users/user/repository"
	authMiddleware "campushub_backend/internals/middlewares/auth"
	routeDetails "campushub_backend/internals/route/details"
)

var startTime time.Time

// Deps carries the storage backends and external collaborators the route
// tree is built on. main wires either the Postgres or the in-memory medium.
type Deps struct {
	Users         userRepository.UserRepository
	Tokens        authRepository.TokenRepository
	Events        eventRepository.EventRepository
	Faqs          faqRepository.FaqRepository
	Notifications notifRepository.NotificationRepository

	FaqGenerator faqService.Generator

	// Ping reports storage health for /health. Nil means always healthy.
	Ping func() error
}

func SetupRoutes(app *fiber.App, deps Deps) {
	startTime = time.Now()

	// ===================== SERVICES =====================
	authSvc := authService.NewAuthService(deps.Users, deps.Tokens)
	eventSvc := eventService.NewEventService(deps.Events)
	faqSvc := faqService.NewFaqService(deps.Faqs, deps.FaqGenerator)
	notifSvc := notifService.NewNotificationService(deps.Notifications, deps.Users)

	// ===================== CONTROLLERS =====================
	authCtrl := authController.NewAuthController(authSvc)
	userCtrl := userController.NewUserController(deps.Users)
	eventCtrl := eventController.NewEventController(eventSvc)
	regCtrl := eventController.NewEventRegistrationController(eventSvc)
	faqCtrl := faqController.NewFaqController(faqSvc)
	notifCtrl := notifController.NewNotificationController(notifSvc)

	authMW := authMiddleware.AuthMiddleware(deps.Users, deps.Tokens)

	// ===================== MOUNT ROUTES =====================
	BaseRoutes(app, deps.Ping)

	log.Println("[INFO] Setting up AuthRoutes...")
	routeDetails.AuthRoutes(app, authCtrl, authMW)

	log.Println("[INFO] Setting up UserRoutes...")
	routeDetails.UserRoutes(app, userCtrl, authMW)

	log.Println("[INFO] Setting up EventRoutes...")
	routeDetails.EventRoutes(app, eventCtrl, regCtrl, authMW)

	log.Println("[INFO] Setting up HomeRoutes...")
	routeDetails.HomeRoutes(app, faqCtrl, notifCtrl, authMW)
}
