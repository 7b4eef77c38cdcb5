package controller

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"campushub_backend/internals/features/events/dto"
	"campushub_backend/internals/features/events/repository"
	"campushub_backend/internals/features/events/service"
	helpers "campushub_backend/internals/helpers"
)

type EventRegistrationController struct {
	Service *service.EventService
}

func NewEventRegistrationController(svc *service.EventService) *EventRegistrationController {
	return &EventRegistrationController{Service: svc}
}

// RegisterForEvent handles POST /api/u/events/:id/register
func (ctrl *EventRegistrationController) RegisterForEvent(c *fiber.Ctx) error {
	userID, err := helpers.GetUserID(c)
	if err != nil {
		return helpers.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	eventID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Invalid event ID")
	}

	reg, err := ctrl.Service.Register(c.UserContext(), eventID, userID)
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return helpers.JsonError(c, fiber.StatusNotFound, "Event not found")
		case errors.Is(err, service.ErrDeadlinePassed):
			return helpers.JsonError(c, fiber.StatusConflict, "The registration deadline has passed")
		case errors.Is(err, repository.ErrAlreadyRegistered):
			return helpers.JsonError(c, fiber.StatusConflict, "You are already registered for this event")
		case errors.Is(err, repository.ErrEventFull):
			return helpers.JsonError(c, fiber.StatusConflict, "This event has reached its participant limit")
		default:
			log.Printf("[ERROR] register user %s for event %s: %v", userID, eventID, err)
			return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to register for event")
		}
	}

	log.Printf("[INFO] user %s registered for event %s", userID, eventID)
	return helpers.JsonCreated(c, "Registered successfully", dto.ToRegistrationDTO(*reg))
}

// CancelRegistration handles DELETE /api/u/events/:id/register
func (ctrl *EventRegistrationController) CancelRegistration(c *fiber.Ctx) error {
	userID, err := helpers.GetUserID(c)
	if err != nil {
		return helpers.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	eventID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Invalid event ID")
	}

	if err := ctrl.Service.CancelRegistration(c.UserContext(), eventID, userID); err != nil {
		log.Printf("[ERROR] cancel registration user %s event %s: %v", userID, eventID, err)
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to cancel registration")
	}
	return helpers.JsonDeleted(c, "Registration cancelled", fiber.Map{"event_id": eventID})
}

// GetMyRegistrations handles GET /api/u/registrations. Registrations whose
// event was deleted are omitted from the response.
func (ctrl *EventRegistrationController) GetMyRegistrations(c *fiber.Ctx) error {
	userID, err := helpers.GetUserID(c)
	if err != nil {
		return helpers.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	items, err := ctrl.Service.ListStudentRegistrations(c.UserContext(), userID)
	if err != nil {
		log.Printf("[ERROR] list registrations for %s: %v", userID, err)
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch registrations")
	}

	out := make([]dto.StudentRegistrationDTO, 0, len(items))
	for _, it := range items {
		out = append(out, dto.StudentRegistrationDTO{
			EventRegistrationID: it.Registration.EventRegistrationID.String(),
			RegisteredAt:        it.Registration.EventRegistrationCreatedAt,
			Event:               dto.ToEventDTO(it.Event),
		})
	}
	return helpers.JsonOK(c, "Registrations fetched successfully", out)
}
