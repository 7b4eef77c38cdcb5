package controller

import (
	"errors"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"campushub_backend/internals/features/events/dto"
	"campushub_backend/internals/features/events/repository"
	"campushub_backend/internals/features/events/service"
	helpers "campushub_backend/internals/helpers"
)

var validate = validator.New()

type EventController struct {
	Service *service.EventService
}

func NewEventController(svc *service.EventService) *EventController {
	return &EventController{Service: svc}
}

// =============================
// Public
// =============================

// GetAllEvents handles GET /api/public/events?category=&page=&per_page=
func (ctrl *EventController) GetAllEvents(c *fiber.Ctx) error {
	params := helpers.ParseFiber(c, helpers.DefaultOpts)
	filter := repository.ListFilter{
		Category: c.Query("category"),
		Offset:   params.Offset(),
		Limit:    params.Limit(),
	}

	events, total, err := ctrl.Service.List(c.UserContext(), filter)
	if err != nil {
		log.Printf("[ERROR] list events: %v", err)
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch events")
	}

	out := make([]dto.EventDTO, 0, len(events))
	for _, e := range events {
		out = append(out, dto.ToEventDTO(e))
	}
	return helpers.JsonList(c, "Events fetched successfully", out, helpers.BuildMeta(total, params))
}

// GetEventByID handles GET /api/public/events/:id
func (ctrl *EventController) GetEventByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Invalid event ID")
	}

	event, count, err := ctrl.Service.Detail(c.UserContext(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helpers.JsonError(c, fiber.StatusNotFound, "Event not found")
		}
		log.Printf("[ERROR] event detail %s: %v", id, err)
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch event")
	}
	return helpers.JsonOK(c, "Event fetched successfully", dto.ToEventDTOWithCount(*event, count))
}

// =============================
// Teacher
// =============================

// CreateEvent handles POST /api/t/events
func (ctrl *EventController) CreateEvent(c *fiber.Ctx) error {
	teacherID, err := helpers.GetUserID(c)
	if err != nil {
		return helpers.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	var req dto.CreateEventRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helpers.JsonValidationError(c, formatValidationErrors(err))
	}
	if req.EventDeadline.After(req.EventStartsAt) {
		return helpers.JsonValidationError(c, map[string][]string{
			"event_deadline": {"deadline must not be after the event start"},
		})
	}

	event := req.ToModel(teacherID)
	if err := ctrl.Service.Create(c.UserContext(), &event); err != nil {
		log.Printf("[ERROR] create event: %v", err)
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to create event")
	}

	log.Printf("[INFO] event %s created by teacher %s", event.EventID, teacherID)
	return helpers.JsonCreated(c, "Event created successfully", dto.ToEventDTO(event))
}

// UpdateEvent handles PATCH /api/t/events/:id
func (ctrl *EventController) UpdateEvent(c *fiber.Ctx) error {
	teacherID, err := helpers.GetUserID(c)
	if err != nil {
		return helpers.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Invalid event ID")
	}

	var req dto.UpdateEventRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helpers.JsonValidationError(c, formatValidationErrors(err))
	}

	event, err := ctrl.Service.FindOwned(c.UserContext(), teacherID, id)
	if err != nil {
		return mapOwnedError(c, err)
	}

	req.Apply(event)
	if event.EventDeadline.After(event.EventStartsAt) {
		return helpers.JsonValidationError(c, map[string][]string{
			"event_deadline": {"deadline must not be after the event start"},
		})
	}
	if err := ctrl.Service.Update(c.UserContext(), teacherID, event); err != nil {
		log.Printf("[ERROR] update event %s: %v", id, err)
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to update event")
	}
	return helpers.JsonUpdated(c, "Event updated successfully", dto.ToEventDTO(*event))
}

// UploadPoster handles PUT /api/t/events/:id/poster (multipart field "poster")
func (ctrl *EventController) UploadPoster(c *fiber.Ctx) error {
	teacherID, err := helpers.GetUserID(c)
	if err != nil {
		return helpers.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Invalid event ID")
	}

	event, err := ctrl.Service.FindOwned(c.UserContext(), teacherID, id)
	if err != nil {
		return mapOwnedError(c, err)
	}

	file, err := c.FormFile("poster")
	if err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Poster file is required")
	}

	url, err := helpers.UploadImage("event-posters", file)
	if err != nil {
		log.Printf("[ERROR] upload poster for event %s: %v", id, err)
		return helpers.JsonError(c, fiber.StatusBadGateway, "Failed to upload poster")
	}

	event.EventPosterURL = &url
	if err := ctrl.Service.Update(c.UserContext(), teacherID, event); err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to save poster URL")
	}
	return helpers.JsonUpdated(c, "Poster uploaded successfully", dto.ToEventDTO(*event))
}

// DeleteEvent handles DELETE /api/t/events/:id
func (ctrl *EventController) DeleteEvent(c *fiber.Ctx) error {
	teacherID, err := helpers.GetUserID(c)
	if err != nil {
		return helpers.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Invalid event ID")
	}

	if err := ctrl.Service.Delete(c.UserContext(), teacherID, id); err != nil {
		return mapOwnedError(c, err)
	}
	log.Printf("[INFO] event %s deleted by teacher %s", id, teacherID)
	return helpers.JsonDeleted(c, "Event deleted successfully", fiber.Map{"event_id": id})
}

// GetMyEvents handles GET /api/t/events
func (ctrl *EventController) GetMyEvents(c *fiber.Ctx) error {
	teacherID, err := helpers.GetUserID(c)
	if err != nil {
		return helpers.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	params := helpers.ParseFiber(c, helpers.AdminOpts)
	events, total, err := ctrl.Service.List(c.UserContext(), repository.ListFilter{
		TeacherID: teacherID,
		Offset:    params.Offset(),
		Limit:     params.Limit(),
	})
	if err != nil {
		log.Printf("[ERROR] list own events for %s: %v", teacherID, err)
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch events")
	}

	out := make([]dto.EventDTO, 0, len(events))
	for _, e := range events {
		out = append(out, dto.ToEventDTO(e))
	}
	return helpers.JsonList(c, "Events fetched successfully", out, helpers.BuildMeta(total, params))
}

// GetEventRegistrants handles GET /api/t/events/:id/registrations
func (ctrl *EventController) GetEventRegistrants(c *fiber.Ctx) error {
	teacherID, err := helpers.GetUserID(c)
	if err != nil {
		return helpers.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Invalid event ID")
	}

	regs, err := ctrl.Service.ListRegistrants(c.UserContext(), teacherID, id)
	if err != nil {
		return mapOwnedError(c, err)
	}

	out := make([]dto.RegistrationDTO, 0, len(regs))
	for _, r := range regs {
		out = append(out, dto.ToRegistrationDTO(r))
	}
	return helpers.JsonOK(c, "Registrants fetched successfully", out)
}

// =============================
// shared helpers
// =============================

func mapOwnedError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return helpers.JsonError(c, fiber.StatusNotFound, "Event not found")
	case errors.Is(err, service.ErrNotOwner):
		return helpers.JsonError(c, fiber.StatusForbidden, "You do not own this event")
	default:
		log.Printf("[ERROR] event operation: %v", err)
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Something went wrong")
	}
}

func formatValidationErrors(err error) map[string][]string {
	out := map[string][]string{}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			field := fe.Field()
			out[field] = append(out[field], "failed on rule: "+fe.Tag())
		}
		return out
	}
	out["body"] = []string{err.Error()}
	return out
}
