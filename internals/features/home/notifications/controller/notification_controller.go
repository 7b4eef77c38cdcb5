package controller

import (
	"errors"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"campushub_backend/internals/features/home/notifications/dto"
	"campushub_backend/internals/features/home/notifications/service"
	helpers "campushub_backend/internals/helpers"
)

var validate = validator.New()

type NotificationController struct {
	Service *service.NotificationService
}

func NewNotificationController(svc *service.NotificationService) *NotificationController {
	return &NotificationController{Service: svc}
}

// AskQuestion handles POST /api/u/questions (student → teacher inbox)
func (ctrl *NotificationController) AskQuestion(c *fiber.Ctx) error {
	senderID, err := helpers.GetUserID(c)
	if err != nil {
		return helpers.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	var req dto.AskQuestionRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helpers.JsonValidationError(c, formatValidationErrors(err))
	}

	teacherID, err := uuid.Parse(req.TeacherID)
	if err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Invalid teacher ID")
	}

	n, err := ctrl.Service.AskTeacher(c.UserContext(), senderID, teacherID, req.Message, req.Tags)
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return helpers.JsonError(c, fiber.StatusNotFound, "Teacher not found")
		case errors.Is(err, service.ErrRecipientNotTeacher):
			return helpers.JsonError(c, fiber.StatusUnprocessableEntity, "The selected user is not a teacher")
		default:
			log.Printf("[ERROR] ask question: %v", err)
			return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to send question")
		}
	}

	log.Printf("[INFO] question sent from %s to teacher %s", senderID, teacherID)
	return helpers.JsonCreated(c, "Question sent successfully", dto.ToNotificationDTO(*n))
}

// GetInbox handles GET /api/t/notifications
func (ctrl *NotificationController) GetInbox(c *fiber.Ctx) error {
	userID, err := helpers.GetUserID(c)
	if err != nil {
		return helpers.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	params := helpers.ParseFiber(c, helpers.DefaultOpts)
	items, total, err := ctrl.Service.Inbox(c.UserContext(), userID, params.Offset(), params.Limit())
	if err != nil {
		log.Printf("[ERROR] list notifications for %s: %v", userID, err)
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch notifications")
	}

	out := make([]dto.NotificationDTO, 0, len(items))
	for _, n := range items {
		out = append(out, dto.ToNotificationDTO(n))
	}
	return helpers.JsonList(c, "Notifications fetched successfully", out, helpers.BuildMeta(total, params))
}

// GetUnreadCount handles GET /api/t/notifications/unread-count
func (ctrl *NotificationController) GetUnreadCount(c *fiber.Ctx) error {
	userID, err := helpers.GetUserID(c)
	if err != nil {
		return helpers.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	count, err := ctrl.Service.UnreadCount(c.UserContext(), userID)
	if err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to count notifications")
	}
	return helpers.JsonOK(c, "Unread count fetched successfully", fiber.Map{"unread": count})
}

// MarkAsRead handles PATCH /api/t/notifications/:id/read
func (ctrl *NotificationController) MarkAsRead(c *fiber.Ctx) error {
	userID, err := helpers.GetUserID(c)
	if err != nil {
		return helpers.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Invalid notification ID")
	}

	if err := ctrl.Service.MarkRead(c.UserContext(), id, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helpers.JsonError(c, fiber.StatusNotFound, "Notification not found")
		}
		log.Printf("[ERROR] mark notification %s read: %v", id, err)
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to update notification")
	}
	return helpers.JsonUpdated(c, "Notification marked as read", fiber.Map{"notification_id": id})
}

// DeleteNotification handles DELETE /api/t/notifications/:id
func (ctrl *NotificationController) DeleteNotification(c *fiber.Ctx) error {
	userID, err := helpers.GetUserID(c)
	if err != nil {
		return helpers.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Invalid notification ID")
	}

	if err := ctrl.Service.Delete(c.UserContext(), id, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helpers.JsonError(c, fiber.StatusNotFound, "Notification not found")
		}
		log.Printf("[ERROR] delete notification %s: %v", id, err)
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to delete notification")
	}
	return helpers.JsonDeleted(c, "Notification deleted successfully", fiber.Map{"notification_id": id})
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
