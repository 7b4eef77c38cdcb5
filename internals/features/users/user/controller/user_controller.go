package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"campushub_backend/internals/features/users/user/dto"
	"campushub_backend/internals/features/users/user/repository"
	helpers "campushub_backend/internals/helpers"
)

var validate = validator.New()

type UserController struct {
	Users repository.UserRepository
}

func NewUserController(users repository.UserRepository) *UserController {
	return &UserController{Users: users}
}

// ======================
// Get current profile
// ======================
func (ctrl *UserController) Me(c *fiber.Ctx) error {
	userID, err := helpers.GetUserID(c)
	if err != nil {
		return err
	}

	user, err := ctrl.Users.FindByID(c.UserContext(), userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helpers.JsonError(c, fiber.StatusNotFound, "User not found")
		}
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to load profile")
	}

	return helpers.JsonOK(c, "", dto.ToUserDTO(*user))
}

// ======================
// Update current profile
// ======================
func (ctrl *UserController) UpdateMe(c *fiber.Ctx) error {
	userID, err := helpers.GetUserID(c)
	if err != nil {
		return err
	}

	var body dto.UpdateProfileRequest
	if err := c.BodyParser(&body); err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(body); err != nil {
		return helpers.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
	}

	user, err := ctrl.Users.FindByID(c.UserContext(), userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helpers.JsonError(c, fiber.StatusNotFound, "User not found")
		}
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to load profile")
	}

	body.Apply(user)
	if err := ctrl.Users.Update(c.UserContext(), user); err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to update profile")
	}

	return helpers.JsonUpdated(c, "Profile updated", dto.ToUserDTO(*user))
}

// ======================
// Upload avatar
// ======================
func (ctrl *UserController) UploadAvatar(c *fiber.Ctx) error {
	userID, err := helpers.GetUserID(c)
	if err != nil {
		return err
	}

	fileHeader, err := c.FormFile("photo")
	if err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Missing photo file")
	}

	url, err := helpers.UploadImage("avatars", fileHeader)
	if err != nil {
		return helpers.JsonError(c, fiber.StatusBadGateway, "Avatar upload failed")
	}

	user, err := ctrl.Users.FindByID(c.UserContext(), userID)
	if err != nil {
		return helpers.JsonError(c, fiber.StatusNotFound, "User not found")
	}
	user.PhotoURL = &url
	if err := ctrl.Users.Update(c.UserContext(), user); err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to save avatar")
	}

	return helpers.JsonUpdated(c, "Avatar updated", fiber.Map{"photo_url": url})
}

// ======================
// Navigation menu (role gated)
// ======================
func (ctrl *UserController) Navigation(c *fiber.Ctx) error {
	role := helpers.GetUserRole(c)
	menu := dto.MenuForRole(role)
	if menu == nil {
		return helpers.JsonError(c, fiber.StatusUnauthorized, "No navigation for this session")
	}
	return helpers.JsonOK(c, "", fiber.Map{
		"role":  role,
		"items": menu,
	})
}

// ======================
// List teachers (for "ask a teacher")
// ======================
func (ctrl *UserController) ListTeachers(c *fiber.Ctx) error {
	teachers, err := ctrl.Users.ListTeachers(c.UserContext())
	if err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to list teachers")
	}

	result := make([]dto.TeacherDTO, 0, len(teachers))
	for _, t := range teachers {
		result = append(result, dto.ToTeacherDTO(t))
	}
	return helpers.JsonOK(c, "", result)
}
