package auth

import (
	"github.com/gofiber/fiber/v2"

	"campushub_backend/internals/constants"
	helper "campushub_backend/internals/helpers"
)

// RoleMiddlewareWithCustomError gates a route group by session role.
func RoleMiddlewareWithCustomError(allowedRoles []string, customForbiddenMessage string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := helper.GetUserRole(c)
		if role == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Unauthorized: missing role information",
			})
		}

		for _, allowed := range allowedRoles {
			if role == allowed {
				return c.Next()
			}
		}

		if customForbiddenMessage == "" {
			customForbiddenMessage = "Forbidden: you are not authorized to access this resource"
		}
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"message": customForbiddenMessage,
		})
	}
}

func OnlyTeachers(feature string) fiber.Handler {
	return RoleMiddlewareWithCustomError(
		[]string{constants.RoleTeacher},
		constants.RoleErrorTeacher(feature),
	)
}

func OnlyStudents(feature string) fiber.Handler {
	return RoleMiddlewareWithCustomError(
		[]string{constants.RoleStudent},
		constants.RoleErrorStudent(feature),
	)
}
