package dto

import (
	"time"

	"gorm.io/datatypes"

	"campushub_backend/internals/features/users/user/model"
)

// ====================
// Response DTO
// ====================

type UserDTO struct {
	ID               string         `json:"id"`
	UserName         string         `json:"user_name"`
	Email            string         `json:"email"`
	Role             string         `json:"role"`
	PhotoURL         *string        `json:"photo_url,omitempty"`
	Bio              *string        `json:"bio,omitempty"`
	Socials          datatypes.JSON `json:"socials,omitempty"`
	SecurityQuestion *string        `json:"security_question,omitempty"`
	CreatedAt        time.Time      `json:"created_at"`
}

// TeacherDTO is the public listing shape: no email, no security fields.
type TeacherDTO struct {
	ID       string  `json:"id"`
	UserName string  `json:"user_name"`
	PhotoURL *string `json:"photo_url,omitempty"`
	Bio      *string `json:"bio,omitempty"`
}

// ====================
// Request DTO
// ====================

// UpdateProfileRequest deliberately has no email or role field; both are
// fixed after registration.
type UpdateProfileRequest struct {
	UserName *string         `json:"user_name,omitempty" validate:"omitempty,min=3,max=50"`
	Bio      *string         `json:"bio,omitempty" validate:"omitempty,max=1000"`
	Socials  *datatypes.JSON `json:"socials,omitempty"`
}

// ====================
// Converter
// ====================

func ToUserDTO(u model.UserModel) UserDTO {
	return UserDTO{
		ID:               u.ID.String(),
		UserName:         u.UserName,
		Email:            u.Email,
		Role:             u.Role,
		PhotoURL:         u.PhotoURL,
		Bio:              u.Bio,
		Socials:          u.Socials,
		SecurityQuestion: u.SecurityQuestion,
		CreatedAt:        u.CreatedAt,
	}
}

func ToTeacherDTO(u model.UserModel) TeacherDTO {
	return TeacherDTO{
		ID:       u.ID.String(),
		UserName: u.UserName,
		PhotoURL: u.PhotoURL,
		Bio:      u.Bio,
	}
}

func (r UpdateProfileRequest) Apply(u *model.UserModel) {
	if r.UserName != nil {
		u.UserName = *r.UserName
	}
	if r.Bio != nil {
		u.Bio = r.Bio
	}
	if r.Socials != nil {
		u.Socials = *r.Socials
	}
}
