package model

import (
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Validator instance
var validate = validator.New()

// UserModel represents the users table.
type UserModel struct {
	ID       uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserName string    `gorm:"column:user_name;size:50;not null" json:"user_name" validate:"required,min=3,max=50"`
	Email    string    `gorm:"column:email;size:255;uniqueIndex;not null" json:"email" validate:"required,email"`
	Password string    `gorm:"column:password;not null" json:"-" validate:"required,min=8"`
	GoogleID *string   `gorm:"column:google_id;size:255;unique" json:"google_id,omitempty"`

	// Fixed at registration, never updated afterwards.
	Role string `gorm:"column:role;type:varchar(20);not null" json:"role" validate:"required,oneof=student teacher"`

	PhotoURL *string        `gorm:"column:photo_url;size:512" json:"photo_url,omitempty"`
	Bio      *string        `gorm:"column:bio;type:text" json:"bio,omitempty"`
	Socials  datatypes.JSON `gorm:"column:socials;type:jsonb" json:"socials,omitempty"`

	// Optional security question for the password-reset flow.
	SecurityQuestion *string `gorm:"column:security_question;size:255" json:"security_question,omitempty"`
	SecurityAnswer   *string `gorm:"column:security_answer;size:255" json:"-"`

	IsActive  bool           `gorm:"column:is_active;not null;default:true" json:"is_active"`
	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index" json:"-"`
}

func (UserModel) TableName() string {
	return "users"
}

// Emails are stored lowercased so uniqueness and login are case-insensitive.
func (u *UserModel) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	u.Email = NormalizeEmail(u.Email)
	return nil
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Validate checks the model against its field rules.
func (u *UserModel) Validate() error {
	if err := validate.Struct(u); err != nil {
		return formatValidationError(err)
	}
	return nil
}

func formatValidationError(err error) error {
	if validationErrs, ok := err.(validator.ValidationErrors); ok {
		var b strings.Builder
		for _, fieldErr := range validationErrs {
			switch fieldErr.Tag() {
			case "required":
				b.WriteString(fieldErr.Field() + " is required.\n")
			case "email":
				b.WriteString("Invalid email format.\n")
			case "min":
				b.WriteString(fieldErr.Field() + " must be at least " + fieldErr.Param() + " characters.\n")
			case "max":
				b.WriteString(fieldErr.Field() + " must be at most " + fieldErr.Param() + " characters.\n")
			case "oneof":
				b.WriteString(fieldErr.Field() + " must be one of: " + fieldErr.Param() + ".\n")
			default:
				b.WriteString(fieldErr.Field() + " has an invalid format.\n")
			}
		}
		return errors.New(strings.TrimRight(b.String(), "\n"))
	}
	return err
}
