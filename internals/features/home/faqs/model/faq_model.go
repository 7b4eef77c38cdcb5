package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FaqModel struct {
	FaqID       uuid.UUID `gorm:"column:faq_id;type:uuid;default:gen_random_uuid();primaryKey" json:"faq_id"`
	FaqQuestion string    `gorm:"column:faq_question;type:text;not null" json:"faq_question"`
	FaqAnswer   string    `gorm:"column:faq_answer;type:text;not null" json:"faq_answer"`

	// True when the record came from the bulk generator rather than a manual create.
	FaqIsGenerated bool `gorm:"column:faq_is_generated;not null;default:false" json:"faq_is_generated"`

	FaqCreatedAt time.Time      `gorm:"column:faq_created_at;type:timestamptz;autoCreateTime" json:"faq_created_at"`
	FaqUpdatedAt time.Time      `gorm:"column:faq_updated_at;type:timestamptz;autoUpdateTime" json:"faq_updated_at"`
	FaqDeletedAt gorm.DeletedAt `gorm:"column:faq_deleted_at;type:timestamptz;index" json:"faq_deleted_at,omitempty"`

	// Case-insensitive uniqueness of the question is enforced by the
	// repository (Create/Update check LOWER(faq_question) in a transaction);
	// AutoMigrate cannot build the expression index that would mirror it.
}

func (FaqModel) TableName() string {
	return "faqs"
}

func (f *FaqModel) BeforeCreate(tx *gorm.DB) error {
	if f.FaqID == uuid.Nil {
		f.FaqID = uuid.New()
	}
	return nil
}

// QuestionKey is the dedup key for a question text.
func QuestionKey(question string) string {
	return strings.ToLower(strings.TrimSpace(question))
}
