package dto

import (
	"time"

	"campushub_backend/internals/features/home/faqs/model"
)

type FaqDTO struct {
	FaqID          string    `json:"faq_id"`
	FaqQuestion    string    `json:"faq_question"`
	FaqAnswer      string    `json:"faq_answer"`
	FaqIsGenerated bool      `json:"faq_is_generated"`
	FaqCreatedAt   time.Time `json:"faq_created_at"`
}

type CreateFaqRequest struct {
	FaqQuestion string `json:"faq_question" validate:"required,min=5,max=500"`
	FaqAnswer   string `json:"faq_answer" validate:"required,min=1,max=5000"`
}

type UpdateFaqRequest struct {
	FaqQuestion *string `json:"faq_question,omitempty" validate:"omitempty,min=5,max=500"`
	FaqAnswer   *string `json:"faq_answer,omitempty" validate:"omitempty,min=1,max=5000"`
}

type GenerateFaqRequest struct {
	Questions []string `json:"questions" validate:"required,min=1,max=50,dive,min=5,max=500"`
}

type GenerateFaqResponse struct {
	Created []FaqDTO `json:"created"`
	Skipped []string `json:"skipped"`
}

func ToFaqDTO(f model.FaqModel) FaqDTO {
	return FaqDTO{
		FaqID:          f.FaqID.String(),
		FaqQuestion:    f.FaqQuestion,
		FaqAnswer:      f.FaqAnswer,
		FaqIsGenerated: f.FaqIsGenerated,
		FaqCreatedAt:   f.FaqCreatedAt,
	}
}

func (r UpdateFaqRequest) Apply(f *model.FaqModel) {
	if r.FaqQuestion != nil {
		f.FaqQuestion = *r.FaqQuestion
	}
	if r.FaqAnswer != nil {
		f.FaqAnswer = *r.FaqAnswer
	}
}
