package controller

import (
	"errors"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"campushub_backend/internals/features/home/faqs/dto"
	"campushub_backend/internals/features/home/faqs/model"
	"campushub_backend/internals/features/home/faqs/repository"
	"campushub_backend/internals/features/home/faqs/service"
	helpers "campushub_backend/internals/helpers"
)

var validate = validator.New()

type FaqController struct {
	Service *service.FaqService
}

func NewFaqController(svc *service.FaqService) *FaqController {
	return &FaqController{Service: svc}
}

// GetAllFaqs handles GET /api/public/faqs
func (ctrl *FaqController) GetAllFaqs(c *fiber.Ctx) error {
	params := helpers.ParseFiber(c, helpers.DefaultOpts)
	faqs, total, err := ctrl.Service.List(c.UserContext(), params.Offset(), params.Limit())
	if err != nil {
		log.Printf("[ERROR] list faqs: %v", err)
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch FAQs")
	}

	out := make([]dto.FaqDTO, 0, len(faqs))
	for _, f := range faqs {
		out = append(out, dto.ToFaqDTO(f))
	}
	return helpers.JsonList(c, "FAQs fetched successfully", out, helpers.BuildMeta(total, params))
}

// CreateFaq handles POST /api/t/faqs
func (ctrl *FaqController) CreateFaq(c *fiber.Ctx) error {
	var req dto.CreateFaqRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helpers.JsonValidationError(c, formatValidationErrors(err))
	}

	faq := model.FaqModel{FaqQuestion: req.FaqQuestion, FaqAnswer: req.FaqAnswer}
	if err := ctrl.Service.Create(c.UserContext(), &faq); err != nil {
		if errors.Is(err, repository.ErrQuestionExists) {
			return helpers.JsonError(c, fiber.StatusConflict, "A FAQ with this question already exists")
		}
		log.Printf("[ERROR] create faq: %v", err)
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to create FAQ")
	}
	return helpers.JsonCreated(c, "FAQ created successfully", dto.ToFaqDTO(faq))
}

// UpdateFaq handles PATCH /api/t/faqs/:id
func (ctrl *FaqController) UpdateFaq(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Invalid FAQ ID")
	}

	var req dto.UpdateFaqRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helpers.JsonValidationError(c, formatValidationErrors(err))
	}

	faq, err := ctrl.Service.Faqs.FindByID(c.UserContext(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helpers.JsonError(c, fiber.StatusNotFound, "FAQ not found")
		}
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch FAQ")
	}

	req.Apply(faq)
	if err := ctrl.Service.Update(c.UserContext(), faq); err != nil {
		if errors.Is(err, repository.ErrQuestionExists) {
			return helpers.JsonError(c, fiber.StatusConflict, "A FAQ with this question already exists")
		}
		log.Printf("[ERROR] update faq %s: %v", id, err)
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to update FAQ")
	}
	return helpers.JsonUpdated(c, "FAQ updated successfully", dto.ToFaqDTO(*faq))
}

// DeleteFaq handles DELETE /api/t/faqs/:id
func (ctrl *FaqController) DeleteFaq(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Invalid FAQ ID")
	}
	if err := ctrl.Service.Delete(c.UserContext(), id); err != nil {
		log.Printf("[ERROR] delete faq %s: %v", id, err)
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to delete FAQ")
	}
	return helpers.JsonDeleted(c, "FAQ deleted successfully", fiber.Map{"faq_id": id})
}

// GenerateFaqs handles POST /api/t/faqs/generate
func (ctrl *FaqController) GenerateFaqs(c *fiber.Ctx) error {
	var req dto.GenerateFaqRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helpers.JsonValidationError(c, formatValidationErrors(err))
	}

	result, err := ctrl.Service.BulkGenerate(c.UserContext(), req.Questions)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNoQuestions):
			return helpers.JsonError(c, fiber.StatusBadRequest, "No questions to answer")
		case errors.Is(err, service.ErrGeneratorUnavailable):
			return helpers.JsonError(c, fiber.StatusServiceUnavailable, "FAQ generation is not configured")
		default:
			log.Printf("[ERROR] bulk generate faqs: %v", err)
			return helpers.JsonError(c, fiber.StatusBadGateway, "Failed to generate answers")
		}
	}

	created := make([]dto.FaqDTO, 0, len(result.Created))
	for _, f := range result.Created {
		created = append(created, dto.ToFaqDTO(f))
	}
	log.Printf("[INFO] faq generation created=%d skipped=%d", len(created), len(result.Skipped))
	return helpers.JsonCreated(c, "FAQs generated successfully", dto.GenerateFaqResponse{
		Created: created,
		Skipped: result.Skipped,
	})
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
