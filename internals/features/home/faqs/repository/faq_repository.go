package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"campushub_backend/internals/features/home/faqs/model"
)

var ErrQuestionExists = errors.New("faq question already exists")

type FaqRepository interface {
	// Create rejects a question whose text already exists case-insensitively
	// with ErrQuestionExists.
	Create(ctx context.Context, faq *model.FaqModel) error
	// Update enforces the same case-insensitive question uniqueness as Create,
	// ignoring the record being updated.
	Update(ctx context.Context, faq *model.FaqModel) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.FaqModel, error)
	List(ctx context.Context, offset, limit int) ([]model.FaqModel, int64, error)

	// QuestionKeys returns the lowercased question texts of all live FAQs.
	QuestionKeys(ctx context.Context) (map[string]struct{}, error)
}

type faqGormRepository struct {
	db *gorm.DB
}

func NewFaqRepository(db *gorm.DB) FaqRepository {
	return &faqGormRepository{db: db}
}

func (r *faqGormRepository) Create(ctx context.Context, faq *model.FaqModel) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var exists bool
		if err := tx.
			Raw(`SELECT EXISTS(SELECT 1 FROM faqs WHERE LOWER(faq_question) = ? AND faq_deleted_at IS NULL)`,
				model.QuestionKey(faq.FaqQuestion)).
			Scan(&exists).Error; err != nil {
			return err
		}
		if exists {
			return ErrQuestionExists
		}
		return tx.Create(faq).Error
	})
}

func (r *faqGormRepository) Update(ctx context.Context, faq *model.FaqModel) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var exists bool
		if err := tx.
			Raw(`SELECT EXISTS(SELECT 1 FROM faqs WHERE LOWER(faq_question) = ? AND faq_id <> ? AND faq_deleted_at IS NULL)`,
				model.QuestionKey(faq.FaqQuestion), faq.FaqID).
			Scan(&exists).Error; err != nil {
			return err
		}
		if exists {
			return ErrQuestionExists
		}
		return tx.Save(faq).Error
	})
}

func (r *faqGormRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.FaqModel{}, "faq_id = ?", id).Error
}

func (r *faqGormRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.FaqModel, error) {
	var faq model.FaqModel
	if err := r.db.WithContext(ctx).First(&faq, "faq_id = ?", id).Error; err != nil {
		return nil, err
	}
	return &faq, nil
}

func (r *faqGormRepository) List(ctx context.Context, offset, limit int) ([]model.FaqModel, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.FaqModel{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var faqs []model.FaqModel
	q = q.Order("faq_created_at DESC")
	if limit > 0 {
		q = q.Offset(offset).Limit(limit)
	}
	if err := q.Find(&faqs).Error; err != nil {
		return nil, 0, err
	}
	return faqs, total, nil
}

func (r *faqGormRepository) QuestionKeys(ctx context.Context) (map[string]struct{}, error) {
	var questions []string
	if err := r.db.WithContext(ctx).
		Model(&model.FaqModel{}).
		Pluck("LOWER(faq_question)", &questions).Error; err != nil {
		return nil, err
	}
	keys := make(map[string]struct{}, len(questions))
	for _, q := range questions {
		keys[model.QuestionKey(q)] = struct{}{}
	}
	return keys, nil
}
