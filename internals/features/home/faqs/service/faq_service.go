package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"

	"campushub_backend/internals/features/home/faqs/model"
	"campushub_backend/internals/features/home/faqs/repository"
)

var ErrNoQuestions = errors.New("no questions supplied")

type FaqService struct {
	Faqs      repository.FaqRepository
	Generator Generator
}

func NewFaqService(faqs repository.FaqRepository, gen Generator) *FaqService {
	return &FaqService{Faqs: faqs, Generator: gen}
}

func (s *FaqService) Create(ctx context.Context, faq *model.FaqModel) error {
	return s.Faqs.Create(ctx, faq)
}

func (s *FaqService) Update(ctx context.Context, faq *model.FaqModel) error {
	return s.Faqs.Update(ctx, faq)
}

func (s *FaqService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.Faqs.Delete(ctx, id)
}

func (s *FaqService) List(ctx context.Context, offset, limit int) ([]model.FaqModel, int64, error) {
	return s.Faqs.List(ctx, offset, limit)
}

// BulkGenerateResult reports what a generation run did.
type BulkGenerateResult struct {
	Created []model.FaqModel
	Skipped []string
}

// BulkGenerate answers the given questions through the generator and stores
// the new pairs. Questions already answered (case-insensitively) are skipped
// before the generator is called, so re-running the same batch is a no-op.
// On generator failure nothing is stored.
func (s *FaqService) BulkGenerate(ctx context.Context, questions []string) (*BulkGenerateResult, error) {
	existing, err := s.Faqs.QuestionKeys(ctx)
	if err != nil {
		return nil, err
	}

	result := &BulkGenerateResult{}
	seen := make(map[string]struct{}, len(questions))
	var fresh []string
	for _, q := range questions {
		q = strings.TrimSpace(q)
		if q == "" {
			continue
		}
		key := model.QuestionKey(q)
		if _, dup := existing[key]; dup {
			result.Skipped = append(result.Skipped, q)
			continue
		}
		if _, dup := seen[key]; dup {
			result.Skipped = append(result.Skipped, q)
			continue
		}
		seen[key] = struct{}{}
		fresh = append(fresh, q)
	}

	if len(fresh) == 0 {
		if len(result.Skipped) == 0 {
			return nil, ErrNoQuestions
		}
		return result, nil
	}

	pairs, err := s.Generator.Generate(ctx, fresh)
	if err != nil {
		return nil, fmt.Errorf("generate answers: %w", err)
	}

	answers := make(map[string]string, len(pairs))
	for _, p := range pairs {
		answers[model.QuestionKey(p.Question)] = strings.TrimSpace(p.Answer)
	}

	for _, q := range fresh {
		answer := answers[model.QuestionKey(q)]
		if answer == "" {
			log.Printf("[WARN] generator returned no answer for %q, skipping", q)
			result.Skipped = append(result.Skipped, q)
			continue
		}
		faq := model.FaqModel{
			FaqQuestion:    q,
			FaqAnswer:      answer,
			FaqIsGenerated: true,
		}
		if err := s.Faqs.Create(ctx, &faq); err != nil {
			if errors.Is(err, repository.ErrQuestionExists) {
				result.Skipped = append(result.Skipped, q)
				continue
			}
			return nil, err
		}
		result.Created = append(result.Created, faq)
	}
	return result, nil
}
