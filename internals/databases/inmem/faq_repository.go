package inmem

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"campushub_backend/internals/features/home/faqs/model"
	"campushub_backend/internals/features/home/faqs/repository"
)

type faqRepository struct {
	store *Store
}

func NewFaqRepository(store *Store) repository.FaqRepository {
	return &faqRepository{store: store}
}

func (r *faqRepository) Create(ctx context.Context, faq *model.FaqModel) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	key := model.QuestionKey(faq.FaqQuestion)
	for i := range s.faqs {
		if model.QuestionKey(s.faqs[i].FaqQuestion) == key {
			return repository.ErrQuestionExists
		}
	}

	if faq.FaqID == uuid.Nil {
		faq.FaqID = uuid.New()
	}
	now := time.Now().UTC()
	faq.FaqCreatedAt = now
	faq.FaqUpdatedAt = now

	s.faqs = append(s.faqs, *faq)
	s.persist()
	return nil
}

func (r *faqRepository) Update(ctx context.Context, faq *model.FaqModel) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	key := model.QuestionKey(faq.FaqQuestion)
	for i := range s.faqs {
		if s.faqs[i].FaqID != faq.FaqID && model.QuestionKey(s.faqs[i].FaqQuestion) == key {
			return repository.ErrQuestionExists
		}
	}

	for i := range s.faqs {
		if s.faqs[i].FaqID == faq.FaqID {
			faq.FaqUpdatedAt = time.Now().UTC()
			s.faqs[i] = *faq
			s.persist()
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *faqRepository) Delete(ctx context.Context, id uuid.UUID) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.faqs {
		if s.faqs[i].FaqID == id {
			s.faqs = append(s.faqs[:i], s.faqs[i+1:]...)
			s.persist()
			return nil
		}
	}
	return nil
}

func (r *faqRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.FaqModel, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := range s.faqs {
		if s.faqs[i].FaqID == id {
			f := s.faqs[i]
			return &f, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *faqRepository) List(ctx context.Context, offset, limit int) ([]model.FaqModel, int64, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	faqs := make([]model.FaqModel, len(s.faqs))
	copy(faqs, s.faqs)
	sort.Slice(faqs, func(i, j int) bool {
		return faqs[j].FaqCreatedAt.Before(faqs[i].FaqCreatedAt)
	})

	total := int64(len(faqs))
	if limit > 0 {
		if offset >= len(faqs) {
			return nil, total, nil
		}
		end := offset + limit
		if end > len(faqs) {
			end = len(faqs)
		}
		faqs = faqs[offset:end]
	}
	return faqs, total, nil
}

func (r *faqRepository) QuestionKeys(ctx context.Context) (map[string]struct{}, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make(map[string]struct{}, len(s.faqs))
	for i := range s.faqs {
		keys[model.QuestionKey(s.faqs[i].FaqQuestion)] = struct{}{}
	}
	return keys, nil
}
