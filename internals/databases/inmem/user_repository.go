package inmem

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"campushub_backend/internals/features/users/user/model"
	"campushub_backend/internals/features/users/user/repository"
)

type userRepository struct {
	store *Store
}

func NewUserRepository(store *Store) repository.UserRepository {
	return &userRepository{store: store}
}

func (r *userRepository) Create(ctx context.Context, user *model.UserModel) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	user.Email = model.NormalizeEmail(user.Email)
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	s.users = append(s.users, *user)
	s.persist()
	return nil
}

func (r *userRepository) Update(ctx context.Context, user *model.UserModel) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.users {
		if s.users[i].ID == user.ID {
			user.UpdatedAt = time.Now().UTC()
			s.users[i] = *user
			s.persist()
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.UserModel, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := range s.users {
		if s.users[i].ID == id {
			u := s.users[i]
			return &u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*model.UserModel, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	key := model.NormalizeEmail(email)
	for i := range s.users {
		if s.users[i].Email == key {
			u := s.users[i]
			return &u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *userRepository) FindByGoogleID(ctx context.Context, googleID string) (*model.UserModel, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := range s.users {
		if s.users[i].GoogleID != nil && *s.users[i].GoogleID == googleID {
			u := s.users[i]
			return &u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *userRepository) EmailTaken(ctx context.Context, email string) (bool, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	key := model.NormalizeEmail(email)
	for i := range s.users {
		if s.users[i].Email == key {
			return true, nil
		}
	}
	return false, nil
}

func (r *userRepository) UpdatePassword(ctx context.Context, id uuid.UUID, hashed string) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.users {
		if s.users[i].ID == id {
			s.users[i].Password = hashed
			s.users[i].UpdatedAt = time.Now().UTC()
			s.persist()
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *userRepository) ListTeachers(ctx context.Context) ([]model.UserModel, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	var teachers []model.UserModel
	for i := range s.users {
		if s.users[i].Role == "teacher" && s.users[i].IsActive {
			teachers = append(teachers, s.users[i])
		}
	}
	return teachers, nil
}
