package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"campushub_backend/internals/features/users/user/model"
)

// UserRepository is the persisted record store for users. Implementations:
// the gorm/Postgres one below and the in-memory one in internals/databases/inmem.
type UserRepository interface {
	Create(ctx context.Context, user *model.UserModel) error
	Update(ctx context.Context, user *model.UserModel) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.UserModel, error)
	FindByEmail(ctx context.Context, email string) (*model.UserModel, error)
	FindByGoogleID(ctx context.Context, googleID string) (*model.UserModel, error)
	EmailTaken(ctx context.Context, email string) (bool, error)
	UpdatePassword(ctx context.Context, id uuid.UUID, hashed string) error
	ListTeachers(ctx context.Context) ([]model.UserModel, error)
}

type userGormRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userGormRepository{db: db}
}

func (r *userGormRepository) Create(ctx context.Context, user *model.UserModel) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userGormRepository) Update(ctx context.Context, user *model.UserModel) error {
	return r.db.WithContext(ctx).Save(user).Error
}

func (r *userGormRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.UserModel, error) {
	var user model.UserModel
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userGormRepository) FindByEmail(ctx context.Context, email string) (*model.UserModel, error) {
	var user model.UserModel
	if err := r.db.WithContext(ctx).
		Where("email = ?", model.NormalizeEmail(email)).
		First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userGormRepository) FindByGoogleID(ctx context.Context, googleID string) (*model.UserModel, error) {
	var user model.UserModel
	if err := r.db.WithContext(ctx).Where("google_id = ?", googleID).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userGormRepository) EmailTaken(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.WithContext(ctx).
		Raw(`SELECT EXISTS(SELECT 1 FROM users WHERE email = ? AND deleted_at IS NULL)`,
			model.NormalizeEmail(email)).
		Scan(&exists).Error
	return exists, err
}

func (r *userGormRepository) UpdatePassword(ctx context.Context, id uuid.UUID, hashed string) error {
	return r.db.WithContext(ctx).
		Model(&model.UserModel{}).
		Where("id = ?", id).
		Update("password", hashed).Error
}

func (r *userGormRepository) ListTeachers(ctx context.Context) ([]model.UserModel, error) {
	var teachers []model.UserModel
	err := r.db.WithContext(ctx).
		Where("role = ? AND is_active = true", "teacher").
		Order("user_name ASC").
		Find(&teachers).Error
	return teachers, err
}
