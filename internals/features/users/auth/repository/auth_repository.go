package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	authModel "campushub_backend/internals/features/users/auth/model"
)

// TokenRepository stores refresh-token hashes and the access-token blacklist.
type TokenRepository interface {
	CreateRefreshToken(ctx context.Context, token *authModel.RefreshToken) error
	RefreshTokenExists(ctx context.Context, hash []byte) (bool, error)
	DeleteRefreshToken(ctx context.Context, hash []byte) error
	DeleteRefreshTokensByUser(ctx context.Context, userID uuid.UUID) error

	BlacklistToken(ctx context.Context, token string, ttl time.Duration) error
	IsTokenBlacklisted(ctx context.Context, token string) (bool, error)
	CleanupExpiredBlacklist(ctx context.Context) (int64, error)
}

type tokenGormRepository struct {
	db *gorm.DB
}

func NewTokenRepository(db *gorm.DB) TokenRepository {
	return &tokenGormRepository{db: db}
}

/* ====================== REFRESH TOKEN ====================== */

func (r *tokenGormRepository) CreateRefreshToken(ctx context.Context, token *authModel.RefreshToken) error {
	return r.db.WithContext(ctx).Create(token).Error
}

func (r *tokenGormRepository) RefreshTokenExists(ctx context.Context, hash []byte) (bool, error) {
	var exists bool
	err := r.db.WithContext(ctx).
		Raw(`SELECT EXISTS(SELECT 1 FROM refresh_tokens WHERE token_hash = ? AND revoked_at IS NULL AND expires_at > ?)`,
			hash, time.Now().UTC()).
		Scan(&exists).Error
	return exists, err
}

func (r *tokenGormRepository) DeleteRefreshToken(ctx context.Context, hash []byte) error {
	return r.db.WithContext(ctx).
		Where("token_hash = ?", hash).
		Delete(&authModel.RefreshToken{}).Error
}

func (r *tokenGormRepository) DeleteRefreshTokensByUser(ctx context.Context, userID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&authModel.RefreshToken{}).Error
}

/* ====================== BLACKLIST TOKEN ====================== */

func (r *tokenGormRepository) BlacklistToken(ctx context.Context, token string, ttl time.Duration) error {
	return r.db.WithContext(ctx).Create(&authModel.TokenBlacklist{
		Token:     token,
		ExpiredAt: time.Now().UTC().Add(ttl),
	}).Error
}

func (r *tokenGormRepository) IsTokenBlacklisted(ctx context.Context, token string) (bool, error) {
	var exists bool
	err := r.db.WithContext(ctx).
		Raw(`SELECT EXISTS(SELECT 1 FROM token_blacklist WHERE token = ? AND deleted_at IS NULL)`, token).
		Scan(&exists).Error
	return exists, err
}

func (r *tokenGormRepository) CleanupExpiredBlacklist(ctx context.Context) (int64, error) {
	res := r.db.WithContext(ctx).
		Exec(`DELETE FROM token_blacklist WHERE expired_at <= ?`, time.Now().UTC())
	return res.RowsAffected, res.Error
}
