package inmem

import (
	"bytes"
	"context"
	"time"

	"github.com/google/uuid"

	"campushub_backend/internals/features/users/auth/model"
	"campushub_backend/internals/features/users/auth/repository"
)

type tokenRepository struct {
	store *Store
}

func NewTokenRepository(store *Store) repository.TokenRepository {
	return &tokenRepository{store: store}
}

func (r *tokenRepository) CreateRefreshToken(ctx context.Context, token *model.RefreshToken) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if token.ID == uuid.Nil {
		token.ID = uuid.New()
	}
	token.CreatedAt = time.Now().UTC()
	s.refreshTokens = append(s.refreshTokens, *token)
	return nil
}

func (r *tokenRepository) RefreshTokenExists(ctx context.Context, hash []byte) (bool, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	now := time.Now().UTC()
	for i := range s.refreshTokens {
		rt := s.refreshTokens[i]
		if bytes.Equal(rt.TokenHash, hash) && rt.RevokedAt == nil && rt.ExpiresAt.After(now) {
			return true, nil
		}
	}
	return false, nil
}

func (r *tokenRepository) DeleteRefreshToken(ctx context.Context, hash []byte) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.refreshTokens {
		if bytes.Equal(s.refreshTokens[i].TokenHash, hash) {
			s.refreshTokens = append(s.refreshTokens[:i], s.refreshTokens[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *tokenRepository) DeleteRefreshTokensByUser(ctx context.Context, userID uuid.UUID) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.refreshTokens[:0]
	for i := range s.refreshTokens {
		if s.refreshTokens[i].UserID != userID {
			kept = append(kept, s.refreshTokens[i])
		}
	}
	s.refreshTokens = kept
	return nil
}

func (r *tokenRepository) BlacklistToken(ctx context.Context, token string, ttl time.Duration) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	s.blacklist = append(s.blacklist, model.TokenBlacklist{
		ID:        uint(len(s.blacklist) + 1),
		Token:     token,
		ExpiredAt: time.Now().UTC().Add(ttl),
		CreatedAt: time.Now().UTC(),
	})
	return nil
}

func (r *tokenRepository) IsTokenBlacklisted(ctx context.Context, token string) (bool, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := range s.blacklist {
		if s.blacklist[i].Token == token {
			return true, nil
		}
	}
	return false, nil
}

func (r *tokenRepository) CleanupExpiredBlacklist(ctx context.Context) (int64, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	var removed int64
	kept := s.blacklist[:0]
	for i := range s.blacklist {
		if s.blacklist[i].ExpiredAt.After(now) {
			kept = append(kept, s.blacklist[i])
		} else {
			removed++
		}
	}
	s.blacklist = kept
	return removed, nil
}
