package service

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"errors"
	"log"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"campushub_backend/internals/configs"
	authModel "campushub_backend/internals/features/users/auth/model"
	userModel "campushub_backend/internals/features/users/user/model"
)

var ErrRefreshInvalid = errors.New("refresh token is invalid or expired")

type TokenPair struct {
	AccessToken      string    `json:"access_token"`
	RefreshToken     string    `json:"refresh_token"`
	AccessExpiresAt  time.Time `json:"access_expires_at"`
	RefreshExpiresAt time.Time `json:"refresh_expires_at"`
}

func nowUTC() time.Time { return time.Now().UTC() }

func computeRefreshHash(token, secret string) []byte {
	m := hmac.New(sha256.New, []byte(secret))
	_, _ = m.Write([]byte(token))
	return m.Sum(nil)
}

// IssueTokenPair signs a fresh access+refresh pair and stores the refresh
// hash. Only the hash touches the store, never the plaintext token.
func (s *AuthService) IssueTokenPair(ctx context.Context, user *userModel.UserModel) (*TokenPair, error) {
	if configs.JWTSecret == "" || configs.JWTRefreshSecret == "" {
		return nil, errors.New("JWT secrets are not configured")
	}

	now := nowUTC()
	accessExp := now.Add(accessTTLDefault)
	refreshExp := now.Add(refreshTTLDefault)

	accessClaims := jwt.MapClaims{
		"sub":       user.ID.String(),
		"user_name": user.UserName,
		"email":     user.Email,
		"role":      user.Role,
		"iat":       now.Unix(),
		"exp":       accessExp.Unix(),
	}
	accessToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, accessClaims).
		SignedString([]byte(configs.JWTSecret))
	if err != nil {
		return nil, err
	}

	refreshClaims := jwt.MapClaims{
		"sub": user.ID.String(),
		// jti keeps every refresh token distinct even within the same second,
		// so rotation always stores a new hash.
		"jti": uuid.NewString(),
		"iat": now.Unix(),
		"exp": refreshExp.Unix(),
	}
	refreshToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, refreshClaims).
		SignedString([]byte(configs.JWTRefreshSecret))
	if err != nil {
		return nil, err
	}

	if err := s.Tokens.CreateRefreshToken(ctx, &authModel.RefreshToken{
		UserID:    user.ID,
		TokenHash: computeRefreshHash(refreshToken, configs.JWTRefreshSecret),
		ExpiresAt: refreshExp,
	}); err != nil {
		return nil, err
	}

	return &TokenPair{
		AccessToken:      accessToken,
		RefreshToken:     refreshToken,
		AccessExpiresAt:  accessExp,
		RefreshExpiresAt: refreshExp,
	}, nil
}

/* ==========================
   REFRESH (with rotation)
========================== */

func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*userModel.UserModel, *TokenPair, error) {
	secret := configs.JWTRefreshSecret
	if secret == "" {
		return nil, nil, errors.New("JWT_REFRESH_SECRET is not configured")
	}

	tok, err := jwt.Parse(refreshToken, func(t *jwt.Token) (any, error) {
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		return nil, nil, ErrRefreshInvalid
	}
	claims, _ := tok.Claims.(jwt.MapClaims)
	sub, _ := claims["sub"].(string)
	userID, err := uuid.Parse(sub)
	if err != nil {
		return nil, nil, ErrRefreshInvalid
	}

	hash := computeRefreshHash(refreshToken, secret)
	exists, err := s.Tokens.RefreshTokenExists(ctx, hash)
	if err != nil {
		return nil, nil, err
	}
	if !exists {
		return nil, nil, ErrRefreshInvalid
	}

	user, err := s.Users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrRefreshInvalid
		}
		return nil, nil, err
	}
	if !user.IsActive {
		return nil, nil, ErrAccountDisabled
	}

	// Rotate: the presented token dies with this exchange.
	if err := s.Tokens.DeleteRefreshToken(ctx, hash); err != nil {
		log.Printf("[refresh] delete old hash failed: %v", err)
	}

	pair, err := s.IssueTokenPair(ctx, user)
	if err != nil {
		return nil, nil, err
	}
	return user, pair, nil
}

/* ==========================
   LOGOUT
========================== */

// Logout blacklists the presented access token for its remaining lifetime
// and revokes every refresh token of the user.
func (s *AuthService) Logout(ctx context.Context, accessToken string, userID uuid.UUID) error {
	ttl := accessTTLDefault
	claims := jwt.MapClaims{}
	parser := jwt.Parser{SkipClaimsValidation: true}
	if _, err := parser.ParseWithClaims(accessToken, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(configs.JWTSecret), nil
	}); err == nil {
		if exp, ok := claims["exp"].(float64); ok {
			if remaining := time.Until(time.Unix(int64(exp), 0)); remaining > 0 {
				ttl = remaining
			}
		}
	}

	if err := s.Tokens.BlacklistToken(ctx, accessToken, ttl); err != nil {
		return err
	}
	return s.Tokens.DeleteRefreshTokensByUser(ctx, userID)
}
