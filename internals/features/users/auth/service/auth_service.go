package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	googleAuthIDTokenVerifier "github.com/futurenda/google-auth-id-token-verifier"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"campushub_backend/internals/configs"
	"campushub_backend/internals/constants"
	authHelper "campushub_backend/internals/features/users/auth/helper"
	authRepo "campushub_backend/internals/features/users/auth/repository"
	userModel "campushub_backend/internals/features/users/user/model"
	userRepo "campushub_backend/internals/features/users/user/repository"
)

const (
	accessTTLDefault  = 24 * time.Hour
	refreshTTLDefault = 7 * 24 * time.Hour
)

var (
	ErrEmailTaken         = errors.New("email is already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountDisabled    = errors.New("account is deactivated")
	ErrRoleUnknown        = errors.New("role must be student or teacher")
)

// RoleMismatchError is returned when credentials check out but the caller
// claimed the wrong role. It carries the stored role so the client can show
// which dashboard the account actually belongs to.
type RoleMismatchError struct {
	ActualRole string
}

func (e *RoleMismatchError) Error() string {
	return fmt.Sprintf("account is registered as %s", e.ActualRole)
}

type AuthService struct {
	Users  userRepo.UserRepository
	Tokens authRepo.TokenRepository
}

func NewAuthService(users userRepo.UserRepository, tokens authRepo.TokenRepository) *AuthService {
	return &AuthService{Users: users, Tokens: tokens}
}

/* ==========================
   REGISTER
========================== */

type RegisterInput struct {
	UserName         string `json:"user_name"`
	Email            string `json:"email"`
	Password         string `json:"password"`
	Role             string `json:"role"`
	SecurityQuestion string `json:"security_question,omitempty"`
	SecurityAnswer   string `json:"security_answer,omitempty"`
}

// Register creates a new account. The role is fixed here for good; the email
// must be unique case-insensitively.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*userModel.UserModel, error) {
	if err := authHelper.ValidateRegisterInput(in.UserName, in.Email, in.Password); err != nil {
		return nil, err
	}
	if !constants.IsValidRole(in.Role) {
		return nil, ErrRoleUnknown
	}

	taken, err := s.Users.EmailTaken(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrEmailTaken
	}

	hashed, err := authHelper.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	user := &userModel.UserModel{
		UserName: strings.TrimSpace(in.UserName),
		Email:    userModel.NormalizeEmail(in.Email),
		Password: hashed,
		Role:     in.Role,
		IsActive: true,
	}
	if q := strings.TrimSpace(in.SecurityQuestion); q != "" {
		a := strings.TrimSpace(in.SecurityAnswer)
		user.SecurityQuestion = &q
		user.SecurityAnswer = &a
	}

	if err := s.Users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

/* ==========================
   LOGIN
========================== */

// Login verifies credentials and the claimed role, then issues a token pair.
func (s *AuthService) Login(ctx context.Context, email, password, claimedRole string) (*userModel.UserModel, *TokenPair, error) {
	user, err := s.Users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, err
	}
	if !authHelper.CheckPassword(user.Password, password) {
		return nil, nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, nil, ErrAccountDisabled
	}
	if claimedRole != "" && claimedRole != user.Role {
		return nil, nil, &RoleMismatchError{ActualRole: user.Role}
	}

	pair, err := s.IssueTokenPair(ctx, user)
	if err != nil {
		return nil, nil, err
	}
	return user, pair, nil
}

/* ==========================
   LOGIN GOOGLE
========================== */

// LoginGoogle verifies a Google ID token and finds or creates the matching
// account. First-time Google sign-ins become students.
func (s *AuthService) LoginGoogle(ctx context.Context, idToken string) (*userModel.UserModel, *TokenPair, error) {
	v := googleAuthIDTokenVerifier.Verifier{}
	if err := v.VerifyIDToken(idToken, []string{configs.GoogleClientID}); err != nil {
		return nil, nil, ErrInvalidCredentials
	}
	claimSet, err := googleAuthIDTokenVerifier.Decode(idToken)
	if err != nil {
		return nil, nil, ErrInvalidCredentials
	}

	user, err := s.Users.FindByGoogleID(ctx, claimSet.Sub)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, err
		}
		user, err = s.findOrCreateGoogleUser(ctx, claimSet.Sub, claimSet.Email, claimSet.Name)
		if err != nil {
			return nil, nil, err
		}
	}
	if !user.IsActive {
		return nil, nil, ErrAccountDisabled
	}

	pair, err := s.IssueTokenPair(ctx, user)
	if err != nil {
		return nil, nil, err
	}
	return user, pair, nil
}

func (s *AuthService) findOrCreateGoogleUser(ctx context.Context, googleID, email, name string) (*userModel.UserModel, error) {
	// Attach to an existing account with the same email if there is one.
	user, err := s.Users.FindByEmail(ctx, email)
	if err == nil {
		user.GoogleID = &googleID
		if err := s.Users.Update(ctx, user); err != nil {
			return nil, err
		}
		return user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if name == "" {
		name = strings.Split(email, "@")[0]
	}
	hashed, err := authHelper.HashPassword(uuid.NewString())
	if err != nil {
		return nil, err
	}
	user = &userModel.UserModel{
		UserName: name,
		Email:    userModel.NormalizeEmail(email),
		Password: hashed,
		GoogleID: &googleID,
		Role:     constants.RoleStudent,
		IsActive: true,
	}
	if err := s.Users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
