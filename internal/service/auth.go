package service

import (
	"context"
	"errors"

	"github.com/ANIKETSHETTY47/smart-plug-monitoring-system/internal/auth"
	"github.com/ANIKETSHETTY47/smart-plug-monitoring-system/internal/domain"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

// defaultPassword is assigned to accounts created by an admin; the user is
// forced to change it on first login.
const defaultPassword = "12345678"

type SignupRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required,min=6"`
	Name     string `json:"name" validate:"required"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type CreateUserRequest struct {
	Username string `json:"username" validate:"required"`
	Name     string `json:"name" validate:"required"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=6"`
}

type UserSummary struct {
	ID                 string `json:"id"`
	Username           string `json:"username"`
	Name               string `json:"name"`
	Role               string `json:"role"`
	MustChangePassword bool   `json:"mustChangePassword"`
}

type AuthResponse struct {
	Token string      `json:"token"`
	User  UserSummary `json:"user"`
}

func summaryOf(u *domain.User) UserSummary {
	return UserSummary{
		ID:                 u.ID,
		Username:           u.Username,
		Name:               u.Name,
		Role:               u.Role,
		MustChangePassword: u.MustChangePassword,
	}
}

// AuthService owns account lifecycle and credential checks. Tokens carry
// {id, role} and expire per the configured TTL.
type AuthService struct {
	users  UserStore
	tokens *auth.JWTManager
}

func NewAuthService(users UserStore, tokens *auth.JWTManager) *AuthService {
	return &AuthService{users: users, tokens: tokens}
}

func (s *AuthService) Signup(ctx context.Context, req SignupRequest) (*AuthResponse, error) {
	if err := validate.Struct(req); err != nil {
		return nil, asValidationError(err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	u := &domain.User{
		ID:           uuid.NewString(),
		Username:     req.Username,
		PasswordHash: string(hash),
		Name:         req.Name,
		Role:         domain.RoleUser,
	}
	if err := s.users.CreateUser(ctx, u); err != nil {
		return nil, err
	}

	token, err := s.tokens.GenerateToken(u.ID, u.Role)
	if err != nil {
		return nil, err
	}
	return &AuthResponse{Token: token, User: summaryOf(u)}, nil
}

func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	if err := validate.Struct(req); err != nil {
		return nil, asValidationError(err)
	}

	u, err := s.users.UserByUsername(ctx, req.Username)
	if errors.Is(err, domain.ErrUserNotFound) {
		return nil, domain.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.GenerateToken(u.ID, u.Role)
	if err != nil {
		return nil, err
	}
	return &AuthResponse{Token: token, User: summaryOf(u)}, nil
}

// CreateUser provisions an account with the default password and the
// must-change flag set. The admin role check happens at the route boundary.
func (s *AuthService) CreateUser(ctx context.Context, req CreateUserRequest) (*UserSummary, error) {
	if err := validate.Struct(req); err != nil {
		return nil, asValidationError(err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(defaultPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	u := &domain.User{
		ID:                 uuid.NewString(),
		Username:           req.Username,
		PasswordHash:       string(hash),
		Name:               req.Name,
		Role:               domain.RoleUser,
		MustChangePassword: true,
	}
	if err := s.users.CreateUser(ctx, u); err != nil {
		return nil, err
	}

	sum := summaryOf(u)
	return &sum, nil
}

func (s *AuthService) ChangePassword(ctx context.Context, userID string, req ChangePasswordRequest) error {
	if err := validate.Struct(req); err != nil {
		return asValidationError(err)
	}

	u, err := s.users.UserByID(ctx, userID)
	if err != nil {
		return err
	}

	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.CurrentPassword)) != nil {
		return domain.NewValidationError("currentPassword", "current password is incorrect")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.users.SetPassword(ctx, u.ID, string(hash), false)
}

// EnsureDefaultAdmin creates the bootstrap admin account if it does not
// exist yet. Safe to call on every startup.
func (s *AuthService) EnsureDefaultAdmin(ctx context.Context, username, password, name string) error {
	_, err := s.users.UserByUsername(ctx, username)
	if err == nil {
		return nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u := &domain.User{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: string(hash),
		Name:         name,
		Role:         domain.RoleAdmin,
	}
	if err := s.users.CreateUser(ctx, u); err != nil {
		return err
	}
	log.Info().Str("username", username).Msg("default admin user created")
	return nil
}
