package service

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/tacticalshop/storeapi/internal/config"
	"github.com/tacticalshop/storeapi/internal/domain"
	"github.com/tacticalshop/storeapi/internal/repository"
	"github.com/tacticalshop/storeapi/pkg/errors"
)

type authService struct {
	repos  *repository.Repositories
	cfg    config.AuthConfig
	logger *zap.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(repos *repository.Repositories, cfg config.AuthConfig, logger *zap.Logger) *authService {
	return &authService{
		repos:  repos,
		cfg:    cfg,
		logger: logger,
	}
}

// Register creates a customer account and returns a signed token
func (s *authService) Register(ctx context.Context, req RegisterRequest) (*domain.User, string, error) {
	if _, err := s.repos.User.GetByEmail(ctx, req.Email); err == nil {
		return nil, "", &errors.ErrValidation{Field: "email", Message: "already registered"}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), 10)
	if err != nil {
		return nil, "", err
	}

	user := &domain.User{
		Email:        req.Email,
		PasswordHash: string(hash),
		FullName:     req.FullName,
		Role:         domain.RoleCustomer,
		IsActive:     true,
	}

	if err := s.repos.User.Create(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, "", err
	}

	s.logger.Info("User registered", zap.String("user_id", user.ID.String()))
	return user, token, nil
}

// Login verifies credentials and returns a signed token
func (s *authService) Login(ctx context.Context, req LoginRequest) (*domain.User, string, error) {
	user, err := s.repos.User.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, "", &errors.ErrUnauthorized{Message: "invalid email or password"}
	}

	if !user.IsActive {
		return nil, "", &errors.ErrUnauthorized{Message: "account is disabled"}
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, "", &errors.ErrUnauthorized{Message: "invalid email or password"}
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

func (s *authService) issueToken(user *domain.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  user.ID.String(),
		"role": string(user.Role),
		"iat":  now.Unix(),
		"exp":  now.Add(s.cfg.TokenTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}
