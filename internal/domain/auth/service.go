package auth

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"stockroom/internal/core/apperror"
	"stockroom/pkg/logger"
)

// Subject is the token subject issued for the shared operator account.
const Subject = "operator"

// Token is the result of a successful login.
type Token struct {
	AccessToken string    `json:"accessToken"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

// Service checks the shared password and issues tokens.
type Service struct {
	passwordHash []byte
	jwt          *JWTService
}

// NewService creates the access gate. An empty passwordHash disables it.
func NewService(passwordHash string, jwtService *JWTService) *Service {
	return &Service{
		passwordHash: []byte(passwordHash),
		jwt:          jwtService,
	}
}

// Enabled reports whether a password is configured.
func (s *Service) Enabled() bool {
	return len(s.passwordHash) > 0
}

// Login compares password with the configured hash and returns a token.
func (s *Service) Login(ctx context.Context, password string) (*Token, error) {
	if !s.Enabled() {
		return nil, apperror.NewBusinessRule(apperror.CodeBusinessRule, "access gate is disabled")
	}

	if err := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(password)); err != nil {
		logger.Warn(ctx, "login rejected")
		return nil, apperror.NewUnauthorized("invalid credentials")
	}

	accessToken, expiresAt, err := s.jwt.GenerateAccessToken(Subject)
	if err != nil {
		return nil, apperror.NewInternal(err)
	}

	logger.Info(ctx, "login succeeded", "expires_at", expiresAt)
	return &Token{AccessToken: accessToken, ExpiresAt: expiresAt}, nil
}

// Authenticate validates a bearer token and returns its subject.
func (s *Service) Authenticate(token string) (string, error) {
	subject, err := s.jwt.ValidateToken(token)
	if err != nil {
		return "", apperror.NewUnauthorized("invalid or expired token").WithCause(err)
	}
	return subject, nil
}

// HashPassword produces the bcrypt hash to put in configuration.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}
