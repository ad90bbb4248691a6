package dto

import (
	"time"

	"stockroom/internal/domain/auth"
)

// LoginRequest for the access gate.
type LoginRequest struct {
	Password string `json:"password" binding:"required"`
}

// TokenResponse represents an issued access token.
type TokenResponse struct {
	AccessToken string    `json:"accessToken"`
	TokenType   string    `json:"tokenType"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

// FromToken converts domain token to DTO.
func FromToken(t *auth.Token) TokenResponse {
	return TokenResponse{
		AccessToken: t.AccessToken,
		TokenType:   "Bearer",
		ExpiresAt:   t.ExpiresAt,
	}
}
