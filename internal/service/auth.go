// Package service contains the business logic between the HTTP surface and the store.
package service

import (
	"log/slog"

	"github.com/technozen/technozen-server/internal/auth"
	domainerrors "github.com/technozen/technozen-server/internal/errors"
)

// AuthService issues and verifies identity tokens.
type AuthService struct {
	tokens *auth.TokenService
	logger *slog.Logger
}

// NewAuthService creates a new auth service.
func NewAuthService(tokens *auth.TokenService, logger *slog.Logger) *AuthService {
	return &AuthService{
		tokens: tokens,
		logger: logger,
	}
}

// IssueToken signs the caller-supplied claims into an access token.
// The claims must include an email.
func (s *AuthService) IssueToken(claims map[string]any) (string, error) {
	token, err := s.tokens.Issue(claims)
	if err != nil {
		if domainerrors.Is(err, auth.ErrMissingEmail) {
			return "", domainerrors.Validation("claims must include an email")
		}
		s.logger.Error("Failed to issue token", "error", err)
		return "", domainerrors.Internal("failed to issue token")
	}

	return token, nil
}

// VerifyToken verifies an access token and returns its claims.
func (s *AuthService) VerifyToken(token string) (*auth.AccessClaims, error) {
	claims, err := s.tokens.Verify(token)
	if err != nil {
		return nil, domainerrors.Unauthorized("invalid or expired token")
	}
	return claims, nil
}
