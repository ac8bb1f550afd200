package api

import (
	"context"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"github.com/technozen/technozen-server/internal/auth"
	domainerrors "github.com/technozen/technozen-server/internal/errors"
)

// authenticateRequest validates the Authorization header and returns the token claims.
func (s *Server) authenticateRequest(_ context.Context, authHeader string) (*auth.AccessClaims, error) {
	if authHeader == "" {
		return nil, huma.Error401Unauthorized("Missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return nil, huma.Error401Unauthorized("Invalid authorization header format")
	}

	claims, err := s.services.Auth.VerifyToken(parts[1])
	if err != nil {
		return nil, huma.Error401Unauthorized("Invalid or expired token")
	}

	return claims, nil
}

// authenticateAndRequireAdmin validates the token and requires admin role.
func (s *Server) authenticateAndRequireAdmin(ctx context.Context, authHeader string) (*auth.AccessClaims, error) {
	claims, err := s.authenticateRequest(ctx, authHeader)
	if err != nil {
		return nil, err
	}

	isAdmin, err := s.services.User.IsAdmin(ctx, claims.Email)
	if err != nil {
		return nil, err
	}
	if !isAdmin {
		return nil, domainerrors.Forbidden("forbidden access")
	}

	return claims, nil
}

// authenticateAndRequireModerator validates the token and requires moderator role.
func (s *Server) authenticateAndRequireModerator(ctx context.Context, authHeader string) (*auth.AccessClaims, error) {
	claims, err := s.authenticateRequest(ctx, authHeader)
	if err != nil {
		return nil, err
	}

	isModerator, err := s.services.User.IsModerator(ctx, claims.Email)
	if err != nil {
		return nil, err
	}
	if !isModerator {
		return nil, domainerrors.Forbidden("forbidden access")
	}

	return claims, nil
}

// requireSelf rejects lookups against an email other than the caller's own.
// The comparison is exact: no normalization is applied.
func requireSelf(claims *auth.AccessClaims, email string) error {
	if claims.Email != email {
		return domainerrors.Forbidden("forbidden access")
	}
	return nil
}
