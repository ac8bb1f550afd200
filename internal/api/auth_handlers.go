package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (s *Server) registerAuthRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "issueToken",
		Method:      http.MethodPost,
		Path:        "/jwt",
		Summary:     "Issue access token",
		Description: "Signs the posted claims into an access token. Claims must include an email.",
		Tags:        []string{"Auth"},
	}, s.handleIssueToken)
}

// === DTOs ===

// IssueTokenInput wraps the caller-supplied claims for huma.
type IssueTokenInput struct {
	Body map[string]any
}

// TokenResponse contains an issued access token.
type TokenResponse struct {
	Token string `json:"token" doc:"Encrypted access token"`
}

// TokenOutput wraps the token response for huma.
type TokenOutput struct {
	Body TokenResponse
}

// === Handlers ===

func (s *Server) handleIssueToken(_ context.Context, input *IssueTokenInput) (*TokenOutput, error) {
	token, err := s.services.Auth.IssueToken(input.Body)
	if err != nil {
		return nil, err
	}

	return &TokenOutput{Body: TokenResponse{Token: token}}, nil
}
