package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/technozen/technozen-server/internal/service"
)

func (s *Server) registerUserRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "registerUser",
		Method:      http.MethodPost,
		Path:        "/users",
		Summary:     "Register user",
		Description: "Creates a user on first login. Registering an existing email is a no-op.",
		Tags:        []string{"Users"},
	}, s.handleRegisterUser)

	huma.Register(s.api, huma.Operation{
		OperationID: "listUsers",
		Method:      http.MethodGet,
		Path:        "/users",
		Summary:     "List users",
		Description: "Returns all registered users. Admin only.",
		Tags:        []string{"Users"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleListUsers)

	huma.Register(s.api, huma.Operation{
		OperationID: "checkAdmin",
		Method:      http.MethodGet,
		Path:        "/users/admin/{email}",
		Summary:     "Check admin role",
		Description: "Reports whether the given email holds the admin role. Callers may only query their own email.",
		Tags:        []string{"Users"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleCheckAdmin)

	huma.Register(s.api, huma.Operation{
		OperationID: "checkModerator",
		Method:      http.MethodGet,
		Path:        "/users/moderator/{email}",
		Summary:     "Check moderator role",
		Description: "Reports whether the given email holds the moderator role. Callers may only query their own email.",
		Tags:        []string{"Users"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleCheckModerator)

	huma.Register(s.api, huma.Operation{
		OperationID: "promoteToAdmin",
		Method:      http.MethodPatch,
		Path:        "/users/admin/{id}",
		Summary:     "Promote user to admin",
		Description: "Sets the role of the user with the given ID to admin. Admin only.",
		Tags:        []string{"Users"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handlePromoteToAdmin)

	huma.Register(s.api, huma.Operation{
		OperationID: "promoteToModerator",
		Method:      http.MethodPatch,
		Path:        "/users/moderator/{id}",
		Summary:     "Promote user to moderator",
		Description: "Sets the role of the user with the given ID to moderator. Moderator only.",
		Tags:        []string{"Users"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handlePromoteToModerator)
}

// === DTOs ===

// RegisterUserRequest is the request body for registering a user.
type RegisterUserRequest struct {
	Email    string `json:"email" validate:"required,email" doc:"User email, the registration key"`
	Name     string `json:"name,omitempty" doc:"Display name"`
	PhotoURL string `json:"photoURL,omitempty" doc:"Avatar URL"`
}

// RegisterUserInput wraps the registration request for huma.
type RegisterUserInput struct {
	Body RegisterUserRequest
}

// RegisterUserResponse reports the outcome of an idempotent registration.
// InsertedID is null when the email was already registered.
type RegisterUserResponse struct {
	Message    string  `json:"message" doc:"Human-readable status message"`
	InsertedID *string `json:"insertedId" doc:"ID of the created user, null if already registered"`
}

// RegisterUserOutput wraps the registration response for huma.
type RegisterUserOutput struct {
	Status int
	Body   RegisterUserResponse
}

// UserResponse contains user data in API responses.
type UserResponse struct {
	ID        string    `json:"id" doc:"User ID"`
	Email     string    `json:"email" doc:"User email"`
	Name      string    `json:"name,omitempty" doc:"Display name"`
	PhotoURL  string    `json:"photoURL,omitempty" doc:"Avatar URL"`
	Role      string    `json:"role,omitempty" doc:"Granted role, empty for regular users"`
	CreatedAt time.Time `json:"created_at" doc:"Registration time"`
}

// ListUsersInput contains parameters for listing users.
type ListUsersInput struct {
	Authorization string `header:"Authorization"`
}

// ListUsersResponse contains a list of users.
type ListUsersResponse struct {
	Users []UserResponse `json:"users" doc:"List of registered users"`
}

// ListUsersOutput wraps the list users response for huma.
type ListUsersOutput struct {
	Body ListUsersResponse
}

// RoleCheckInput contains parameters for role projection lookups.
type RoleCheckInput struct {
	Authorization string `header:"Authorization"`
	Email         string `path:"email" doc:"Email to check, must match the caller's own"`
}

// AdminCheckResponse reports whether an email holds the admin role.
type AdminCheckResponse struct {
	Admin bool `json:"admin" doc:"True when the email holds the admin role"`
}

// AdminCheckOutput wraps the admin check response for huma.
type AdminCheckOutput struct {
	Body AdminCheckResponse
}

// ModeratorCheckResponse reports whether an email holds the moderator role.
type ModeratorCheckResponse struct {
	Moderator bool `json:"moderator" doc:"True when the email holds the moderator role"`
}

// ModeratorCheckOutput wraps the moderator check response for huma.
type ModeratorCheckOutput struct {
	Body ModeratorCheckResponse
}

// PromoteInput contains parameters for role promotion.
type PromoteInput struct {
	Authorization string `header:"Authorization"`
	ID            string `path:"id" doc:"User ID"`
}

// === Handlers ===

func (s *Server) handleRegisterUser(ctx context.Context, input *RegisterUserInput) (*RegisterUserOutput, error) {
	result, err := s.services.User.Register(ctx, service.RegisterRequest{
		Email:    input.Body.Email,
		Name:     input.Body.Name,
		PhotoURL: input.Body.PhotoURL,
	})
	if err != nil {
		return nil, err
	}

	if !result.Created {
		return &RegisterUserOutput{
			Status: http.StatusOK,
			Body:   RegisterUserResponse{Message: "User already exists", InsertedID: nil},
		}, nil
	}

	return &RegisterUserOutput{
		Status: http.StatusCreated,
		Body:   RegisterUserResponse{Message: "User created", InsertedID: &result.InsertedID},
	}, nil
}

func (s *Server) handleListUsers(ctx context.Context, input *ListUsersInput) (*ListUsersOutput, error) {
	if _, err := s.authenticateAndRequireAdmin(ctx, input.Authorization); err != nil {
		return nil, err
	}

	users, err := s.services.User.List(ctx)
	if err != nil {
		return nil, err
	}

	resp := make([]UserResponse, len(users))
	for i, u := range users {
		resp[i] = UserResponse{
			ID:        u.ID,
			Email:     u.Email,
			Name:      u.Name,
			PhotoURL:  u.PhotoURL,
			Role:      string(u.Role),
			CreatedAt: u.CreatedAt,
		}
	}

	return &ListUsersOutput{Body: ListUsersResponse{Users: resp}}, nil
}

func (s *Server) handleCheckAdmin(ctx context.Context, input *RoleCheckInput) (*AdminCheckOutput, error) {
	claims, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	if err := requireSelf(claims, input.Email); err != nil {
		return nil, err
	}

	isAdmin, err := s.services.User.IsAdmin(ctx, input.Email)
	if err != nil {
		return nil, err
	}

	return &AdminCheckOutput{Body: AdminCheckResponse{Admin: isAdmin}}, nil
}

func (s *Server) handleCheckModerator(ctx context.Context, input *RoleCheckInput) (*ModeratorCheckOutput, error) {
	claims, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	if err := requireSelf(claims, input.Email); err != nil {
		return nil, err
	}

	isModerator, err := s.services.User.IsModerator(ctx, input.Email)
	if err != nil {
		return nil, err
	}

	return &ModeratorCheckOutput{Body: ModeratorCheckResponse{Moderator: isModerator}}, nil
}

func (s *Server) handlePromoteToAdmin(ctx context.Context, input *PromoteInput) (*ModifyOutput, error) {
	if _, err := s.authenticateAndRequireAdmin(ctx, input.Authorization); err != nil {
		return nil, err
	}

	modified, err := s.services.User.PromoteToAdmin(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	message := "User promoted to admin"
	if !modified {
		message = "User already an admin"
	}

	return &ModifyOutput{Body: ModifyResponse{Message: message, Modified: modified}}, nil
}

func (s *Server) handlePromoteToModerator(ctx context.Context, input *PromoteInput) (*ModifyOutput, error) {
	if _, err := s.authenticateAndRequireModerator(ctx, input.Authorization); err != nil {
		return nil, err
	}

	modified, err := s.services.User.PromoteToModerator(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	message := "User promoted to moderator"
	if !modified {
		message = "User already a moderator"
	}

	return &ModifyOutput{Body: ModifyResponse{Message: message, Modified: modified}}, nil
}
