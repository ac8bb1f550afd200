package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/technozen/technozen-server/internal/domain"
	domainerrors "github.com/technozen/technozen-server/internal/errors"
	"github.com/technozen/technozen-server/internal/id"
	"github.com/technozen/technozen-server/internal/store"
	"github.com/technozen/technozen-server/internal/validation"
)

// RegisterRequest carries the profile sent on first login.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email,max=254"`
	Name     string `json:"name" validate:"omitempty,max=200"`
	PhotoURL string `json:"photoURL" validate:"omitempty,url,max=2048"`
}

// RegisterResult reports the outcome of an idempotent registration.
type RegisterResult struct {
	Created    bool
	InsertedID string
}

// UserService manages the user directory.
type UserService struct {
	store     *store.Store
	validator *validation.Validator
	logger    *slog.Logger
}

// NewUserService creates a new user service.
func NewUserService(st *store.Store, logger *slog.Logger) *UserService {
	return &UserService{
		store:     st,
		validator: validation.New(),
		logger:    logger,
	}
}

// Register creates a user record on first login. Registration is idempotent
// on email: a second call for the same email is a no-op reporting
// Created=false.
func (s *UserService) Register(ctx context.Context, req RegisterRequest) (*RegisterResult, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	if _, err := s.store.GetUserByEmail(ctx, req.Email); err == nil {
		return &RegisterResult{Created: false}, nil
	} else if !domainerrors.Is(err, store.ErrUserNotFound) {
		return nil, err
	}

	userID, err := id.Generate("user")
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		ID:        userID,
		Email:     req.Email,
		Name:      req.Name,
		PhotoURL:  req.PhotoURL,
		Role:      domain.RoleNone,
		CreatedAt: time.Now(),
	}

	if err := s.store.CreateUser(ctx, user); err != nil {
		// A concurrent registration for the same email may win the race;
		// report it the same way as a sequential duplicate.
		if domainerrors.Is(err, store.ErrEmailExists) {
			return &RegisterResult{Created: false}, nil
		}
		return nil, err
	}

	s.logger.Info("User registered", "user_id", user.ID, "email", user.Email)

	return &RegisterResult{Created: true, InsertedID: user.ID}, nil
}

// GetByEmail returns the user registered under the given email.
func (s *UserService) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.store.GetUserByEmail(ctx, email)
}

// List returns every registered user.
func (s *UserService) List(ctx context.Context) ([]*domain.User, error) {
	return s.store.ListUsers(ctx)
}

// IsAdmin reports whether the user registered under email holds the admin
// role. Unknown emails are simply not admins.
func (s *UserService) IsAdmin(ctx context.Context, email string) (bool, error) {
	user, err := s.store.GetUserByEmail(ctx, email)
	if err != nil {
		if domainerrors.Is(err, store.ErrUserNotFound) {
			return false, nil
		}
		return false, err
	}
	return user.IsAdmin(), nil
}

// IsModerator reports whether the user registered under email holds the
// moderator role.
func (s *UserService) IsModerator(ctx context.Context, email string) (bool, error) {
	user, err := s.store.GetUserByEmail(ctx, email)
	if err != nil {
		if domainerrors.Is(err, store.ErrUserNotFound) {
			return false, nil
		}
		return false, err
	}
	return user.IsModerator(), nil
}

// PromoteToAdmin sets the role of the user with the given ID to admin.
// Promotion is idempotent: promoting an admin again reports modified=false.
func (s *UserService) PromoteToAdmin(ctx context.Context, userID string) (bool, error) {
	modified, err := s.store.SetUserRole(ctx, userID, domain.RoleAdmin)
	if err != nil {
		return false, err
	}
	if modified {
		s.logger.Info("User promoted to admin", "user_id", userID)
	}
	return modified, nil
}

// PromoteToModerator sets the role of the user with the given ID to moderator.
func (s *UserService) PromoteToModerator(ctx context.Context, userID string) (bool, error) {
	modified, err := s.store.SetUserRole(ctx, userID, domain.RoleModerator)
	if err != nil {
		return false, err
	}
	if modified {
		s.logger.Info("User promoted to moderator", "user_id", userID)
	}
	return modified, nil
}
