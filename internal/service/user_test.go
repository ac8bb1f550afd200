package service

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/technozen/technozen-server/internal/domain"
	domainerrors "github.com/technozen/technozen-server/internal/errors"
	"github.com/technozen/technozen-server/internal/store"
)

func setupUserService(t *testing.T) (*UserService, *store.Store, func()) {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "technozen-service-test-*")
	require.NoError(t, err)

	st, err := store.New(filepath.Join(tmpDir, "test.db"), nil)
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	cleanup := func() {
		_ = st.Close()
		_ = os.RemoveAll(tmpDir)
	}

	return NewUserService(st, logger), st, cleanup
}

func TestRegister(t *testing.T) {
	svc, _, cleanup := setupUserService(t)
	defer cleanup()

	ctx := context.Background()

	result, err := svc.Register(ctx, RegisterRequest{Email: "alice@example.com", Name: "Alice"})
	require.NoError(t, err)
	assert.True(t, result.Created)
	assert.NotEmpty(t, result.InsertedID)

	user, err := svc.GetByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, result.InsertedID, user.ID)
	assert.Equal(t, domain.RoleNone, user.Role)
}

func TestRegister_Idempotent(t *testing.T) {
	svc, _, cleanup := setupUserService(t)
	defer cleanup()

	ctx := context.Background()

	first, err := svc.Register(ctx, RegisterRequest{Email: "alice@example.com"})
	require.NoError(t, err)
	require.True(t, first.Created)

	second, err := svc.Register(ctx, RegisterRequest{Email: "alice@example.com", Name: "Other"})
	require.NoError(t, err)
	assert.False(t, second.Created)
	assert.Empty(t, second.InsertedID)

	// The original profile is untouched
	user, err := svc.GetByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, first.InsertedID, user.ID)
	assert.Empty(t, user.Name)
}

func TestRegister_InvalidEmail(t *testing.T) {
	svc, _, cleanup := setupUserService(t)
	defer cleanup()

	_, err := svc.Register(context.Background(), RegisterRequest{Email: "not-an-email"})
	require.Error(t, err)

	var domainErr *domainerrors.Error
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domainerrors.CodeValidation, domainErr.Code)
}

func TestIsAdmin_UnknownEmail(t *testing.T) {
	svc, _, cleanup := setupUserService(t)
	defer cleanup()

	isAdmin, err := svc.IsAdmin(context.Background(), "nobody@example.com")
	require.NoError(t, err)
	assert.False(t, isAdmin)
}

func TestPromotions_AreDisjoint(t *testing.T) {
	svc, _, cleanup := setupUserService(t)
	defer cleanup()

	ctx := context.Background()

	result, err := svc.Register(ctx, RegisterRequest{Email: "alice@example.com"})
	require.NoError(t, err)

	modified, err := svc.PromoteToAdmin(ctx, result.InsertedID)
	require.NoError(t, err)
	assert.True(t, modified)

	isAdmin, err := svc.IsAdmin(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.True(t, isAdmin)

	// Promoting to moderator replaces the admin role
	modified, err = svc.PromoteToModerator(ctx, result.InsertedID)
	require.NoError(t, err)
	assert.True(t, modified)

	isAdmin, err = svc.IsAdmin(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.False(t, isAdmin)

	isModerator, err := svc.IsModerator(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.True(t, isModerator)
}

func TestPromoteToAdmin_NotFound(t *testing.T) {
	svc, _, cleanup := setupUserService(t)
	defer cleanup()

	_, err := svc.PromoteToAdmin(context.Background(), "user-missing")
	assert.ErrorIs(t, err, store.ErrUserNotFound)
}
