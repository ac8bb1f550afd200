package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/technozen/technozen-server/internal/domain"
)

func TestRegisterUser(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	resp := ts.api.Post("/users", map[string]any{
		"email": "alice@example.com",
		"name":  "Alice",
	})
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())

	body := decodeBody[RegisterUserResponse](t, resp.Body.Bytes())
	assert.Equal(t, "User created", body.Message)
	require.NotNil(t, body.InsertedID)
	assert.NotEmpty(t, *body.InsertedID)
}

func TestRegisterUser_Idempotent(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	resp := ts.api.Post("/users", map[string]any{"email": "alice@example.com"})
	require.Equal(t, http.StatusCreated, resp.Code)

	// Registering the same email again is a no-op
	resp = ts.api.Post("/users", map[string]any{"email": "alice@example.com"})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	body := decodeBody[RegisterUserResponse](t, resp.Body.Bytes())
	assert.Equal(t, "User already exists", body.Message)
	assert.Nil(t, body.InsertedID)
}

func TestRegisterUser_InvalidEmail(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	resp := ts.api.Post("/users", map[string]any{"email": "not-an-email"})
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestListUsers_AdminOnly(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	adminToken := ts.seedUser(t, "admin@example.com", domain.RoleAdmin)
	userToken := ts.seedUser(t, "alice@example.com", domain.RoleNone)

	resp := ts.api.Get("/users", "Authorization: Bearer "+userToken)
	assert.Equal(t, http.StatusForbidden, resp.Code)

	resp = ts.api.Get("/users", "Authorization: Bearer "+adminToken)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	body := decodeBody[ListUsersResponse](t, resp.Body.Bytes())
	assert.Len(t, body.Users, 2)
}

func TestListUsers_ModeratorForbidden(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	// Roles are disjoint: moderators cannot use admin endpoints
	modToken := ts.seedUser(t, "mod@example.com", domain.RoleModerator)

	resp := ts.api.Get("/users", "Authorization: Bearer "+modToken)
	assert.Equal(t, http.StatusForbidden, resp.Code)
}

func TestCheckAdmin_Self(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	adminToken := ts.seedUser(t, "admin@example.com", domain.RoleAdmin)

	resp := ts.api.Get("/users/admin/admin@example.com", "Authorization: Bearer "+adminToken)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	body := decodeBody[AdminCheckResponse](t, resp.Body.Bytes())
	assert.True(t, body.Admin)
}

func TestCheckAdmin_RegularUser(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	userToken := ts.seedUser(t, "alice@example.com", domain.RoleNone)

	resp := ts.api.Get("/users/admin/alice@example.com", "Authorization: Bearer "+userToken)
	require.Equal(t, http.StatusOK, resp.Code)

	body := decodeBody[AdminCheckResponse](t, resp.Body.Bytes())
	assert.False(t, body.Admin)
}

func TestCheckAdmin_OtherEmailForbidden(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	userToken := ts.seedUser(t, "alice@example.com", domain.RoleNone)

	resp := ts.api.Get("/users/admin/bob@example.com", "Authorization: Bearer "+userToken)
	assert.Equal(t, http.StatusForbidden, resp.Code)
}

func TestCheckModerator_Self(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	modToken := ts.seedUser(t, "mod@example.com", domain.RoleModerator)

	resp := ts.api.Get("/users/moderator/mod@example.com", "Authorization: Bearer "+modToken)
	require.Equal(t, http.StatusOK, resp.Code)

	body := decodeBody[ModeratorCheckResponse](t, resp.Body.Bytes())
	assert.True(t, body.Moderator)
}

func TestCheckModerator_OtherEmailForbidden(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	modToken := ts.seedUser(t, "mod@example.com", domain.RoleModerator)

	resp := ts.api.Get("/users/moderator/other@example.com", "Authorization: Bearer "+modToken)
	assert.Equal(t, http.StatusForbidden, resp.Code)
}

func TestPromoteToAdmin(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	adminToken := ts.seedUser(t, "admin@example.com", domain.RoleAdmin)
	ts.seedUser(t, "alice@example.com", domain.RoleNone)

	resp := ts.api.Patch("/users/admin/user-alice@example.com", "Authorization: Bearer "+adminToken)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	body := decodeBody[ModifyResponse](t, resp.Body.Bytes())
	assert.True(t, body.Modified)

	// Promoting again is a no-op
	resp = ts.api.Patch("/users/admin/user-alice@example.com", "Authorization: Bearer "+adminToken)
	require.Equal(t, http.StatusOK, resp.Code)

	body = decodeBody[ModifyResponse](t, resp.Body.Bytes())
	assert.False(t, body.Modified)
}

func TestPromoteToAdmin_RequiresAdmin(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	userToken := ts.seedUser(t, "alice@example.com", domain.RoleNone)
	modToken := ts.seedUser(t, "mod@example.com", domain.RoleModerator)
	ts.seedUser(t, "bob@example.com", domain.RoleNone)

	resp := ts.api.Patch("/users/admin/user-bob@example.com", "Authorization: Bearer "+userToken)
	assert.Equal(t, http.StatusForbidden, resp.Code)

	resp = ts.api.Patch("/users/admin/user-bob@example.com", "Authorization: Bearer "+modToken)
	assert.Equal(t, http.StatusForbidden, resp.Code)
}

func TestPromoteToAdmin_NotFound(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	adminToken := ts.seedUser(t, "admin@example.com", domain.RoleAdmin)

	resp := ts.api.Patch("/users/admin/user-missing", "Authorization: Bearer "+adminToken)
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestPromoteToModerator(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	modToken := ts.seedUser(t, "mod@example.com", domain.RoleModerator)
	ts.seedUser(t, "alice@example.com", domain.RoleNone)

	resp := ts.api.Patch("/users/moderator/user-alice@example.com", "Authorization: Bearer "+modToken)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	body := decodeBody[ModifyResponse](t, resp.Body.Bytes())
	assert.True(t, body.Modified)
}

func TestPromoteToModerator_RequiresModerator(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	adminToken := ts.seedUser(t, "admin@example.com", domain.RoleAdmin)
	ts.seedUser(t, "alice@example.com", domain.RoleNone)

	// Admins are not moderators
	resp := ts.api.Patch("/users/moderator/user-alice@example.com", "Authorization: Bearer "+adminToken)
	assert.Equal(t, http.StatusForbidden, resp.Code)
}
