package api

import (
	"context"
	"encoding/json/v2"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/technozen/technozen-server/internal/auth"
	"github.com/technozen/technozen-server/internal/domain"
	"github.com/technozen/technozen-server/internal/service"
	"github.com/technozen/technozen-server/internal/store"
)

const testKeyHex = "707172737475767778797a7b7c7d7e7f808182838485868788898a8b8c8d8e8f"

// testServer wraps the API server for handler testing.
type testServer struct {
	*Server
	api          humatest.TestAPI
	tokenService *auth.TokenService
	cleanup      func()
}

func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "technozen-api-test-*")
	require.NoError(t, err)

	dbPath := filepath.Join(tmpDir, "test.db")
	st, err := store.New(dbPath, nil)
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	tokenService, err := auth.NewTokenService(testKeyHex, 5*time.Hour)
	require.NoError(t, err)

	services := &Services{
		Auth:    service.NewAuthService(tokenService, logger),
		User:    service.NewUserService(st, logger),
		Product: service.NewProductService(st, logger),
		Review:  service.NewReviewService(st, logger),
	}

	s := NewServer(st, services, logger)

	cleanup := func() {
		_ = st.Close()
		_ = os.RemoveAll(tmpDir)
	}

	return &testServer{
		Server:       s,
		api:          humatest.Wrap(t, s.api),
		tokenService: tokenService,
		cleanup:      cleanup,
	}
}

// seedUser creates a user directly in the store and returns a token for it.
func (ts *testServer) seedUser(t *testing.T, email string, role domain.Role) string {
	t.Helper()

	user := &domain.User{
		ID:        "user-" + email,
		Email:     email,
		Role:      role,
		CreatedAt: time.Now(),
	}
	require.NoError(t, ts.store.CreateUser(context.Background(), user))

	return ts.issueToken(t, email)
}

// issueToken signs a token for the given email without touching the store.
func (ts *testServer) issueToken(t *testing.T, email string) string {
	t.Helper()

	token, err := ts.tokenService.Issue(map[string]any{"email": email})
	require.NoError(t, err)
	return token
}

// seedProduct creates a product directly in the store.
func (ts *testServer) seedProduct(t *testing.T, id string, status domain.ProductStatus) {
	t.Helper()

	product := &domain.Product{
		ID:          id,
		OwnerEmail:  "owner@example.com",
		Name:        "Widget",
		SubmittedAt: time.Now(),
		Status:      status,
		Type:        domain.TypeStandard,
	}
	require.NoError(t, ts.store.CreateProduct(context.Background(), product))
}

func decodeBody[T any](t *testing.T, data []byte) T {
	t.Helper()

	var out T
	require.NoError(t, json.Unmarshal(data, &out))
	return out
}

func TestIssueToken(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	resp := ts.api.Post("/jwt", map[string]any{
		"email": "alice@example.com",
		"name":  "Alice",
	})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	body := decodeBody[TokenResponse](t, resp.Body.Bytes())
	require.NotEmpty(t, body.Token)

	claims, err := ts.tokenService.Verify(body.Token)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", claims.Email)
}

func TestIssueToken_MissingEmail(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	resp := ts.api.Post("/jwt", map[string]any{"name": "Alice"})
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestAuthentication_MissingHeader(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	resp := ts.api.Get("/allReviews")
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestAuthentication_MalformedHeader(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	resp := ts.api.Get("/allReviews", "Authorization: whatever")
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestAuthentication_GarbageToken(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	resp := ts.api.Get("/allReviews", "Authorization: Bearer not-a-token")
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}
