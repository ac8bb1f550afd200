package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/technozen/technozen-server/internal/domain"
)

func TestAddReview(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	token := ts.seedUser(t, "alice@example.com", domain.RoleNone)

	resp := ts.api.Post("/addReview",
		"Authorization: Bearer "+token,
		map[string]any{
			"productId":     "prod-abc123",
			"reviewerEmail": "alice@example.com",
			"reviewerName":  "Alice",
			"description":   "Works great.",
			"rating":        4.5,
		},
	)
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())

	body := decodeBody[ReviewResponse](t, resp.Body.Bytes())
	assert.NotEmpty(t, body.ID)
	assert.Equal(t, "prod-abc123", body.ProductID)
	assert.InDelta(t, 4.5, body.Rating, 0.001)
}

func TestAddReview_Unauthenticated(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	resp := ts.api.Post("/addReview", map[string]any{
		"productId":     "prod-abc123",
		"reviewerEmail": "alice@example.com",
		"description":   "Works great.",
		"rating":        4,
	})
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestAddReview_MissingDescription(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	token := ts.seedUser(t, "alice@example.com", domain.RoleNone)

	resp := ts.api.Post("/addReview",
		"Authorization: Bearer "+token,
		map[string]any{
			"productId":     "prod-abc123",
			"reviewerEmail": "alice@example.com",
			"rating":        4,
		},
	)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
}

func TestListReviews(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	token := ts.seedUser(t, "alice@example.com", domain.RoleNone)

	resp := ts.api.Get("/allReviews", "Authorization: Bearer "+token)
	require.Equal(t, http.StatusOK, resp.Code)

	body := decodeBody[ListReviewsResponse](t, resp.Body.Bytes())
	assert.Empty(t, body.Reviews)

	for i := 0; i < 2; i++ {
		resp = ts.api.Post("/addReview",
			"Authorization: Bearer "+token,
			map[string]any{
				"productId":     "prod-abc123",
				"reviewerEmail": "alice@example.com",
				"description":   "Works great.",
				"rating":        5,
			},
		)
		require.Equal(t, http.StatusCreated, resp.Code)
	}

	resp = ts.api.Get("/allReviews", "Authorization: Bearer "+token)
	require.Equal(t, http.StatusOK, resp.Code)

	body = decodeBody[ListReviewsResponse](t, resp.Body.Bytes())
	assert.Len(t, body.Reviews, 2)
}
