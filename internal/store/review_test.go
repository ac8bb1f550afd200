package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/technozen/technozen-server/internal/domain"
)

func TestCreateReview(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()

	review := &domain.Review{
		ID:            "rev-abc123",
		ProductID:     "prod-xyz789",
		ReviewerEmail: "alice@example.com",
		ReviewerName:  "Alice",
		Description:   "Does what it says.",
		Rating:        4.5,
		CreatedAt:     time.Now(),
	}

	require.NoError(t, store.CreateReview(ctx, review))

	err := store.CreateReview(ctx, review)
	assert.ErrorIs(t, err, ErrReviewExists)
}

func TestListReviews(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()

	reviews, err := store.ListReviews(ctx)
	require.NoError(t, err)
	assert.Empty(t, reviews)

	for _, id := range []string{"rev-a", "rev-b"} {
		review := &domain.Review{
			ID:            id,
			ProductID:     "prod-xyz789",
			ReviewerEmail: "alice@example.com",
			Description:   "Solid.",
			Rating:        5,
			CreatedAt:     time.Now(),
		}
		require.NoError(t, store.CreateReview(ctx, review))
	}

	reviews, err = store.ListReviews(ctx)
	require.NoError(t, err)
	assert.Len(t, reviews, 2)
}
