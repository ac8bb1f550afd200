package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/technozen/technozen-server/internal/domain"
	"github.com/technozen/technozen-server/internal/id"
	"github.com/technozen/technozen-server/internal/store"
	"github.com/technozen/technozen-server/internal/validation"
)

// AddReviewRequest carries a new review submission.
type AddReviewRequest struct {
	ProductID     string  `json:"productId" validate:"required,max=100"`
	ReviewerEmail string  `json:"reviewerEmail" validate:"required,email,max=254"`
	ReviewerName  string  `json:"reviewerName" validate:"omitempty,max=200"`
	ReviewerImage string  `json:"reviewerImage" validate:"omitempty,url,max=2048"`
	Description   string  `json:"description" validate:"required,max=5000"`
	Rating        float64 `json:"rating" validate:"gte=0,lte=5"`
}

// ReviewService manages the append-only review ledger.
type ReviewService struct {
	store     *store.Store
	validator *validation.Validator
	logger    *slog.Logger
}

// NewReviewService creates a new review service.
func NewReviewService(st *store.Store, logger *slog.Logger) *ReviewService {
	return &ReviewService{
		store:     st,
		validator: validation.New(),
		logger:    logger,
	}
}

// Add appends a review. Reviews are never edited or removed.
func (s *ReviewService) Add(ctx context.Context, req AddReviewRequest) (*domain.Review, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	reviewID, err := id.Generate("rev")
	if err != nil {
		return nil, err
	}

	review := &domain.Review{
		ID:            reviewID,
		ProductID:     req.ProductID,
		ReviewerEmail: req.ReviewerEmail,
		ReviewerName:  req.ReviewerName,
		ReviewerImage: req.ReviewerImage,
		Description:   req.Description,
		Rating:        req.Rating,
		CreatedAt:     time.Now(),
	}

	if err := s.store.CreateReview(ctx, review); err != nil {
		return nil, err
	}

	s.logger.Info("Review added", "review_id", review.ID, "product_id", review.ProductID)

	return review, nil
}

// List returns every review in the ledger.
func (s *ReviewService) List(ctx context.Context) ([]*domain.Review, error) {
	return s.store.ListReviews(ctx)
}
