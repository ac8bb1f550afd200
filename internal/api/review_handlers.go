package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/technozen/technozen-server/internal/service"
)

func (s *Server) registerReviewRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "addReview",
		Method:      http.MethodPost,
		Path:        "/addReview",
		Summary:     "Add review",
		Description: "Appends a review to the ledger. Reviews are never edited or removed.",
		Tags:        []string{"Reviews"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleAddReview)

	huma.Register(s.api, huma.Operation{
		OperationID: "listReviews",
		Method:      http.MethodGet,
		Path:        "/allReviews",
		Summary:     "List reviews",
		Description: "Returns every review in the ledger.",
		Tags:        []string{"Reviews"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleListReviews)
}

// === DTOs ===

// AddReviewRequest is the request body for adding a review.
type AddReviewRequest struct {
	ProductID     string  `json:"productId" validate:"required" doc:"Reviewed product ID, not validated against the registry"`
	ReviewerEmail string  `json:"reviewerEmail" validate:"required,email" doc:"Reviewer email"`
	ReviewerName  string  `json:"reviewerName,omitempty" doc:"Reviewer display name"`
	ReviewerImage string  `json:"reviewerImage,omitempty" doc:"Reviewer avatar URL"`
	Description   string  `json:"description" validate:"required" doc:"Review text"`
	Rating        float64 `json:"rating" minimum:"0" maximum:"5" doc:"Rating between 0 and 5"`
}

// AddReviewInput wraps the review request for huma.
type AddReviewInput struct {
	Authorization string `header:"Authorization"`
	Body          AddReviewRequest
}

// ReviewResponse contains review data in API responses.
type ReviewResponse struct {
	ID            string    `json:"id" doc:"Review ID"`
	ProductID     string    `json:"productId" doc:"Reviewed product ID"`
	ReviewerEmail string    `json:"reviewerEmail" doc:"Reviewer email"`
	ReviewerName  string    `json:"reviewerName,omitempty" doc:"Reviewer display name"`
	ReviewerImage string    `json:"reviewerImage,omitempty" doc:"Reviewer avatar URL"`
	Description   string    `json:"description" doc:"Review text"`
	Rating        float64   `json:"rating" doc:"Rating between 0 and 5"`
	CreatedAt     time.Time `json:"created_at" doc:"Creation time"`
}

// ReviewOutput wraps a single review response for huma.
type ReviewOutput struct {
	Status int
	Body   ReviewResponse
}

// ListReviewsInput contains parameters for listing reviews.
type ListReviewsInput struct {
	Authorization string `header:"Authorization"`
}

// ListReviewsResponse contains a list of reviews.
type ListReviewsResponse struct {
	Reviews []ReviewResponse `json:"reviews" doc:"List of reviews"`
}

// ListReviewsOutput wraps the review list response for huma.
type ListReviewsOutput struct {
	Body ListReviewsResponse
}

// === Handlers ===

func (s *Server) handleAddReview(ctx context.Context, input *AddReviewInput) (*ReviewOutput, error) {
	if _, err := s.authenticateRequest(ctx, input.Authorization); err != nil {
		return nil, err
	}

	review, err := s.services.Review.Add(ctx, service.AddReviewRequest{
		ProductID:     input.Body.ProductID,
		ReviewerEmail: input.Body.ReviewerEmail,
		ReviewerName:  input.Body.ReviewerName,
		ReviewerImage: input.Body.ReviewerImage,
		Description:   input.Body.Description,
		Rating:        input.Body.Rating,
	})
	if err != nil {
		return nil, err
	}

	return &ReviewOutput{
		Status: http.StatusCreated,
		Body: ReviewResponse{
			ID:            review.ID,
			ProductID:     review.ProductID,
			ReviewerEmail: review.ReviewerEmail,
			ReviewerName:  review.ReviewerName,
			ReviewerImage: review.ReviewerImage,
			Description:   review.Description,
			Rating:        review.Rating,
			CreatedAt:     review.CreatedAt,
		},
	}, nil
}

func (s *Server) handleListReviews(ctx context.Context, input *ListReviewsInput) (*ListReviewsOutput, error) {
	if _, err := s.authenticateRequest(ctx, input.Authorization); err != nil {
		return nil, err
	}

	reviews, err := s.services.Review.List(ctx)
	if err != nil {
		return nil, err
	}

	resp := make([]ReviewResponse, len(reviews))
	for i, r := range reviews {
		resp[i] = ReviewResponse{
			ID:            r.ID,
			ProductID:     r.ProductID,
			ReviewerEmail: r.ReviewerEmail,
			ReviewerName:  r.ReviewerName,
			ReviewerImage: r.ReviewerImage,
			Description:   r.Description,
			Rating:        r.Rating,
			CreatedAt:     r.CreatedAt,
		}
	}

	return &ListReviewsOutput{Body: ListReviewsResponse{Reviews: resp}}, nil
}
