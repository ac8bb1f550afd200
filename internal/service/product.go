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

// SubmitProductRequest carries a new product submission.
type SubmitProductRequest struct {
	OwnerEmail   string   `json:"ownerEmail" validate:"required,email,max=254"`
	Name         string   `json:"productName" validate:"required,max=200"`
	Image        string   `json:"productImage" validate:"omitempty,url,max=2048"`
	Description  string   `json:"description" validate:"omitempty,max=5000"`
	Tags         []string `json:"tags" validate:"omitempty,dive,max=50"`
	ExternalLink string   `json:"externalLink" validate:"omitempty,url,max=2048"`
}

// VoteResult reports the outcome of a vote attempt.
type VoteResult struct {
	Modified    bool
	UpvoteCount int
}

// ProductService manages the product lifecycle: submission, moderation,
// featuring, reporting and voting.
type ProductService struct {
	store     *store.Store
	validator *validation.Validator
	logger    *slog.Logger
}

// NewProductService creates a new product service.
func NewProductService(st *store.Store, logger *slog.Logger) *ProductService {
	return &ProductService{
		store:     st,
		validator: validation.New(),
		logger:    logger,
	}
}

// Submit records a new product. Submissions start in the pending queue with
// the standard type, no feedback flag, and an empty vote ledger.
func (s *ProductService) Submit(ctx context.Context, req SubmitProductRequest) (*domain.Product, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	productID, err := id.Generate("prod")
	if err != nil {
		return nil, err
	}

	product := &domain.Product{
		ID:           productID,
		OwnerEmail:   req.OwnerEmail,
		Name:         req.Name,
		Image:        req.Image,
		Description:  req.Description,
		Tags:         req.Tags,
		ExternalLink: req.ExternalLink,
		SubmittedAt:  time.Now(),
		Status:       domain.StatusPending,
		Feedback:     domain.FeedbackNone,
		Type:         domain.TypeStandard,
		UpvoteCount:  0,
	}

	if err := s.store.CreateProduct(ctx, product); err != nil {
		return nil, err
	}

	s.logger.Info("Product submitted", "product_id", product.ID, "owner", product.OwnerEmail)

	return product, nil
}

// Get retrieves a single product by ID.
func (s *ProductService) Get(ctx context.Context, productID string) (*domain.Product, error) {
	product, err := s.store.GetProduct(ctx, productID)
	if err != nil {
		if domainerrors.Is(err, store.ErrProductNotFound) {
			return nil, domainerrors.NotFoundf("product %s not found", productID)
		}
		return nil, err
	}
	return product, nil
}

// ListAll returns every product regardless of status.
func (s *ProductService) ListAll(ctx context.Context) ([]*domain.Product, error) {
	return s.store.ListProducts(ctx, nil)
}

// ListAccepted returns the publicly visible catalog: accepted products only.
func (s *ProductService) ListAccepted(ctx context.Context) ([]*domain.Product, error) {
	return s.store.ListProductsByStatus(ctx, domain.StatusAccepted)
}

// ListReported returns products flagged by user reports.
func (s *ProductService) ListReported(ctx context.Context) ([]*domain.Product, error) {
	return s.store.ListReportedProducts(ctx)
}

// Accept moves a product into the accepted catalog.
// Returns modified=false when the product is already accepted.
func (s *ProductService) Accept(ctx context.Context, productID string) (bool, error) {
	return s.setStatus(ctx, productID, domain.StatusAccepted)
}

// Reject marks a product as rejected.
// Returns modified=false when the product is already rejected.
func (s *ProductService) Reject(ctx context.Context, productID string) (bool, error) {
	return s.setStatus(ctx, productID, domain.StatusRejected)
}

// Feature promotes a product to the featured type.
// Returns modified=false when the product is already featured.
func (s *ProductService) Feature(ctx context.Context, productID string) (bool, error) {
	modified, err := s.store.SetProductType(ctx, productID, domain.TypeFeatured)
	if err != nil {
		if domainerrors.Is(err, store.ErrProductNotFound) {
			return false, domainerrors.NotFoundf("product %s not found", productID)
		}
		return false, err
	}
	if modified {
		s.logger.Info("Product featured", "product_id", productID)
	}
	return modified, nil
}

// Report flags a product as reported for moderator review.
// Returns modified=false when the product is already reported.
func (s *ProductService) Report(ctx context.Context, productID string) (bool, error) {
	modified, err := s.store.SetProductFeedback(ctx, productID, domain.FeedbackReported)
	if err != nil {
		if domainerrors.Is(err, store.ErrProductNotFound) {
			return false, domainerrors.NotFoundf("product %s not found", productID)
		}
		return false, err
	}
	if modified {
		s.logger.Info("Product reported", "product_id", productID)
	}
	return modified, nil
}

// Vote records an upvote by voterEmail. Each user votes at most once per
// product; repeat votes report Modified=false with the unchanged count.
func (s *ProductService) Vote(ctx context.Context, productID, voterEmail string) (*VoteResult, error) {
	if voterEmail == "" {
		return nil, domainerrors.Validation("userEmail is required")
	}

	modified, count, err := s.store.CastVote(ctx, productID, voterEmail)
	if err != nil {
		if domainerrors.Is(err, store.ErrProductNotFound) {
			return nil, domainerrors.NotFoundf("product %s not found", productID)
		}
		return nil, err
	}

	if modified {
		s.logger.Info("Vote recorded", "product_id", productID, "voter", voterEmail, "upvote_count", count)
	}

	return &VoteResult{Modified: modified, UpvoteCount: count}, nil
}

func (s *ProductService) setStatus(ctx context.Context, productID string, status domain.ProductStatus) (bool, error) {
	modified, err := s.store.SetProductStatus(ctx, productID, status)
	if err != nil {
		if domainerrors.Is(err, store.ErrProductNotFound) {
			return false, domainerrors.NotFoundf("product %s not found", productID)
		}
		return false, err
	}
	if modified {
		s.logger.Info("Product status changed", "product_id", productID, "status", status)
	}
	return modified, nil
}
