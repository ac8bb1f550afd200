package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/technozen/technozen-server/internal/domain"
	"github.com/technozen/technozen-server/internal/service"
)

func (s *Server) registerProductRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "submitProduct",
		Method:      http.MethodPost,
		Path:        "/products",
		Summary:     "Submit product",
		Description: "Submits a new product into the pending moderation queue.",
		Tags:        []string{"Products"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleSubmitProduct)

	huma.Register(s.api, huma.Operation{
		OperationID: "listAcceptedProducts",
		Method:      http.MethodGet,
		Path:        "/accPro",
		Summary:     "List accepted products",
		Description: "Returns the public catalog of accepted products.",
		Tags:        []string{"Products"},
	}, s.handleListAcceptedProducts)

	huma.Register(s.api, huma.Operation{
		OperationID: "listAllProducts",
		Method:      http.MethodGet,
		Path:        "/allProducts",
		Summary:     "List all products",
		Description: "Returns every product regardless of moderation status.",
		Tags:        []string{"Products"},
	}, s.handleListAllProducts)

	huma.Register(s.api, huma.Operation{
		OperationID: "getProduct",
		Method:      http.MethodGet,
		Path:        "/allProducts/{id}",
		Summary:     "Get product",
		Description: "Returns a single product by ID.",
		Tags:        []string{"Products"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleGetProduct)

	huma.Register(s.api, huma.Operation{
		OperationID: "listReportedProducts",
		Method:      http.MethodGet,
		Path:        "/reportedProduct",
		Summary:     "List reported products",
		Description: "Returns products flagged by user reports. Moderator only.",
		Tags:        []string{"Products"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleListReportedProducts)

	huma.Register(s.api, huma.Operation{
		OperationID: "voteProduct",
		Method:      http.MethodPut,
		Path:        "/voteCount/{id}",
		Summary:     "Upvote product",
		Description: "Records an upvote. Each user may vote at most once per product; a repeat vote reports modified=false.",
		Tags:        []string{"Products"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleVoteProduct)

	huma.Register(s.api, huma.Operation{
		OperationID: "featureProduct",
		Method:      http.MethodPut,
		Path:        "/productType/{id}",
		Summary:     "Feature product",
		Description: "Promotes a product to the featured type. Moderator only.",
		Tags:        []string{"Products"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleFeatureProduct)

	huma.Register(s.api, huma.Operation{
		OperationID: "acceptProduct",
		Method:      http.MethodPut,
		Path:        "/acceptedProduct/{id}",
		Summary:     "Accept product",
		Description: "Moves a product into the accepted catalog. Moderator only.",
		Tags:        []string{"Products"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleAcceptProduct)

	huma.Register(s.api, huma.Operation{
		OperationID: "rejectProduct",
		Method:      http.MethodPut,
		Path:        "/rejectedProduct/{id}",
		Summary:     "Reject product",
		Description: "Marks a product as rejected. Moderator only.",
		Tags:        []string{"Products"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleRejectProduct)

	// Path kept as-is for client compatibility.
	huma.Register(s.api, huma.Operation{
		OperationID: "reportProduct",
		Method:      http.MethodPut,
		Path:        "/reportdProduct/{id}",
		Summary:     "Report product",
		Description: "Flags a product for moderator review.",
		Tags:        []string{"Products"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleReportProduct)
}

// === DTOs ===

// SubmitProductRequest is the request body for submitting a product.
type SubmitProductRequest struct {
	OwnerEmail   string   `json:"ownerEmail" validate:"required,email" doc:"Submitter email"`
	Name         string   `json:"productName" validate:"required" doc:"Product name"`
	Image        string   `json:"productImage,omitempty" doc:"Product image URL"`
	Description  string   `json:"description,omitempty" doc:"Product description"`
	Tags         []string `json:"tags,omitempty" doc:"Free-form tags"`
	ExternalLink string   `json:"externalLink,omitempty" doc:"Link to the product site"`
}

// SubmitProductInput wraps the submission request for huma.
type SubmitProductInput struct {
	Authorization string `header:"Authorization"`
	Body          SubmitProductRequest
}

// ProductResponse contains product data in API responses.
type ProductResponse struct {
	ID           string    `json:"id" doc:"Product ID"`
	OwnerEmail   string    `json:"ownerEmail" doc:"Submitter email"`
	Name         string    `json:"productName" doc:"Product name"`
	Image        string    `json:"productImage,omitempty" doc:"Product image URL"`
	Description  string    `json:"description,omitempty" doc:"Product description"`
	Tags         []string  `json:"tags,omitempty" doc:"Free-form tags"`
	ExternalLink string    `json:"externalLink,omitempty" doc:"Link to the product site"`
	SubmittedAt  time.Time `json:"submittedAt" doc:"Submission time"`
	Status       string    `json:"status" doc:"Moderation status: Pending, Accepted or Rejected"`
	Feedback     string    `json:"feedback,omitempty" doc:"Report flag, Reported when flagged"`
	Type         string    `json:"type" doc:"Product type: Standard or Featured"`
	UpvoteCount  int       `json:"upvoteCount" doc:"Number of distinct upvotes"`
	Voters       []string  `json:"voters,omitempty" doc:"Emails that have voted"`
}

// ProductOutput wraps a single product response for huma.
type ProductOutput struct {
	Status int
	Body   ProductResponse
}

// ListProductsInput contains parameters for the public product listings.
type ListProductsInput struct{}

// AuthListProductsInput contains parameters for authenticated product listings.
type AuthListProductsInput struct {
	Authorization string `header:"Authorization"`
}

// ListProductsResponse contains a list of products.
type ListProductsResponse struct {
	Products []ProductResponse `json:"products" doc:"List of products"`
}

// ListProductsOutput wraps the product list response for huma.
type ListProductsOutput struct {
	Body ListProductsResponse
}

// GetProductInput contains parameters for getting a product.
type GetProductInput struct {
	Authorization string `header:"Authorization"`
	ID            string `path:"id" doc:"Product ID"`
}

// VoteRequest is the request body for casting a vote.
type VoteRequest struct {
	UserEmail string `json:"userEmail" validate:"required,email" doc:"Voter email"`
}

// VoteInput wraps the vote request for huma.
type VoteInput struct {
	Authorization string `header:"Authorization"`
	ID            string `path:"id" doc:"Product ID"`
	Body          VoteRequest
}

// VoteResponse reports the outcome of a vote attempt.
type VoteResponse struct {
	Modified    bool `json:"modified" doc:"False when the user had already voted"`
	UpvoteCount int  `json:"upvoteCount" doc:"Resulting upvote count"`
}

// VoteOutput wraps the vote response for huma.
type VoteOutput struct {
	Body VoteResponse
}

// ModerateProductInput contains parameters for product moderation operations.
type ModerateProductInput struct {
	Authorization string `header:"Authorization"`
	ID            string `path:"id" doc:"Product ID"`
}

// === Handlers ===

func (s *Server) handleSubmitProduct(ctx context.Context, input *SubmitProductInput) (*ProductOutput, error) {
	if _, err := s.authenticateRequest(ctx, input.Authorization); err != nil {
		return nil, err
	}

	product, err := s.services.Product.Submit(ctx, service.SubmitProductRequest{
		OwnerEmail:   input.Body.OwnerEmail,
		Name:         input.Body.Name,
		Image:        input.Body.Image,
		Description:  input.Body.Description,
		Tags:         input.Body.Tags,
		ExternalLink: input.Body.ExternalLink,
	})
	if err != nil {
		return nil, err
	}

	return &ProductOutput{Status: http.StatusCreated, Body: toProductResponse(product)}, nil
}

func (s *Server) handleListAcceptedProducts(ctx context.Context, _ *ListProductsInput) (*ListProductsOutput, error) {
	products, err := s.services.Product.ListAccepted(ctx)
	if err != nil {
		return nil, err
	}
	return &ListProductsOutput{Body: ListProductsResponse{Products: toProductResponses(products)}}, nil
}

func (s *Server) handleListAllProducts(ctx context.Context, _ *ListProductsInput) (*ListProductsOutput, error) {
	products, err := s.services.Product.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return &ListProductsOutput{Body: ListProductsResponse{Products: toProductResponses(products)}}, nil
}

func (s *Server) handleGetProduct(ctx context.Context, input *GetProductInput) (*ProductOutput, error) {
	if _, err := s.authenticateRequest(ctx, input.Authorization); err != nil {
		return nil, err
	}

	product, err := s.services.Product.Get(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	return &ProductOutput{Status: http.StatusOK, Body: toProductResponse(product)}, nil
}

func (s *Server) handleListReportedProducts(ctx context.Context, input *AuthListProductsInput) (*ListProductsOutput, error) {
	if _, err := s.authenticateAndRequireModerator(ctx, input.Authorization); err != nil {
		return nil, err
	}

	products, err := s.services.Product.ListReported(ctx)
	if err != nil {
		return nil, err
	}
	return &ListProductsOutput{Body: ListProductsResponse{Products: toProductResponses(products)}}, nil
}

func (s *Server) handleVoteProduct(ctx context.Context, input *VoteInput) (*VoteOutput, error) {
	if _, err := s.authenticateRequest(ctx, input.Authorization); err != nil {
		return nil, err
	}

	result, err := s.services.Product.Vote(ctx, input.ID, input.Body.UserEmail)
	if err != nil {
		return nil, err
	}

	return &VoteOutput{Body: VoteResponse{Modified: result.Modified, UpvoteCount: result.UpvoteCount}}, nil
}

func (s *Server) handleFeatureProduct(ctx context.Context, input *ModerateProductInput) (*ModifyOutput, error) {
	if _, err := s.authenticateAndRequireModerator(ctx, input.Authorization); err != nil {
		return nil, err
	}

	modified, err := s.services.Product.Feature(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	return moderationResult("Product featured", "Product already featured", modified), nil
}

func (s *Server) handleAcceptProduct(ctx context.Context, input *ModerateProductInput) (*ModifyOutput, error) {
	if _, err := s.authenticateAndRequireModerator(ctx, input.Authorization); err != nil {
		return nil, err
	}

	modified, err := s.services.Product.Accept(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	return moderationResult("Product accepted", "Product already accepted", modified), nil
}

func (s *Server) handleRejectProduct(ctx context.Context, input *ModerateProductInput) (*ModifyOutput, error) {
	if _, err := s.authenticateAndRequireModerator(ctx, input.Authorization); err != nil {
		return nil, err
	}

	modified, err := s.services.Product.Reject(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	return moderationResult("Product rejected", "Product already rejected", modified), nil
}

func (s *Server) handleReportProduct(ctx context.Context, input *ModerateProductInput) (*ModifyOutput, error) {
	if _, err := s.authenticateRequest(ctx, input.Authorization); err != nil {
		return nil, err
	}

	modified, err := s.services.Product.Report(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	return moderationResult("Product reported", "Product already reported", modified), nil
}

// === Helpers ===

func moderationResult(changed, unchanged string, modified bool) *ModifyOutput {
	message := changed
	if !modified {
		message = unchanged
	}
	return &ModifyOutput{Body: ModifyResponse{Message: message, Modified: modified}}
}

func toProductResponse(p *domain.Product) ProductResponse {
	return ProductResponse{
		ID:           p.ID,
		OwnerEmail:   p.OwnerEmail,
		Name:         p.Name,
		Image:        p.Image,
		Description:  p.Description,
		Tags:         p.Tags,
		ExternalLink: p.ExternalLink,
		SubmittedAt:  p.SubmittedAt,
		Status:       string(p.Status),
		Feedback:     string(p.Feedback),
		Type:         string(p.Type),
		UpvoteCount:  p.UpvoteCount,
		Voters:       p.Voters,
	}
}

func toProductResponses(products []*domain.Product) []ProductResponse {
	resp := make([]ProductResponse, len(products))
	for i, p := range products {
		resp[i] = toProductResponse(p)
	}
	return resp
}
