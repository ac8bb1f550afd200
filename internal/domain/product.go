package domain

import (
	"slices"
	"time"
)

// ProductStatus is the moderation lifecycle state of a product.
type ProductStatus string

const (
	// StatusPending is the default state for new submissions.
	StatusPending ProductStatus = "Pending"
	// StatusAccepted marks a product approved by a moderator.
	StatusAccepted ProductStatus = "Accepted"
	// StatusRejected marks a product declined by a moderator.
	StatusRejected ProductStatus = "Rejected"
)

// ProductType distinguishes featured products from standard ones.
type ProductType string

const (
	// TypeStandard is the default product type.
	TypeStandard ProductType = "Standard"
	// TypeFeatured marks a product promoted by a moderator.
	TypeFeatured ProductType = "Featured"
)

// ProductFeedback flags a product for moderator review, independent of status.
type ProductFeedback string

const (
	// FeedbackNone means no outstanding reports.
	FeedbackNone ProductFeedback = ""
	// FeedbackReported means at least one user reported the product.
	FeedbackReported ProductFeedback = "Reported"
)

// Product represents a user-submitted product with its vote ledger.
//
// Invariant: each email appears in Voters at most once, and
// UpvoteCount == len(Voters) at all times.
type Product struct {
	ID           string          `json:"id"`
	OwnerEmail   string          `json:"owner_email"`
	Name         string          `json:"name"`
	Image        string          `json:"image,omitempty"`
	Description  string          `json:"description,omitempty"`
	Tags         []string        `json:"tags,omitempty"`
	ExternalLink string          `json:"external_link,omitempty"`
	SubmittedAt  time.Time       `json:"submitted_at"`
	Status       ProductStatus   `json:"status"`
	Feedback     ProductFeedback `json:"feedback,omitempty"`
	Type         ProductType     `json:"type"`
	UpvoteCount  int             `json:"upvote_count"`
	Voters       []string        `json:"voters,omitempty"`
}

// HasVoted returns true if the given email is already in the voter ledger.
func (p *Product) HasVoted(email string) bool {
	return slices.Contains(p.Voters, email)
}
