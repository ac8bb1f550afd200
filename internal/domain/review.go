package domain

import "time"

// Review is an append-only user review of a product.
// The product reference is opaque: this layer does not validate it
// against the product registry.
type Review struct {
	ID            string    `json:"id"`
	ProductID     string    `json:"product_id"`
	ReviewerEmail string    `json:"reviewer_email"`
	ReviewerName  string    `json:"reviewer_name,omitempty"`
	ReviewerImage string    `json:"reviewer_image,omitempty"`
	Description   string    `json:"description,omitempty"`
	Rating        float64   `json:"rating"`
	CreatedAt     time.Time `json:"created_at"`
}
