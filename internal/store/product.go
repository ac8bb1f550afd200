package store

import (
	"context"
	"encoding/json/v2"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/technozen/technozen-server/internal/domain"
)

const productPrefix = "product:"

// CreateProduct stores a new product submission.
func (s *Store) CreateProduct(_ context.Context, product *domain.Product) error {
	key := []byte(productPrefix + product.ID)

	exists, err := s.exists(key)
	if err != nil {
		return fmt.Errorf("check product exists: %w", err)
	}
	if exists {
		return ErrProductExists
	}

	data, err := json.Marshal(product)
	if err != nil {
		return fmt.Errorf("marshal product: %w", err)
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, data)
	})
}

// GetProduct retrieves a product by ID.
func (s *Store) GetProduct(_ context.Context, id string) (*domain.Product, error) {
	key := []byte(productPrefix + id)

	var product domain.Product
	if err := s.get(key, &product); err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("get product: %w", err)
	}

	return &product, nil
}

// ListProducts returns all products, optionally filtered.
// A nil filter returns every product.
func (s *Store) ListProducts(_ context.Context, filter func(*domain.Product) bool) ([]*domain.Product, error) {
	prefix := []byte(productPrefix)
	var products []*domain.Product

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()

			err := item.Value(func(val []byte) error {
				var product domain.Product
				if unmarshalErr := json.Unmarshal(val, &product); unmarshalErr != nil {
					// Skip malformed products
					return nil //nolint:nilerr // intentionally skip malformed entries
				}

				if filter == nil || filter(&product) {
					products = append(products, &product)
				}
				return nil
			})
			if err != nil {
				return err
			}
		}

		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	return products, nil
}

// ListProductsByStatus returns all products with the given lifecycle status.
func (s *Store) ListProductsByStatus(ctx context.Context, status domain.ProductStatus) ([]*domain.Product, error) {
	return s.ListProducts(ctx, func(p *domain.Product) bool {
		return p.Status == status
	})
}

// ListReportedProducts returns all products flagged by user reports.
func (s *Store) ListReportedProducts(ctx context.Context) ([]*domain.Product, error) {
	return s.ListProducts(ctx, func(p *domain.Product) bool {
		return p.Feedback == domain.FeedbackReported
	})
}

// SetProductStatus sets the lifecycle status of a product.
// Returns modified=false when the product is already in that status.
func (s *Store) SetProductStatus(ctx context.Context, id string, status domain.ProductStatus) (bool, error) {
	return s.updateProduct(id, func(p *domain.Product) bool {
		if p.Status == status {
			return false
		}
		p.Status = status
		return true
	})
}

// SetProductType sets the product type (e.g. Featured).
// Returns modified=false when the product already has that type.
func (s *Store) SetProductType(ctx context.Context, id string, productType domain.ProductType) (bool, error) {
	return s.updateProduct(id, func(p *domain.Product) bool {
		if p.Type == productType {
			return false
		}
		p.Type = productType
		return true
	})
}

// SetProductFeedback sets the feedback flag of a product (e.g. Reported).
// Returns modified=false when the flag is already set.
func (s *Store) SetProductFeedback(ctx context.Context, id string, feedback domain.ProductFeedback) (bool, error) {
	return s.updateProduct(id, func(p *domain.Product) bool {
		if p.Feedback == feedback {
			return false
		}
		p.Feedback = feedback
		return true
	})
}

// CastVote records an upvote by voterEmail on the given product.
//
// The check-and-increment runs inside a single Badger transaction, so two
// concurrent votes by the same user cannot both pass the "not yet voted"
// check: Badger's serializable transactions make the loser commit fail with
// ErrConflict, and the retry then observes the recorded vote and no-ops.
// Conflicts are retried until the transaction commits: every conflict means
// another vote committed first, so each retry makes progress and the loop
// terminates once this voter's turn comes.
// Returns modified=false when the voter is already in the ledger, and the
// resulting upvote count either way.
func (s *Store) CastVote(_ context.Context, id, voterEmail string) (bool, int, error) {
	key := []byte(productPrefix + id)

	var (
		modified bool
		count    int
	)

	for {
		err := s.db.Update(func(txn *badger.Txn) error {
			item, err := txn.Get(key)
			if errors.Is(err, badger.ErrKeyNotFound) {
				return ErrProductNotFound
			}
			if err != nil {
				return fmt.Errorf("get product: %w", err)
			}

			var product domain.Product
			err = item.Value(func(val []byte) error {
				return json.Unmarshal(val, &product)
			})
			if err != nil {
				return fmt.Errorf("unmarshal product: %w", err)
			}

			if product.HasVoted(voterEmail) {
				modified = false
				count = product.UpvoteCount
				return nil
			}

			product.Voters = append(product.Voters, voterEmail)
			product.UpvoteCount++

			data, err := json.Marshal(&product)
			if err != nil {
				return fmt.Errorf("marshal product: %w", err)
			}

			if err := txn.Set(key, data); err != nil {
				return err
			}

			modified = true
			count = product.UpvoteCount
			return nil
		})

		if errors.Is(err, badger.ErrConflict) {
			continue
		}
		if err != nil {
			return false, 0, err
		}
		return modified, count, nil
	}
}

// updateProduct applies mutate to the stored product inside one transaction.
// mutate reports whether it changed anything; unchanged products are not
// rewritten.
func (s *Store) updateProduct(id string, mutate func(*domain.Product) bool) (bool, error) {
	key := []byte(productPrefix + id)
	modified := false

	err := s.db.Update(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrProductNotFound
		}
		if err != nil {
			return fmt.Errorf("get product: %w", err)
		}

		var product domain.Product
		err = item.Value(func(val []byte) error {
			return json.Unmarshal(val, &product)
		})
		if err != nil {
			return fmt.Errorf("unmarshal product: %w", err)
		}

		if !mutate(&product) {
			return nil
		}

		data, err := json.Marshal(&product)
		if err != nil {
			return fmt.Errorf("marshal product: %w", err)
		}

		if err := txn.Set(key, data); err != nil {
			return err
		}

		modified = true
		return nil
	})

	if err != nil {
		return false, err
	}

	return modified, nil
}
