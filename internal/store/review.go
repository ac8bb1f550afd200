package store

import (
	"context"
	"encoding/json/v2"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/technozen/technozen-server/internal/domain"
)

const reviewPrefix = "review:"

// CreateReview appends a review to the ledger.
func (s *Store) CreateReview(_ context.Context, review *domain.Review) error {
	key := []byte(reviewPrefix + review.ID)

	exists, err := s.exists(key)
	if err != nil {
		return fmt.Errorf("check review exists: %w", err)
	}
	if exists {
		return ErrReviewExists
	}

	data, err := json.Marshal(review)
	if err != nil {
		return fmt.Errorf("marshal review: %w", err)
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, data)
	})
}

// ListReviews returns all reviews.
func (s *Store) ListReviews(_ context.Context) ([]*domain.Review, error) {
	prefix := []byte(reviewPrefix)
	var reviews []*domain.Review

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()

			err := item.Value(func(val []byte) error {
				var review domain.Review
				if unmarshalErr := json.Unmarshal(val, &review); unmarshalErr != nil {
					// Skip malformed reviews
					return nil //nolint:nilerr // intentionally skip malformed entries
				}

				reviews = append(reviews, &review)
				return nil
			})
			if err != nil {
				return err
			}
		}

		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}

	return reviews, nil
}
