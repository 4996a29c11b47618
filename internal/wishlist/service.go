package wishlist

import (
	"context"
	"fmt"

	"github.com/shopwave/shopwave-backend/internal/catalog"
	"github.com/shopwave/shopwave-backend/pkg/db"
	pkgerrors "github.com/shopwave/shopwave-backend/pkg/errors"
)

// Service exposes wishlist operations for an authenticated user.
type Service interface {
	Add(ctx context.Context, userID string, productID int64) error
	Remove(ctx context.Context, userID string, productID int64) error
	Exists(ctx context.Context, userID string, productID int64) (bool, error)
	List(ctx context.Context, userID string) ([]catalog.ProductWithRating, error)
}

type service struct {
	repo *Repository
}

// NewService constructs a wishlist service instance.
func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("wishlist repository required")
	}
	return &service{repo: repo}, nil
}

// Add saves the product. A duplicate save fails with a conflict, mapped
// straight off the unique constraint.
func (s *service) Add(ctx context.Context, userID string, productID int64) error {
	if productID <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "product id must be positive")
	}
	if err := s.repo.CreateEntry(ctx, userID, productID); err != nil {
		if db.IsUniqueViolation(err, "wishlists_user_product_key") {
			return pkgerrors.New(pkgerrors.CodeConflict, "product already in wishlist")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "save wishlist entry")
	}
	return nil
}

// Remove deletes the saved product. Removing an absent product succeeds.
func (s *service) Remove(ctx context.Context, userID string, productID int64) error {
	if err := s.repo.DeleteEntry(ctx, userID, productID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "remove wishlist entry")
	}
	return nil
}

// Exists reports whether the product is saved by the user.
func (s *service) Exists(ctx context.Context, userID string, productID int64) (bool, error) {
	exists, err := s.repo.EntryExists(ctx, userID, productID)
	if err != nil {
		return false, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check wishlist entry")
	}
	return exists, nil
}

// List returns the user's saved products with derived ratings, most recently
// saved first.
func (s *service) List(ctx context.Context, userID string) ([]catalog.ProductWithRating, error) {
	products, err := s.repo.ListSavedProducts(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list wishlist")
	}
	return products, nil
}
