package catalog

import (
	"context"
	"errors"
	"fmt"

	pkgerrors "github.com/shopwave/shopwave-backend/pkg/errors"
	"gorm.io/gorm"
)

// Service exposes the public catalog read operations.
type Service interface {
	ListProducts(ctx context.Context, input ListProductsInput) ([]ProductWithRating, error)
	GetProduct(ctx context.Context, id int64) (*ProductWithRating, error)
	ListCategories(ctx context.Context) ([]string, error)
}

type service struct {
	repo *Repository
}

// NewService constructs a catalog service instance.
func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	return &service{repo: repo}, nil
}

// ListProducts lists in-stock products. Unknown sort values fall back to
// newest-first rather than erroring.
func (s *service) ListProducts(ctx context.Context, input ListProductsInput) ([]ProductWithRating, error) {
	switch input.Sort {
	case SortNewest, SortPriceAsc, SortPriceDesc, SortRating:
	default:
		input.Sort = SortNewest
	}
	products, err := s.repo.ListProducts(ctx, input)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list products")
	}
	return products, nil
}

func (s *service) GetProduct(ctx context.Context, id int64) (*ProductWithRating, error) {
	if id <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id must be positive")
	}
	product, err := s.repo.GetProduct(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "get product")
	}
	return product, nil
}

func (s *service) ListCategories(ctx context.Context) ([]string, error) {
	categories, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list categories")
	}
	return categories, nil
}
