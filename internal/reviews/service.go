package reviews

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopwave/shopwave-backend/pkg/db/models"
	pkgerrors "github.com/shopwave/shopwave-backend/pkg/errors"
	"gorm.io/gorm"
)

// Service exposes review submission and the public product review feed.
type Service interface {
	Submit(ctx context.Context, userID string, input SubmitInput) (string, error)
	ListByProduct(ctx context.Context, productID int64) ([]ReviewDTO, error)
}

type service struct {
	repo *Repository
}

// NewService constructs a reviews service instance.
func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("reviews repository required")
	}
	return &service{repo: repo}, nil
}

// Submit records the user's review of a product. A prior review by the same
// user is overwritten in place, so the pair collapses to one row. Purchase
// history is not checked.
func (s *service) Submit(ctx context.Context, userID string, input SubmitInput) (string, error) {
	if input.Rating < 1 || input.Rating > 5 {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "rating must be between 1 and 5")
	}
	if input.ProductID <= 0 {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "product id must be positive")
	}

	existing, err := s.repo.FindByUserAndProduct(ctx, userID, input.ProductID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load review")
	}

	if existing != nil {
		if err := s.repo.UpdateContent(ctx, existing.ID, input.Rating, input.Title, input.Comment); err != nil {
			return "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update review")
		}
		return ActionUpdated, nil
	}

	review := &models.Review{
		ProductID: input.ProductID,
		UserID:    userID,
		Rating:    input.Rating,
		Title:     input.Title,
		Comment:   input.Comment,
	}
	if _, err := s.repo.Create(ctx, review); err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create review")
	}
	return ActionCreated, nil
}

// ListByProduct returns the product's reviews newest-first. The read is
// public.
func (s *service) ListByProduct(ctx context.Context, productID int64) ([]ReviewDTO, error) {
	rows, err := s.repo.ListByProduct(ctx, productID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list reviews")
	}

	reviews := make([]ReviewDTO, 0, len(rows))
	for _, row := range rows {
		reviews = append(reviews, ReviewDTO{
			ID:        row.ID,
			ProductID: row.ProductID,
			UserID:    row.UserID,
			Rating:    row.Rating,
			Title:     row.Title,
			Comment:   row.Comment,
			CreatedAt: row.CreatedAt,
			UpdatedAt: row.UpdatedAt,
		})
	}
	return reviews, nil
}
