package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/shopwave/shopwave-backend/pkg/db/models"
	pkgerrors "github.com/shopwave/shopwave-backend/pkg/errors"
	"gorm.io/gorm"
)

// Service exposes cart operations for an authenticated user.
type Service interface {
	AddItem(ctx context.Context, userID string, productID int64, quantity int) (string, error)
	SetQuantity(ctx context.Context, userID string, itemID int64, quantity int) (string, error)
	RemoveItem(ctx context.Context, userID string, itemID int64) error
	Clear(ctx context.Context, userID string) error
	GetContents(ctx context.Context, userID string) (*Contents, error)
}

type service struct {
	repo *Repository
}

// NewService constructs a cart service instance.
func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("cart repository required")
	}
	return &service{repo: repo}, nil
}

// AddItem merges the quantity into the user's existing line for the product,
// or creates a new line. The read and the write are two statements; a
// concurrent add for the same product can still race into two lines, which
// the storefront tolerates.
func (s *service) AddItem(ctx context.Context, userID string, productID int64, quantity int) (string, error) {
	if quantity < 1 {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	}

	if _, err := s.repo.FindProduct(ctx, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load product")
	}

	existing, err := s.repo.FindItemByProduct(ctx, userID, productID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load cart line")
	}

	if existing != nil {
		if err := s.repo.SetItemQuantity(ctx, userID, existing.ID, existing.Quantity+quantity); err != nil {
			return "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "merge cart line")
		}
		return ActionUpdated, nil
	}

	item := &models.CartItem{
		UserID:    userID,
		ProductID: productID,
		Quantity:  quantity,
	}
	if _, err := s.repo.CreateItem(ctx, item); err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create cart line")
	}
	return ActionAdded, nil
}

// SetQuantity replaces the line quantity; zero deletes the line. Lines that
// do not exist or belong to another user are silently unaffected.
func (s *service) SetQuantity(ctx context.Context, userID string, itemID int64, quantity int) (string, error) {
	if quantity < 0 {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "quantity must not be negative")
	}

	if quantity == 0 {
		if err := s.repo.DeleteItem(ctx, userID, itemID); err != nil {
			return "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete cart line")
		}
		return ActionDeleted, nil
	}

	if err := s.repo.SetItemQuantity(ctx, userID, itemID, quantity); err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update cart line")
	}
	return ActionUpdated, nil
}

// RemoveItem deletes the line. Removing an absent line succeeds.
func (s *service) RemoveItem(ctx context.Context, userID string, itemID int64) error {
	if err := s.repo.DeleteItem(ctx, userID, itemID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete cart line")
	}
	return nil
}

// Clear empties the user's cart. Clearing an empty cart succeeds.
func (s *service) Clear(ctx context.Context, userID string) error {
	if err := s.repo.DeleteAllItems(ctx, userID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "clear cart")
	}
	return nil
}

// GetContents returns the cart lines with live product snapshots and the
// computed totals.
func (s *service) GetContents(ctx context.Context, userID string) (*Contents, error) {
	items, err := s.repo.ListItems(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list cart")
	}
	return &Contents{
		Items:   items,
		Summary: summarize(items),
	}, nil
}

func summarize(items []ItemWithProduct) Summary {
	subtotal := decimal.Zero
	count := 0
	for _, item := range items {
		price := decimal.NewFromFloat(item.Product.Price)
		subtotal = subtotal.Add(price.Mul(decimal.NewFromInt(int64(item.Quantity))))
		count += item.Quantity
	}
	return Summary{
		Subtotal: subtotal.Round(2).InexactFloat64(),
		Count:    count,
	}
}
