package cart

import (
	"context"
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
	"github.com/shopwave/shopwave-backend/pkg/db/models"
	"gorm.io/gorm"
)

const itemWithProductSelect = `c.id, c.user_id, c.product_id, c.quantity, c.created_at, c.updated_at,
p.name AS product_name,
p.description AS product_description,
p.price AS product_price,
p.image_url AS product_image_url,
p.category AS product_category,
p.stock AS product_stock,
p.created_at AS product_created_at,
p.updated_at AS product_updated_at`

// Repository owns cart line persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// FindProduct loads the product row for a cart mutation.
func (r *Repository) FindProduct(ctx context.Context, productID int64) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", productID).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// FindItemByProduct returns the user's existing line for the product, if any.
func (r *Repository) FindItemByProduct(ctx context.Context, userID string, productID int64) (*models.CartItem, error) {
	var item models.CartItem
	err := r.db.WithContext(ctx).
		First(&item, "user_id = ? AND product_id = ?", userID, productID).
		Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// CreateItem inserts a new cart line.
func (r *Repository) CreateItem(ctx context.Context, item *models.CartItem) (*models.CartItem, error) {
	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

// SetItemQuantity replaces the quantity on the user's line. Lines owned by
// other users are untouched.
func (r *Repository) SetItemQuantity(ctx context.Context, userID string, itemID int64, quantity int) error {
	return r.db.WithContext(ctx).
		Model(&models.CartItem{}).
		Where("id = ? AND user_id = ?", itemID, userID).
		Update("quantity", quantity).
		Error
}

// DeleteItem removes the user's line. Removing an absent line is a no-op.
func (r *Repository) DeleteItem(ctx context.Context, userID string, itemID int64) error {
	return r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", itemID, userID).
		Delete(&models.CartItem{}).
		Error
}

// DeleteAllItems clears the user's cart.
func (r *Repository) DeleteAllItems(ctx context.Context, userID string) error {
	return r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&models.CartItem{}).
		Error
}

// ListItems returns the user's cart lines joined with the live product rows,
// newest line first.
func (r *Repository) ListItems(ctx context.Context, userID string) ([]ItemWithProduct, error) {
	var records []itemWithProductRecord
	err := r.db.WithContext(ctx).
		Table("cart_items c").
		Select(itemWithProductSelect).
		Joins("JOIN products p ON p.id = c.product_id").
		Where("c.user_id = ?", userID).
		Order("c.created_at DESC").
		Scan(&records).
		Error
	if err != nil {
		return nil, err
	}

	items := make([]ItemWithProduct, 0, len(records))
	for _, record := range records {
		items = append(items, record.toItem())
	}
	return items, nil
}

type itemWithProductRecord struct {
	ID                 int64
	UserID             string
	ProductID          int64
	Quantity           int
	CreatedAt          time.Time
	UpdatedAt          time.Time
	ProductName        string
	ProductDescription sql.NullString
	ProductPrice       decimal.Decimal
	ProductImageURL    sql.NullString
	ProductCategory    sql.NullString
	ProductStock       int
	ProductCreatedAt   time.Time
	ProductUpdatedAt   time.Time
}

func (r itemWithProductRecord) toItem() ItemWithProduct {
	return ItemWithProduct{
		ID:        r.ID,
		UserID:    r.UserID,
		ProductID: r.ProductID,
		Quantity:  r.Quantity,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
		Product: ProductSnapshot{
			ID:          r.ProductID,
			Name:        r.ProductName,
			Description: nullStringPtr(r.ProductDescription),
			Price:       r.ProductPrice.InexactFloat64(),
			ImageURL:    nullStringPtr(r.ProductImageURL),
			Category:    nullStringPtr(r.ProductCategory),
			Stock:       r.ProductStock,
			CreatedAt:   r.ProductCreatedAt,
			UpdatedAt:   r.ProductUpdatedAt,
		},
	}
}

func nullStringPtr(value sql.NullString) *string {
	if !value.Valid {
		return nil
	}
	v := value.String
	return &v
}
