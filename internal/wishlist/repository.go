package wishlist

import (
	"context"
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
	"github.com/shopwave/shopwave-backend/internal/catalog"
	"github.com/shopwave/shopwave-backend/pkg/db/models"
	"gorm.io/gorm"
)

const savedProductSelect = `p.id, p.name, p.description, p.price, p.image_url, p.category, p.stock, p.created_at, p.updated_at,
COALESCE(AVG(r.rating), 0) AS average_rating,
COUNT(DISTINCT r.id) AS review_count`

// Repository owns wishlist persistence.
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

// CreateEntry inserts the (user, product) pair. The insert is bare: a
// duplicate surfaces the unique-constraint violation to the caller instead
// of being pre-checked, so the operation stays atomic under races.
func (r *Repository) CreateEntry(ctx context.Context, userID string, productID int64) error {
	entry := &models.WishlistItem{
		UserID:    userID,
		ProductID: productID,
	}
	return r.db.WithContext(ctx).Create(entry).Error
}

// DeleteEntry removes the pair. Removing an absent pair is a no-op.
func (r *Repository) DeleteEntry(ctx context.Context, userID string, productID int64) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&models.WishlistItem{}).
		Error
}

// EntryExists reports whether the pair is saved.
func (r *Repository) EntryExists(ctx context.Context, userID string, productID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.WishlistItem{}).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Count(&count).
		Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListSavedProducts returns the user's saved products with derived ratings,
// most recently saved first.
func (r *Repository) ListSavedProducts(ctx context.Context, userID string) ([]catalog.ProductWithRating, error) {
	var records []savedProductRecord
	err := r.db.WithContext(ctx).
		Table("wishlists w").
		Select(savedProductSelect).
		Joins("JOIN products p ON p.id = w.product_id").
		Joins("LEFT JOIN reviews r ON r.product_id = p.id").
		Where("w.user_id = ?", userID).
		Group("p.id, w.created_at").
		Order("w.created_at DESC").
		Scan(&records).
		Error
	if err != nil {
		return nil, err
	}

	products := make([]catalog.ProductWithRating, 0, len(records))
	for _, record := range records {
		products = append(products, record.toProduct())
	}
	return products, nil
}

type savedProductRecord struct {
	ID            int64
	Name          string
	Description   sql.NullString
	Price         decimal.Decimal
	ImageURL      sql.NullString
	Category      sql.NullString
	Stock         int
	AverageRating float64
	ReviewCount   int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (r savedProductRecord) toProduct() catalog.ProductWithRating {
	return catalog.ProductWithRating{
		ID:            r.ID,
		Name:          r.Name,
		Description:   nullStringPtr(r.Description),
		Price:         r.Price.InexactFloat64(),
		ImageURL:      nullStringPtr(r.ImageURL),
		Category:      nullStringPtr(r.Category),
		Stock:         r.Stock,
		AverageRating: r.AverageRating,
		ReviewCount:   r.ReviewCount,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}

func nullStringPtr(value sql.NullString) *string {
	if !value.Valid {
		return nil
	}
	v := value.String
	return &v
}
