package catalog

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const productRatingSelect = `p.id, p.name, p.description, p.price, p.image_url, p.category, p.stock, p.created_at, p.updated_at,
COALESCE(AVG(r.rating), 0) AS average_rating,
COUNT(DISTINCT r.id) AS review_count`

// Repository reads products joined with their review aggregates.
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

func (r *Repository) ratingQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("products p").
		Select(productRatingSelect).
		Joins("LEFT JOIN reviews r ON r.product_id = p.id").
		Group("p.id")
}

// ListProducts returns in-stock products with derived ratings. Sort must be
// one of the Sort constants.
func (r *Repository) ListProducts(ctx context.Context, input ListProductsInput) ([]ProductWithRating, error) {
	qb := r.ratingQuery(ctx).Where("p.stock > 0")

	if category := strings.TrimSpace(input.Category); category != "" {
		qb = qb.Where("p.category = ?", category)
	}
	if search := strings.TrimSpace(input.Search); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		qb = qb.Where("(LOWER(p.name) LIKE ? OR LOWER(p.description) LIKE ?)", pattern, pattern)
	}

	switch input.Sort {
	case SortPriceAsc:
		qb = qb.Order("p.price ASC")
	case SortPriceDesc:
		qb = qb.Order("p.price DESC")
	case SortRating:
		qb = qb.Order("average_rating DESC").Order("review_count DESC")
	default:
		qb = qb.Order("p.created_at DESC")
	}

	var records []productRatingRecord
	if err := qb.Scan(&records).Error; err != nil {
		return nil, err
	}

	products := make([]ProductWithRating, 0, len(records))
	for _, record := range records {
		products = append(products, record.toProduct())
	}
	return products, nil
}

// GetProduct returns a single product with derived rating. Out-of-stock
// products remain readable here. Returns gorm.ErrRecordNotFound when absent.
func (r *Repository) GetProduct(ctx context.Context, id int64) (*ProductWithRating, error) {
	var record productRatingRecord
	if err := r.ratingQuery(ctx).Where("p.id = ?", id).Take(&record).Error; err != nil {
		return nil, err
	}
	product := record.toProduct()
	return &product, nil
}

// ListCategories returns the distinct non-null categories, sorted.
func (r *Repository) ListCategories(ctx context.Context) ([]string, error) {
	var categories []string
	err := r.db.WithContext(ctx).
		Table("products").
		Distinct("category").
		Where("category IS NOT NULL").
		Order("category ASC").
		Pluck("category", &categories).
		Error
	if err != nil {
		return nil, err
	}
	return categories, nil
}

type productRatingRecord struct {
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

func (r productRatingRecord) toProduct() ProductWithRating {
	return ProductWithRating{
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
