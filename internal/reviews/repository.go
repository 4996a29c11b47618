package reviews

import (
	"context"

	"github.com/shopwave/shopwave-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository owns review persistence.
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

// FindByUserAndProduct returns the user's review for the product, if any.
func (r *Repository) FindByUserAndProduct(ctx context.Context, userID string, productID int64) (*models.Review, error) {
	var review models.Review
	err := r.db.WithContext(ctx).
		First(&review, "user_id = ? AND product_id = ?", userID, productID).
		Error
	if err != nil {
		return nil, err
	}
	return &review, nil
}

// Create inserts a new review row.
func (r *Repository) Create(ctx context.Context, review *models.Review) (*models.Review, error) {
	if err := r.db.WithContext(ctx).Create(review).Error; err != nil {
		return nil, err
	}
	return review, nil
}

// UpdateContent overwrites the rating, title and comment on an existing row.
func (r *Repository) UpdateContent(ctx context.Context, id int64, rating int, title, comment *string) error {
	return r.db.WithContext(ctx).
		Model(&models.Review{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"rating":  rating,
			"title":   title,
			"comment": comment,
		}).
		Error
}

// ListByProduct returns the product's reviews, newest first.
func (r *Repository) ListByProduct(ctx context.Context, productID int64) ([]models.Review, error) {
	var rows []models.Review
	err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("created_at DESC").
		Find(&rows).
		Error
	return rows, err
}
