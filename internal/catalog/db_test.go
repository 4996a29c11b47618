package catalog

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/shopwave/shopwave-backend/pkg/db/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Discard,
	})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}

	// :memory: gives each pooled connection its own database
	sqlDB, err := conn.DB()
	if err != nil {
		t.Fatalf("unwrap sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := conn.AutoMigrate(
		&models.Product{},
		&models.CartItem{},
		&models.Review{},
		&models.WishlistItem{},
	); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return conn
}

func mustCreateTestProduct(t *testing.T, tx *gorm.DB, name string, price string, stock int, category *string) *models.Product {
	t.Helper()
	product := &models.Product{
		Name:     name,
		Price:    decimal.RequireFromString(price),
		Stock:    stock,
		Category: category,
	}
	if err := tx.Create(product).Error; err != nil {
		t.Fatalf("create product: %v", err)
	}
	return product
}

func mustCreateTestReview(t *testing.T, tx *gorm.DB, productID int64, userID string, rating int) *models.Review {
	t.Helper()
	review := &models.Review{
		ProductID: productID,
		UserID:    userID,
		Rating:    rating,
	}
	if err := tx.Create(review).Error; err != nil {
		t.Fatalf("create review: %v", err)
	}
	return review
}

func strPtr(v string) *string {
	return &v
}
