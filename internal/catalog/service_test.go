package catalog

import (
	"context"
	"testing"
	"time"

	pkgerrors "github.com/shopwave/shopwave-backend/pkg/errors"
)

func newTestService(t *testing.T) Service {
	t.Helper()
	svc, err := NewService(NewRepository(openTestDB(t)))
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func TestListProductsComputesRatingAggregates(t *testing.T) {
	db := openTestDB(t)
	svc, err := NewService(NewRepository(db))
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	rated := mustCreateTestProduct(t, db, "Rated", "19.99", 5, nil)
	unrated := mustCreateTestProduct(t, db, "Unrated", "9.99", 5, nil)
	mustCreateTestReview(t, db, rated.ID, "user-a", 5)
	mustCreateTestReview(t, db, rated.ID, "user-b", 3)
	mustCreateTestReview(t, db, rated.ID, "user-c", 4)

	products, err := svc.ListProducts(context.Background(), ListProductsInput{})
	if err != nil {
		t.Fatalf("list products: %v", err)
	}
	if len(products) != 2 {
		t.Fatalf("expected 2 products, got %d", len(products))
	}

	byID := map[int64]ProductWithRating{}
	for _, p := range products {
		byID[p.ID] = p
	}

	if got := byID[rated.ID]; got.AverageRating != 4.0 || got.ReviewCount != 3 {
		t.Fatalf("expected avg=4.0 count=3, got avg=%f count=%d", got.AverageRating, got.ReviewCount)
	}
	if got := byID[unrated.ID]; got.AverageRating != 0 || got.ReviewCount != 0 {
		t.Fatalf("expected avg=0 count=0, got avg=%f count=%d", got.AverageRating, got.ReviewCount)
	}
}

func TestListProductsExcludesOutOfStock(t *testing.T) {
	db := openTestDB(t)
	svc, err := NewService(NewRepository(db))
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	mustCreateTestProduct(t, db, "In Stock", "10.00", 3, nil)
	hidden := mustCreateTestProduct(t, db, "Sold Out", "10.00", 0, nil)

	products, err := svc.ListProducts(context.Background(), ListProductsInput{})
	if err != nil {
		t.Fatalf("list products: %v", err)
	}
	if len(products) != 1 {
		t.Fatalf("expected 1 product, got %d", len(products))
	}
	if products[0].Name != "In Stock" {
		t.Fatalf("unexpected product %q", products[0].Name)
	}

	// detail reads never apply the stock filter
	got, err := svc.GetProduct(context.Background(), hidden.ID)
	if err != nil {
		t.Fatalf("get sold-out product: %v", err)
	}
	if got.Stock != 0 {
		t.Fatalf("expected stock=0, got %d", got.Stock)
	}
}

func TestListProductsSortsByPrice(t *testing.T) {
	db := openTestDB(t)
	svc, err := NewService(NewRepository(db))
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	mustCreateTestProduct(t, db, "Mid", "50.00", 1, nil)
	mustCreateTestProduct(t, db, "Cheap", "5.00", 1, nil)
	mustCreateTestProduct(t, db, "Pricey", "100.00", 1, nil)

	asc, err := svc.ListProducts(context.Background(), ListProductsInput{Sort: SortPriceAsc})
	if err != nil {
		t.Fatalf("list asc: %v", err)
	}
	if names := productNames(asc); names[0] != "Cheap" || names[2] != "Pricey" {
		t.Fatalf("unexpected asc order %v", names)
	}

	desc, err := svc.ListProducts(context.Background(), ListProductsInput{Sort: SortPriceDesc})
	if err != nil {
		t.Fatalf("list desc: %v", err)
	}
	if names := productNames(desc); names[0] != "Pricey" || names[2] != "Cheap" {
		t.Fatalf("unexpected desc order %v", names)
	}
}

func TestListProductsSortsByRatingWithReviewCountTiebreak(t *testing.T) {
	db := openTestDB(t)
	svc, err := NewService(NewRepository(db))
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	top := mustCreateTestProduct(t, db, "Top", "10.00", 1, nil)
	popular := mustCreateTestProduct(t, db, "Popular", "10.00", 1, nil)
	niche := mustCreateTestProduct(t, db, "Niche", "10.00", 1, nil)

	mustCreateTestReview(t, db, top.ID, "u1", 5)
	mustCreateTestReview(t, db, popular.ID, "u1", 4)
	mustCreateTestReview(t, db, popular.ID, "u2", 4)
	mustCreateTestReview(t, db, niche.ID, "u1", 4)

	products, err := svc.ListProducts(context.Background(), ListProductsInput{Sort: SortRating})
	if err != nil {
		t.Fatalf("list by rating: %v", err)
	}
	names := productNames(products)
	want := []string{"Top", "Popular", "Niche"}
	for i, name := range want {
		if names[i] != name {
			t.Fatalf("expected order %v, got %v", want, names)
		}
	}
}

func TestListProductsUnknownSortFallsBackToNewest(t *testing.T) {
	db := openTestDB(t)
	svc, err := NewService(NewRepository(db))
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	older := mustCreateTestProduct(t, db, "Older", "10.00", 1, nil)
	mustCreateTestProduct(t, db, "Newer", "10.00", 1, nil)
	if err := db.Model(older).Update("created_at", time.Now().Add(-time.Hour)).Error; err != nil {
		t.Fatalf("backdate product: %v", err)
	}

	products, err := svc.ListProducts(context.Background(), ListProductsInput{Sort: "best_value"})
	if err != nil {
		t.Fatalf("list products: %v", err)
	}
	if names := productNames(products); names[0] != "Newer" {
		t.Fatalf("expected newest first, got %v", names)
	}
}

func TestListProductsFilters(t *testing.T) {
	db := openTestDB(t)
	svc, err := NewService(NewRepository(db))
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	mustCreateTestProduct(t, db, "Walnut Desk", "120.00", 2, strPtr("furniture"))
	mustCreateTestProduct(t, db, "Desk Lamp", "30.00", 2, strPtr("lighting"))
	mustCreateTestProduct(t, db, "Mug", "8.00", 2, strPtr("kitchen"))

	byCategory, err := svc.ListProducts(context.Background(), ListProductsInput{Category: "lighting"})
	if err != nil {
		t.Fatalf("list by category: %v", err)
	}
	if len(byCategory) != 1 || byCategory[0].Name != "Desk Lamp" {
		t.Fatalf("unexpected category result %v", productNames(byCategory))
	}

	bySearch, err := svc.ListProducts(context.Background(), ListProductsInput{Search: "DESK"})
	if err != nil {
		t.Fatalf("list by search: %v", err)
	}
	if len(bySearch) != 2 {
		t.Fatalf("expected 2 search hits, got %v", productNames(bySearch))
	}
}

func TestGetProductNotFound(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.GetProduct(context.Background(), 98765)
	appErr := pkgerrors.As(err)
	if appErr == nil || appErr.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}

func TestListCategories(t *testing.T) {
	db := openTestDB(t)
	svc, err := NewService(NewRepository(db))
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	mustCreateTestProduct(t, db, "A", "1.00", 1, strPtr("lighting"))
	mustCreateTestProduct(t, db, "B", "1.00", 1, strPtr("furniture"))
	mustCreateTestProduct(t, db, "C", "1.00", 1, strPtr("lighting"))
	mustCreateTestProduct(t, db, "D", "1.00", 1, nil)

	categories, err := svc.ListCategories(context.Background())
	if err != nil {
		t.Fatalf("list categories: %v", err)
	}
	want := []string{"furniture", "lighting"}
	if len(categories) != len(want) {
		t.Fatalf("expected %v, got %v", want, categories)
	}
	for i := range want {
		if categories[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, categories)
		}
	}
}

func productNames(products []ProductWithRating) []string {
	names := make([]string, 0, len(products))
	for _, p := range products {
		names = append(names, p.Name)
	}
	return names
}
