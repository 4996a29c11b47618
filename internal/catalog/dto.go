package catalog

import "time"

// Sort orders accepted by the product listing.
const (
	SortNewest    = "newest"
	SortPriceAsc  = "price_asc"
	SortPriceDesc = "price_desc"
	SortRating    = "rating"
)

// ProductWithRating is the read model for catalog endpoints: the product row
// plus its review aggregates.
type ProductWithRating struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	Description   *string   `json:"description"`
	Price         float64   `json:"price"`
	ImageURL      *string   `json:"image_url"`
	Category      *string   `json:"category"`
	Stock         int       `json:"stock"`
	AverageRating float64   `json:"average_rating"`
	ReviewCount   int       `json:"review_count"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ListProductsInput carries the optional listing filters.
type ListProductsInput struct {
	Category string
	Search   string
	Sort     string
}
