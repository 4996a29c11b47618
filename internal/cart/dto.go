package cart

import "time"

// Mutation outcomes reported to the client.
const (
	ActionAdded   = "added"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// ProductSnapshot is the live product row attached to a cart line.
type ProductSnapshot struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	Price       float64   `json:"price"`
	ImageURL    *string   `json:"image_url"`
	Category    *string   `json:"category"`
	Stock       int       `json:"stock"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ItemWithProduct is one cart line joined with its product.
type ItemWithProduct struct {
	ID        int64           `json:"id"`
	UserID    string          `json:"user_id"`
	ProductID int64           `json:"product_id"`
	Quantity  int             `json:"quantity"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
	Product   ProductSnapshot `json:"product"`
}

// Summary carries the derived totals for a cart. Totals are always computed
// from the joined rows, never persisted.
type Summary struct {
	Subtotal float64 `json:"subtotal"`
	Count    int     `json:"count"`
}

// Contents is the full cart read model.
type Contents struct {
	Items   []ItemWithProduct `json:"items"`
	Summary Summary           `json:"summary"`
}
