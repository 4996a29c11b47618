package reviews

import "time"

// Mutation outcomes reported to the client.
const (
	ActionCreated = "created"
	ActionUpdated = "updated"
)

// SubmitInput holds the validated review payload.
type SubmitInput struct {
	ProductID int64
	Rating    int
	Title     *string
	Comment   *string
}

// ReviewDTO is the public read model for a review.
type ReviewDTO struct {
	ID        int64     `json:"id"`
	ProductID int64     `json:"product_id"`
	UserID    string    `json:"user_id"`
	Rating    int       `json:"rating"`
	Title     *string   `json:"title"`
	Comment   *string   `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
