package models

import "time"

// WishlistItem links a user to a saved product. The unique index is
// load-bearing: duplicate adds must fail at the store, not via a pre-check.
type WishlistItem struct {
	ID        int64     `gorm:"column:id;primaryKey;autoIncrement"`
	UserID    string    `gorm:"column:user_id;not null;uniqueIndex:wishlists_user_product_key"`
	ProductID int64     `gorm:"column:product_id;not null;index:wishlists_product_id_idx;uniqueIndex:wishlists_user_product_key"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

// TableName maps the struct onto the wishlists table.
func (WishlistItem) TableName() string {
	return "wishlists"
}
