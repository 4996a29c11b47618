package models

import "time"

// CartItem is one line in a user's cart. At most one row exists per
// (user, product) pair; the invariant is kept by merge-on-insert rather than
// a uniqueness constraint.
type CartItem struct {
	ID        int64     `gorm:"column:id;primaryKey;autoIncrement"`
	UserID    string    `gorm:"column:user_id;not null;index:cart_items_user_id_idx"`
	ProductID int64     `gorm:"column:product_id;not null"`
	Quantity  int       `gorm:"column:quantity;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
