package models

import "time"

// Review holds one rating per (user, product) pair; submitting again
// overwrites in place.
type Review struct {
	ID        int64     `gorm:"column:id;primaryKey;autoIncrement"`
	ProductID int64     `gorm:"column:product_id;not null;index:reviews_product_id_idx"`
	UserID    string    `gorm:"column:user_id;not null"`
	Rating    int       `gorm:"column:rating;not null"`
	Title     *string   `gorm:"column:title"`
	Comment   *string   `gorm:"column:comment"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
