package model

import "time"

type Favorite struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    int64     `gorm:"not null;uniqueIndex:ux_favorite_user_product" json:"user_id"`
	ProductID int64     `gorm:"not null;uniqueIndex:ux_favorite_user_product;index" json:"product_id"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime;index" json:"created_at"`
}
