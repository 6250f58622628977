package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type ProductStatus string

const (
	ProductStatusActive   ProductStatus = "active"
	ProductStatusInactive ProductStatus = "inactive"
)

type Product struct {
	ID                 int64               `gorm:"primaryKey;autoIncrement" json:"id"`
	Name               string              `gorm:"type:varchar(255);not null" json:"name"`
	Description        string              `gorm:"type:text" json:"description"`
	ShortDescription   string              `gorm:"type:varchar(500)" json:"short_description"`
	Price              decimal.Decimal     `gorm:"type:decimal(10,2);not null" json:"price"`
	OriginalPrice      decimal.NullDecimal `gorm:"type:decimal(10,2)" json:"original_price"`
	DiscountPercentage int                 `gorm:"not null;default:0" json:"discount_percentage"`
	Image              string              `gorm:"type:varchar(255)" json:"image"`
	StockQuantity      int64               `gorm:"not null;default:0" json:"stock_quantity"`
	CategoryID         int64               `gorm:"not null;index" json:"category_id"`
	ArtisanID          int64               `gorm:"not null;index" json:"artisan_id"`
	Status             ProductStatus       `gorm:"type:varchar(20);not null;default:'active';index" json:"status"`
	CreatedAt          time.Time           `gorm:"not null;autoCreateTime;index" json:"created_at"`
	UpdatedAt          time.Time           `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

func (p Product) IsActive() bool {
	return p.Status == ProductStatusActive
}
