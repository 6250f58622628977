package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// 支払い記録。失敗しても注文自体は成立させる。
type OrderPayment struct {
	ID             int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID        int64           `gorm:"not null;index" json:"order_id"`
	PaymentMethod  string          `gorm:"type:varchar(20);not null" json:"payment_method"`
	PaymentDetails string          `gorm:"type:text" json:"payment_details"` // JSON
	TransactionID  string          `gorm:"type:varchar(100)" json:"transaction_id"`
	CardType       string          `gorm:"type:varchar(30)" json:"card_type"`
	CardLastFour   string          `gorm:"type:varchar(4)" json:"card_last_four"`
	Provider       string          `gorm:"type:varchar(50)" json:"provider"`
	Status         PaymentStatus   `gorm:"type:varchar(20);not null" json:"status"`
	Amount         decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"amount"`
	PaymentDate    time.Time       `gorm:"not null" json:"payment_date"`
	Notes          string          `gorm:"type:text" json:"notes"`
	CreatedAt      time.Time       `gorm:"not null;autoCreateTime" json:"created_at"`
}
