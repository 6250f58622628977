package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending OrderStatus = "pending"
)

type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
)

const (
	PaymentMethodCash   = "cash"
	PaymentMethodCard   = "card"
	PaymentMethodMobile = "mobile"

	ShippingMethodStandard = "standard"
)

type Order struct {
	ID              int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID          int64           `gorm:"not null;index" json:"user_id"`
	OrderNumber     string          `gorm:"type:varchar(20);not null;uniqueIndex" json:"order_number"`
	Subtotal        decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"subtotal"`
	ShippingCost    decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"shipping_cost"`
	TaxAmount       decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"tax_amount"`
	TotalAmount     decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"total_amount"`
	Status          OrderStatus     `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	PaymentMethod   string          `gorm:"type:varchar(20);not null" json:"payment_method"`
	PaymentStatus   PaymentStatus   `gorm:"type:varchar(20);not null;default:'pending'" json:"payment_status"`
	ShippingAddress string          `gorm:"type:text;not null" json:"shipping_address"`
	BillingAddress  string          `gorm:"type:text" json:"billing_address"`
	CustomerEmail   string          `gorm:"type:varchar(255);not null" json:"customer_email"`
	CustomerPhone   string          `gorm:"type:varchar(30)" json:"customer_phone"`
	ShippingMethod  string          `gorm:"type:varchar(30);not null" json:"shipping_method"`
	OrderNotes      string          `gorm:"type:text" json:"order_notes"`
	CreatedAt       time.Time       `gorm:"not null;autoCreateTime;index" json:"created_at"`
	UpdatedAt       time.Time       `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
