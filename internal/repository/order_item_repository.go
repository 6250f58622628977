package repository

import (
	"context"

	"handicrafts/internal/domain/model"
)

// 商品情報付きの明細
type OrderItemRow struct {
	model.OrderItem
	Name        string `json:"name"`
	Image       string `json:"image"`
	Description string `json:"description"`
}

type OrderItemRepository interface {
	Create(ctx context.Context, item *model.OrderItem) error
	ListByOrderIDs(ctx context.Context, orderIDs []int64) ([]OrderItemRow, error)
}

type OrderPaymentRepository interface {
	Create(ctx context.Context, p *model.OrderPayment) error
}
