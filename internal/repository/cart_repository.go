package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"handicrafts/internal/domain/model"
)

// カート表示用（商品情報をjoin）
type CartLine struct {
	ID            int64           `json:"id"`
	ProductID     int64           `json:"product_id"`
	Name          string          `json:"name"`
	Price         decimal.Decimal `json:"price"`
	Image         string          `json:"image"`
	Quantity      int64           `json:"quantity"`
	StockQuantity int64           `json:"stock_quantity"`
}

type CartRepository interface {
	ListLines(ctx context.Context, userID int64) ([]CartLine, error)
	FindByUserAndProduct(ctx context.Context, userID int64, productID int64) (model.CartItem, error)
	// 他人の明細はErrNotFound
	FindOwned(ctx context.Context, cartItemID int64, userID int64) (model.CartItem, error)
	Create(ctx context.Context, item *model.CartItem) error
	UpdateQuantity(ctx context.Context, cartItemID int64, qty int64) error
	DeleteOwned(ctx context.Context, cartItemID int64, userID int64) error
	// ユーザーのカートを全削除
	ClearByUser(ctx context.Context, userID int64) (int64, error)
	SumQuantity(ctx context.Context, userID int64) (int64, error)
}
