package repository

import (
	"context"

	"handicrafts/internal/domain/model"
)

type OrderRepository interface {
	ExistsByNumber(ctx context.Context, orderNumber string) (bool, error)
	// order_number重複はErrDuplicate
	Create(ctx context.Context, order *model.Order) error
	// 新しい順
	ListByUserID(ctx context.Context, userID int64, limit int) ([]model.Order, error)
	// 他人の注文はErrNotFound
	FindByIDForUser(ctx context.Context, orderID int64, userID int64) (model.Order, error)
}
