package repository

import (
	"context"

	"handicrafts/internal/domain/model"
	repo "handicrafts/internal/repository"

	"gorm.io/gorm"
)

type OrderItemGormRepository struct {
	db *gorm.DB
}

func NewOrderItemGormRepository(db *gorm.DB) *OrderItemGormRepository {
	return &OrderItemGormRepository{db: db}
}

func (r *OrderItemGormRepository) Create(ctx context.Context, item *model.OrderItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

// 複数注文の明細をまとめて取得（商品名・画像付き）
func (r *OrderItemGormRepository) ListByOrderIDs(ctx context.Context, orderIDs []int64) ([]repo.OrderItemRow, error) {
	rows := []repo.OrderItemRow{}
	if len(orderIDs) == 0 {
		return rows, nil
	}

	err := r.db.WithContext(ctx).
		Table("order_items AS oi").
		Select("oi.*, COALESCE(p.name, '') AS name, COALESCE(p.image, '') AS image, COALESCE(p.description, '') AS description").
		Joins("LEFT JOIN products p ON p.id = oi.product_id").
		Where("oi.order_id IN ?", orderIDs).
		Order("oi.order_id desc").Order("oi.id asc").
		Scan(&rows).Error
	if err != nil {
		return []repo.OrderItemRow{}, err
	}
	return rows, nil
}

type OrderPaymentGormRepository struct {
	db *gorm.DB
}

func NewOrderPaymentGormRepository(db *gorm.DB) *OrderPaymentGormRepository {
	return &OrderPaymentGormRepository{db: db}
}

func (r *OrderPaymentGormRepository) Create(ctx context.Context, p *model.OrderPayment) error {
	return r.db.WithContext(ctx).Create(p).Error
}
