package repository

import (
	"context"

	repo "handicrafts/internal/repository"

	"gorm.io/gorm"
)

type txReposGorm struct {
	db            *gorm.DB
	orders        repo.OrderRepository
	orderItems    repo.OrderItemRepository
	orderPayments repo.OrderPaymentRepository
	carts         repo.CartRepository
	inventory     repo.InventoryRepository
	products      repo.ProductRepository
}

// repoはtxを持ったDBで作り直す
func newTxReposGorm(tx *gorm.DB) *txReposGorm {
	return &txReposGorm{
		db:            tx,
		orders:        NewOrderGormRepository(tx),
		orderItems:    NewOrderItemGormRepository(tx),
		orderPayments: NewOrderPaymentGormRepository(tx),
		carts:         NewCartGormRepository(tx),
		inventory:     NewInventoryGormRepository(tx),
		products:      NewProductGormRepository(tx),
	}
}

func (r *txReposGorm) Orders() repo.OrderRepository               { return r.orders }
func (r *txReposGorm) OrderItems() repo.OrderItemRepository       { return r.orderItems }
func (r *txReposGorm) OrderPayments() repo.OrderPaymentRepository { return r.orderPayments }
func (r *txReposGorm) Carts() repo.CartRepository                 { return r.carts }
func (r *txReposGorm) Inventory() repo.InventoryRepository        { return r.inventory }
func (r *txReposGorm) Products() repo.ProductRepository           { return r.products }

// gormのネストしたTransactionはSAVEPOINTになる
func (r *txReposGorm) WithinSavepoint(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return r.db.WithContext(ctx).Transaction(func(sp *gorm.DB) error {
		return fn(newTxReposGorm(sp))
	})
}

type TxManagerGorm struct {
	db *gorm.DB
}

func NewTxManagerGorm(db *gorm.DB) *TxManagerGorm {
	return &TxManagerGorm{db: db}
}

func (tm *TxManagerGorm) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return tm.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(newTxReposGorm(tx))
	})
}
