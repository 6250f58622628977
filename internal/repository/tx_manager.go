package repository

import "context"

// トランザクション内で使う約束
type TxRepos interface {
	Orders() OrderRepository
	OrderItems() OrderItemRepository
	OrderPayments() OrderPaymentRepository
	Carts() CartRepository
	Inventory() InventoryRepository
	Products() ProductRepository

	// SAVEPOINTを張って実行。失敗しても外側のtxは生きたまま
	WithinSavepoint(ctx context.Context, fn func(r TxRepos) error) error
}

// UsecaseからTxの開始/commit/rollbackを隠す。
type TransactionManager interface {
	WithinTx(ctx context.Context, fn func(r TxRepos) error) error
}
