package usecase

import (
	"context"
	"errors"
	"net/http"

	"handicrafts/internal/domain/model"
	repo "handicrafts/internal/repository"

	"github.com/shopspring/decimal"
)

// CartUsecase は /cart の業務ロジックです。
// 1ユーザー1商品につき1行（数量は在庫で頭打ち）。
type CartUsecase struct {
	carts    repo.CartRepository
	products repo.ProductRepository
	log      Logger
}

// DI
func NewCartUsecase(carts repo.CartRepository, products repo.ProductRepository, log Logger) *CartUsecase {
	return &CartUsecase{carts: carts, products: products, log: log}
}

type CartItemOutput struct {
	repo.CartLine
	Total decimal.Decimal `json:"total"`
}

type CartOutput struct {
	Items   []CartItemOutput `json:"items"`
	Summary model.Summary    `json:"summary"`
}

type AddCartInput struct {
	ProductID int64
	Quantity  int64
}

// 追加結果。Createdならhandlerは201を返す
type AddCartOutput struct {
	Created  bool
	Quantity int64
}

// カートの中身と小計・送料・税・合計
func (u *CartUsecase) Get(ctx context.Context, userID int64) (CartOutput, error) {
	lines, err := u.carts.ListLines(ctx, userID)
	if err != nil {
		return CartOutput{}, internalError(u.log, "list cart", err)
	}

	items := make([]CartItemOutput, 0, len(lines))
	subtotal := decimal.Zero
	for _, l := range lines {
		total := model.LineTotal(l.Price, l.Quantity)
		subtotal = subtotal.Add(total)
		items = append(items, CartItemOutput{CartLine: l, Total: total})
	}

	return CartOutput{
		Items:   items,
		Summary: model.Summarize(subtotal, len(items)),
	}, nil
}

// 同じ商品が既にあれば数量を足して在庫で頭打ち、無ければ追加
func (u *CartUsecase) Add(ctx context.Context, userID int64, in AddCartInput) (AddCartOutput, error) {
	if in.ProductID <= 0 {
		return AddCartOutput{}, NewHTTPError(http.StatusBadRequest, "Product ID is required")
	}
	if in.Quantity < 1 {
		in.Quantity = 1
	}

	p, err := u.products.FindByID(ctx, in.ProductID)
	if errors.Is(err, repo.ErrNotFound) || (err == nil && !p.IsActive()) {
		return AddCartOutput{}, NewHTTPError(http.StatusNotFound, "Product not found")
	}
	if err != nil {
		return AddCartOutput{}, internalError(u.log, "find product", err)
	}
	if p.StockQuantity < in.Quantity {
		return AddCartOutput{}, NewHTTPError(http.StatusBadRequest, "Not enough stock available")
	}

	existing, err := u.carts.FindByUserAndProduct(ctx, userID, in.ProductID)
	switch {
	case err == nil:
		return u.increase(ctx, existing, in.Quantity, p.StockQuantity)
	case !errors.Is(err, repo.ErrNotFound):
		return AddCartOutput{}, internalError(u.log, "find cart item", err)
	}

	item := &model.CartItem{UserID: userID, ProductID: in.ProductID, Quantity: in.Quantity}
	err = u.carts.Create(ctx, item)
	if errors.Is(err, repo.ErrDuplicate) {
		// 同時追加で先に行ができた
		existing, err = u.carts.FindByUserAndProduct(ctx, userID, in.ProductID)
		if err != nil {
			return AddCartOutput{}, internalError(u.log, "find cart item", err)
		}
		return u.increase(ctx, existing, in.Quantity, p.StockQuantity)
	}
	if err != nil {
		return AddCartOutput{}, internalError(u.log, "create cart item", err)
	}
	return AddCartOutput{Created: true, Quantity: in.Quantity}, nil
}

func (u *CartUsecase) increase(ctx context.Context, item model.CartItem, qty int64, stock int64) (AddCartOutput, error) {
	newQty := min(item.Quantity+qty, stock)
	if err := u.carts.UpdateQuantity(ctx, item.ID, newQty); err != nil {
		return AddCartOutput{}, internalError(u.log, "update cart item", err)
	}
	return AddCartOutput{Created: false, Quantity: newQty}, nil
}

// 数量変更（本人の明細のみ、在庫で頭打ち）
func (u *CartUsecase) UpdateQuantity(ctx context.Context, userID int64, cartItemID int64, qty int64) (int64, error) {
	if cartItemID <= 0 {
		return 0, NewHTTPError(http.StatusBadRequest, "Cart item ID is required")
	}
	if qty < 1 {
		qty = 1
	}

	item, err := u.carts.FindOwned(ctx, cartItemID, userID)
	if errors.Is(err, repo.ErrNotFound) {
		return 0, NewHTTPError(http.StatusNotFound, "Cart item not found")
	}
	if err != nil {
		return 0, internalError(u.log, "find cart item", err)
	}

	p, err := u.products.FindByID(ctx, item.ProductID)
	if errors.Is(err, repo.ErrNotFound) {
		return 0, NewHTTPError(http.StatusNotFound, "Product not found")
	}
	if err != nil {
		return 0, internalError(u.log, "find product", err)
	}
	if p.StockQuantity < 1 {
		return 0, NewHTTPError(http.StatusBadRequest, "Not enough stock available")
	}

	qty = min(qty, p.StockQuantity)
	if err := u.carts.UpdateQuantity(ctx, item.ID, qty); err != nil {
		return 0, internalError(u.log, "update cart item", err)
	}
	return qty, nil
}

func (u *CartUsecase) Remove(ctx context.Context, userID int64, cartItemID int64) error {
	if cartItemID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "Cart item ID is required")
	}

	err := u.carts.DeleteOwned(ctx, cartItemID, userID)
	if errors.Is(err, repo.ErrNotFound) {
		return NewHTTPError(http.StatusNotFound, "Cart item not found")
	}
	if err != nil {
		return internalError(u.log, "delete cart item", err)
	}
	return nil
}

// ヘッダーのバッジ用
func (u *CartUsecase) Count(ctx context.Context, userID int64) (int64, error) {
	n, err := u.carts.SumQuantity(ctx, userID)
	if err != nil {
		return 0, internalError(u.log, "count cart", err)
	}
	return n, nil
}
