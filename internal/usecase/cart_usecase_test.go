package usecase_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"handicrafts/internal/domain/model"
	repo "handicrafts/internal/repository"
	"handicrafts/internal/usecase"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newCartUsecase() (*usecase.CartUsecase, *CartRepoMock, *ProductRepoMock) {
	carts := new(CartRepoMock)
	products := new(ProductRepoMock)
	return usecase.NewCartUsecase(carts, products, &testLogger{}), carts, products
}

func requireStatus(t *testing.T, err error, status int) {
	t.Helper()
	he, ok := usecase.AsHTTPError(err)
	require.True(t, ok, "expected HTTPError, got %v", err)
	assert.Equal(t, status, he.Status)
}

func TestCartGet_EmptyCartHasZeroSummary(t *testing.T) {
	ctx := context.Background()
	uc, carts, _ := newCartUsecase()
	carts.On("ListLines", ctx, int64(1)).Return([]repo.CartLine{}, nil)

	out, err := uc.Get(ctx, 1)
	require.NoError(t, err)

	assert.Empty(t, out.Items)
	assert.NotNil(t, out.Items)
	assert.True(t, out.Summary.Shipping.IsZero())
	assert.True(t, out.Summary.Tax.IsZero())
	assert.True(t, out.Summary.Total.IsZero())
}

func TestCartGet_ShippingAndRoundedTax(t *testing.T) {
	ctx := context.Background()
	uc, carts, _ := newCartUsecase()
	carts.On("ListLines", ctx, int64(1)).Return([]repo.CartLine{
		{ID: 1, ProductID: 10, Name: "Nakshi Kantha", Price: decimal.NewFromInt(500), Quantity: 2, StockQuantity: 5},
		{ID: 2, ProductID: 11, Name: "Clay Pot", Price: decimal.NewFromInt(250), Quantity: 1, StockQuantity: 5},
	}, nil)

	out, err := uc.Get(ctx, 1)
	require.NoError(t, err)

	require.Len(t, out.Items, 2)
	assert.Equal(t, "1000", out.Items[0].Total.String())
	assert.Equal(t, "1250", out.Summary.Subtotal.String())
	assert.Equal(t, "120", out.Summary.Shipping.String())
	// 62.5 -> 63
	assert.Equal(t, "63", out.Summary.Tax.String())
	assert.Equal(t, "1433", out.Summary.Total.String())
}

func TestCartAdd_NewItemIsCreated(t *testing.T) {
	ctx := context.Background()
	uc, carts, products := newCartUsecase()
	products.On("FindByID", ctx, int64(10)).
		Return(model.Product{ID: 10, StockQuantity: 5, Status: model.ProductStatusActive}, nil)
	carts.On("FindByUserAndProduct", ctx, int64(1), int64(10)).Return(model.CartItem{}, repo.ErrNotFound)
	carts.On("Create", ctx, mock.MatchedBy(func(it *model.CartItem) bool {
		return it.UserID == 1 && it.ProductID == 10 && it.Quantity == 2
	})).Return(nil)

	out, err := uc.Add(ctx, 1, usecase.AddCartInput{ProductID: 10, Quantity: 2})
	require.NoError(t, err)

	assert.True(t, out.Created)
	assert.Equal(t, int64(2), out.Quantity)
	carts.AssertExpectations(t)
}

// 2回目の追加は在庫で頭打ち: min(2q, s)
func TestCartAdd_ExistingItemIsClampedToStock(t *testing.T) {
	ctx := context.Background()
	uc, carts, products := newCartUsecase()
	products.On("FindByID", ctx, int64(10)).
		Return(model.Product{ID: 10, StockQuantity: 5, Status: model.ProductStatusActive}, nil)
	carts.On("FindByUserAndProduct", ctx, int64(1), int64(10)).
		Return(model.CartItem{ID: 7, UserID: 1, ProductID: 10, Quantity: 3}, nil)
	carts.On("UpdateQuantity", ctx, int64(7), int64(5)).Return(nil)

	out, err := uc.Add(ctx, 1, usecase.AddCartInput{ProductID: 10, Quantity: 3})
	require.NoError(t, err)

	assert.False(t, out.Created)
	assert.Equal(t, int64(5), out.Quantity)
	carts.AssertExpectations(t)
}

func TestCartAdd_DuplicateInsertFallsBackToUpdate(t *testing.T) {
	ctx := context.Background()
	uc, carts, products := newCartUsecase()
	products.On("FindByID", ctx, int64(10)).
		Return(model.Product{ID: 10, StockQuantity: 9, Status: model.ProductStatusActive}, nil)
	carts.On("FindByUserAndProduct", ctx, int64(1), int64(10)).Return(model.CartItem{}, repo.ErrNotFound).Once()
	carts.On("Create", ctx, mock.Anything).Return(repo.ErrDuplicate)
	carts.On("FindByUserAndProduct", ctx, int64(1), int64(10)).
		Return(model.CartItem{ID: 7, Quantity: 1}, nil).Once()
	carts.On("UpdateQuantity", ctx, int64(7), int64(3)).Return(nil)

	out, err := uc.Add(ctx, 1, usecase.AddCartInput{ProductID: 10, Quantity: 2})
	require.NoError(t, err)
	assert.False(t, out.Created)
	assert.Equal(t, int64(3), out.Quantity)
}

func TestCartAdd_Errors(t *testing.T) {
	ctx := context.Background()

	t.Run("missing product id", func(t *testing.T) {
		uc, _, _ := newCartUsecase()
		_, err := uc.Add(ctx, 1, usecase.AddCartInput{ProductID: 0, Quantity: 1})
		requireStatus(t, err, http.StatusBadRequest)
	})

	t.Run("product not found", func(t *testing.T) {
		uc, _, products := newCartUsecase()
		products.On("FindByID", ctx, int64(10)).Return(model.Product{}, repo.ErrNotFound)
		_, err := uc.Add(ctx, 1, usecase.AddCartInput{ProductID: 10, Quantity: 1})
		requireStatus(t, err, http.StatusNotFound)
	})

	t.Run("inactive product", func(t *testing.T) {
		uc, _, products := newCartUsecase()
		products.On("FindByID", ctx, int64(10)).
			Return(model.Product{ID: 10, StockQuantity: 5, Status: model.ProductStatusInactive}, nil)
		_, err := uc.Add(ctx, 1, usecase.AddCartInput{ProductID: 10, Quantity: 1})
		requireStatus(t, err, http.StatusNotFound)
	})

	t.Run("not enough stock", func(t *testing.T) {
		uc, _, products := newCartUsecase()
		products.On("FindByID", ctx, int64(10)).
			Return(model.Product{ID: 10, StockQuantity: 1, Status: model.ProductStatusActive}, nil)
		_, err := uc.Add(ctx, 1, usecase.AddCartInput{ProductID: 10, Quantity: 2})
		requireStatus(t, err, http.StatusBadRequest)
	})

	t.Run("db error is generic", func(t *testing.T) {
		uc, _, products := newCartUsecase()
		products.On("FindByID", ctx, int64(10)).Return(model.Product{}, errors.New("connection reset"))
		_, err := uc.Add(ctx, 1, usecase.AddCartInput{ProductID: 10, Quantity: 1})
		requireStatus(t, err, http.StatusInternalServerError)
		assert.NotContains(t, err.Error(), "connection reset")
	})
}

func TestCartUpdateQuantity(t *testing.T) {
	ctx := context.Background()

	t.Run("other user's item is not found", func(t *testing.T) {
		uc, carts, _ := newCartUsecase()
		carts.On("FindOwned", ctx, int64(7), int64(2)).Return(model.CartItem{}, repo.ErrNotFound)
		_, err := uc.UpdateQuantity(ctx, 2, 7, 1)
		requireStatus(t, err, http.StatusNotFound)
	})

	t.Run("clamped to stock", func(t *testing.T) {
		uc, carts, products := newCartUsecase()
		carts.On("FindOwned", ctx, int64(7), int64(1)).Return(model.CartItem{ID: 7, ProductID: 10, Quantity: 1}, nil)
		products.On("FindByID", ctx, int64(10)).Return(model.Product{ID: 10, StockQuantity: 4}, nil)
		carts.On("UpdateQuantity", ctx, int64(7), int64(4)).Return(nil)

		qty, err := uc.UpdateQuantity(ctx, 1, 7, 10)
		require.NoError(t, err)
		assert.Equal(t, int64(4), qty)
	})

	// 在庫0なら0に丸めず400、明細はそのまま
	t.Run("sold out is rejected", func(t *testing.T) {
		uc, carts, products := newCartUsecase()
		carts.On("FindOwned", ctx, int64(7), int64(1)).Return(model.CartItem{ID: 7, ProductID: 10, Quantity: 2}, nil)
		products.On("FindByID", ctx, int64(10)).Return(model.Product{ID: 10, StockQuantity: 0}, nil)

		_, err := uc.UpdateQuantity(ctx, 1, 7, 3)
		requireStatus(t, err, http.StatusBadRequest)
		carts.AssertNotCalled(t, "UpdateQuantity", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestCartRemove_NotOwned(t *testing.T) {
	ctx := context.Background()
	uc, carts, _ := newCartUsecase()
	carts.On("DeleteOwned", ctx, int64(7), int64(2)).Return(repo.ErrNotFound)

	err := uc.Remove(ctx, 2, 7)
	requireStatus(t, err, http.StatusNotFound)
	assert.ErrorIs(t, err, usecase.ErrNotFound)
}
