package usecase_test

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"handicrafts/internal/domain/model"
	repo "handicrafts/internal/repository"
	"handicrafts/internal/usecase"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 登録→解除→登録の2周期
func TestFavoriteToggle_Cycle(t *testing.T) {
	ctx := context.Background()
	favs := new(FavoriteRepoMock)
	products := new(ProductRepoMock)
	uc := usecase.NewFavoriteUsecase(favs, products, &testLogger{})

	products.On("FindByID", ctx, int64(10)).Return(model.Product{ID: 10}, nil)
	favs.On("Remove", ctx, int64(1), int64(10)).Return(false, nil).Once()
	favs.On("Add", ctx, int64(1), int64(10)).Return(nil).Once()
	favs.On("Remove", ctx, int64(1), int64(10)).Return(true, nil).Once()
	favs.On("Remove", ctx, int64(1), int64(10)).Return(false, nil).Once()
	favs.On("Add", ctx, int64(1), int64(10)).Return(nil).Once()

	var got []string
	for i := 0; i < 3; i++ {
		action, err := uc.Toggle(ctx, 1, 10)
		require.NoError(t, err)
		got = append(got, action)
	}
	assert.Equal(t, []string{"added", "removed", "added"}, got)
	favs.AssertExpectations(t)
}

func TestFavoriteToggle_ConcurrentAddCountsAsAdded(t *testing.T) {
	ctx := context.Background()
	favs := new(FavoriteRepoMock)
	products := new(ProductRepoMock)
	uc := usecase.NewFavoriteUsecase(favs, products, &testLogger{})

	products.On("FindByID", ctx, int64(10)).Return(model.Product{ID: 10}, nil)
	favs.On("Remove", ctx, int64(1), int64(10)).Return(false, nil)
	favs.On("Add", ctx, int64(1), int64(10)).Return(repo.ErrDuplicate)

	action, err := uc.Toggle(ctx, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, usecase.FavoriteAdded, action)
}

func TestFavoriteToggle_MissingProduct(t *testing.T) {
	ctx := context.Background()
	favs := new(FavoriteRepoMock)
	products := new(ProductRepoMock)
	uc := usecase.NewFavoriteUsecase(favs, products, &testLogger{})

	products.On("FindByID", ctx, int64(99)).Return(model.Product{}, repo.ErrNotFound)

	_, err := uc.Toggle(ctx, 1, 99)
	requireStatus(t, err, http.StatusNotFound)

	_, err = uc.Toggle(ctx, 1, 0)
	requireStatus(t, err, http.StatusBadRequest)
}

func TestFavoriteList_Fallbacks(t *testing.T) {
	ctx := context.Background()
	favs := new(FavoriteRepoMock)
	uc := usecase.NewFavoriteUsecase(favs, new(ProductRepoMock), &testLogger{})

	long := strings.Repeat("a", 150)
	favs.On("List", ctx, int64(1)).Return([]repo.FavoriteRow{
		{ID: 1, Description: long, Price: decimal.NewFromInt(800)},
		{ID: 2, ShortDescription: "short", OriginalPrice: decimal.NewNullDecimal(decimal.NewFromInt(1000)), Price: decimal.NewFromInt(900)},
	}, nil)

	out, err := uc.List(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, 2, out.Count)

	assert.Equal(t, strings.Repeat("a", 100)+"...", out.Favorites[0].ShortDescription)
	assert.True(t, out.Favorites[0].OriginalPrice.Valid)
	assert.Equal(t, "800", out.Favorites[0].OriginalPrice.Decimal.String())

	assert.Equal(t, "short", out.Favorites[1].ShortDescription)
	assert.Equal(t, "1000", out.Favorites[1].OriginalPrice.Decimal.String())
}
