package usecase

import (
	"context"
	"errors"
	"net/http"

	repo "handicrafts/internal/repository"
)

const (
	FavoriteAdded   = "added"
	FavoriteRemoved = "removed"

	shortDescriptionLen = 100
)

type FavoriteUsecase struct {
	favorites repo.FavoriteRepository
	products  repo.ProductRepository
	log       Logger
}

// DI
func NewFavoriteUsecase(favorites repo.FavoriteRepository, products repo.ProductRepository, log Logger) *FavoriteUsecase {
	return &FavoriteUsecase{favorites: favorites, products: products, log: log}
}

type FavoriteListOutput struct {
	Favorites []repo.FavoriteRow `json:"favorites"`
	Count     int                `json:"count"`
}

// 一覧。短い説明と元値は無ければ補う
func (u *FavoriteUsecase) List(ctx context.Context, userID int64) (FavoriteListOutput, error) {
	rows, err := u.favorites.List(ctx, userID)
	if err != nil {
		return FavoriteListOutput{}, internalError(u.log, "list favorites", err)
	}

	for i := range rows {
		if rows[i].ShortDescription == "" {
			rows[i].ShortDescription = truncate(rows[i].Description, shortDescriptionLen)
		}
		if !rows[i].OriginalPrice.Valid {
			rows[i].OriginalPrice.Decimal = rows[i].Price
			rows[i].OriginalPrice.Valid = true
		}
	}
	return FavoriteListOutput{Favorites: rows, Count: len(rows)}, nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}

func (u *FavoriteUsecase) Check(ctx context.Context, userID int64, productID int64) (bool, error) {
	if productID <= 0 {
		return false, NewHTTPError(http.StatusBadRequest, "Product ID is required")
	}

	ok, err := u.favorites.Exists(ctx, userID, productID)
	if err != nil {
		return false, internalError(u.log, "check favorite", err)
	}
	return ok, nil
}

// 登録済みなら外し、無ければ登録する。戻り値は added / removed
func (u *FavoriteUsecase) Toggle(ctx context.Context, userID int64, productID int64) (string, error) {
	if productID <= 0 {
		return "", NewHTTPError(http.StatusBadRequest, "Product ID is required")
	}

	if _, err := u.products.FindByID(ctx, productID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return "", NewHTTPError(http.StatusNotFound, "Product not found")
		}
		return "", internalError(u.log, "find product", err)
	}

	removed, err := u.favorites.Remove(ctx, userID, productID)
	if err != nil {
		return "", internalError(u.log, "remove favorite", err)
	}
	if removed {
		return FavoriteRemoved, nil
	}

	err = u.favorites.Add(ctx, userID, productID)
	if err != nil && !errors.Is(err, repo.ErrDuplicate) {
		return "", internalError(u.log, "add favorite", err)
	}
	return FavoriteAdded, nil
}

func (u *FavoriteUsecase) Count(ctx context.Context, userID int64) (int64, error) {
	n, err := u.favorites.Count(ctx, userID)
	if err != nil {
		return 0, internalError(u.log, "count favorites", err)
	}
	return n, nil
}
