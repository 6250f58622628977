package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type FavoriteRow struct {
	ID                 int64               `json:"id"`
	Name               string              `json:"name"`
	Description        string              `json:"description"`
	ShortDescription   string              `json:"short_description"`
	Price              decimal.Decimal     `json:"price"`
	OriginalPrice      decimal.NullDecimal `json:"original_price"`
	DiscountPercentage int                 `json:"discount_percentage"`
	Image              string              `json:"image"`
	StockQuantity      int64               `json:"stock_quantity"`
	ArtisanName        string              `json:"artisan_name"`
	FavoritedAt        time.Time           `json:"favorited_at"`
}

type FavoriteRepository interface {
	// 新しい順
	List(ctx context.Context, userID int64) ([]FavoriteRow, error)
	Exists(ctx context.Context, userID int64, productID int64) (bool, error)
	Add(ctx context.Context, userID int64, productID int64) error
	// 削除した場合true
	Remove(ctx context.Context, userID int64, productID int64) (bool, error)
	Count(ctx context.Context, userID int64) (int64, error)
}
