package repository

import (
	"context"

	"handicrafts/internal/domain/model"
)

// 一覧用の行（カテゴリ名・職人名付き）
type ProductRow struct {
	model.Product
	CategoryName string `json:"category_name"`
	ArtisanName  string `json:"artisan_name"`
}

// 検索結果の行
type SearchRow struct {
	ProductRow
	RelevanceScore int `json:"relevance_score"`
}

// 商品詳細
type ProductDetail struct {
	model.Product
	CategoryName      string `json:"category_name"`
	ArtisanName       string `json:"artisan_name"`
	ArtisanBio        string `json:"artisan_bio"`
	ArtisanImage      string `json:"artisan_image"`
	ArtisanLocation   string `json:"artisan_location"`
	ArtisanSpeciality string `json:"artisan_speciality"`
}

type Page struct {
	Offset int
	Limit  int
}

// 検索条件。ConditionsはOR結合、Paramsは位置対応
type SearchQuery struct {
	Query      string
	Conditions []string
	Params     []any
	Page       Page
}

type FilterQuery struct {
	CategoryID int64
	ArtisanID  int64
	Search     string
	Sort       string // price_low | price_high | name | newest
	Page       Page
}

type FacetCount struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Count int64  `json:"count"`
}

type FacetCounts struct {
	Categories []FacetCount `json:"categories"`
	Artisans   []FacetCount `json:"artisans"`
}

type ProductRepository interface {
	// 公開商品を新しい順で
	ListActive(ctx context.Context, page Page) ([]ProductRow, int64, error)
	FindActiveDetail(ctx context.Context, productID int64) (ProductDetail, error)
	ListActiveByCategory(ctx context.Context, categoryID int64) ([]ProductRow, error)
	ListActiveByArtisan(ctx context.Context, artisanID int64) ([]model.Product, error)
	Search(ctx context.Context, q SearchQuery) ([]SearchRow, int64, error)
	Filter(ctx context.Context, q FilterQuery) ([]ProductRow, int64, error)
	// 自分自身の軸を除いた条件で件数を数える
	FacetCounts(ctx context.Context, q FilterQuery) (FacetCounts, error)
	// statusに関係なく取得
	FindByID(ctx context.Context, productID int64) (model.Product, error)
}
