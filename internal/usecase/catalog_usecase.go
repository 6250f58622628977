package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"handicrafts/internal/domain/model"
	repo "handicrafts/internal/repository"
	"handicrafts/internal/search"

	"github.com/shopspring/decimal"
)

// 商品・カテゴリ・職人の参照系
type CatalogUsecase struct {
	products   repo.ProductRepository
	categories repo.CategoryRepository
	artisans   repo.ArtisanRepository
	phonetic   search.Phonetic
	log        Logger
}

// DI
func NewCatalogUsecase(
	products repo.ProductRepository,
	categories repo.CategoryRepository,
	artisans repo.ArtisanRepository,
	phonetic search.Phonetic,
	log Logger,
) *CatalogUsecase {
	return &CatalogUsecase{
		products:   products,
		categories: categories,
		artisans:   artisans,
		phonetic:   phonetic,
		log:        log,
	}
}

type ProductListOutput struct {
	Products   []repo.ProductRow `json:"products"`
	Pagination Pagination        `json:"pagination"`
}

// 公開商品を新しい順に
func (u *CatalogUsecase) ListAll(ctx context.Context, page int, limit int) (ProductListOutput, error) {
	page, limit = normalizePage(page, limit)

	rows, total, err := u.products.ListActive(ctx, toRepoPage(page, limit))
	if err != nil {
		return ProductListOutput{}, internalError(u.log, "list products", err)
	}
	return ProductListOutput{
		Products:   rows,
		Pagination: newPagination(page, limit, total),
	}, nil
}

func (u *CatalogUsecase) GetOne(ctx context.Context, productID int64) (repo.ProductDetail, error) {
	if productID <= 0 {
		return repo.ProductDetail{}, NewHTTPError(http.StatusBadRequest, "Product ID is required")
	}

	p, err := u.products.FindActiveDetail(ctx, productID)
	if errors.Is(err, repo.ErrNotFound) {
		return repo.ProductDetail{}, NewHTTPError(http.StatusNotFound, "Product not found")
	}
	if err != nil {
		return repo.ProductDetail{}, internalError(u.log, "get product", err)
	}
	return p, nil
}

func (u *CatalogUsecase) ByCategory(ctx context.Context, categoryID int64) ([]repo.ProductRow, error) {
	if categoryID <= 0 {
		return nil, NewHTTPError(http.StatusBadRequest, "Category ID is required")
	}

	rows, err := u.products.ListActiveByCategory(ctx, categoryID)
	if err != nil {
		return nil, internalError(u.log, "list products by category", err)
	}
	return rows, nil
}

type SearchInput struct {
	Query string
	Page  int
	Limit int
}

type SearchOutput struct {
	Products          []repo.SearchRow `json:"products"`
	Pagination        Pagination       `json:"pagination"`
	SearchQuery       string           `json:"search_query"`
	TotalResults      int64            `json:"total_results"`
	SearchSuggestions []string         `json:"search_suggestions"`
}

// 空なら一覧と同じ。それ以外は語を展開して関連度順に返す
func (u *CatalogUsecase) Search(ctx context.Context, in SearchInput) (SearchOutput, error) {
	q := strings.TrimSpace(in.Query)
	if q == "" {
		all, err := u.ListAll(ctx, in.Page, in.Limit)
		if err != nil {
			return SearchOutput{}, err
		}
		rows := make([]repo.SearchRow, 0, len(all.Products))
		for _, r := range all.Products {
			rows = append(rows, repo.SearchRow{ProductRow: r})
		}
		return SearchOutput{
			Products:          rows,
			Pagination:        all.Pagination,
			TotalResults:      all.Pagination.TotalItems,
			SearchSuggestions: []string{},
		}, nil
	}

	page, limit := normalizePage(in.Page, in.Limit)
	ex := search.Expand(q, search.Options{Phonetic: u.phonetic})

	rows, total, err := u.products.Search(ctx, repo.SearchQuery{
		Query:      q,
		Conditions: ex.Conditions,
		Params:     ex.Params,
		Page:       toRepoPage(page, limit),
	})
	if err != nil {
		return SearchOutput{}, internalError(u.log, "search products", err)
	}

	suggestions := ex.Suggestions
	if suggestions == nil {
		suggestions = []string{}
	}
	return SearchOutput{
		Products:          rows,
		Pagination:        newPagination(page, limit, total),
		SearchQuery:       q,
		TotalResults:      total,
		SearchSuggestions: suggestions,
	}, nil
}

type FilterInput struct {
	CategoryID int64
	ArtisanID  int64
	Search     string
	Sort       string
	Page       int
	Limit      int
}

// レスポンスに返す適用済みフィルタ
type AppliedFilters struct {
	CategoryID int64  `json:"category_id"`
	ArtisanID  int64  `json:"artisan_id"`
	Search     string `json:"search"`
	Sort       string `json:"sort"`
}

type FilterOutput struct {
	Products     []repo.ProductRow `json:"products"`
	Pagination   Pagination        `json:"pagination"`
	Filters      AppliedFilters    `json:"filters"`
	FilterCounts any               `json:"filter_counts"`
}

var filterSorts = map[string]struct{}{
	"price_low":  {},
	"price_high": {},
	"name":       {},
	"newest":     {},
}

func (u *CatalogUsecase) Filter(ctx context.Context, in FilterInput) (FilterOutput, error) {
	page, limit := normalizePage(in.Page, in.Limit)

	sort := in.Sort
	if _, ok := filterSorts[sort]; !ok {
		sort = "newest"
	}
	if in.CategoryID < 0 {
		in.CategoryID = 0
	}
	if in.ArtisanID < 0 {
		in.ArtisanID = 0
	}

	q := repo.FilterQuery{
		CategoryID: in.CategoryID,
		ArtisanID:  in.ArtisanID,
		Search:     strings.TrimSpace(in.Search),
		Sort:       sort,
		Page:       toRepoPage(page, limit),
	}

	rows, total, err := u.products.Filter(ctx, q)
	if err != nil {
		return FilterOutput{}, internalError(u.log, "filter products", err)
	}

	// 件数の失敗では一覧を失敗させない
	var counts any
	facets, err := u.products.FacetCounts(ctx, q)
	if err != nil {
		u.log.Errorf("filter counts: %v", err)
		counts = map[string]string{"error": "failed to load filter counts"}
	} else {
		counts = facets
	}

	return FilterOutput{
		Products:   rows,
		Pagination: newPagination(page, limit, total),
		Filters: AppliedFilters{
			CategoryID: q.CategoryID,
			ArtisanID:  q.ArtisanID,
			Search:     q.Search,
			Sort:       sort,
		},
		FilterCounts: counts,
	}, nil
}

type CategoryListOutput struct {
	Categories []model.Category `json:"categories"`
	Count      int              `json:"count"`
}

func (u *CatalogUsecase) ListCategories(ctx context.Context) (CategoryListOutput, error) {
	cs, err := u.categories.List(ctx)
	if err != nil {
		return CategoryListOutput{}, internalError(u.log, "list categories", err)
	}
	return CategoryListOutput{Categories: cs, Count: len(cs)}, nil
}

func (u *CatalogUsecase) ListArtisans(ctx context.Context) ([]model.Artisan, error) {
	as, err := u.artisans.List(ctx)
	if err != nil {
		return nil, internalError(u.log, "list artisans", err)
	}
	return as, nil
}

type ArtisanProduct struct {
	ID    int64           `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
	Image string          `json:"image"`
}

type ArtisanDetail struct {
	model.Artisan
	Products []ArtisanProduct `json:"products"`
}

// 職人と、その公開商品
func (u *CatalogUsecase) GetArtisan(ctx context.Context, artisanID int64) (ArtisanDetail, error) {
	if artisanID <= 0 {
		return ArtisanDetail{}, NewHTTPError(http.StatusBadRequest, "Artisan ID is required")
	}

	a, err := u.artisans.FindByID(ctx, artisanID)
	if errors.Is(err, repo.ErrNotFound) {
		return ArtisanDetail{}, NewHTTPError(http.StatusNotFound, "Artisan not found")
	}
	if err != nil {
		return ArtisanDetail{}, internalError(u.log, "get artisan", err)
	}

	ps, err := u.products.ListActiveByArtisan(ctx, artisanID)
	if err != nil {
		return ArtisanDetail{}, internalError(u.log, "list artisan products", err)
	}

	out := ArtisanDetail{Artisan: a, Products: make([]ArtisanProduct, 0, len(ps))}
	for _, p := range ps {
		out.Products = append(out.Products, ArtisanProduct{ID: p.ID, Name: p.Name, Price: p.Price, Image: p.Image})
	}
	return out, nil
}
