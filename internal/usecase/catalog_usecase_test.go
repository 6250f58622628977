package usecase_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"handicrafts/internal/domain/model"
	repo "handicrafts/internal/repository"
	"handicrafts/internal/search"
	"handicrafts/internal/usecase"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type catalogFixture struct {
	uc         *usecase.CatalogUsecase
	products   *ProductRepoMock
	categories *CategoryRepoMock
	artisans   *ArtisanRepoMock
	log        *testLogger
}

func newCatalogFixture() *catalogFixture {
	f := &catalogFixture{
		products:   new(ProductRepoMock),
		categories: new(CategoryRepoMock),
		artisans:   new(ArtisanRepoMock),
		log:        &testLogger{},
	}
	f.uc = usecase.NewCatalogUsecase(f.products, f.categories, f.artisans, search.PhoneticNone, f.log)
	return f
}

func TestListAll_Pagination(t *testing.T) {
	ctx := context.Background()
	f := newCatalogFixture()
	f.products.On("ListActive", ctx, repo.Page{Offset: 12, Limit: 12}).
		Return([]repo.ProductRow{{Product: model.Product{ID: 1}}}, int64(25), nil)

	out, err := f.uc.ListAll(ctx, 2, 0)
	require.NoError(t, err)

	assert.Equal(t, usecase.Pagination{CurrentPage: 2, TotalPages: 3, TotalItems: 25, PerPage: 12}, out.Pagination)
}

func TestListAll_DBErrorIsGeneric(t *testing.T) {
	ctx := context.Background()
	f := newCatalogFixture()
	f.products.On("ListActive", ctx, mock.Anything).Return(nil, int64(0), errors.New("pq: relation missing"))

	_, err := f.uc.ListAll(ctx, 1, 12)
	requireStatus(t, err, http.StatusInternalServerError)
	he, _ := usecase.AsHTTPError(err)
	assert.Equal(t, "internal error", he.Message)
	require.Len(t, f.log.errors, 1)
	assert.Contains(t, f.log.errors[0], "relation missing")
}

func TestGetOne(t *testing.T) {
	ctx := context.Background()
	f := newCatalogFixture()
	f.products.On("FindActiveDetail", ctx, int64(3)).Return(repo.ProductDetail{}, repo.ErrNotFound)

	_, err := f.uc.GetOne(ctx, 0)
	requireStatus(t, err, http.StatusBadRequest)

	_, err = f.uc.GetOne(ctx, 3)
	requireStatus(t, err, http.StatusNotFound)
}

func TestByCategory_RequiresID(t *testing.T) {
	f := newCatalogFixture()
	_, err := f.uc.ByCategory(context.Background(), -1)
	requireStatus(t, err, http.StatusBadRequest)
}

func TestSearch_BlankBehavesLikeListAll(t *testing.T) {
	ctx := context.Background()
	f := newCatalogFixture()
	f.products.On("ListActive", ctx, repo.Page{Offset: 0, Limit: 12}).
		Return([]repo.ProductRow{{Product: model.Product{ID: 1}}, {Product: model.Product{ID: 2}}}, int64(2), nil)

	out, err := f.uc.Search(ctx, usecase.SearchInput{Query: "   "})
	require.NoError(t, err)

	assert.Len(t, out.Products, 2)
	assert.Equal(t, int64(2), out.TotalResults)
	assert.Empty(t, out.SearchSuggestions)
	f.products.AssertNotCalled(t, "Search", mock.Anything, mock.Anything)
}

func TestSearch_PassesExpandedConditions(t *testing.T) {
	ctx := context.Background()
	f := newCatalogFixture()

	var got repo.SearchQuery
	f.products.On("Search", ctx, mock.AnythingOfType("repository.SearchQuery")).
		Run(func(args mock.Arguments) { got = args.Get(1).(repo.SearchQuery) }).
		Return([]repo.SearchRow{}, int64(0), nil)

	out, err := f.uc.Search(ctx, usecase.SearchInput{Query: "potery", Page: 1, Limit: 12})
	require.NoError(t, err)

	assert.Equal(t, "potery", out.SearchQuery)
	assert.Contains(t, out.SearchSuggestions, "pottery")
	assert.NotEmpty(t, got.Conditions)
	assert.Equal(t, repo.Page{Offset: 0, Limit: 12}, got.Page)
}

func TestFilter_NormalizesSortAndSurvivesFacetError(t *testing.T) {
	ctx := context.Background()
	f := newCatalogFixture()

	want := repo.FilterQuery{CategoryID: 2, Sort: "newest", Page: repo.Page{Offset: 0, Limit: 12}}
	f.products.On("Filter", ctx, want).Return([]repo.ProductRow{}, int64(0), nil)
	f.products.On("FacetCounts", ctx, want).Return(repo.FacetCounts{}, errors.New("timeout"))

	out, err := f.uc.Filter(ctx, usecase.FilterInput{CategoryID: 2, ArtisanID: -5, Sort: "random"})
	require.NoError(t, err)

	assert.Equal(t, "newest", out.Filters.Sort)
	assert.Equal(t, map[string]string{"error": "failed to load filter counts"}, out.FilterCounts)
}

func TestGetArtisan(t *testing.T) {
	ctx := context.Background()
	f := newCatalogFixture()
	f.artisans.On("FindByID", ctx, int64(4)).Return(model.Artisan{ID: 4, Name: "Rina Begum"}, nil)
	f.artisans.On("FindByID", ctx, int64(5)).Return(model.Artisan{}, repo.ErrNotFound)
	f.products.On("ListActiveByArtisan", ctx, int64(4)).Return([]model.Product{
		{ID: 1, Name: "Kantha Quilt", Price: decimal.NewFromInt(3500), Image: "kantha.jpg"},
	}, nil)

	out, err := f.uc.GetArtisan(ctx, 4)
	require.NoError(t, err)
	assert.Equal(t, "Rina Begum", out.Name)
	require.Len(t, out.Products, 1)
	assert.Equal(t, "Kantha Quilt", out.Products[0].Name)

	_, err = f.uc.GetArtisan(ctx, 5)
	requireStatus(t, err, http.StatusNotFound)

	_, err = f.uc.GetArtisan(ctx, 0)
	requireStatus(t, err, http.StatusBadRequest)
}
