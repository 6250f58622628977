package handler

import (
	"net/http"
	"strings"

	"handicrafts/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /products, /categories, /artisans の公開API
type CatalogHandler struct {
	uc *usecase.CatalogUsecase
}

// DI
func NewCatalogHandler(uc *usecase.CatalogUsecase) *CatalogHandler {
	return &CatalogHandler{uc: uc}
}

// 公開ルートを登録
func (h *CatalogHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/products", h.products)
	g.GET("/categories", h.categories)
	g.GET("/artisans", h.artisans)
}

// action=all|single|category|search|filter
func (h *CatalogHandler) products(c echo.Context) error {
	switch action(c, "all") {
	case "all":
		return h.list(c)
	case "single":
		return h.single(c)
	case "category":
		return h.byCategory(c)
	case "search":
		return h.search(c)
	case "filter":
		return h.filter(c)
	default:
		return invalidAction(c)
	}
}

func (h *CatalogHandler) list(c echo.Context) error {
	out, err := h.uc.ListAll(c.Request().Context(), queryInt(c, "page"), queryInt(c, "limit"))
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, http.StatusOK, "", out)
}

func (h *CatalogHandler) single(c echo.Context) error {
	p, err := h.uc.GetOne(c.Request().Context(), queryInt64(c, "id"))
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, http.StatusOK, "", map[string]any{"product": p})
}

func (h *CatalogHandler) byCategory(c echo.Context) error {
	rows, err := h.uc.ByCategory(c.Request().Context(), queryInt64(c, "category_id"))
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, http.StatusOK, "", map[string]any{"products": rows})
}

// qが空なら action=all と同じレスポンス
func (h *CatalogHandler) search(c echo.Context) error {
	q := c.QueryParam("q")
	if strings.TrimSpace(q) == "" {
		return h.list(c)
	}
	out, err := h.uc.Search(c.Request().Context(), usecase.SearchInput{
		Query: q,
		Page:  queryInt(c, "page"),
		Limit: queryInt(c, "limit"),
	})
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, http.StatusOK, "", out)
}

func (h *CatalogHandler) filter(c echo.Context) error {
	out, err := h.uc.Filter(c.Request().Context(), usecase.FilterInput{
		CategoryID: queryInt64(c, "category_id"),
		ArtisanID:  queryInt64(c, "artisan_id"),
		Search:     c.QueryParam("search"),
		Sort:       c.QueryParam("sort"),
		Page:       queryInt(c, "page"),
		Limit:      queryInt(c, "limit"),
	})
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, http.StatusOK, "", out)
}
