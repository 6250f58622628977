package handler

import (
	"net/http"

	"handicrafts/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /favoritesのHTTP
type FavoriteHandler struct {
	uc *usecase.FavoriteUsecase
}

// DI
func NewFavoriteHandler(uc *usecase.FavoriteUsecase) *FavoriteHandler {
	return &FavoriteHandler{uc: uc}
}

type toggleFavoriteRequest struct {
	ProductID int64 `json:"product_id" form:"product_id"`
}

func (h *FavoriteHandler) RegisterRoutes(g *echo.Group, mws ...echo.MiddlewareFunc) {
	g.GET("/favorites", h.dispatch, mws...)
	g.POST("/favorites", h.dispatch, mws...)
}

// action=all|check|toggle|count（toggleはPOSTのみ）
func (h *FavoriteHandler) dispatch(c echo.Context) error {
	userID, authed := currentUserID(c)
	if !authed {
		return unauthorized(c)
	}
	ctx := c.Request().Context()

	switch action(c, "all") {
	case "all":
		out, err := h.uc.List(ctx, userID)
		if err != nil {
			return writeError(c, err)
		}
		return ok(c, http.StatusOK, "Favorites retrieved successfully", out)

	case "check":
		fav, err := h.uc.Check(ctx, userID, queryInt64(c, "product_id"))
		if err != nil {
			return writeError(c, err)
		}
		return ok(c, http.StatusOK, "Favorite status checked", map[string]bool{"is_favorite": fav})

	case "count":
		n, err := h.uc.Count(ctx, userID)
		if err != nil {
			return writeError(c, err)
		}
		return ok(c, http.StatusOK, "Favorite count retrieved successfully", map[string]int64{"count": n})

	case "toggle":
		if c.Request().Method != http.MethodPost {
			return fail(c, http.StatusMethodNotAllowed, "Method not allowed")
		}
		var req toggleFavoriteRequest
		if err := c.Bind(&req); err != nil {
			return fail(c, http.StatusBadRequest, "Invalid request body")
		}
		if req.ProductID == 0 {
			req.ProductID = queryInt64(c, "product_id")
		}

		act, err := h.uc.Toggle(ctx, userID, req.ProductID)
		if err != nil {
			return writeError(c, err)
		}
		msg := "Product added to favorites"
		if act == usecase.FavoriteRemoved {
			msg = "Product removed from favorites"
		}
		return ok(c, http.StatusOK, msg, map[string]string{"action": act})

	default:
		return invalidAction(c)
	}
}
