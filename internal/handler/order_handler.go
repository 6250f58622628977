package handler

import (
	"net/http"

	"handicrafts/internal/usecase"

	"github.com/labstack/echo/v4"
)

type OrderHandler struct {
	uc *usecase.OrderUsecase
}

func NewOrderHandler(uc *usecase.OrderUsecase) *OrderHandler {
	return &OrderHandler{uc: uc}
}

// mwsは LegacyUserID → RequireAuth の順で渡す
func (h *OrderHandler) RegisterRoutes(g *echo.Group, mws ...echo.MiddlewareFunc) {
	g.POST("/orders", h.create, mws...)
	g.GET("/orders", h.get, mws...)
}

func (h *OrderHandler) create(c echo.Context) error {
	userID, authed := currentUserID(c)
	if !authed {
		return unauthorized(c)
	}

	var req usecase.PlaceOrderInput
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid JSON data")
	}

	out, err := h.uc.PlaceOrder(c.Request().Context(), userID, req)
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, http.StatusCreated, "Order placed successfully", out)
}

// order_id があれば詳細、無ければ一覧
func (h *OrderHandler) get(c echo.Context) error {
	userID, authed := currentUserID(c)
	if !authed {
		return unauthorized(c)
	}

	if c.QueryParam("order_id") != "" {
		out, err := h.uc.GetMine(c.Request().Context(), userID, queryInt64(c, "order_id"))
		if err != nil {
			return writeError(c, err)
		}
		return ok(c, http.StatusOK, "Order details retrieved successfully", out)
	}

	out, err := h.uc.ListMine(c.Request().Context(), userID)
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, http.StatusOK, "Orders retrieved successfully", out)
}
