package handler

import (
	"net/http"

	"handicrafts/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /cartのHTTP
type CartHandler struct {
	uc *usecase.CartUsecase
}

// DI
func NewCartHandler(uc *usecase.CartUsecase) *CartHandler {
	return &CartHandler{uc: uc}
}

// キーの有無を見たいのでポインタ
type AddCartRequest struct {
	ProductID *int64 `json:"product_id" form:"product_id" validate:"required"`
	Quantity  *int64 `json:"quantity" form:"quantity" validate:"required"`
}

type UpdateCartItemRequest struct {
	CartItemID *int64 `json:"cart_item_id" form:"cart_item_id" validate:"required"`
	Quantity   *int64 `json:"quantity" form:"quantity" validate:"required"`
}

// /cart を登録。mwsはRequireAuthなど
func (h *CartHandler) RegisterRoutes(g *echo.Group, mws ...echo.MiddlewareFunc) {
	g.GET("/cart", h.getCart, mws...)
	g.POST("/cart", h.addToCart, mws...)
	g.PUT("/cart", h.updateItem, mws...)
	g.DELETE("/cart", h.deleteItem, mws...)
}

// 無印でカート、action=countで個数
func (h *CartHandler) getCart(c echo.Context) error {
	userID, authed := currentUserID(c)
	if !authed {
		return unauthorized(c)
	}

	switch action(c, "get") {
	case "get":
	case "count":
		n, err := h.uc.Count(c.Request().Context(), userID)
		if err != nil {
			return writeError(c, err)
		}
		return ok(c, http.StatusOK, "Cart count retrieved successfully", map[string]int64{"count": n})
	default:
		return invalidAction(c)
	}

	out, err := h.uc.Get(c.Request().Context(), userID)
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, http.StatusOK, "Cart retrieved successfully", out)
}

func (h *CartHandler) addToCart(c echo.Context) error {
	userID, authed := currentUserID(c)
	if !authed {
		return unauthorized(c)
	}

	var req AddCartRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Missing required fields")
	}

	out, err := h.uc.Add(c.Request().Context(), userID, usecase.AddCartInput{
		ProductID: *req.ProductID,
		Quantity:  *req.Quantity,
	})
	if err != nil {
		return writeError(c, err)
	}

	data := map[string]int64{"quantity": out.Quantity}
	if out.Created {
		return ok(c, http.StatusCreated, "Item added to cart", data)
	}
	return ok(c, http.StatusOK, "Item quantity updated in cart", data)
}

func (h *CartHandler) updateItem(c echo.Context) error {
	userID, authed := currentUserID(c)
	if !authed {
		return unauthorized(c)
	}

	var req UpdateCartItemRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Missing required fields")
	}

	qty, err := h.uc.UpdateQuantity(c.Request().Context(), userID, *req.CartItemID, *req.Quantity)
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, http.StatusOK, "Cart item updated", map[string]int64{"quantity": qty})
}

// ?id=
func (h *CartHandler) deleteItem(c echo.Context) error {
	userID, authed := currentUserID(c)
	if !authed {
		return unauthorized(c)
	}

	if err := h.uc.Remove(c.Request().Context(), userID, queryInt64(c, "id")); err != nil {
		return writeError(c, err)
	}
	return ok(c, http.StatusOK, "Item removed from cart", nil)
}
