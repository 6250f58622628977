package handler

import (
	"io"
	"net/http"

	"handicrafts/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /profileのHTTP
type ProfileHandler struct {
	uc        *usecase.ProfileUsecase
	orders    *usecase.OrderUsecase
	maxAvatar int64 // これ+1バイトまでしか読まない
}

// DI
func NewProfileHandler(uc *usecase.ProfileUsecase, orders *usecase.OrderUsecase, maxAvatar int64) *ProfileHandler {
	return &ProfileHandler{uc: uc, orders: orders, maxAvatar: maxAvatar}
}

func (h *ProfileHandler) RegisterRoutes(g *echo.Group, mws ...echo.MiddlewareFunc) {
	g.GET("/profile", h.get, mws...)
	g.PUT("/profile", h.put, mws...)
	g.POST("/profile", h.post, mws...)
}

// action=profile|orders
func (h *ProfileHandler) get(c echo.Context) error {
	userID, authed := currentUserID(c)
	if !authed {
		return unauthorized(c)
	}

	switch action(c, "profile") {
	case "profile":
		out, err := h.uc.Get(c.Request().Context(), userID)
		if err != nil {
			return writeError(c, err)
		}
		return ok(c, http.StatusOK, "Profile retrieved successfully", out)
	case "orders":
		out, err := h.orders.ListMine(c.Request().Context(), userID)
		if err != nil {
			return writeError(c, err)
		}
		return ok(c, http.StatusOK, "Orders retrieved successfully", out)
	default:
		return invalidAction(c)
	}
}

// action=profile|password
func (h *ProfileHandler) put(c echo.Context) error {
	userID, authed := currentUserID(c)
	if !authed {
		return unauthorized(c)
	}

	switch action(c, "profile") {
	case "profile":
		var req usecase.UpdateProfileInput
		if err := c.Bind(&req); err != nil {
			return fail(c, http.StatusBadRequest, "Invalid request body")
		}
		if err := h.uc.Update(c.Request().Context(), userID, req); err != nil {
			return writeError(c, err)
		}
		return ok(c, http.StatusOK, "Profile updated successfully", nil)
	case "password":
		var req usecase.ChangePasswordInput
		if err := c.Bind(&req); err != nil {
			return fail(c, http.StatusBadRequest, "Invalid request body")
		}
		if err := h.uc.ChangePassword(c.Request().Context(), userID, req); err != nil {
			return writeError(c, err)
		}
		return ok(c, http.StatusOK, "Password changed successfully", nil)
	default:
		return invalidAction(c)
	}
}

// action=avatar のみ（multipart の avatar フィールド）
func (h *ProfileHandler) post(c echo.Context) error {
	userID, authed := currentUserID(c)
	if !authed {
		return unauthorized(c)
	}
	if action(c, "") != "avatar" {
		return invalidAction(c)
	}

	data, err := h.readAvatar(c)
	if err != nil {
		//読めなければ空として扱い、usecaseの400にまかせる
		c.Logger().Warnf("avatar upload: %v", err)
		data = nil
	}

	out, err := h.uc.UpdateAvatar(c.Request().Context(), userID, data)
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, http.StatusOK, "Profile image updated", out)
}

func (h *ProfileHandler) readAvatar(c echo.Context) ([]byte, error) {
	fh, err := c.FormFile("avatar")
	if err != nil {
		return nil, err
	}
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var r io.Reader = f
	if h.maxAvatar > 0 {
		r = io.LimitReader(f, h.maxAvatar+1)
	}
	return io.ReadAll(r)
}
