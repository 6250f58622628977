package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"handicrafts/internal/middleware"
	"handicrafts/internal/usecase"

	"github.com/labstack/echo/v4"
)

// 全エンドポイント共通のレスポンス形
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data"`
}

func ok(c echo.Context, status int, msg string, data any) error {
	return c.JSON(status, Response{Success: true, Message: msg, Data: data})
}

func fail(c echo.Context, status int, msg string) error {
	return c.JSON(status, Response{Success: false, Message: msg, Data: nil})
}

func invalidAction(c echo.Context) error {
	return fail(c, http.StatusBadRequest, "Invalid action")
}

// usecaseのエラーをステータスとメッセージにする
func writeError(c echo.Context, err error) error {
	if err == nil {
		return nil
	}
	if he, ok := usecase.AsHTTPError(err); ok {
		return fail(c, he.Status, he.Message)
	}

	switch {
	case errors.Is(err, usecase.ErrValidation):
		return fail(c, http.StatusBadRequest, "Invalid request")
	case errors.Is(err, usecase.ErrUnauthorized):
		return fail(c, http.StatusUnauthorized, "Authentication required. Please log in.")
	case errors.Is(err, usecase.ErrNotFound):
		return fail(c, http.StatusNotFound, "Not found")
	case errors.Is(err, usecase.ErrConflict):
		return fail(c, http.StatusConflict, "Conflict")
	}

	//500
	c.Logger().Errorf("%s %s: %v", c.Request().Method, c.Request().URL.Path, err)
	return fail(c, http.StatusInternalServerError, "internal error")
}

// echo自身のエラー（404ルート・405・bind失敗など）も同じ形で返す
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var he *echo.HTTPError
	if !errors.As(err, &he) {
		_ = writeError(c, err)
		return
	}

	msg := http.StatusText(he.Code)
	switch he.Code {
	case http.StatusNotFound:
		msg = "Endpoint not found"
	case http.StatusMethodNotAllowed:
		msg = "Method not allowed"
	case http.StatusRequestEntityTooLarge:
		msg = "Request entity too large"
	default:
		if s, ok := he.Message.(string); ok && he.Code < http.StatusInternalServerError {
			msg = s
		}
	}
	if he.Code >= http.StatusInternalServerError {
		c.Logger().Errorf("%s %s: %v", c.Request().Method, c.Request().URL.Path, err)
	}

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(he.Code)
		return
	}
	_ = fail(c, he.Code, msg)
}

// RequireAuthを通った後なので必ずある
func currentUserID(c echo.Context) (int64, bool) {
	ac, ok := middleware.FromContext(c)
	if !ok {
		return 0, false
	}
	return ac.UserID, true
}

func unauthorized(c echo.Context) error {
	return fail(c, http.StatusUnauthorized, "Authentication required. Please log in.")
}

// 数値でなければ0（必須チェックはusecase側）
func queryInt64(c echo.Context, name string) int64 {
	v, err := strconv.ParseInt(strings.TrimSpace(c.QueryParam(name)), 10, 64)
	if err != nil {
		return 0
	}
	return v
}

func queryInt(c echo.Context, name string) int {
	return int(queryInt64(c, name))
}

func action(c echo.Context, def string) string {
	if a := strings.TrimSpace(c.QueryParam("action")); a != "" {
		return a
	}
	return def
}
