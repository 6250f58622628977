package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// SessionAuth（またはLegacyUserID）で認証済みでなければ401
func RequireAuth() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if _, ok := FromContext(c); !ok {
				return c.JSON(http.StatusUnauthorized, errorJSON("Authentication required. Please log in."))
			}
			return next(c)
		}
	}
}

// 共通レスポンス形 {success, message, data}
type errorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

func errorJSON(msg string) errorResponse {
	return errorResponse{Success: false, Message: msg, Data: nil}
}
