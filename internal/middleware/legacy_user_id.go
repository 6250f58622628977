package middleware

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	auth "handicrafts/internal/usecase/auth_usecase"

	"github.com/labstack/echo/v4"
)

// 旧クライアント向け: セッションが無いとき X-User-Id → user_id で本人を決める。
// enabled=false なら何もしない。ユーザーは存在してactiveであること
func LegacyUserID(enabled bool, sessions SessionResolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !enabled {
				return next(c)
			}
			if _, ok := FromContext(c); ok {
				return next(c)
			}

			raw := strings.TrimSpace(c.Request().Header.Get("X-User-Id"))
			if raw == "" {
				raw = strings.TrimSpace(c.QueryParam("user_id"))
			}
			if raw == "" {
				return next(c)
			}

			userID, err := strconv.ParseInt(raw, 10, 64)
			if err != nil || userID <= 0 {
				return next(c)
			}

			user, err := sessions.ActiveUser(c.Request().Context(), userID)
			if err != nil {
				if !errors.Is(err, auth.ErrUnauthenticated) {
					c.Logger().Errorf("legacy user id: %v", err)
					return c.JSON(http.StatusInternalServerError, errorJSON("internal error"))
				}
				return next(c)
			}

			c.Logger().Warnf("security: event=legacy_identity user=%d ip=%s path=%s", user.ID, c.RealIP(), c.Path())
			c.Set(CtxAuthKey, AuthContext{UserID: user.ID})
			c.Set(CtxUserKey, user)
			return next(c)
		}
	}
}
