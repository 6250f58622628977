package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"handicrafts/internal/domain/model"
	auth "handicrafts/internal/usecase/auth_usecase"

	"github.com/labstack/echo/v4"
)

const (
	// ログイン時にセットするcookie
	SessionCookieName = "auth_token"

	CtxAuthKey = "auth" // AuthContext
	CtxUserKey = "user" // *model.User
)

// リクエストごとに作る認証情報
type AuthContext struct {
	UserID       int64
	SessionToken string
	ExpiresAt    time.Time
}

// セッションからユーザーを引く約束（auth.SessionUsecaseが満たす）
type SessionResolver interface {
	Current(ctx context.Context, token string) (*model.User, *model.Session, error)
	ActiveUser(ctx context.Context, userID int64) (*model.User, error)
}

// bearer tokenの検証（auth.JWTIssuerが満たす）
type TokenParser interface {
	Parse(raw string) (userID int64, sessionToken string, err error)
}

// cookie(auth_token) → Authorization: Bearer の順で認証する。
// 認証できなくても止めない（必須かどうかはRequireAuthで判定）
func SessionAuth(sessions SessionResolver, tokens TokenParser) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()

			//cookie
			if ck, err := c.Cookie(SessionCookieName); err == nil && ck.Value != "" {
				user, s, err := sessions.Current(ctx, ck.Value)
				switch {
				case err == nil:
					setAuth(c, user, s)
					return next(c)
				case !errors.Is(err, auth.ErrUnauthenticated):
					c.Logger().Errorf("session auth: %v", err)
					return c.JSON(http.StatusInternalServerError, errorJSON("internal error"))
				}
			}

			//Bearer
			raw := bearerToken(c.Request().Header.Get("Authorization"))
			if raw == "" || tokens == nil {
				return next(c)
			}
			userID, sid, err := tokens.Parse(raw)
			if err != nil {
				return next(c)
			}
			user, s, err := sessions.Current(ctx, sid)
			switch {
			case err == nil && user.ID == userID:
				setAuth(c, user, s)
			case err != nil && !errors.Is(err, auth.ErrUnauthenticated):
				c.Logger().Errorf("bearer auth: %v", err)
				return c.JSON(http.StatusInternalServerError, errorJSON("internal error"))
			}
			return next(c)
		}
	}
}

func setAuth(c echo.Context, user *model.User, s *model.Session) {
	c.Set(CtxAuthKey, AuthContext{
		UserID:       user.ID,
		SessionToken: s.SessionToken,
		ExpiresAt:    s.ExpiresAt,
	})
	c.Set(CtxUserKey, user)
}

// Bearer形式ならtokenを抜く
func bearerToken(authz string) string {
	parts := strings.SplitN(authz, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// contextから認証情報を取り出す
func FromContext(c echo.Context) (AuthContext, bool) {
	ac, ok := c.Get(CtxAuthKey).(AuthContext)
	if !ok || ac.UserID <= 0 {
		return AuthContext{}, false
	}
	return ac, true
}

func UserFromContext(c echo.Context) (*model.User, bool) {
	u, ok := c.Get(CtxUserKey).(*model.User)
	return u, ok && u != nil
}
