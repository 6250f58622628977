package server

import (
	"net/http"
	"time"

	"handicrafts/internal/handler"
	"handicrafts/internal/middleware"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"
)

// ルート登録に必要なもの一式
type Routes struct {
	Auth     *handler.AuthHandler
	Catalog  *handler.CatalogHandler
	Cart     *handler.CartHandler
	Favorite *handler.FavoriteHandler
	Order    *handler.OrderHandler
	Profile  *handler.ProfileHandler
	Health   *handler.HealthHandler

	Sessions middleware.SessionResolver
	Tokens   middleware.TokenParser

	UploadDir        string
	AuthRateLimit    int // 5分あたり/IP。0で無効
	AuthLegacyUserID bool
}

const authRateWindow = 5 * time.Minute

func RegisterRoutes(e *echo.Echo, r Routes) {
	r.Health.RegisterRoutes(e)
	if r.UploadDir != "" {
		e.Static("/uploads", r.UploadDir)
	}

	// Groupにミドルウェアを付けるとcatch-allの404が登録されて405が返らなくなるのでe.Useで付ける
	e.Use(middleware.SessionAuth(r.Sessions, r.Tokens))
	api := e.Group("/api")
	requireAuth := middleware.RequireAuth()

	r.Auth.RegisterRoutes(api, authLimiter(r.AuthRateLimit))
	r.Catalog.RegisterRoutes(api)
	r.Cart.RegisterRoutes(api, requireAuth)
	r.Favorite.RegisterRoutes(api, requireAuth)
	r.Order.RegisterRoutes(api, middleware.LegacyUserID(r.AuthLegacyUserID, r.Sessions), requireAuth)
	r.Profile.RegisterRoutes(api, requireAuth)
}

// IPごとに window あたり n 回まで
func authLimiter(n int) echo.MiddlewareFunc {
	if n <= 0 {
		return nil
	}
	store := echomw.NewRateLimiterMemoryStoreWithConfig(echomw.RateLimiterMemoryStoreConfig{
		Rate:      rate.Limit(float64(n) / authRateWindow.Seconds()),
		Burst:     n,
		ExpiresIn: authRateWindow,
	})
	return echomw.RateLimiterWithConfig(echomw.RateLimiterConfig{
		Store: store,
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return c.JSON(http.StatusForbidden, handler.Response{Success: false, Message: "Forbidden"})
		},
		DenyHandler: func(c echo.Context, id string, err error) error {
			c.Logger().Warnf("security: event=rate_limited ip=%s path=%s", id, c.Path())
			return c.JSON(http.StatusTooManyRequests, handler.Response{Success: false, Message: "Too many attempts. Please try again later."})
		},
	})
}
