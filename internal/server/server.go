package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"handicrafts/internal/config"
	"handicrafts/internal/handler"
	"handicrafts/internal/validator"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
)

// 全体のミドルウェアを付けたechoを作る（ルートは RegisterRoutes）
func New(cfg config.Config, logger *log.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Logger = logger
	e.Validator = validator.New()
	e.HTTPErrorHandler = handler.ErrorHandler

	e.Use(echomw.RequestIDWithConfig(echomw.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogRemoteIP:  true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			if v.Error != nil {
				logger.Errorf("%s %s status=%d latency=%s id=%s ip=%s err=%v",
					v.Method, v.URI, v.Status, v.Latency, v.RequestID, v.RemoteIP, v.Error)
				return nil
			}
			logger.Infof("%s %s status=%d latency=%s id=%s ip=%s",
				v.Method, v.URI, v.Status, v.Latency, v.RequestID, v.RemoteIP)
			return nil
		},
	}))
	e.Use(echomw.Recover())

	origins := cfg.AllowOrigins()
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: origins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderContentType, echo.HeaderAuthorization, "X-User-Id"},
		// "*" とcredentialsは併用しない
		AllowCredentials: !(len(origins) == 1 && origins[0] == "*"),
	}))

	// アバター上限 + multipartの余白
	e.Use(echomw.BodyLimit("8M"))

	return e
}

// ctxがキャンセルされたらgraceful shutdown
func Start(ctx context.Context, e *echo.Echo, addr string) error {
	errCh := make(chan error, 1)
	go func() {
		e.Logger.Infof("listening on %s", addr)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
