package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"handicrafts/internal/config"
	"handicrafts/internal/handler"
	"handicrafts/internal/infra/db"
	infraRepo "handicrafts/internal/infra/repository"
	"handicrafts/internal/infra/storage"
	"handicrafts/internal/search"
	"handicrafts/internal/server"
	"handicrafts/internal/usecase"
	auth "handicrafts/internal/usecase/auth_usecase"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"gorm.io/gorm"
)

// bcryptのコスト
const BcryptCost = 12

type realClock struct{}

func (c *realClock) Now() time.Time {
	return time.Now()
}

// Options はテストで差し替えたいもの
type Options struct {
	BcryptCost int       // 0ならBcryptCost
	Clock      auth.Clock // nilなら時計
	// soundexの方式。nilなら設定とdialectから決める
	Phonetic *search.Phonetic
}

// Build はrepository → usecase → handler → echo を組み立てる
func Build(cfg config.Config, gdb *gorm.DB, logger *log.Logger, opts Options) (*echo.Echo, error) {
	if opts.BcryptCost == 0 {
		opts.BcryptCost = BcryptCost
	}
	if opts.Clock == nil {
		opts.Clock = &realClock{}
	}

	policy, err := usecase.ParseStockPolicy(cfg.StockPolicy)
	if err != nil {
		return nil, fmt.Errorf("STOCK_POLICY: %w", err)
	}

	phonetic := search.PhoneticNone
	if cfg.SearchPhonetic {
		phonetic = search.PhoneticFor(db.Dialect(gdb))
	}
	if opts.Phonetic != nil {
		phonetic = *opts.Phonetic
	}

	//Repository（GORM実装）生成
	userRepo := infraRepo.NewUserGormRepository(gdb)
	sessionRepo := infraRepo.NewSessionGormRepository(gdb)
	productRepo := infraRepo.NewProductGormRepository(gdb)
	categoryRepo := infraRepo.NewCategoryGormRepository(gdb)
	artisanRepo := infraRepo.NewArtisanGormRepository(gdb)
	cartRepo := infraRepo.NewCartGormRepository(gdb)
	favoriteRepo := infraRepo.NewFavoriteGormRepository(gdb)
	orderRepo := infraRepo.NewOrderGormRepository(gdb)
	orderItemRepo := infraRepo.NewOrderItemGormRepository(gdb)
	txManager := infraRepo.NewTxManagerGorm(gdb)

	//bcrypt（会員登録・パスワード変更：Hash / ログイン：Verify）
	hasher := auth.NewBcryptPasswordHasher(opts.BcryptCost)
	verifier := auth.NewBcryptPasswordVerifier()

	//JWT issuer（script向けbearer）
	issuer := auth.NewJWTIssuer(cfg.JWTSecret, 15*time.Minute)

	avatars := storage.NewFileStore(cfg.UploadDir, "uploads")

	//Usecase生成
	registerUC := auth.NewRegisterUserUsecase(userRepo, hasher, opts.Clock, logger)
	loginUC := auth.NewLoginUsecase(userRepo, sessionRepo, verifier, issuer, auth.RandomTokenGenerator{}, opts.Clock, cfg.SessionTTL, cfg.RememberTTL, logger)
	sessionUC := auth.NewSessionUsecase(sessionRepo, userRepo, opts.Clock, logger)

	catalogUC := usecase.NewCatalogUsecase(productRepo, categoryRepo, artisanRepo, phonetic, logger)
	cartUC := usecase.NewCartUsecase(cartRepo, productRepo, logger)
	favoriteUC := usecase.NewFavoriteUsecase(favoriteRepo, productRepo, logger)
	orderUC := usecase.NewOrderUsecase(txManager, orderRepo, orderItemRepo, policy, nil, opts.Clock.Now, logger)
	profileUC := usecase.NewProfileUsecase(userRepo, hasher, verifier, avatars, cfg.AvatarMaxBytes, logger)

	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, err
	}

	//Handler生成
	e := server.New(cfg, logger)
	server.RegisterRoutes(e, server.Routes{
		Auth:     handler.NewAuthHandler(registerUC, loginUC, sessionUC, cfg.CookieSecure),
		Catalog:  handler.NewCatalogHandler(catalogUC),
		Cart:     handler.NewCartHandler(cartUC),
		Favorite: handler.NewFavoriteHandler(favoriteUC),
		Order:    handler.NewOrderHandler(orderUC),
		Profile:  handler.NewProfileHandler(profileUC, orderUC, cfg.AvatarMaxBytes),
		Health:   handler.NewHealthHandler(sqlDB),

		Sessions: sessionUC,
		Tokens:   issuer,

		UploadDir:        avatars.Dir(),
		AuthRateLimit:    cfg.AuthRateLimit,
		AuthLegacyUserID: cfg.AuthLegacyUserID,
	})
	return e, nil
}

// Migrate はスキーマを作る。soundexが使えなければfalse（エラーにはしない）
func Migrate(ctx context.Context, gdb *gorm.DB, logger *log.Logger) (phoneticOK bool, err error) {
	err = db.Migrate(ctx, gdb)
	if errors.Is(err, db.ErrPhoneticUnavailable) {
		logger.Warnf("phonetic search disabled: %v", err)
		return false, nil
	}
	return err == nil, err
}
