package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"handicrafts/internal/app"
	"handicrafts/internal/config"
	"handicrafts/internal/infra/db"
	"handicrafts/internal/infra/logging"
	"handicrafts/internal/search"
	"handicrafts/internal/server"

	"github.com/joho/godotenv"
)

func main() {
	// .envは任意（本番は環境変数）
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	logger := logging.New(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	//DB接続
	gormDB, err := db.Open(db.FromEnv())
	if err != nil {
		logger.Fatalf("db open: %v", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatalf("db: %v", err)
	}
	defer sqlDB.Close()

	phoneticOK, err := app.Migrate(ctx, gormDB, logger)
	if err != nil {
		logger.Fatalf("migrate: %v", err)
	}

	opts := app.Options{}
	if !phoneticOK {
		none := search.PhoneticNone
		opts.Phonetic = &none
	}

	e, err := app.Build(cfg, gormDB, logger, opts)
	if err != nil {
		logger.Fatalf("build: %v", err)
	}

	//Server起動
	if err := server.Start(ctx, e, cfg.Addr()); err != nil {
		logger.Fatalf("server: %v", err)
	}
	logger.Info("server stopped")
}
