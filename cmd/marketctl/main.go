package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"handicrafts/internal/app"
	"handicrafts/internal/infra/db"
	"handicrafts/internal/infra/logging"
	infraRepo "handicrafts/internal/infra/repository"
	auth "handicrafts/internal/usecase/auth_usecase"

	"github.com/joho/godotenv"
	"github.com/olekukonko/tablewriter"
	"gorm.io/gorm"
)

// 運用コマンド: migrate / seed / stats / purge-sessions
func main() {
	var (
		migrate       = flag.Bool("migrate", false, "create or update tables")
		seed          = flag.Bool("seed", false, "insert demo catalog (and demo user with -demo-email)")
		stats         = flag.Bool("stats", false, "print row counts")
		purgeSessions = flag.Bool("purge-sessions", false, "delete expired sessions")
		demoEmail     = flag.String("demo-email", "", "demo user email for -seed")
		demoPassword  = flag.String("demo-password", "password123", "demo user password for -seed")
	)
	flag.Parse()

	_ = godotenv.Load()
	logger := logging.New(os.Getenv("LOG_LEVEL"))

	if !*migrate && !*seed && !*stats && !*purgeSessions {
		flag.Usage()
		os.Exit(2)
	}

	gdb, err := db.Open(db.FromEnv())
	if err != nil {
		logger.Fatalf("db open: %v", err)
	}
	ctx := context.Background()

	if *migrate {
		if _, err := app.Migrate(ctx, gdb, logger); err != nil {
			logger.Fatalf("migrate: %v", err)
		}
		logger.Info("migrate: done")
	}

	if *seed {
		if err := runSeed(ctx, gdb, *demoEmail, *demoPassword); err != nil {
			logger.Fatalf("seed: %v", err)
		}
		logger.Info("seed: done")
	}

	if *purgeSessions {
		n, err := infraRepo.NewSessionGormRepository(gdb).DeleteExpired(ctx, time.Now())
		if err != nil {
			logger.Fatalf("purge sessions: %v", err)
		}
		logger.Infof("purge sessions: %d removed", n)
	}

	if *stats {
		if err := printStats(ctx, gdb, os.Stdout); err != nil {
			logger.Fatalf("stats: %v", err)
		}
	}
}

func runSeed(ctx context.Context, gdb *gorm.DB, email string, password string) error {
	cfg := db.SeedConfig{}
	if email != "" {
		hash, err := auth.NewBcryptPasswordHasher(app.BcryptCost).Hash(password)
		if err != nil {
			return err
		}
		cfg.DemoEmail = email
		cfg.DemoPasswordHash = hash
	}
	return db.Seed(ctx, gdb, cfg)
}

func printStats(ctx context.Context, gdb *gorm.DB, w io.Writer) error {
	counts, err := db.TableCounts(ctx, gdb)
	if err != nil {
		return err
	}
	t := tablewriter.NewWriter(w)
	t.Header("Table", "Rows")
	for _, c := range counts {
		if err := t.Append(c.Table, fmt.Sprint(c.Rows)); err != nil {
			return err
		}
	}
	if err := t.Render(); err != nil {
		return err
	}

	cats, err := db.CategoryStats(ctx, gdb)
	if err != nil {
		return err
	}
	t = tablewriter.NewWriter(w)
	t.Header("Category", "Active products", "Stock")
	for _, c := range cats {
		if err := t.Append(c.Name, fmt.Sprint(c.Products), fmt.Sprint(c.Stock)); err != nil {
			return err
		}
	}
	return t.Render()
}
