package repository_test

import (
	"context"
	"io"
	"testing"

	"handicrafts/internal/domain/model"
	"handicrafts/internal/infra/db"
	infraRepo "handicrafts/internal/infra/repository"

	"github.com/labstack/gommon/log"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// seed済みのインメモリSQLite
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	gdb, err := db.Open(db.Config{
		Driver:     db.DriverSQLite,
		SQLitePath: ":memory:",
		LogLevel:   "silent",
	})
	require.NoError(t, err)

	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	ctx := context.Background()
	require.NoError(t, db.Migrate(ctx, gdb))
	require.NoError(t, db.Seed(ctx, gdb, db.SeedConfig{}))
	return gdb
}

func discardLogger() *log.Logger {
	l := log.New("test")
	l.SetOutput(io.Discard)
	return l
}

func productByName(t *testing.T, gdb *gorm.DB, name string) model.Product {
	t.Helper()
	var p model.Product
	require.NoError(t, gdb.Where("name = ?", name).First(&p).Error)
	return p
}

func createUser(t *testing.T, gdb *gorm.DB, email string) *model.User {
	t.Helper()
	u := &model.User{
		FirstName:     "Test",
		LastName:      "User",
		Email:         email,
		Password:      "x",
		OAuthProvider: model.OAuthProviderLocal,
		Status:        model.UserStatusActive,
	}
	require.NoError(t, infraRepo.NewUserGormRepository(gdb).Create(context.Background(), u))
	return u
}

func stockOf(t *testing.T, gdb *gorm.DB, productID int64) int64 {
	t.Helper()
	var p model.Product
	require.NoError(t, gdb.First(&p, productID).Error)
	return p.StockQuantity
}
