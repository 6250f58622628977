package db

import (
	"context"
	"errors"
	"fmt"

	"handicrafts/internal/domain/model"

	"gorm.io/gorm"
)

// fuzzystrmatch（soundex）が使えないときに返す。スキーマ自体は作成済み
var ErrPhoneticUnavailable = errors.New("phonetic functions unavailable")

// Migrate は全テーブルを作成する。
func Migrate(ctx context.Context, gdb *gorm.DB) error {
	if err := gdb.WithContext(ctx).AutoMigrate(model.All()...); err != nil {
		return err
	}

	// postgresのsoundex()は拡張が必要
	if Dialect(gdb) == DriverPostgres {
		if err := gdb.WithContext(ctx).Exec("CREATE EXTENSION IF NOT EXISTS fuzzystrmatch").Error; err != nil {
			return fmt.Errorf("%w: %v", ErrPhoneticUnavailable, err)
		}
	}
	return nil
}
