package db

import (
	"context"

	"handicrafts/internal/domain/model"

	"gorm.io/gorm"
)

type TableCount struct {
	Table string
	Rows  int64
}

type CategoryStat struct {
	Name     string
	Products int64
	Stock    int64
}

// テーブルごとの件数
func TableCounts(ctx context.Context, gdb *gorm.DB) ([]TableCount, error) {
	out := make([]TableCount, 0, len(model.All()))
	for _, m := range model.All() {
		stmt := &gorm.Statement{DB: gdb}
		if err := stmt.Parse(m); err != nil {
			return nil, err
		}
		var n int64
		if err := gdb.WithContext(ctx).Model(m).Count(&n).Error; err != nil {
			return nil, err
		}
		out = append(out, TableCount{Table: stmt.Schema.Table, Rows: n})
	}
	return out, nil
}

// カテゴリ別の公開商品数と在庫合計
func CategoryStats(ctx context.Context, gdb *gorm.DB) ([]CategoryStat, error) {
	var out []CategoryStat
	err := gdb.WithContext(ctx).Raw(
		"SELECT c.name AS name, COUNT(p.id) AS products, COALESCE(SUM(p.stock_quantity), 0) AS stock"+
			" FROM categories c LEFT JOIN products p ON p.category_id = c.id AND p.status = ?"+
			" GROUP BY c.id, c.name ORDER BY c.name", model.ProductStatusActive,
	).Scan(&out).Error
	return out, err
}
