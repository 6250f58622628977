package repository

import (
	"context"

	"handicrafts/internal/domain/model"
)

type CategoryRepository interface {
	// 名前順
	List(ctx context.Context) ([]model.Category, error)
}

type ArtisanRepository interface {
	// 名前順
	List(ctx context.Context) ([]model.Artisan, error)
	FindByID(ctx context.Context, artisanID int64) (model.Artisan, error)
}
