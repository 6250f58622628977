package repository

import (
	"context"
	"errors"

	"handicrafts/internal/domain/model"
	domainrepo "handicrafts/internal/repository"

	"gorm.io/gorm"
)

type CategoryGormRepository struct {
	db *gorm.DB
}

func NewCategoryGormRepository(db *gorm.DB) *CategoryGormRepository {
	return &CategoryGormRepository{db: db}
}

func (r *CategoryGormRepository) List(ctx context.Context) ([]model.Category, error) {
	var cs []model.Category
	if err := r.db.WithContext(ctx).Order("name asc").Find(&cs).Error; err != nil {
		return []model.Category{}, err
	}
	return cs, nil
}

type ArtisanGormRepository struct {
	db *gorm.DB
}

func NewArtisanGormRepository(db *gorm.DB) *ArtisanGormRepository {
	return &ArtisanGormRepository{db: db}
}

func (r *ArtisanGormRepository) List(ctx context.Context) ([]model.Artisan, error) {
	var as []model.Artisan
	if err := r.db.WithContext(ctx).Order("name asc").Find(&as).Error; err != nil {
		return []model.Artisan{}, err
	}
	return as, nil
}

func (r *ArtisanGormRepository) FindByID(ctx context.Context, id int64) (model.Artisan, error) {
	var a model.Artisan
	err := r.db.WithContext(ctx).First(&a, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Artisan{}, domainrepo.ErrNotFound
	}
	if err != nil {
		return model.Artisan{}, err
	}
	return a, nil
}
