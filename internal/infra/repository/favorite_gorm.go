package repository

import (
	"context"

	"handicrafts/internal/domain/model"
	repo "handicrafts/internal/repository"

	"gorm.io/gorm"
)

type FavoriteGormRepository struct {
	db *gorm.DB
}

func NewFavoriteGormRepository(db *gorm.DB) *FavoriteGormRepository {
	return &FavoriteGormRepository{db: db}
}

// お気に入り一覧（登録の新しい順）
func (r *FavoriteGormRepository) List(ctx context.Context, userID int64) ([]repo.FavoriteRow, error) {
	rows := []repo.FavoriteRow{}

	err := r.db.WithContext(ctx).
		Table("favorites AS f").
		Select("p.id, p.name, COALESCE(p.description, '') AS description, COALESCE(p.short_description, '') AS short_description," +
			" p.price, p.original_price, p.discount_percentage, COALESCE(p.image, '') AS image, p.stock_quantity," +
			" COALESCE(a.name, '') AS artisan_name, f.created_at AS favorited_at").
		Joins("JOIN products p ON p.id = f.product_id").
		Joins("LEFT JOIN artisans a ON a.id = p.artisan_id").
		Where("f.user_id = ?", userID).
		Order("f.created_at desc").Order("f.id desc").
		Scan(&rows).Error
	if err != nil {
		return []repo.FavoriteRow{}, err
	}
	return rows, nil
}

func (r *FavoriteGormRepository) Exists(ctx context.Context, userID int64, productID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Favorite{}).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *FavoriteGormRepository) Add(ctx context.Context, userID int64, productID int64) error {
	err := r.db.WithContext(ctx).Create(&model.Favorite{UserID: userID, ProductID: productID}).Error
	if isDuplicateKey(err) {
		return repo.ErrDuplicate
	}
	return err
}

func (r *FavoriteGormRepository) Remove(ctx context.Context, userID int64, productID int64) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&model.Favorite{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *FavoriteGormRepository) Count(ctx context.Context, userID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Favorite{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}
