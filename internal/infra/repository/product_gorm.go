package repository

import (
	"context"
	"errors"
	"strings"

	"handicrafts/internal/domain/model"
	repo "handicrafts/internal/repository"

	"gorm.io/gorm"
)

const (
	productRowSelect = "p.*, COALESCE(c.name, '') AS category_name, COALESCE(a.name, '') AS artisan_name"

	// 関連度（どの条件でヒットしたかではなく、%q% を含むかで判定）
	relevanceSelect = "CASE" +
		" WHEN LOWER(p.name) LIKE LOWER(?) THEN 100" +
		" WHEN LOWER(p.short_description) LIKE LOWER(?) THEN 80" +
		" WHEN LOWER(c.name) LIKE LOWER(?) THEN 70" +
		" WHEN LOWER(a.name) LIKE LOWER(?) THEN 60" +
		" ELSE 50 END AS relevance_score"
)

type ProductGormRepository struct {
	db *gorm.DB
}

// DI
func NewProductGormRepository(db *gorm.DB) *ProductGormRepository {
	return &ProductGormRepository{db: db}
}

// products p / categories c / artisans a を結合した公開商品
func (r *ProductGormRepository) active(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("products AS p").
		Joins("LEFT JOIN categories c ON c.id = p.category_id").
		Joins("LEFT JOIN artisans a ON a.id = p.artisan_id").
		Where("p.status = ?", model.ProductStatusActive)
}

// 公開商品を新しい順で返す。
func (r *ProductGormRepository) ListActive(ctx context.Context, page repo.Page) ([]repo.ProductRow, int64, error) {
	var total int64
	if err := r.active(ctx).Count(&total).Error; err != nil {
		return []repo.ProductRow{}, 0, err
	}

	rows := []repo.ProductRow{}
	err := r.active(ctx).
		Select(productRowSelect).
		Order("p.created_at desc").Order("p.id desc").
		Offset(page.Offset).Limit(page.Limit).
		Scan(&rows).Error
	if err != nil {
		return []repo.ProductRow{}, 0, err
	}
	return rows, total, nil
}

// 商品詳細（カテゴリ・職人の表示項目付き）
func (r *ProductGormRepository) FindActiveDetail(ctx context.Context, id int64) (repo.ProductDetail, error) {
	var rows []repo.ProductDetail
	err := r.active(ctx).
		Select(productRowSelect+
			", COALESCE(a.bio, '') AS artisan_bio"+
			", COALESCE(a.image, '') AS artisan_image"+
			", COALESCE(a.location, '') AS artisan_location"+
			", COALESCE(a.speciality, '') AS artisan_speciality").
		Where("p.id = ?", id).
		Limit(1).
		Scan(&rows).Error
	if err != nil {
		return repo.ProductDetail{}, err
	}
	if len(rows) == 0 {
		return repo.ProductDetail{}, repo.ErrNotFound
	}
	return rows[0], nil
}

func (r *ProductGormRepository) ListActiveByCategory(ctx context.Context, categoryID int64) ([]repo.ProductRow, error) {
	rows := []repo.ProductRow{}
	err := r.active(ctx).
		Select(productRowSelect).
		Where("p.category_id = ?", categoryID).
		Order("p.created_at desc").Order("p.id desc").
		Scan(&rows).Error
	if err != nil {
		return []repo.ProductRow{}, err
	}
	return rows, nil
}

func (r *ProductGormRepository) ListActiveByArtisan(ctx context.Context, artisanID int64) ([]model.Product, error) {
	var products []model.Product
	err := r.db.WithContext(ctx).
		Where("artisan_id = ? AND status = ?", artisanID, model.ProductStatusActive).
		Order("created_at desc").Order("id desc").
		Find(&products).Error
	if err != nil {
		return []model.Product{}, err
	}
	return products, nil
}

// 展開済みの条件をORで結合して検索し、関連度順に並べる
func (r *ProductGormRepository) Search(ctx context.Context, q repo.SearchQuery) ([]repo.SearchRow, int64, error) {
	if len(q.Conditions) == 0 {
		return []repo.SearchRow{}, 0, nil
	}
	where := "(" + strings.Join(q.Conditions, " OR ") + ")"

	var total int64
	if err := r.active(ctx).Where(where, q.Params...).Count(&total).Error; err != nil {
		return []repo.SearchRow{}, 0, err
	}

	like := "%" + q.Query + "%"
	tx := r.active(ctx).
		Select(productRowSelect+", "+relevanceSelect, like, like, like, like).
		Where(where, q.Params...).
		Order("relevance_score desc").Order("p.created_at desc").Order("p.id desc")
	if q.Page.Limit > 0 {
		tx = tx.Offset(q.Page.Offset).Limit(q.Page.Limit)
	}

	rows := []repo.SearchRow{}
	if err := tx.Scan(&rows).Error; err != nil {
		return []repo.SearchRow{}, 0, err
	}
	return rows, total, nil
}

// カテゴリ・職人・キーワードのAND条件
func (r *ProductGormRepository) Filter(ctx context.Context, q repo.FilterQuery) ([]repo.ProductRow, int64, error) {
	scope := func(tx *gorm.DB) *gorm.DB {
		if q.CategoryID > 0 {
			tx = tx.Where("p.category_id = ?", q.CategoryID)
		}
		if q.ArtisanID > 0 {
			tx = tx.Where("p.artisan_id = ?", q.ArtisanID)
		}
		if s := strings.TrimSpace(q.Search); s != "" {
			like := "%" + s + "%"
			tx = tx.Where("(LOWER(p.name) LIKE LOWER(?) OR LOWER(p.description) LIKE LOWER(?) OR LOWER(p.short_description) LIKE LOWER(?)"+
				" OR LOWER(c.name) LIKE LOWER(?) OR LOWER(a.name) LIKE LOWER(?))", like, like, like, like, like)
		}
		return tx
	}

	var total int64
	if err := r.active(ctx).Scopes(scope).Count(&total).Error; err != nil {
		return []repo.ProductRow{}, 0, err
	}

	tx := r.active(ctx).Scopes(scope).Select(productRowSelect)

	//sort
	switch q.Sort {
	case "price_low":
		tx = tx.Order("p.price asc").Order("p.id asc")
	case "price_high":
		tx = tx.Order("p.price desc").Order("p.id desc")
	case "name":
		tx = tx.Order("p.name asc").Order("p.id asc")
	default:
		tx = tx.Order("p.created_at desc").Order("p.id desc")
	}

	rows := []repo.ProductRow{}
	if err := tx.Offset(q.Page.Offset).Limit(q.Page.Limit).Scan(&rows).Error; err != nil {
		return []repo.ProductRow{}, 0, err
	}
	return rows, total, nil
}

// ファセット件数。カテゴリ側は職人+キーワード、職人側はカテゴリ+キーワードで絞る
func (r *ProductGormRepository) FacetCounts(ctx context.Context, q repo.FilterQuery) (repo.FacetCounts, error) {
	out := repo.FacetCounts{Categories: []repo.FacetCount{}, Artisans: []repo.FacetCount{}}

	searchCond, searchArgs := "", []interface{}{}
	if s := strings.TrimSpace(q.Search); s != "" {
		like := "%" + s + "%"
		searchCond = " AND (LOWER(p.name) LIKE LOWER(?) OR LOWER(p.description) LIKE LOWER(?) OR LOWER(p.short_description) LIKE LOWER(?))"
		searchArgs = append(searchArgs, like, like, like)
	}

	//カテゴリ
	catJoin := "LEFT JOIN products p ON p.category_id = c.id AND p.status = ?"
	catArgs := []interface{}{model.ProductStatusActive}
	if q.ArtisanID > 0 {
		catJoin += " AND p.artisan_id = ?"
		catArgs = append(catArgs, q.ArtisanID)
	}
	catJoin += searchCond
	catArgs = append(catArgs, searchArgs...)

	err := r.db.WithContext(ctx).Raw(
		"SELECT c.id, c.name, COUNT(p.id) AS count FROM categories c "+catJoin+
			" GROUP BY c.id, c.name ORDER BY c.name", catArgs...,
	).Scan(&out.Categories).Error
	if err != nil {
		return repo.FacetCounts{}, err
	}

	//職人
	artJoin := "LEFT JOIN products p ON p.artisan_id = a.id AND p.status = ?"
	artArgs := []interface{}{model.ProductStatusActive}
	if q.CategoryID > 0 {
		artJoin += " AND p.category_id = ?"
		artArgs = append(artArgs, q.CategoryID)
	}
	artJoin += searchCond
	artArgs = append(artArgs, searchArgs...)

	err = r.db.WithContext(ctx).Raw(
		"SELECT a.id, a.name, COUNT(p.id) AS count FROM artisans a "+artJoin+
			" GROUP BY a.id, a.name ORDER BY a.name", artArgs...,
	).Scan(&out.Artisans).Error
	if err != nil {
		return repo.FacetCounts{}, err
	}

	return out, nil
}

// IDで商品を取得（status問わず）
func (r *ProductGormRepository) FindByID(ctx context.Context, id int64) (model.Product, error) {
	var p model.Product
	err := r.db.WithContext(ctx).First(&p, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Product{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Product{}, err
	}
	return p, nil
}
