package repository

import (
	"context"
	"errors"
	"time"

	"handicrafts/internal/domain/model"
	domainrepo "handicrafts/internal/repository"

	"gorm.io/gorm"
)

type userGormRepository struct {
	db *gorm.DB
}

// DI
// main.goでこれをnewしてusecaseに注入します。
func NewUserGormRepository(db *gorm.DB) domainrepo.UserRepository {
	return &userGormRepository{db: db}
}

// Create はユーザーを新規作成
func (r *userGormRepository) Create(ctx context.Context, user *model.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if isDuplicateKey(err) {
			return domainrepo.ErrDuplicate
		}
		return err
	}
	return nil
}

// emailでユーザーを1件取得
func (r *userGormRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var u model.User

	err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&u).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainrepo.ErrNotFound
		}
		return nil, err
	}

	return &u, nil
}

// IDでユーザーを1件取得
func (r *userGormRepository) FindByID(ctx context.Context, id int64) (*model.User, error) {
	var u model.User

	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&u).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainrepo.ErrNotFound
		}
		return nil, err
	}

	return &u, nil
}

func (r *userGormRepository) EmailTakenByOther(ctx context.Context, email string, userID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("email = ? AND id <> ?", email, userID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// last_loginを更新
func (r *userGormRepository) TouchLastLogin(ctx context.Context, id int64, at time.Time) error {
	return r.updateColumns(ctx, id, map[string]interface{}{"last_login": at})
}

func (r *userGormRepository) UpdateProfile(ctx context.Context, id int64, in domainrepo.ProfileUpdate) error {
	err := r.updateColumns(ctx, id, map[string]interface{}{
		"first_name":  in.FirstName,
		"last_name":   in.LastName,
		"email":       in.Email,
		"phone":       in.Phone,
		"address":     in.Address,
		"city":        in.City,
		"postal_code": in.PostalCode,
	})
	if isDuplicateKey(err) {
		return domainrepo.ErrDuplicate
	}
	return err
}

func (r *userGormRepository) UpdatePassword(ctx context.Context, id int64, hashed string) error {
	return r.updateColumns(ctx, id, map[string]interface{}{"password": hashed})
}

func (r *userGormRepository) UpdateProfileImage(ctx context.Context, id int64, path string) error {
	return r.updateColumns(ctx, id, map[string]interface{}{"profile_image": path})
}

func (r *userGormRepository) updateColumns(ctx context.Context, id int64, cols map[string]interface{}) error {
	res := r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("id = ?", id).
		Updates(cols)

	if res.Error != nil {
		return res.Error
	}

	// 0件更新は「対象がない」
	if res.RowsAffected == 0 {
		return domainrepo.ErrNotFound
	}
	return nil
}
