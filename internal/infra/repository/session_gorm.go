package repository

import (
	"context"
	"errors"
	"time"

	"handicrafts/internal/domain/model"
	domainrepo "handicrafts/internal/repository"

	"gorm.io/gorm"
)

type sessionGormRepository struct {
	db *gorm.DB
}

// DI
func NewSessionGormRepository(db *gorm.DB) domainrepo.SessionRepository {
	return &sessionGormRepository{db: db}
}

func (r *sessionGormRepository) Create(ctx context.Context, s *model.Session) error {
	return r.db.WithContext(ctx).Create(s).Error
}

// 期限切れ + 同じユーザーの古いセッションを消す（1ユーザー1セッション）
func (r *sessionGormRepository) PurgeForUser(ctx context.Context, userID int64, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("expires_at < ? OR user_id = ?", now, userID).
		Delete(&model.Session{})
	return res.RowsAffected, res.Error
}

func (r *sessionGormRepository) FindActive(ctx context.Context, token string, now time.Time) (*model.Session, error) {
	var s model.Session

	err := r.db.WithContext(ctx).
		Where("session_token = ? AND expires_at > ?", token, now).
		First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domainrepo.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// ログアウト。既に無い場合もエラーにしない
func (r *sessionGormRepository) DeleteByToken(ctx context.Context, token string) error {
	return r.db.WithContext(ctx).
		Where("session_token = ?", token).
		Delete(&model.Session{}).Error
}

func (r *sessionGormRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("expires_at < ?", now).
		Delete(&model.Session{})
	return res.RowsAffected, res.Error
}
