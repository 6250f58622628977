package repository

import (
	"context"
	"time"

	"handicrafts/internal/domain/model"
)

type SessionRepository interface {
	Create(ctx context.Context, s *model.Session) error
	// 期限切れの行と、そのユーザーの既存セッションを削除する
	PurgeForUser(ctx context.Context, userID int64, now time.Time) (int64, error)
	// 期限内のセッションだけ返す。無ければErrNotFound
	FindActive(ctx context.Context, token string, now time.Time) (*model.Session, error)
	DeleteByToken(ctx context.Context, token string) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
