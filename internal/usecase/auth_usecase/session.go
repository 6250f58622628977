package auth

import (
	"context"
	"errors"

	"handicrafts/internal/domain/model"
	"handicrafts/internal/repository"
)

// セッションが無い・期限切れ・ユーザー停止
var ErrUnauthenticated = errors.New("unauthenticated")

type SessionUsecase struct {
	sessionRepo repository.SessionRepository
	userRepo    repository.UserRepository
	clock       Clock
	log         Logger
}

// DI
func NewSessionUsecase(
	sessionRepo repository.SessionRepository,
	userRepo repository.UserRepository,
	clock Clock,
	log Logger,
) *SessionUsecase {
	return &SessionUsecase{
		sessionRepo: sessionRepo,
		userRepo:    userRepo,
		clock:       clock,
		log:         log,
	}
}

// tokenから有効なセッションとactiveなユーザーを引く
func (u *SessionUsecase) Current(ctx context.Context, token string) (*model.User, *model.Session, error) {
	if token == "" {
		return nil, nil, ErrUnauthenticated
	}

	s, err := u.sessionRepo.FindActive(ctx, token, u.clock.Now())
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil, ErrUnauthenticated
	}
	if err != nil {
		return nil, nil, err
	}

	user, err := u.ActiveUser(ctx, s.UserID)
	if err != nil {
		return nil, nil, err
	}
	return user, s, nil
}

// 存在してactiveなユーザーだけ返す
func (u *SessionUsecase) ActiveUser(ctx context.Context, userID int64) (*model.User, error) {
	if userID <= 0 {
		return nil, ErrUnauthenticated
	}
	user, err := u.userRepo.FindByID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrUnauthenticated
	}
	if err != nil {
		return nil, err
	}
	if !user.IsActive() {
		return nil, ErrUnauthenticated
	}
	user.Password = ""
	return user, nil
}

// セッション行を消す。無い場合も成功扱い
func (u *SessionUsecase) Logout(ctx context.Context, userID int64, token string, ip string, ua string) error {
	if token == "" {
		return nil
	}
	if err := u.sessionRepo.DeleteByToken(ctx, token); err != nil && !errors.Is(err, repository.ErrNotFound) {
		return err
	}
	u.log.Infof("security: event=logout user=%d ip=%s ua=%q", userID, ip, ua)
	return nil
}
