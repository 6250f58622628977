package repository

import (
	"context"
	"time"

	"handicrafts/internal/domain/model"
)

// プロフィール更新で書き換える項目
type ProfileUpdate struct {
	FirstName  string
	LastName   string
	Email      string
	Phone      string
	Address    string
	City       string
	PostalCode string
}

// 保存・取得を約束
type UserRepository interface {
	//新規ユーザー作成（email重複はErrDuplicate）
	Create(ctx context.Context, user *model.User) error
	// IDからユーザーを1件取得する。
	FindByID(ctx context.Context, userID int64) (*model.User, error)
	//メールからユーザーを一件取得する。比較はDBの照合順序に従う
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	// 自分以外がそのemailを使っているか
	EmailTakenByOther(ctx context.Context, email string, userID int64) (bool, error)
	//最終ログイン日時を更新
	TouchLastLogin(ctx context.Context, userID int64, at time.Time) error
	UpdateProfile(ctx context.Context, userID int64, in ProfileUpdate) error
	UpdatePassword(ctx context.Context, userID int64, hashed string) error
	UpdateProfileImage(ctx context.Context, userID int64, path string) error
}
