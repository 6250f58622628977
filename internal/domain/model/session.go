package model

import "time"

// ログインセッション。tokenはcookie(auth_token)と同じ値。
type Session struct {
	ID           int64     `gorm:"primaryKey;autoIncrement"`
	UserID       int64     `gorm:"not null;index"`
	SessionToken string    `gorm:"type:varchar(64);not null;uniqueIndex"`
	ExpiresAt    time.Time `gorm:"not null;index"`
	IPAddress    string    `gorm:"type:varchar(45)"`
	UserAgent    string    `gorm:"type:text"`
	CreatedAt    time.Time `gorm:"not null;autoCreateTime"`
}

func (Session) TableName() string {
	return "user_sessions"
}

func (s Session) IsExpired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
