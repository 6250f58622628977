package model

import (
	"strings"
	"time"
)

type UserStatus string

const (
	UserStatusActive   UserStatus = "active"
	UserStatusInactive UserStatus = "inactive"
)

const OAuthProviderLocal = "local"

type User struct {
	ID            int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	FirstName     string     `gorm:"type:varchar(100);not null" json:"first_name"`
	LastName      string     `gorm:"type:varchar(100);not null" json:"last_name"`
	Email         string     `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Phone         string     `gorm:"type:varchar(30)" json:"phone"`
	Password      string     `gorm:"type:varchar(255);not null" json:"-"` // bcryptハッシュ
	Address       string     `gorm:"type:text" json:"address"`
	City          string     `gorm:"type:varchar(100)" json:"city"`
	PostalCode    string     `gorm:"type:varchar(20)" json:"postal_code"`
	ProfileImage  string     `gorm:"type:varchar(255)" json:"profile_image"`
	OAuthProvider string     `gorm:"column:oauth_provider;type:varchar(20);not null;default:'local'" json:"-"`
	IsVerified    bool       `gorm:"not null;default:false" json:"is_verified"`
	Status        UserStatus `gorm:"type:varchar(20);not null;default:'active';index" json:"status"`
	LastLogin     *time.Time `json:"last_login"`
	CreatedAt     time.Time  `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time  `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

func (u User) IsActive() bool {
	return u.Status == UserStatusActive
}

// 表示名（姓名を半角スペースで連結）
func (u User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}
