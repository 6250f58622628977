package model

import "time"

type Artisan struct {
	ID         int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name       string    `gorm:"type:varchar(150);not null" json:"name"`
	Bio        string    `gorm:"type:text" json:"bio"`
	Image      string    `gorm:"type:varchar(255)" json:"image"`
	Location   string    `gorm:"type:varchar(150)" json:"location"`
	Speciality string    `gorm:"type:varchar(150)" json:"speciality"`
	CreatedAt  time.Time `gorm:"not null;autoCreateTime" json:"-"`
}
