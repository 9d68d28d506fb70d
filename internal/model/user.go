package model

import "time"

type User struct {
	ID        uint64 `gorm:"primaryKey"`
	Username  string `gorm:"uniqueIndex;size:50;not null"`
	Email     string `gorm:"uniqueIndex;size:50;not null"`
	Password  string `gorm:"size:100;not null"`
	Info      string `gorm:"type:text"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
