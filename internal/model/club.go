package model

import "time"

type Category struct {
	ID        uint64 `gorm:"primaryKey"`
	Name      string `gorm:"uniqueIndex;size:64;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Club struct {
	ID         uint64 `gorm:"primaryKey"`
	Title      string `gorm:"size:100;not null;index"`
	Content    string `gorm:"type:text"`
	CategoryID uint64 `gorm:"not null;index"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
