package model

import (
	"time"

	"gorm.io/gorm"
)

// ImageRef 原始文件名与存储文件名，二者要么同时存在，要么同时为空
type ImageRef struct {
	OriginalFilename *string `gorm:"size:255"`
	StoredFilename   *string `gorm:"size:300"`
}

func NewImageRef(original, stored string) ImageRef {
	return ImageRef{OriginalFilename: &original, StoredFilename: &stored}
}

func (r ImageRef) Present() bool {
	return r.OriginalFilename != nil && r.StoredFilename != nil
}

type Post struct {
	ID        uint64   `gorm:"primaryKey"`
	ClubID    uint64   `gorm:"not null;index"`
	AuthorID  uint64   `gorm:"not null;index"`
	Title     string   `gorm:"size:200;not null"`
	Content   string   `gorm:"type:text"`
	Image     ImageRef `gorm:"embedded"`
	LikeCount int64    `gorm:"not null;default:0"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

type Comment struct {
	ID        uint64 `gorm:"primaryKey"`
	PostID    uint64 `gorm:"not null;index"`
	AuthorID  uint64 `gorm:"not null;index"`
	Content   string `gorm:"type:text;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}
