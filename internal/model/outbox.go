package model

import "time"

const (
	EventClubCreated  = "club.created"
	EventClubDeleted  = "club.deleted"
	EventMemberJoined = "member.joined"
	EventMemberLeft   = "member.left"
	EventPostDeleted  = "post.deleted"
)

const (
	OutboxPending = 0
	OutboxSent    = 1
	OutboxFailed  = 2
)

// ClubOutbox 社团事件发件箱，与业务写入同一事务落库，由 relayer 异步投递到 kafka
type ClubOutbox struct {
	ID        uint64 `gorm:"primaryKey"`
	EventType string `gorm:"size:32;not null"`
	ClubID    uint64 `gorm:"not null;index"`
	UserID    uint64 `gorm:"not null"`
	Payload   string `gorm:"type:json;not null"`
	Status    int8   `gorm:"not null;default:0;index"` // 0=pending,1=sent,2=failed
	Retry     int    `gorm:"not null;default:0"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (ClubOutbox) TableName() string { return "club_outbox" }
