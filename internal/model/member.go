package model

import "time"

// Role 社团成员角色，只有 ADMIN / MEMBER 两种取值
type Role string

const (
	RoleAdmin  Role = "ADMIN"
	RoleMember Role = "MEMBER"
)

func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleMember
}

// Satisfies 判断当前角色是否满足 required 的要求：ADMIN 满足一切，MEMBER 只满足 MEMBER
func (r Role) Satisfies(required Role) bool {
	switch required {
	case RoleAdmin:
		return r == RoleAdmin
	case RoleMember:
		return r.Valid()
	default:
		return false
	}
}

type ClubMember struct {
	ID        uint64 `gorm:"primaryKey"`
	ClubID    uint64 `gorm:"not null;index;uniqueIndex:uk_club_user"`
	UserID    uint64 `gorm:"not null;index;uniqueIndex:uk_club_user"`
	Role      Role   `gorm:"size:16;not null;default:'MEMBER'"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
