package dto

import (
	"time"

	"HobbyHop/internal/model"
)

type CreateClubReq struct {
	Title      string `json:"title" binding:"required,max=100"`
	Content    string `json:"content"`
	CategoryID uint64 `json:"category_id" binding:"required"`
}

// UpdateClubReq 部分更新：为 nil 的字段保持不变
type UpdateClubReq struct {
	Title      *string `json:"title" binding:"omitempty,min=1,max=100"`
	Content    *string `json:"content"`
	CategoryID *uint64 `json:"category_id"`
}

type ClubResp struct {
	ID         uint64    `json:"id"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	CategoryID uint64    `json:"category_id"`
	CreatedAt  time.Time `json:"created_at"`
	ModifiedAt time.Time `json:"modified_at"`
}

func NewClubResp(c *model.Club) ClubResp {
	return ClubResp{
		ID:         c.ID,
		Title:      c.Title,
		Content:    c.Content,
		CategoryID: c.CategoryID,
		CreatedAt:  c.CreatedAt,
		ModifiedAt: c.UpdatedAt,
	}
}

type CategoryResp struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

type MemberResp struct {
	ClubID   uint64     `json:"club_id"`
	UserID   uint64     `json:"user_id"`
	Role     model.Role `json:"role"`
	JoinedAt time.Time  `json:"joined_at"`
}

func NewMemberResp(m *model.ClubMember) MemberResp {
	return MemberResp{
		ClubID:   m.ClubID,
		UserID:   m.UserID,
		Role:     m.Role,
		JoinedAt: m.CreatedAt,
	}
}
