package dto

import (
	"io"
	"time"

	"HobbyHop/internal/model"
)

type CreatePostReq struct {
	Title   string `json:"title" binding:"required,max=200"`
	Content string `json:"content"`
}

// ModifyPostReq 部分更新：为 nil 的字段保持不变
type ModifyPostReq struct {
	Title   *string `json:"title" form:"title" binding:"omitempty,min=1,max=200"`
	Content *string `json:"content" form:"content"`
}

// ImageFile 待上传图片；文件内容本身只交给 blob store 处理
type ImageFile struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

type PostResp struct {
	ID               uint64    `json:"id"`
	ClubID           uint64    `json:"club_id"`
	AuthorID         uint64    `json:"author_id"`
	Title            string    `json:"title"`
	Content          string    `json:"content"`
	OriginalFilename *string   `json:"original_filename"`
	StoredFilename   *string   `json:"stored_filename"`
	LikeCount        int64     `json:"like_count"`
	CreatedAt        time.Time `json:"created_at"`
	ModifiedAt       time.Time `json:"modified_at"`
}

// NewPostResp 图片文件名只在两者都存在时返回，不会出现只有一半的情况
func NewPostResp(p *model.Post) PostResp {
	resp := PostResp{
		ID:         p.ID,
		ClubID:     p.ClubID,
		AuthorID:   p.AuthorID,
		Title:      p.Title,
		Content:    p.Content,
		LikeCount:  p.LikeCount,
		CreatedAt:  p.CreatedAt,
		ModifiedAt: p.UpdatedAt,
	}
	if p.Image.Present() {
		resp.OriginalFilename = p.Image.OriginalFilename
		resp.StoredFilename = p.Image.StoredFilename
	}
	return resp
}

type CreateCommentReq struct {
	Content string `json:"content" binding:"required,max=1000"`
}

type CommentResp struct {
	ID        uint64    `json:"id"`
	PostID    uint64    `json:"post_id"`
	AuthorID  uint64    `json:"author_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

func NewCommentResp(c *model.Comment) CommentResp {
	return CommentResp{
		ID:        c.ID,
		PostID:    c.PostID,
		AuthorID:  c.AuthorID,
		Content:   c.Content,
		CreatedAt: c.CreatedAt,
	}
}
