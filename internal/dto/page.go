package dto

const (
	DefaultPageSize = 20
	MaxPageSize     = 50
)

type PageRequest struct {
	Page int `form:"page"`
	Size int `form:"size"`
}

// Normalize 页码从 1 开始，size 超出范围时回落到默认值
func (p PageRequest) Normalize() PageRequest {
	if p.Page <= 0 {
		p.Page = 1
	}
	if p.Size <= 0 || p.Size > MaxPageSize {
		p.Size = DefaultPageSize
	}
	return p
}

func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.Size
}

type PageResponse[T any] struct {
	List  []T   `json:"list"`
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Size  int   `json:"size"`
}

func NewPageResponse[T any](req PageRequest, list []T, total int64) PageResponse[T] {
	if list == nil {
		list = []T{}
	}
	return PageResponse[T]{List: list, Total: total, Page: req.Page, Size: req.Size}
}

// CursorResponse 游标分页结果，NextCursor 为 0 表示没有下一页
type CursorResponse[T any] struct {
	List       []T    `json:"list"`
	NextCursor uint64 `json:"next_cursor"`
}
