package service

import (
	"context"
	"strings"

	"HobbyHop/internal/dto"
	"HobbyHop/internal/model"
	"HobbyHop/internal/repository/mysql"
)

type CommentService struct {
	store *mysql.Store
}

func NewCommentService(store *mysql.Store) *CommentService {
	return &CommentService{store: store}
}

// CreateComment 社团成员才能评论
func (s *CommentService) CreateComment(ctx context.Context, clubID, postID, requesterID uint64, req dto.CreateCommentReq) (*dto.CommentResp, error) {
	if strings.TrimSpace(req.Content) == "" {
		return nil, ErrInvalidParam
	}
	comment := &model.Comment{PostID: postID, AuthorID: requesterID, Content: req.Content}
	err := s.store.Transaction(ctx, func(tx *mysql.Store) error {
		if _, err := shareClub(ctx, tx, clubID); err != nil {
			return err
		}
		if _, err := findMember(ctx, tx, clubID, requesterID); err != nil {
			return err
		}
		if _, err := findClubPost(ctx, tx, clubID, postID); err != nil {
			return err
		}
		return tx.Comments.Create(ctx, comment)
	})
	if err != nil {
		return nil, err
	}
	resp := dto.NewCommentResp(comment)
	return &resp, nil
}

func (s *CommentService) ListComments(ctx context.Context, clubID, postID uint64, page dto.PageRequest) (*dto.PageResponse[dto.CommentResp], error) {
	page = page.Normalize()
	if _, err := findClub(ctx, s.store, clubID); err != nil {
		return nil, err
	}
	if _, err := findClubPost(ctx, s.store, clubID, postID); err != nil {
		return nil, err
	}
	list, total, err := s.store.Comments.ListByPost(ctx, postID, page.Offset(), page.Size)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CommentResp, 0, len(list))
	for i := range list {
		items = append(items, dto.NewCommentResp(&list[i]))
	}
	resp := dto.NewPageResponse(page, items, total)
	return &resp, nil
}
