package service

import (
	"context"
	"strings"

	"HobbyHop/internal/dto"
	"HobbyHop/internal/model"
	"HobbyHop/internal/repository/mysql"
)

type ClubService struct {
	store *mysql.Store
}

func NewClubService(store *mysql.Store) *ClubService {
	return &ClubService{store: store}
}

func findCategory(ctx context.Context, st *mysql.Store, categoryID uint64) (*model.Category, error) {
	category, err := st.Categories.FindByID(ctx, categoryID)
	if mysql.IsNotFound(err) {
		return nil, ErrCategoryNotFound
	}
	if err != nil {
		return nil, err
	}
	return category, nil
}

func (s *ClubService) ListCategories(ctx context.Context) ([]dto.CategoryResp, error) {
	list, err := s.store.Categories.List(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.CategoryResp, 0, len(list))
	for _, c := range list {
		resp = append(resp, dto.CategoryResp{ID: c.ID, Name: c.Name})
	}
	return resp, nil
}

// ListClubs 分页列出社团，keyword 匹配标题或内容
func (s *ClubService) ListClubs(ctx context.Context, page dto.PageRequest, keyword string) (*dto.PageResponse[dto.ClubResp], error) {
	page = page.Normalize()
	list, total, err := s.store.Clubs.List(ctx, strings.TrimSpace(keyword), page.Offset(), page.Size)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ClubResp, 0, len(list))
	for i := range list {
		items = append(items, dto.NewClubResp(&list[i]))
	}
	resp := dto.NewPageResponse(page, items, total)
	return &resp, nil
}

func (s *ClubService) GetClub(ctx context.Context, clubID uint64) (*dto.ClubResp, error) {
	club, err := findClub(ctx, s.store, clubID)
	if err != nil {
		return nil, err
	}
	resp := dto.NewClubResp(club)
	return &resp, nil
}

// CreateClub 创建社团，并在同一事务中让创建者以 ADMIN 身份加入
func (s *ClubService) CreateClub(ctx context.Context, creatorID uint64, req dto.CreateClubReq) (*dto.ClubResp, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, ErrInvalidParam
	}

	club := &model.Club{
		Title:      req.Title,
		Content:    req.Content,
		CategoryID: req.CategoryID,
	}
	err := s.store.Transaction(ctx, func(tx *mysql.Store) error {
		if _, err := findCategory(ctx, tx, req.CategoryID); err != nil {
			return err
		}
		if err := tx.Clubs.Create(ctx, club); err != nil {
			return err
		}
		if _, err := tx.Members.Join(ctx, &model.ClubMember{
			ClubID: club.ID,
			UserID: creatorID,
			Role:   model.RoleAdmin,
		}); err != nil {
			return err
		}
		return tx.Outbox.Add(ctx, model.EventClubCreated, club.ID, creatorID)
	})
	if err != nil {
		return nil, err
	}

	resp := dto.NewClubResp(club)
	return &resp, nil
}

// UpdateClub 仅管理员可修改；请求中为 nil 的字段保持不变
func (s *ClubService) UpdateClub(ctx context.Context, clubID, requesterID uint64, req dto.UpdateClubReq) (*dto.ClubResp, error) {
	var club *model.Club
	err := s.store.Transaction(ctx, func(tx *mysql.Store) error {
		if _, err := findClub(ctx, tx, clubID); err != nil {
			return err
		}
		if _, err := requireRole(ctx, tx, clubID, requesterID, model.RoleAdmin); err != nil {
			return err
		}

		fields := make(map[string]any)
		if req.Title != nil {
			if strings.TrimSpace(*req.Title) == "" {
				return ErrInvalidParam
			}
			fields["title"] = *req.Title
		}
		if req.Content != nil {
			fields["content"] = *req.Content
		}
		if req.CategoryID != nil {
			category, err := findCategory(ctx, tx, *req.CategoryID)
			if err != nil {
				return err
			}
			fields["category_id"] = category.ID
		}
		if err := tx.Clubs.Updates(ctx, clubID, fields); err != nil {
			return err
		}

		var err error
		club, err = findClub(ctx, tx, clubID)
		return err
	})
	if err != nil {
		return nil, err
	}

	resp := dto.NewClubResp(club)
	return &resp, nil
}

// DeleteClub 仅管理员可删除：先锁住社团行，清空成员关系，再删除社团本身
func (s *ClubService) DeleteClub(ctx context.Context, clubID, requesterID uint64) error {
	return s.store.Transaction(ctx, func(tx *mysql.Store) error {
		if _, err := lockClub(ctx, tx, clubID); err != nil {
			return err
		}
		if _, err := requireRole(ctx, tx, clubID, requesterID, model.RoleAdmin); err != nil {
			return err
		}

		if _, err := tx.Members.DeleteByClub(ctx, clubID); err != nil {
			return err
		}
		if _, err := tx.Comments.SoftDeleteByClub(ctx, clubID); err != nil {
			return err
		}
		if _, err := tx.Posts.SoftDeleteByClub(ctx, clubID); err != nil {
			return err
		}
		if err := tx.Clubs.DeleteByID(ctx, clubID); err != nil {
			return err
		}
		return tx.Outbox.Add(ctx, model.EventClubDeleted, clubID, requesterID)
	})
}
