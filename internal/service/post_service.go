package service

import (
	"context"
	"errors"
	"strings"

	"HobbyHop/internal/dto"
	"HobbyHop/internal/model"
	"HobbyHop/internal/repository/mysql"

	"github.com/google/uuid"
)

// BlobStore 图片对象存储，SaveFile 返回上传文件的原始文件名
type BlobStore interface {
	SaveFile(ctx context.Context, objectName string, file dto.ImageFile) (string, error)
	RemoveFile(ctx context.Context, objectName string) error
}

type PostService struct {
	store *mysql.Store
	blobs BlobStore
}

func NewPostService(store *mysql.Store, blobs BlobStore) *PostService {
	return &PostService{store: store, blobs: blobs}
}

// findClubPost 帖子必须属于 clubID，防止跨社团猜测 id
func findClubPost(ctx context.Context, st *mysql.Store, clubID, postID uint64) (*model.Post, error) {
	post, err := st.Posts.FindByID(ctx, postID)
	if mysql.IsNotFound(err) {
		return nil, ErrPostNotFound
	}
	if err != nil {
		return nil, err
	}
	if post.ClubID != clubID {
		return nil, ErrPostClubMismatch
	}
	return post, nil
}

// authorizePostMutation 修改/删除/上传图片共用的校验链：
// 社团 -> 成员关系 -> ADMIN -> 帖子属于该社团 -> 作者本人。
// 任一步失败立即返回，后面的检查不会执行。
func authorizePostMutation(ctx context.Context, st *mysql.Store, clubID, postID, requesterID uint64) (*model.Post, error) {
	if _, err := findClub(ctx, st, clubID); err != nil {
		return nil, err
	}
	if _, err := requireRole(ctx, st, clubID, requesterID, model.RoleAdmin); err != nil {
		return nil, err
	}
	post, err := findClubPost(ctx, st, clubID, postID)
	if err != nil {
		return nil, err
	}
	if post.AuthorID != requesterID {
		return nil, ErrNotPostOwner
	}
	return post, nil
}

// storedFilename 随机前缀避免存储文件名冲突
func storedFilename(original string) string {
	return uuid.NewString() + "_" + original
}

// CreatePost 只有社团成员可以发帖
func (s *PostService) CreatePost(ctx context.Context, clubID, requesterID uint64, req dto.CreatePostReq) (*dto.PostResp, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, ErrInvalidParam
	}

	post := &model.Post{
		ClubID:   clubID,
		AuthorID: requesterID,
		Title:    req.Title,
		Content:  req.Content,
	}
	err := s.store.Transaction(ctx, func(tx *mysql.Store) error {
		if _, err := shareClub(ctx, tx, clubID); err != nil {
			return err
		}
		if _, err := findMember(ctx, tx, clubID, requesterID); err != nil {
			return err
		}
		return tx.Posts.Create(ctx, post)
	})
	if err != nil {
		return nil, err
	}

	resp := dto.NewPostResp(post)
	return &resp, nil
}

func (s *PostService) GetPost(ctx context.Context, clubID, postID uint64) (*dto.PostResp, error) {
	if _, err := findClub(ctx, s.store, clubID); err != nil {
		return nil, err
	}
	post, err := findClubPost(ctx, s.store, clubID, postID)
	if err != nil {
		return nil, err
	}
	resp := dto.NewPostResp(post)
	return &resp, nil
}

// ListPosts 社团帖子列表，按发布时间倒序
func (s *PostService) ListPosts(ctx context.Context, clubID uint64, page dto.PageRequest) (*dto.PageResponse[dto.PostResp], error) {
	page = page.Normalize()
	if _, err := findClub(ctx, s.store, clubID); err != nil {
		return nil, err
	}
	list, total, err := s.store.Posts.ListByClub(ctx, clubID, page.Offset(), page.Size)
	if err != nil {
		return nil, err
	}
	resp := dto.NewPageResponse(page, toPostResps(list), total)
	return &resp, nil
}

// ListPostsCursor 游标分页：首次 cursor 传 0
func (s *PostService) ListPostsCursor(ctx context.Context, clubID, cursor uint64, size int) (*dto.CursorResponse[dto.PostResp], error) {
	if size <= 0 || size > dto.MaxPageSize {
		size = dto.DefaultPageSize
	}
	if _, err := findClub(ctx, s.store, clubID); err != nil {
		return nil, err
	}
	list, next, err := s.store.Posts.ListByClubCursor(ctx, clubID, cursor, size)
	if err != nil {
		return nil, err
	}
	return &dto.CursorResponse[dto.PostResp]{List: toPostResps(list), NextCursor: next}, nil
}

// SearchPosts 跨社团关键字搜索
func (s *PostService) SearchPosts(ctx context.Context, page dto.PageRequest, keyword string) (*dto.PageResponse[dto.PostResp], error) {
	page = page.Normalize()
	list, total, err := s.store.Posts.Search(ctx, strings.TrimSpace(keyword), page.Offset(), page.Size)
	if err != nil {
		return nil, err
	}
	resp := dto.NewPageResponse(page, toPostResps(list), total)
	return &resp, nil
}

// ModifyPost 部分更新标题/内容；image 不为 nil 时同时替换图片的两个文件名
func (s *PostService) ModifyPost(ctx context.Context, clubID, postID, requesterID uint64, req dto.ModifyPostReq, image *dto.ImageFile) (*dto.PostResp, error) {
	var (
		post   *model.Post
		stored string
	)
	err := s.store.Transaction(ctx, func(tx *mysql.Store) error {
		if _, err := authorizePostMutation(ctx, tx, clubID, postID, requesterID); err != nil {
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
		if err := tx.Posts.Updates(ctx, postID, fields); err != nil {
			return err
		}
		if image != nil {
			var err error
			if stored, err = s.replaceImage(ctx, tx, postID, *image); err != nil {
				return err
			}
		}

		var err error
		post, err = tx.Posts.FindByID(ctx, postID)
		return err
	})
	if err != nil {
		return nil, s.discardImage(ctx, stored, err)
	}

	resp := dto.NewPostResp(post)
	return &resp, nil
}

// UploadImage 上传并替换帖子图片
func (s *PostService) UploadImage(ctx context.Context, clubID, postID, requesterID uint64, image dto.ImageFile) (*dto.PostResp, error) {
	var (
		post   *model.Post
		stored string
	)
	err := s.store.Transaction(ctx, func(tx *mysql.Store) error {
		if _, err := authorizePostMutation(ctx, tx, clubID, postID, requesterID); err != nil {
			return err
		}
		var err error
		if stored, err = s.replaceImage(ctx, tx, postID, image); err != nil {
			return err
		}
		post, err = tx.Posts.FindByID(ctx, postID)
		return err
	})
	if err != nil {
		return nil, s.discardImage(ctx, stored, err)
	}

	resp := dto.NewPostResp(post)
	return &resp, nil
}

// replaceImage 先上传再写库；只要对象已上传就返回其存储名，事务失败时由调用方清理
func (s *PostService) replaceImage(ctx context.Context, tx *mysql.Store, postID uint64, image dto.ImageFile) (string, error) {
	if strings.TrimSpace(image.Filename) == "" || image.Body == nil {
		return "", ErrInvalidParam
	}
	stored := storedFilename(image.Filename)
	original, err := s.blobs.SaveFile(ctx, stored, image)
	if err != nil {
		return "", err
	}
	return stored, tx.Posts.SetImage(ctx, postID, model.NewImageRef(original, stored))
}

// discardImage 删除事务回滚后留下的对象；清理失败时与原错误一起返回
func (s *PostService) discardImage(ctx context.Context, stored string, cause error) error {
	if stored == "" {
		return cause
	}
	if err := s.blobs.RemoveFile(ctx, stored); err != nil {
		return errors.Join(cause, err)
	}
	return cause
}

// DeletePost 校验链与修改相同；先软删除评论，再软删除帖子
func (s *PostService) DeletePost(ctx context.Context, clubID, postID, requesterID uint64) error {
	return s.store.Transaction(ctx, func(tx *mysql.Store) error {
		if _, err := authorizePostMutation(ctx, tx, clubID, postID, requesterID); err != nil {
			return err
		}
		if _, err := tx.Comments.SoftDeleteByPost(ctx, postID); err != nil {
			return err
		}
		if err := tx.Posts.SoftDelete(ctx, postID); err != nil {
			return err
		}
		return tx.Outbox.Add(ctx, model.EventPostDeleted, clubID, requesterID)
	})
}

func toPostResps(list []model.Post) []dto.PostResp {
	resps := make([]dto.PostResp, 0, len(list))
	for i := range list {
		resps = append(resps, dto.NewPostResp(&list[i]))
	}
	return resps
}
