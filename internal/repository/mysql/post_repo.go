package mysql

import (
	"context"

	"HobbyHop/internal/model"

	"gorm.io/gorm"
)

type PostRepository struct {
	DB *gorm.DB
}

func (r *PostRepository) Create(ctx context.Context, post *model.Post) error {
	return r.DB.WithContext(ctx).Create(post).Error
}

// FindByID 软删除的帖子视为不存在
func (r *PostRepository) FindByID(ctx context.Context, id uint64) (*model.Post, error) {
	var post model.Post
	err := r.DB.WithContext(ctx).First(&post, id).Error
	return &post, err
}

// ListByClub 基础分页查询
func (r *PostRepository) ListByClub(ctx context.Context, clubID uint64, offset, limit int) ([]model.Post, int64, error) {
	q := r.DB.WithContext(ctx).Model(&model.Post{}).Where("club_id = ?", clubID)
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var list []model.Post
	err := q.Order("id DESC").Offset(offset).Limit(limit).Find(&list).Error
	return list, total, err
}

// ListByClubCursor id 游标分页：cursor=0 表示第一页，返回下一页游标（0 表示没有更多）
func (r *PostRepository) ListByClubCursor(ctx context.Context, clubID, cursor uint64, limit int) ([]model.Post, uint64, error) {
	q := r.DB.WithContext(ctx).Where("club_id = ?", clubID)
	if cursor > 0 {
		q = q.Where("id < ?", cursor)
	}
	var rows []model.Post
	// 多取一条用来判断是否还有下一页
	if err := q.Order("id DESC").Limit(limit + 1).Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	var next uint64
	if len(rows) > limit {
		rows = rows[:limit]
		next = rows[limit-1].ID
	}
	return rows, next, nil
}

// Search 跨社团按标题或内容搜索
func (r *PostRepository) Search(ctx context.Context, keyword string, offset, limit int) ([]model.Post, int64, error) {
	q := r.DB.WithContext(ctx).Model(&model.Post{})
	if keyword != "" {
		like := "%" + keyword + "%"
		q = q.Where("title LIKE ? OR content LIKE ?", like, like)
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var list []model.Post
	err := q.Order("id DESC").Offset(offset).Limit(limit).Find(&list).Error
	return list, total, err
}

// Updates 只更新 fields 中出现的列
func (r *PostRepository) Updates(ctx context.Context, id uint64, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	return r.DB.WithContext(ctx).Model(&model.Post{ID: id}).Updates(fields).Error
}

// SetImage 图片的原始文件名和存储文件名在同一条 UPDATE 里一起写入
func (r *PostRepository) SetImage(ctx context.Context, id uint64, image model.ImageRef) error {
	return r.DB.WithContext(ctx).Model(&model.Post{ID: id}).Updates(map[string]any{
		"original_filename": image.OriginalFilename,
		"stored_filename":   image.StoredFilename,
	}).Error
}

// SoftDelete 软删除：写入 deleted_at
func (r *PostRepository) SoftDelete(ctx context.Context, id uint64) error {
	return r.DB.WithContext(ctx).Delete(&model.Post{}, id).Error
}

// SoftDeleteByClub 软删除社团下全部帖子
func (r *PostRepository) SoftDeleteByClub(ctx context.Context, clubID uint64) (int64, error) {
	tx := r.DB.WithContext(ctx).Where("club_id = ?", clubID).Delete(&model.Post{})
	return tx.RowsAffected, tx.Error
}

func (r *PostRepository) IncrLikeCount(ctx context.Context, id uint64, delta int64) error {
	return r.DB.WithContext(ctx).Model(&model.Post{}).
		Where("id = ?", id).
		UpdateColumn("like_count", gorm.Expr("CASE WHEN like_count + ? < 0 THEN 0 ELSE like_count + ? END", delta, delta)).
		Error
}

func (r *PostRepository) GetLikeCount(ctx context.Context, id uint64) (int64, error) {
	var p model.Post
	err := r.DB.WithContext(ctx).Select("id", "like_count").First(&p, id).Error
	if err != nil {
		return 0, err
	}
	return p.LikeCount, nil
}
