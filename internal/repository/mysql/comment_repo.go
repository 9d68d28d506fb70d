package mysql

import (
	"context"

	"HobbyHop/internal/model"

	"gorm.io/gorm"
)

type CommentRepository struct {
	DB *gorm.DB
}

func (r *CommentRepository) Create(ctx context.Context, c *model.Comment) error {
	return r.DB.WithContext(ctx).Create(c).Error
}

func (r *CommentRepository) ListByPost(ctx context.Context, postID uint64, offset, limit int) ([]model.Comment, int64, error) {
	q := r.DB.WithContext(ctx).Model(&model.Comment{}).Where("post_id = ?", postID)
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var list []model.Comment
	err := q.Order("id asc").Offset(offset).Limit(limit).Find(&list).Error
	return list, total, err
}

// SoftDeleteByPost 删除帖子前先清理其评论
func (r *CommentRepository) SoftDeleteByPost(ctx context.Context, postID uint64) (int64, error) {
	tx := r.DB.WithContext(ctx).Where("post_id = ?", postID).Delete(&model.Comment{})
	return tx.RowsAffected, tx.Error
}

// SoftDeleteByClub 清理社团下所有帖子的评论
func (r *CommentRepository) SoftDeleteByClub(ctx context.Context, clubID uint64) (int64, error) {
	sub := r.DB.Model(&model.Post{}).Unscoped().Select("id").Where("club_id = ?", clubID)
	tx := r.DB.WithContext(ctx).Where("post_id IN (?)", sub).Delete(&model.Comment{})
	return tx.RowsAffected, tx.Error
}
