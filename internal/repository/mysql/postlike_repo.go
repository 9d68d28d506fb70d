package mysql

import (
	"context"

	"HobbyHop/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PostLikeRepository struct {
	DB *gorm.DB
}

// Like 唯一(user_id, post_id) 幂等插入，真正插入时帖子计数 +1
func (r *PostLikeRepository) Like(ctx context.Context, userID, postID uint64) (bool, error) {
	var changed bool
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "post_id"}},
			DoNothing: true,
		}).Create(&model.PostLike{UserID: userID, PostID: postID})
		if res.Error != nil {
			return res.Error
		}
		// 已存在，幂等
		if res.RowsAffected == 0 {
			return nil
		}
		changed = true
		return (&PostRepository{DB: tx}).IncrLikeCount(ctx, postID, 1)
	})
	return changed, err
}

// Unlike 未删除任何行视为幂等成功；计数防负数
func (r *PostLikeRepository) Unlike(ctx context.Context, userID, postID uint64) (bool, error) {
	var changed bool
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("user_id = ? AND post_id = ?", userID, postID).
			Delete(&model.PostLike{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		changed = true
		return (&PostRepository{DB: tx}).IncrLikeCount(ctx, postID, -1)
	})
	return changed, err
}

func (r *PostLikeRepository) IsLiked(ctx context.Context, userID, postID uint64) (bool, error) {
	var count int64
	err := r.DB.WithContext(ctx).
		Model(&model.PostLike{}).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Count(&count).Error
	return count > 0, err
}
