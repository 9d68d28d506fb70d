package mysql

import (
	"context"

	"HobbyHop/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ClubRepository struct {
	DB *gorm.DB
}

func (r *ClubRepository) Create(ctx context.Context, c *model.Club) error {
	return r.DB.WithContext(ctx).Create(c).Error
}

func (r *ClubRepository) FindByID(ctx context.Context, id uint64) (*model.Club, error) {
	var club model.Club
	err := r.DB.WithContext(ctx).First(&club, id).Error
	return &club, err
}

// FindByIDForUpdate 对社团行加排他锁，删除社团时使用，阻塞并发的加入和发帖
func (r *ClubRepository) FindByIDForUpdate(ctx context.Context, id uint64) (*model.Club, error) {
	return r.findLocked(ctx, id, clause.LockingStrengthUpdate)
}

// FindByIDForShare 对社团行加共享锁，保证事务提交前社团不会被删除
func (r *ClubRepository) FindByIDForShare(ctx context.Context, id uint64) (*model.Club, error) {
	return r.findLocked(ctx, id, clause.LockingStrengthShare)
}

func (r *ClubRepository) findLocked(ctx context.Context, id uint64, strength string) (*model.Club, error) {
	var club model.Club
	err := r.DB.WithContext(ctx).
		Clauses(clause.Locking{Strength: strength}).
		First(&club, id).Error
	return &club, err
}

// List keyword 为空时返回全部，否则按标题或内容模糊匹配
func (r *ClubRepository) List(ctx context.Context, keyword string, offset, limit int) ([]model.Club, int64, error) {
	q := r.DB.WithContext(ctx).Model(&model.Club{})
	if keyword != "" {
		like := "%" + keyword + "%"
		q = q.Where("title LIKE ? OR content LIKE ?", like, like)
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var list []model.Club
	err := q.Order("id desc").Offset(offset).Limit(limit).Find(&list).Error
	return list, total, err
}

// Updates 只更新 fields 中出现的列
func (r *ClubRepository) Updates(ctx context.Context, id uint64, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	return r.DB.WithContext(ctx).Model(&model.Club{ID: id}).Updates(fields).Error
}

// DeleteByID 幂等硬删除：无论是否存在，最终都视为成功
func (r *ClubRepository) DeleteByID(ctx context.Context, id uint64) error {
	return r.DB.WithContext(ctx).Delete(&model.Club{}, id).Error
}
