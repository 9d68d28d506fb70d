package mysql

import (
	"context"

	"HobbyHop/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ClubMemberRepository struct {
	DB *gorm.DB
}

// Join 幂等插入：若已存在 (club_id, user_id) 则不报错，返回是否真正插入
func (r *ClubMemberRepository) Join(ctx context.Context, member *model.ClubMember) (bool, error) {
	tx := r.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "club_id"}, {Name: "user_id"}},
		DoNothing: true,
	}).Create(member)
	return tx.RowsAffected > 0, tx.Error
}

func (r *ClubMemberRepository) FindByClubAndUser(ctx context.Context, clubID, userID uint64) (*model.ClubMember, error) {
	var member model.ClubMember
	err := r.DB.WithContext(ctx).
		Where("club_id = ? AND user_id = ?", clubID, userID).
		First(&member).Error
	return &member, err
}

func (r *ClubMemberRepository) IsMember(ctx context.Context, clubID, userID uint64) (bool, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&model.ClubMember{}).
		Where("club_id = ? AND user_id = ?", clubID, userID).
		Count(&count).Error
	return count > 0, err
}

func (r *ClubMemberRepository) Leave(ctx context.Context, clubID, userID uint64) (int64, error) {
	tx := r.DB.WithContext(ctx).
		Where("club_id = ? AND user_id = ?", clubID, userID).
		Delete(&model.ClubMember{})
	return tx.RowsAffected, tx.Error
}

// DeleteByClub 删除社团下全部成员关系
func (r *ClubMemberRepository) DeleteByClub(ctx context.Context, clubID uint64) (int64, error) {
	tx := r.DB.WithContext(ctx).
		Where("club_id = ?", clubID).
		Delete(&model.ClubMember{})
	return tx.RowsAffected, tx.Error
}

// LockByRole 锁住社团内该角色的全部成员行，并发退出时按顺序判断是否为最后一个管理员
func (r *ClubMemberRepository) LockByRole(ctx context.Context, clubID uint64, role model.Role) ([]model.ClubMember, error) {
	var list []model.ClubMember
	err := r.DB.WithContext(ctx).
		Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate}).
		Where("club_id = ? AND role = ?", clubID, role).
		Order("id asc").
		Find(&list).Error
	return list, err
}

func (r *ClubMemberRepository) ListByUser(ctx context.Context, userID uint64) ([]model.ClubMember, error) {
	var list []model.ClubMember
	err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id asc").
		Find(&list).Error
	return list, err
}

func (r *ClubMemberRepository) ListByClub(ctx context.Context, clubID uint64, offset, limit int) ([]model.ClubMember, int64, error) {
	q := r.DB.WithContext(ctx).Model(&model.ClubMember{}).Where("club_id = ?", clubID)
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var list []model.ClubMember
	err := q.Order("id asc").Offset(offset).Limit(limit).Find(&list).Error
	return list, total, err
}
