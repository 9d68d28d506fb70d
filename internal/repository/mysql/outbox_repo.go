package mysql

import (
	"context"
	"encoding/json"
	"time"

	"HobbyHop/internal/model"

	"gorm.io/gorm"
)

type OutboxRepository struct {
	DB *gorm.DB
}

// Add 写入发件箱事件，调用方负责把它放进业务事务中
func (r *OutboxRepository) Add(ctx context.Context, event string, clubID, userID uint64) error {
	payload, err := json.Marshal(map[string]any{
		"event":      event,
		"event_time": time.Now().UTC().Format(time.RFC3339Nano),
		"club_id":    clubID,
		"user_id":    userID,
	})
	if err != nil {
		return err
	}
	ob := &model.ClubOutbox{
		EventType: event,
		ClubID:    clubID,
		UserID:    userID,
		Payload:   string(payload),
		Status:    model.OutboxPending,
	}
	return r.DB.WithContext(ctx).Create(ob).Error
}

// List 待投递事件：pending 以及重试次数未超过 maxRetry 的 failed
func (r *OutboxRepository) List(ctx context.Context, batchSize, maxRetry int) ([]model.ClubOutbox, error) {
	var list []model.ClubOutbox
	if err := r.DB.WithContext(ctx).
		Where("status = ? OR (status = ? AND retry < ?)", model.OutboxPending, model.OutboxFailed, maxRetry).
		Order("id ASC").
		Limit(batchSize).
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

// RetryUpdate outbox记录消息失败重试
func (r *OutboxRepository) RetryUpdate(ctx context.Context, id uint64) error {
	return r.DB.WithContext(ctx).Model(&model.ClubOutbox{}).Where("id = ?", id).
		Updates(map[string]any{"status": model.OutboxFailed, "retry": gorm.Expr("retry + 1")}).Error
}

// SuccessUpdate outbox成功记录消息更新
func (r *OutboxRepository) SuccessUpdate(ctx context.Context, id uint64) error {
	return r.DB.WithContext(ctx).Model(&model.ClubOutbox{}).Where("id = ?", id).
		Update("status", model.OutboxSent).Error
}
