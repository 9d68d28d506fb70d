package service

import (
	"context"
	"time"

	"HobbyHop/internal/model"
	"HobbyHop/internal/pkg"
	"HobbyHop/internal/repository/mysql"

	"go.uber.org/zap"
)

type Sender func(ctx context.Context, ob *model.ClubOutbox) error

// OutboxRelayer 定时把发件箱里的社团事件投递出去
type OutboxRelayer struct {
	repo      *mysql.OutboxRepository
	batchSize int
	maxRetry  int
	interval  time.Duration
	sender    Sender
	log       *zap.Logger
}

func NewOutboxRelayer(store *mysql.Store, sender Sender, log *zap.Logger) *OutboxRelayer {
	return &OutboxRelayer{
		repo:      store.Outbox,
		batchSize: 200,
		maxRetry:  5,
		interval:  time.Second,
		sender:    sender,
		log:       log,
	}
}

func KafkaSender(p *pkg.KafkaProducer) Sender {
	return p.SendClubEvent
}

// Run 阻塞运行直到 ctx 取消
func (r *OutboxRelayer) Run(ctx context.Context) {
	t := time.NewTicker(r.interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			r.drainOnce(ctx)
		}
	}
}

// drainOnce 返回本轮成功投递的条数
func (r *OutboxRelayer) drainOnce(ctx context.Context) int {
	rows, err := r.repo.List(ctx, r.batchSize, r.maxRetry)
	if err != nil {
		r.log.Error("outbox query failed", zap.Error(err))
		return 0
	}
	sent := 0
	for i := range rows {
		ob := rows[i]
		if err = r.sender(ctx, &ob); err != nil {
			r.log.Warn("outbox send failed",
				zap.Uint64("id", ob.ID),
				zap.String("event", ob.EventType),
				zap.Int("retry", ob.Retry),
				zap.Error(err))
			if err = r.repo.RetryUpdate(ctx, ob.ID); err != nil {
				r.log.Error("outbox retry update failed", zap.Uint64("id", ob.ID), zap.Error(err))
			}
			continue
		}
		if err = r.repo.SuccessUpdate(ctx, ob.ID); err != nil {
			r.log.Error("outbox success update failed", zap.Uint64("id", ob.ID), zap.Error(err))
			continue
		}
		sent++
	}
	return sent
}
