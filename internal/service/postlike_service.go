package service

import (
	"context"
	"fmt"
	"time"

	"HobbyHop/internal/repository/mysql"
	"HobbyHop/internal/repository/redis"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type PostLikeService struct {
	store     *mysql.Store
	likeCache *redis.LikeCacheRepository
	lock      *redis.DistLock
	log       *zap.Logger
}

func NewPostLikeService(store *mysql.Store, likeCache *redis.LikeCacheRepository, lock *redis.DistLock, log *zap.Logger) *PostLikeService {
	return &PostLikeService{
		store:     store,
		likeCache: likeCache,
		lock:      lock,
		log:       log,
	}
}

// checkPost 点赞相关操作都要求帖子属于该社团
func (s *PostLikeService) checkPost(ctx context.Context, clubID, postID uint64) error {
	if _, err := findClub(ctx, s.store, clubID); err != nil {
		return err
	}
	_, err := findClubPost(ctx, s.store, clubID, postID)
	return err
}

func lockToken(userID, postID uint64) string {
	return fmt.Sprintf("%d-%d-%s", userID, postID, uuid.NewString())
}

// Like 先写库；成功后更新点赞集合，计数缓存在拿到锁时按库回写，否则直接删除交给读侧重建
func (s *PostLikeService) Like(ctx context.Context, clubID, postID, userID uint64) (bool, error) {
	if err := s.checkPost(ctx, clubID, postID); err != nil {
		return false, err
	}

	changed, err := s.store.Likes.Like(ctx, userID, postID)
	if err != nil {
		return false, err
	}
	if !changed {
		s.likeCache.WarmIsLiked(ctx, userID, postID, true)
		return false, nil
	}

	if err = s.likeCache.AddLike(ctx, userID, postID); err != nil {
		s.log.Warn("like cache add failed", zap.Uint64("post_id", postID), zap.Error(err))
	}
	s.refreshCount(ctx, userID, postID)
	return true, nil
}

func (s *PostLikeService) Unlike(ctx context.Context, clubID, postID, userID uint64) (bool, error) {
	if err := s.checkPost(ctx, clubID, postID); err != nil {
		return false, err
	}

	changed, err := s.store.Likes.Unlike(ctx, userID, postID)
	if err != nil {
		return false, err
	}
	if !changed {
		s.likeCache.WarmIsLiked(ctx, userID, postID, false)
		return false, nil
	}

	if err = s.likeCache.RemoveLike(ctx, userID, postID); err != nil {
		s.log.Warn("like cache remove failed", zap.Uint64("post_id", postID), zap.Error(err))
	}
	s.refreshCount(ctx, userID, postID)
	return true, nil
}

// refreshCount 拿到锁则用库里的值覆盖计数缓存，拿不到锁则删 key
func (s *PostLikeService) refreshCount(ctx context.Context, userID, postID uint64) {
	token := lockToken(userID, postID)
	got, _ := s.lock.Acquire(ctx, postID, token)
	if !got {
		_ = s.likeCache.DeleteCount(ctx, postID)
		return
	}
	defer func() {
		if err := s.lock.Release(ctx, postID, token); err != nil {
			s.log.Warn("like lock release failed", zap.Uint64("post_id", postID), zap.Error(err))
		}
	}()

	cnt, err := s.store.Posts.GetLikeCount(ctx, postID)
	if err != nil || s.likeCache.SetLikeCount(ctx, postID, cnt) != nil {
		_ = s.likeCache.DeleteCount(ctx, postID)
	}
}

func (s *PostLikeService) IsLiked(ctx context.Context, clubID, postID, userID uint64) (bool, error) {
	if err := s.checkPost(ctx, clubID, postID); err != nil {
		return false, err
	}
	// 先查缓存集合（命中才用）
	if b, ok, err := s.likeCache.IsLikedCached(ctx, userID, postID); err == nil && ok {
		return b, nil
	}
	b, err := s.store.Likes.IsLiked(ctx, userID, postID)
	if err == nil {
		s.likeCache.WarmIsLiked(ctx, userID, postID, b)
	}
	return b, err
}

// Count 缓存未命中时只允许拿到锁的请求回源，其余短暂退避后再读缓存
func (s *PostLikeService) Count(ctx context.Context, clubID, postID, userID uint64) (int64, error) {
	if err := s.checkPost(ctx, clubID, postID); err != nil {
		return 0, err
	}
	if v, ok, err := s.likeCache.GetLikeCountCached(ctx, postID); err == nil && ok {
		return v, nil
	}

	token := lockToken(userID, postID)
	got, _ := s.lock.Acquire(ctx, postID, token)
	if got {
		defer func() {
			if err := s.lock.Release(ctx, postID, token); err != nil {
				s.log.Warn("like lock release failed", zap.Uint64("post_id", postID), zap.Error(err))
			}
		}()

		// 第二次检查
		if v, ok, err := s.likeCache.GetLikeCountCached(ctx, postID); err == nil && ok {
			return v, nil
		}
		v, err := s.store.Posts.GetLikeCount(ctx, postID)
		if err != nil {
			return 0, err
		}
		_ = s.likeCache.SetLikeCount(ctx, postID, v)
		return v, nil
	}

	select {
	case <-ctx.Done():
		return 0, ctx.Err()
	case <-time.After(50 * time.Millisecond):
	}
	if v, ok, err := s.likeCache.GetLikeCountCached(ctx, postID); err == nil && ok {
		return v, nil
	}
	return s.store.Posts.GetLikeCount(ctx, postID)
}
