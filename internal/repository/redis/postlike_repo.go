package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	LikeSetTTL       = 24 * time.Hour
	LikeCntTTL       = 24 * time.Hour
	LockTTL          = 300 * time.Millisecond
	LikeSetKeyPrefix = "like:set:post"  // 存放某个帖子已点赞的用户ID集合
	LikeCntKeyPrefix = "like:cnt:post"  // 缓存某个帖子的点赞计数
	LockKeyPrefix    = "lock:like:post" // 分布式锁
)

type LikeCacheRepository struct {
	rdb        *redis.Client
	likeSetTTL time.Duration
	likeCntTTL time.Duration
}

type DistLock struct {
	RDB *redis.Client
}

func NewLikeCacheRepository(rdb *redis.Client) *LikeCacheRepository {
	return &LikeCacheRepository{
		rdb:        rdb,
		likeSetTTL: LikeSetTTL,
		likeCntTTL: LikeCntTTL,
	}
}

func (r *LikeCacheRepository) likeSetKey(postID uint64) string {
	return fmt.Sprintf("%s:%d", LikeSetKeyPrefix, postID)
}

func (r *LikeCacheRepository) likeCntKey(postID uint64) string {
	return fmt.Sprintf("%s:%d", LikeCntKeyPrefix, postID)
}

// AddLike 写路径：成功写MySQL后再调用
func (r *LikeCacheRepository) AddLike(ctx context.Context, userID, postID uint64) error {
	k := r.likeSetKey(postID)
	if err := r.rdb.SAdd(ctx, k, userID).Err(); err != nil {
		return err
	}
	_ = r.rdb.Expire(ctx, k, r.likeSetTTL).Err()
	return nil
}

func (r *LikeCacheRepository) RemoveLike(ctx context.Context, userID, postID uint64) error {
	return r.rdb.SRem(ctx, r.likeSetKey(postID), userID).Err()
}

// IsLikedCached 返回 (是否点赞, 缓存是否命中, err)
func (r *LikeCacheRepository) IsLikedCached(ctx context.Context, userID, postID uint64) (bool, bool, error) {
	k := r.likeSetKey(postID)
	exists, err := r.rdb.Exists(ctx, k).Result()
	if err != nil {
		return false, false, err
	}
	if exists == 0 {
		return false, false, nil
	}
	b, err := r.rdb.SIsMember(ctx, k, userID).Result()
	return b, true, err
}

// GetLikeCountCached 从缓存读取帖子的点赞数量
func (r *LikeCacheRepository) GetLikeCountCached(ctx context.Context, postID uint64) (int64, bool, error) {
	val, err := r.rdb.Get(ctx, r.likeCntKey(postID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return val, true, nil
}

// SetLikeCount 回填帖子点赞数
func (r *LikeCacheRepository) SetLikeCount(ctx context.Context, postID uint64, cnt int64) error {
	return r.rdb.Set(ctx, r.likeCntKey(postID), cnt, r.likeCntTTL).Err()
}

// WarmIsLiked 惰性回填：只在集合已存在时写，避免集合无界扩张
func (r *LikeCacheRepository) WarmIsLiked(ctx context.Context, userID, postID uint64, liked bool) {
	k := r.likeSetKey(postID)
	if ok, _ := r.rdb.Exists(ctx, k).Result(); ok > 0 {
		if liked {
			_ = r.rdb.SAdd(ctx, k, userID).Err()
		} else {
			_ = r.rdb.SRem(ctx, k, userID).Err()
		}
		_ = r.rdb.Expire(ctx, k, r.likeSetTTL).Err()
	}
}

// DeleteCount 删除计数缓存，交给读侧回源重建
func (r *LikeCacheRepository) DeleteCount(ctx context.Context, postID uint64) error {
	if err := r.rdb.Del(ctx, r.likeCntKey(postID)).Err(); err != nil && !errors.Is(err, redis.Nil) {
		return err
	}
	return nil
}

// Acquire 请求加分布式锁
func (l *DistLock) Acquire(ctx context.Context, postID uint64, token string) (bool, error) {
	key := fmt.Sprintf("%s:%d", LockKeyPrefix, postID)
	return l.RDB.SetNX(ctx, key, token, LockTTL).Result()
}

var releaseScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
  return redis.call("del", KEYS[1])
else
  return 0
end`)

// Release 用lua保证只释放自己持有的锁
func (l *DistLock) Release(ctx context.Context, postID uint64, token string) error {
	key := fmt.Sprintf("%s:%d", LockKeyPrefix, postID)
	return releaseScript.Run(ctx, l.RDB, []string{key}, token).Err()
}
