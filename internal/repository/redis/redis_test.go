package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client, err := Init(mr.Addr(), "", 0)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestSessionRepository(t *testing.T) {
	mr, client := newTestClient(t)
	repo := NewSessionRepository(client, time.Minute)
	ctx := context.Background()

	_, err := repo.GetUserToken(ctx, 1)
	assert.ErrorIs(t, err, ErrTokenNotFound)

	require.NoError(t, repo.AddUserToken(ctx, 1, "tok"))
	token, err := repo.GetUserToken(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "tok", token)

	mr.FastForward(50 * time.Second)
	require.NoError(t, repo.ExtendUserToken(ctx, 1))
	mr.FastForward(50 * time.Second)
	_, err = repo.GetUserToken(ctx, 1)
	require.NoError(t, err)

	require.NoError(t, repo.DeleteUserToken(ctx, 1))
	_, err = repo.GetUserToken(ctx, 1)
	assert.ErrorIs(t, err, ErrTokenNotFound)
}

func TestLikeCache(t *testing.T) {
	_, client := newTestClient(t)
	cache := NewLikeCacheRepository(client)
	ctx := context.Background()

	_, hit, err := cache.IsLikedCached(ctx, 1, 10)
	require.NoError(t, err)
	assert.False(t, hit)

	// 集合不存在时不回填
	cache.WarmIsLiked(ctx, 1, 10, true)
	_, hit, _ = cache.IsLikedCached(ctx, 1, 10)
	assert.False(t, hit)

	require.NoError(t, cache.AddLike(ctx, 1, 10))
	liked, hit, err := cache.IsLikedCached(ctx, 1, 10)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.True(t, liked)

	cache.WarmIsLiked(ctx, 2, 10, true)
	liked, _, _ = cache.IsLikedCached(ctx, 2, 10)
	assert.True(t, liked)

	require.NoError(t, cache.RemoveLike(ctx, 1, 10))
	liked, _, _ = cache.IsLikedCached(ctx, 1, 10)
	assert.False(t, liked)

	_, hit, err = cache.GetLikeCountCached(ctx, 10)
	require.NoError(t, err)
	assert.False(t, hit)

	require.NoError(t, cache.SetLikeCount(ctx, 10, 5))
	cnt, hit, err := cache.GetLikeCountCached(ctx, 10)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, int64(5), cnt)

	require.NoError(t, cache.DeleteCount(ctx, 10))
	_, hit, _ = cache.GetLikeCountCached(ctx, 10)
	assert.False(t, hit)
}

func TestDistLock(t *testing.T) {
	mr, client := newTestClient(t)
	lock := &DistLock{RDB: client}
	ctx := context.Background()

	got, err := lock.Acquire(ctx, 10, "a")
	require.NoError(t, err)
	assert.True(t, got)

	got, err = lock.Acquire(ctx, 10, "b")
	require.NoError(t, err)
	assert.False(t, got)

	// 非持有者释放无效
	require.NoError(t, lock.Release(ctx, 10, "b"))
	got, _ = lock.Acquire(ctx, 10, "b")
	assert.False(t, got)

	require.NoError(t, lock.Release(ctx, 10, "a"))
	got, err = lock.Acquire(ctx, 10, "b")
	require.NoError(t, err)
	assert.True(t, got)

	mr.FastForward(LockTTL + time.Millisecond)
	got, _ = lock.Acquire(ctx, 10, "c")
	assert.True(t, got)
}
