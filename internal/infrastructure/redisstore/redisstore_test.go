package redisstore

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/thinkel-blog-api/internal/domain/entity"
	"github.com/oksasatya/thinkel-blog-api/pkg/helpers"
)

// Runs against a real server when REDIS_TEST_ADDR is set.
func testClient(t *testing.T) *redis.Client {
	t.Helper()
	addr := os.Getenv("REDIS_TEST_ADDR")
	if addr == "" {
		t.Skip("REDIS_TEST_ADDR not set")
	}
	rdb := helpers.NewRedisClient(addr, "", 0)
	require.NoError(t, rdb.Ping(context.Background()).Err())
	t.Cleanup(func() { _ = rdb.Close() })
	return rdb
}

func TestSessions(t *testing.T) {
	ctx := context.Background()
	s := NewSessions(testClient(t))
	sid, uid := uuid.NewString(), uuid.NewString()

	ok, err := s.Valid(ctx, sid, uid)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Save(ctx, sid, uid, time.Minute))
	ok, err = s.Valid(ctx, sid, uid)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.Valid(ctx, sid, uuid.NewString())
	require.NoError(t, err)
	assert.False(t, ok, "session belongs to another user")

	require.NoError(t, s.Delete(ctx, sid))
	ok, err = s.Valid(ctx, sid, uid)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStatsCache(t *testing.T) {
	ctx := context.Background()
	c := NewStatsCache(testClient(t), time.Minute)
	uid := uuid.NewString()

	_, ok, err := c.Get(ctx, uid)
	require.NoError(t, err)
	assert.False(t, ok)

	want := entity.PostStats{TotalPosts: 2, TotalLikes: 5, TotalComments: 3, SavedPosts: 1}
	require.NoError(t, c.Set(ctx, uid, want))
	got, ok, err := c.Get(ctx, uid)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, want, got)

	require.NoError(t, c.Invalidate(ctx, uid, uuid.NewString()))
	_, ok, err = c.Get(ctx, uid)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.NoError(t, c.Invalidate(ctx))
}
