// Package redisstore keeps login sessions and short lived caches in Redis.
package redisstore

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/thinkel-blog-api/internal/domain/entity"
	"github.com/oksasatya/thinkel-blog-api/pkg/helpers"
)

// Sessions maps a session id to the user that owns it.
type Sessions struct {
	rdb *redis.Client
}

func NewSessions(rdb *redis.Client) *Sessions {
	return &Sessions{rdb: rdb}
}

func (s *Sessions) Save(ctx context.Context, sid, userID string, ttl time.Duration) error {
	return s.rdb.Set(ctx, helpers.KeySession(sid), userID, ttl).Err()
}

// Valid reports whether sid is live and belongs to userID.
func (s *Sessions) Valid(ctx context.Context, sid, userID string) (bool, error) {
	owner, err := s.rdb.Get(ctx, helpers.KeySession(sid)).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return owner == userID, nil
}

func (s *Sessions) Delete(ctx context.Context, sid string) error {
	return helpers.RedisDel(ctx, s.rdb, helpers.KeySession(sid))
}

// StatsCache caches PostStats per author.
type StatsCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewStatsCache(rdb *redis.Client, ttl time.Duration) *StatsCache {
	return &StatsCache{rdb: rdb, ttl: ttl}
}

func (c *StatsCache) Get(ctx context.Context, userID string) (entity.PostStats, bool, error) {
	var st entity.PostStats
	ok, err := helpers.RedisGetJSON(ctx, c.rdb, helpers.KeyPostStats(userID), &st)
	return st, ok, err
}

func (c *StatsCache) Set(ctx context.Context, userID string, st entity.PostStats) error {
	return helpers.RedisSetJSON(ctx, c.rdb, helpers.KeyPostStats(userID), st, c.ttl)
}

func (c *StatsCache) Invalidate(ctx context.Context, userIDs ...string) error {
	if len(userIDs) == 0 {
		return nil
	}
	keys := make([]string, 0, len(userIDs))
	for _, id := range userIDs {
		keys = append(keys, helpers.KeyPostStats(id))
	}
	return helpers.RedisDel(ctx, c.rdb, keys...)
}
