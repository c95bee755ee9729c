package application

import (
	"context"
	"io"
	"time"

	"github.com/oksasatya/thinkel-blog-api/internal/domain/entity"
)

// SessionStore tracks live login sessions. A nil store disables session
// checks and tokens are trusted on signature alone.
type SessionStore interface {
	Save(ctx context.Context, sid, userID string, ttl time.Duration) error
	Valid(ctx context.Context, sid, userID string) (bool, error)
	Delete(ctx context.Context, sid string) error
}

// StatsCache caches author dashboards.
type StatsCache interface {
	Get(ctx context.Context, userID string) (entity.PostStats, bool, error)
	Set(ctx context.Context, userID string, st entity.PostStats) error
	Invalidate(ctx context.Context, userIDs ...string) error
}

// FileStore saves an upload and returns the URL it is served from.
type FileStore interface {
	Save(ctx context.Context, name, contentType string, r io.Reader) (string, error)
}

// Publisher enqueues a JSON message.
type Publisher interface {
	PublishJSON(ctx context.Context, body any) error
}
