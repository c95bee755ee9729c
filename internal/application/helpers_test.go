package application

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/oksasatya/thinkel-blog-api/internal/domain/entity"
	"github.com/oksasatya/thinkel-blog-api/internal/infrastructure/memory"
	"github.com/oksasatya/thinkel-blog-api/pkg/helpers"
)

type fakeSessions struct {
	mu   sync.Mutex
	live map[string]string
	err  error
}

func newFakeSessions() *fakeSessions { return &fakeSessions{live: map[string]string{}} }

func (f *fakeSessions) Save(_ context.Context, sid, userID string, _ time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.live[sid] = userID
	return nil
}

func (f *fakeSessions) Valid(_ context.Context, sid, userID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return false, f.err
	}
	return f.live[sid] == userID, nil
}

func (f *fakeSessions) Delete(_ context.Context, sid string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.live, sid)
	return nil
}

type fakeStats struct {
	mu          sync.Mutex
	data        map[string]entity.PostStats
	invalidated []string
}

func newFakeStats() *fakeStats { return &fakeStats{data: map[string]entity.PostStats{}} }

func (f *fakeStats) Get(_ context.Context, userID string) (entity.PostStats, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	st, ok := f.data[userID]
	return st, ok, nil
}

func (f *fakeStats) Set(_ context.Context, userID string, st entity.PostStats) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data[userID] = st
	return nil
}

func (f *fakeStats) Invalidate(_ context.Context, userIDs ...string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, id := range userIDs {
		delete(f.data, id)
		f.invalidated = append(f.invalidated, id)
	}
	return nil
}

type fakeFiles struct {
	saved map[string][]byte
}

func (f *fakeFiles) Save(_ context.Context, name, _ string, r io.Reader) (string, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	if f.saved == nil {
		f.saved = map[string][]byte{}
	}
	f.saved[name] = b
	return "/uploads/" + name, nil
}

type fakePublisher struct {
	bodies []any
	err    error
}

func (f *fakePublisher) PublishJSON(_ context.Context, body any) error {
	if f.err != nil {
		return f.err
	}
	f.bodies = append(f.bodies, body)
	return nil
}

var errBoom = errors.New("boom")

type testEnv struct {
	store        *memory.Store
	auth         *AuthService
	posts        *PostService
	interactions *InteractionService
	comments     *CommentService
	sessions     *fakeSessions
	stats        *fakeStats
	files        *fakeFiles
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	store := memory.New()
	sessions := newFakeSessions()
	stats := newFakeStats()
	files := &fakeFiles{}
	jwt := helpers.NewJWTManager("test-access", "test-refresh", time.Hour, 24*time.Hour)
	logger := helpers.NewNopLogger()

	return &testEnv{
		store:        store,
		auth:         NewAuthService(store.Users(), jwt, sessions, files, logger),
		posts:        NewPostService(store.Posts(), store.Users(), stats, logger),
		interactions: NewInteractionService(store.Posts(), store.Comments(), stats, logger),
		comments:     NewCommentService(store.Comments(), store.Posts(), store.Users(), stats, logger),
		sessions:     sessions,
		stats:        stats,
		files:        files,
	}
}

func (e *testEnv) register(t *testing.T, name, email string) *entity.User {
	t.Helper()
	u, _, err := e.auth.Register(context.Background(), RegisterInput{Name: name, Email: email, Password: "secret123"})
	require.NoError(t, err)
	return u
}

func (e *testEnv) newPost(t *testing.T, authorID, title string) *entity.Post {
	t.Helper()
	p, err := e.posts.Create(context.Background(), authorID, CreatePostInput{
		Title:       title,
		Content:     "content of " + title,
		Description: "about " + title,
		Tags:        []string{"go"},
	})
	require.NoError(t, err)
	return p
}

func (e *testEnv) reloadPost(t *testing.T, id string) *entity.Post {
	t.Helper()
	p, err := e.posts.Get(context.Background(), id)
	require.NoError(t, err)
	return p
}
