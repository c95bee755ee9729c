package application

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/thinkel-blog-api/pkg/apperr"
)

func TestInteractionService_LikeToggle(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	a := env.register(t, "Ana", "ana@example.com")
	p := env.newPost(t, a.ID, "Likeable")

	res, err := env.interactions.TogglePostLike(ctx, a.ID, p.ID)
	require.NoError(t, err)
	assert.Equal(t, LikeResult{Likes: 1, Liked: true}, res)

	res, err = env.interactions.TogglePostLike(ctx, a.ID, p.ID)
	require.NoError(t, err)
	assert.Equal(t, LikeResult{Likes: 0, Liked: false}, res)

	reloaded := env.reloadPost(t, p.ID)
	assert.Empty(t, reloaded.LikedBy)
	assert.Zero(t, reloaded.Likes)
}

func TestInteractionService_Unauthenticated(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	a := env.register(t, "Ana", "ana@example.com")
	p := env.newPost(t, a.ID, "Guarded")

	_, err := env.interactions.TogglePostLike(ctx, "", p.ID)
	assert.True(t, apperr.Is(err, apperr.KindUnauthorized))
	_, err = env.interactions.TogglePostBookmark(ctx, "", p.ID)
	assert.True(t, apperr.Is(err, apperr.KindUnauthorized))

	reloaded := env.reloadPost(t, p.ID)
	assert.Zero(t, reloaded.Likes)
	assert.Empty(t, reloaded.LikedBy)
	assert.Empty(t, reloaded.BookmarkedBy)
}

func TestInteractionService_MissingTargets(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	a := env.register(t, "Ana", "ana@example.com")
	missing := "6f1f7b52-3c55-4d8e-9b1a-0c9f0e0a1b2c"

	_, err := env.interactions.TogglePostLike(ctx, a.ID, missing)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
	_, err = env.interactions.TogglePostBookmark(ctx, a.ID, "nope")
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
	_, err = env.interactions.ToggleCommentLike(ctx, a.ID, missing)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
}

func TestInteractionService_BookmarkToggle(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	a := env.register(t, "Ana", "ana@example.com")
	p := env.newPost(t, a.ID, "Saved")

	res, err := env.interactions.TogglePostBookmark(ctx, a.ID, p.ID)
	require.NoError(t, err)
	assert.True(t, res.Bookmarked)
	assert.Equal(t, []string{a.ID}, env.reloadPost(t, p.ID).BookmarkedBy)

	res, err = env.interactions.TogglePostBookmark(ctx, a.ID, p.ID)
	require.NoError(t, err)
	assert.False(t, res.Bookmarked)
	assert.Zero(t, env.reloadPost(t, p.ID).Likes, "bookmarks never touch likes")
}

func TestInteractionService_ConcurrentCommentLikes(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	a := env.register(t, "Ana", "ana@example.com")
	p := env.newPost(t, a.ID, "Busy")
	c, err := env.comments.Create(ctx, a.ID, CreateCommentInput{PostID: p.ID, Content: "hot take"})
	require.NoError(t, err)

	users := []string{
		"11111111-1111-1111-1111-111111111111",
		"22222222-2222-2222-2222-222222222222",
		"33333333-3333-3333-3333-333333333333",
	}
	var wg sync.WaitGroup
	for i := 0; i < 30; i++ {
		wg.Add(1)
		go func(uid string) {
			defer wg.Done()
			_, err := env.interactions.ToggleCommentLike(ctx, uid, c.ID)
			assert.NoError(t, err)
		}(users[i%len(users)])
	}
	wg.Wait()

	// every user toggled an even number of times
	got, err := env.store.Comments().GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Likes)
	assert.Equal(t, len(got.LikedBy), got.Likes)
}
