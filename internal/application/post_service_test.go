package application

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/thinkel-blog-api/pkg/apperr"
)

func TestPostService_CreateDerivesSlug(t *testing.T) {
	env := newTestEnv(t)
	u := env.register(t, "Ana", "ana@example.com")

	p := env.newPost(t, u.ID, "Hello World!!")

	assert.Regexp(t, regexp.MustCompile(`^hello-world-\d+$`), p.Slug)
	assert.Equal(t, u.ID, p.Author.UserID)
	assert.Equal(t, "ana", p.Author.Username)
	assert.True(t, p.Published)
	assert.Zero(t, p.Likes)
	assert.Zero(t, p.Comments)
}

func TestPostService_CreateRequiresFields(t *testing.T) {
	env := newTestEnv(t)
	u := env.register(t, "Ana", "ana@example.com")

	_, err := env.posts.Create(context.Background(), u.ID, CreatePostInput{Title: "  ", Content: "c", Description: "d"})
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindValidation))
	assert.Equal(t, MsgPostRequired, err.(*apperr.Error).Message)
}

func TestPostService_SlugCollisionRetries(t *testing.T) {
	env := newTestEnv(t)
	u := env.register(t, "Ana", "ana@example.com")
	fixed := time.UnixMilli(1730000000000)
	env.posts.now = func() time.Time { return fixed }

	a := env.newPost(t, u.ID, "Same Title")
	b := env.newPost(t, u.ID, "Same Title")

	assert.Equal(t, "same-title-1730000000000", a.Slug)
	assert.Equal(t, "same-title-1730000000001", b.Slug)
}

func TestPostService_UpdateOwnershipAndSlug(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.register(t, "Ana", "ana@example.com")
	other := env.register(t, "Bob", "bob@example.com")
	p := env.newPost(t, owner.ID, "First Title")
	_, err := env.interactions.TogglePostLike(ctx, other.ID, p.ID)
	require.NoError(t, err)

	newTitle := "Second Title"
	_, err = env.posts.Update(ctx, other.ID, p.ID, UpdatePostInput{Title: &newTitle})
	assert.True(t, apperr.Is(err, apperr.KindForbidden))

	updated, err := env.posts.Update(ctx, owner.ID, p.ID, UpdatePostInput{Title: &newTitle})
	require.NoError(t, err)
	assert.Equal(t, "Second Title", updated.Title)
	assert.Regexp(t, `^second-title-\d+$`, updated.Slug)
	assert.Equal(t, 1, updated.Likes)
	assert.Equal(t, []string{other.ID}, updated.LikedBy)

	content := "new body"
	again, err := env.posts.Update(ctx, owner.ID, p.ID, UpdatePostInput{Content: &content})
	require.NoError(t, err)
	assert.Equal(t, updated.Slug, again.Slug)
}

func TestPostService_ViewBySlugCountsViews(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	u := env.register(t, "Ana", "ana@example.com")
	p := env.newPost(t, u.ID, "Counted")

	_, err := env.posts.ViewBySlug(ctx, p.Slug)
	require.NoError(t, err)
	viewed, err := env.posts.ViewBySlug(ctx, p.Slug)
	require.NoError(t, err)
	assert.EqualValues(t, 2, viewed.Views)

	assert.EqualValues(t, 2, env.reloadPost(t, p.ID).Views)

	_, err = env.posts.ViewBySlug(ctx, "missing")
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
}

func TestPostService_GetInvalidIDIsNotFound(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.posts.Get(context.Background(), "not-a-uuid")
	require.Error(t, err)
	assert.Equal(t, 404, apperr.HTTPStatus(err))
}

func TestPostService_DeleteCascades(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.register(t, "Ana", "ana@example.com")
	other := env.register(t, "Bob", "bob@example.com")
	p := env.newPost(t, owner.ID, "Doomed")
	c, err := env.comments.Create(ctx, other.ID, CreateCommentInput{PostID: p.ID, Content: "hi"})
	require.NoError(t, err)

	assert.True(t, apperr.Is(env.posts.Delete(ctx, other.ID, p.ID), apperr.KindForbidden))
	require.NoError(t, env.posts.Delete(ctx, owner.ID, p.ID))

	_, err = env.posts.Get(ctx, p.ID)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
	_, err = env.store.Comments().GetByID(ctx, c.ID)
	assert.Error(t, err)
}

func TestPostService_ListPaginates(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	u := env.register(t, "Ana", "ana@example.com")
	for _, title := range []string{"One", "Two", "Three"} {
		env.newPost(t, u.ID, title)
	}
	draft := false
	_, err := env.posts.Create(ctx, u.ID, CreatePostInput{Title: "Draft", Content: "c", Description: "d", Published: &draft})
	require.NoError(t, err)

	page, err := env.posts.List(ctx, ListQuery{Page: 2, Limit: 2})
	require.NoError(t, err)
	assert.EqualValues(t, 3, page.Total)
	assert.Equal(t, 2, page.Pages)
	assert.Len(t, page.Posts, 1)

	mine, err := env.posts.ListMine(ctx, u.ID, ListQuery{})
	require.NoError(t, err)
	assert.EqualValues(t, 4, mine.Total)
	assert.Equal(t, DefaultPageSize, mine.Limit)

	huge, err := env.posts.List(ctx, ListQuery{Limit: 1000, Author: "garbage"})
	require.NoError(t, err)
	assert.Equal(t, MaxPageSize, huge.Limit)
	assert.Empty(t, huge.Posts)
	assert.NotNil(t, huge.Posts)
}

func TestPostService_StatsCached(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	author := env.register(t, "Ana", "ana@example.com")
	reader := env.register(t, "Bob", "bob@example.com")
	p := env.newPost(t, author.ID, "Stats")

	st, err := env.posts.Stats(ctx, author.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, st.TotalPosts)
	assert.EqualValues(t, 0, st.TotalLikes)

	_, cached, _ := env.stats.Get(ctx, author.ID)
	assert.True(t, cached)

	_, err = env.interactions.TogglePostLike(ctx, reader.ID, p.ID)
	require.NoError(t, err)
	_, cached, _ = env.stats.Get(ctx, author.ID)
	assert.False(t, cached, "like must drop the author's cached stats")

	st, err = env.posts.Stats(ctx, author.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, st.TotalLikes)

	_, err = env.interactions.TogglePostBookmark(ctx, reader.ID, p.ID)
	require.NoError(t, err)
	saved, err := env.posts.Stats(ctx, reader.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, saved.SavedPosts)
}

func TestCleanTags(t *testing.T) {
	assert.Equal(t, []string{"go", "web"}, cleanTags([]string{" go", "", "web", "go"}))
	assert.Equal(t, []string{}, cleanTags(nil))
}
