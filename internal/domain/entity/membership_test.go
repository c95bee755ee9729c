package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPost_ToggleLikeRoundTrip(t *testing.T) {
	p := &Post{}

	likes, liked := p.ToggleLike("user-a")
	assert.Equal(t, 1, likes)
	assert.True(t, liked)
	assert.Equal(t, []string{"user-a"}, p.LikedBy)

	likes, liked = p.ToggleLike("user-a")
	assert.Equal(t, 0, likes)
	assert.False(t, liked)
	assert.Empty(t, p.LikedBy)
}

func TestPost_ToggleLikeFloorsCorruptedCounter(t *testing.T) {
	p := &Post{Likes: 0, LikedBy: []string{"user-a"}}

	likes, liked := p.ToggleLike("user-a")
	assert.Equal(t, 0, likes)
	assert.False(t, liked)
}

func TestToggleMembership_RemovesDuplicates(t *testing.T) {
	set, member := ToggleMembership([]string{"a", "b", "a"}, "a")
	assert.False(t, member)
	assert.Equal(t, []string{"b"}, set)
}

func TestPost_ToggleBookmarkHasNoCounter(t *testing.T) {
	p := &Post{Likes: 3}
	assert.True(t, p.ToggleBookmark("u1"))
	assert.True(t, p.BookmarkedByUser("u1"))
	assert.Equal(t, 3, p.Likes)
	assert.False(t, p.ToggleBookmark("u1"))
	assert.Empty(t, p.BookmarkedBy)
}

func TestComment_ToggleLike(t *testing.T) {
	c := &Comment{}
	likes, liked := c.ToggleLike("u1")
	assert.Equal(t, 1, likes)
	assert.True(t, liked)
	likes, liked = c.ToggleLike("u2")
	assert.Equal(t, 2, likes)
	assert.True(t, liked)
	assert.Equal(t, len(c.LikedBy), c.Likes)
}

func TestAuthorFrom_DefaultsUsername(t *testing.T) {
	a := AuthorFrom(&User{ID: "1", Name: "Ana", Email: "Ana.Lopez@Example.com"})
	assert.Equal(t, "ana.lopez", a.Username)
}
