package entity

import "time"

const (
	MaxTitleLen       = 200
	MaxDescriptionLen = 500
	MaxBioLen         = 500
	MaxCommentLen     = 1000
)

// Author is a snapshot of the writer's public profile taken at write time.
// It is never refreshed when the user later edits their profile.
type Author struct {
	UserID   string `json:"userId"`
	Name     string `json:"name"`
	Username string `json:"username"`
	Avatar   string `json:"avatar,omitempty"`
	Bio      string `json:"bio"`
}

// AuthorFrom snapshots u.
func AuthorFrom(u *User) Author {
	username := u.Username
	if username == "" {
		username = UsernameFromEmail(u.Email)
	}
	return Author{
		UserID:   u.ID,
		Name:     u.Name,
		Username: username,
		Avatar:   u.AvatarURL,
		Bio:      u.Bio,
	}
}

// Post is an article. Likes mirrors len(LikedBy); Comments mirrors the number
// of comment rows (top-level and replies) that reference the post.
type Post struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Content      string    `json:"content"`
	Description  string    `json:"description"`
	Slug         string    `json:"slug"`
	Thumbnail    string    `json:"thumbnail,omitempty"`
	Author       Author    `json:"author"`
	Tags         []string  `json:"tags"`
	Likes        int       `json:"likes"`
	Comments     int       `json:"comments"`
	LikedBy      []string  `json:"likedBy"`
	BookmarkedBy []string  `json:"bookmarkedBy"`
	Views        int64     `json:"views"`
	Published    bool      `json:"published"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// EnsureSlug derives the slug when it has not been set yet.
func (p *Post) EnsureSlug(now time.Time) {
	if p.Slug == "" {
		p.Slug = Slugify(p.Title, now)
	}
}

// Rename changes the title and clears the slug so the next save regenerates it.
func (p *Post) Rename(title string) {
	if title == p.Title {
		return
	}
	p.Title = title
	p.Slug = ""
}

func (p *Post) OwnedBy(userID string) bool {
	return userID != "" && p.Author.UserID == userID
}

// ToggleLike flips userID's membership in LikedBy and returns the new
// counter and membership.
func (p *Post) ToggleLike(userID string) (likes int, liked bool) {
	p.LikedBy, liked = ToggleMembership(p.LikedBy, userID)
	p.Likes = adjustCounter(p.Likes, liked)
	return p.Likes, liked
}

// ToggleBookmark flips userID's membership in BookmarkedBy. Bookmarks have no
// cached counter.
func (p *Post) ToggleBookmark(userID string) (bookmarked bool) {
	p.BookmarkedBy, bookmarked = ToggleMembership(p.BookmarkedBy, userID)
	return bookmarked
}

func (p *Post) BookmarkedByUser(userID string) bool { return contains(p.BookmarkedBy, userID) }

// Clone returns a deep copy safe to hand out of a store.
func (p *Post) Clone() *Post {
	cp := *p
	cp.Tags = append([]string{}, p.Tags...)
	cp.LikedBy = append([]string{}, p.LikedBy...)
	cp.BookmarkedBy = append([]string{}, p.BookmarkedBy...)
	return &cp
}

// PostStats aggregates an author's dashboard counters.
type PostStats struct {
	TotalPosts    int64 `json:"totalPosts"`
	TotalLikes    int64 `json:"totalLikes"`
	TotalComments int64 `json:"totalComments"`
	SavedPosts    int64 `json:"savedPosts"`
}
