package repository

import (
	"context"

	"github.com/oksasatya/thinkel-blog-api/internal/domain/entity"
)

// PostFilter narrows post listings. Zero values mean "no filter".
type PostFilter struct {
	PublishedOnly bool
	Tag           string
	AuthorID      string
	BookmarkedBy  string
	Search        string
	// Sort is a field name with an optional leading "-" for descending order.
	Sort   string
	Limit  int
	Offset int
}

// PostRepository defines the content store. Counter and set columns are only
// ever written through the atomic toggle and counter methods; Update never
// touches them.
type PostRepository interface {
	Create(ctx context.Context, p *entity.Post) error
	GetByID(ctx context.Context, id string) (*entity.Post, error)
	// ViewBySlug increments views of a published post and returns it.
	ViewBySlug(ctx context.Context, slug string) (*entity.Post, error)
	Update(ctx context.Context, p *entity.Post) error
	// Delete removes the post and every comment that references it.
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, f PostFilter) ([]*entity.Post, int64, error)

	ToggleLike(ctx context.Context, postID, userID string) (likes int, liked bool, err error)
	ToggleBookmark(ctx context.Context, postID, userID string) (bookmarked bool, err error)

	Stats(ctx context.Context, userID string) (entity.PostStats, error)
	// RecountCounters recomputes likes and comments for every post from the
	// relation state and returns how many posts were corrected.
	RecountCounters(ctx context.Context) (int64, error)
}
