package repository

import (
	"context"

	"github.com/oksasatya/thinkel-blog-api/internal/domain/entity"
)

// CommentRepository defines the discussion store. Create and Delete keep the
// owning post's comments counter in step within the same store transaction.
type CommentRepository interface {
	Create(ctx context.Context, c *entity.Comment) error
	GetByID(ctx context.Context, id string) (*entity.Comment, error)
	// ListTopLevel returns comments of postID without a parent.
	ListTopLevel(ctx context.Context, postID string, order CommentOrder) ([]*entity.Comment, error)
	// ListReplies returns the replies of every parent, oldest first.
	ListReplies(ctx context.Context, parentIDs []string) (map[string][]*entity.Comment, error)
	UpdateContent(ctx context.Context, id, content string) (*entity.Comment, error)
	// DeleteWithReplies removes the comment and its direct replies and returns
	// the number of removed rows.
	DeleteWithReplies(ctx context.Context, id string) (int, error)
	ToggleLike(ctx context.Context, commentID, userID string) (likes int, liked bool, err error)
}

// CommentOrder is the ordering of top-level comments.
type CommentOrder int

const (
	NewestFirst CommentOrder = iota
	OldestFirst
	MostLiked
	LeastLiked
)

// ParseCommentOrder maps a sort query ("-createdAt", "createdAt", "-likes",
// "likes") to an order, defaulting to NewestFirst.
func ParseCommentOrder(sort string) CommentOrder {
	switch sort {
	case "createdAt":
		return OldestFirst
	case "-likes":
		return MostLiked
	case "likes":
		return LeastLiked
	default:
		return NewestFirst
	}
}
