package application

import (
	"context"

	"github.com/sirupsen/logrus"

	repo "github.com/oksasatya/thinkel-blog-api/internal/domain/repository"
	"github.com/oksasatya/thinkel-blog-api/pkg/apperr"
	"github.com/oksasatya/thinkel-blog-api/pkg/helpers"
)

// LikeResult is the state after a like toggle.
type LikeResult struct {
	Likes int  `json:"likes"`
	Liked bool `json:"liked"`
}

// BookmarkResult is the state after a bookmark toggle.
type BookmarkResult struct {
	Bookmarked bool `json:"bookmarked"`
}

// InteractionService toggles likes and bookmarks. Any authenticated user
// may toggle any target.
type InteractionService struct {
	Posts    repo.PostRepository
	Comments repo.CommentRepository
	Stats    StatsCache
	Logger   *logrus.Logger
}

func NewInteractionService(posts repo.PostRepository, comments repo.CommentRepository, stats StatsCache, logger *logrus.Logger) *InteractionService {
	if logger == nil {
		logger = helpers.NewNopLogger()
	}
	return &InteractionService{Posts: posts, Comments: comments, Stats: stats, Logger: logger}
}

func (s *InteractionService) TogglePostLike(ctx context.Context, userID, postID string) (LikeResult, error) {
	if userID == "" {
		return LikeResult{}, apperr.Unauthorized(MsgTokenMissing)
	}
	if !validID(postID) {
		return LikeResult{}, apperr.NotFound(MsgPostNotFound)
	}
	likes, liked, err := s.Posts.ToggleLike(ctx, postID, userID)
	if err != nil {
		return LikeResult{}, notFoundOr(err, "toggle post like", MsgPostNotFound)
	}
	s.invalidateAuthor(ctx, postID)
	return LikeResult{Likes: likes, Liked: liked}, nil
}

func (s *InteractionService) TogglePostBookmark(ctx context.Context, userID, postID string) (BookmarkResult, error) {
	if userID == "" {
		return BookmarkResult{}, apperr.Unauthorized(MsgTokenMissing)
	}
	if !validID(postID) {
		return BookmarkResult{}, apperr.NotFound(MsgPostNotFound)
	}
	bookmarked, err := s.Posts.ToggleBookmark(ctx, postID, userID)
	if err != nil {
		return BookmarkResult{}, notFoundOr(err, "toggle bookmark", MsgPostNotFound)
	}
	invalidateStats(ctx, s.Stats, s.Logger, userID)
	return BookmarkResult{Bookmarked: bookmarked}, nil
}

func (s *InteractionService) ToggleCommentLike(ctx context.Context, userID, commentID string) (LikeResult, error) {
	if userID == "" {
		return LikeResult{}, apperr.Unauthorized(MsgTokenMissing)
	}
	if !validID(commentID) {
		return LikeResult{}, apperr.NotFound(MsgCommentNotFound)
	}
	likes, liked, err := s.Comments.ToggleLike(ctx, commentID, userID)
	if err != nil {
		return LikeResult{}, notFoundOr(err, "toggle comment like", MsgCommentNotFound)
	}
	return LikeResult{Likes: likes, Liked: liked}, nil
}

// invalidateAuthor drops the cached stats of the post's author.
func (s *InteractionService) invalidateAuthor(ctx context.Context, postID string) {
	if s.Stats == nil {
		return
	}
	p, err := s.Posts.GetByID(ctx, postID)
	if err != nil {
		return
	}
	invalidateStats(ctx, s.Stats, s.Logger, p.Author.UserID)
}
