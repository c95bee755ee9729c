package application

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/thinkel-blog-api/internal/domain/entity"
	repo "github.com/oksasatya/thinkel-blog-api/internal/domain/repository"
	"github.com/oksasatya/thinkel-blog-api/pkg/apperr"
	"github.com/oksasatya/thinkel-blog-api/pkg/helpers"
)

type CommentService struct {
	Comments repo.CommentRepository
	Posts    repo.PostRepository
	Users    repo.UserRepository
	Stats    StatsCache
	Logger   *logrus.Logger
}

func NewCommentService(comments repo.CommentRepository, posts repo.PostRepository, users repo.UserRepository, stats StatsCache, logger *logrus.Logger) *CommentService {
	if logger == nil {
		logger = helpers.NewNopLogger()
	}
	return &CommentService{Comments: comments, Posts: posts, Users: users, Stats: stats, Logger: logger}
}

type CreateCommentInput struct {
	PostID   string
	Content  string
	ParentID string
}

// Create adds a top-level comment, or a reply when ParentID is set. Replies
// can only target top-level comments of the same post.
func (s *CommentService) Create(ctx context.Context, userID string, in CreateCommentInput) (*entity.Comment, error) {
	postID := strings.TrimSpace(in.PostID)
	content := strings.TrimSpace(in.Content)
	if postID == "" || content == "" {
		return nil, apperr.Validation(MsgCommentRequired)
	}
	if utf8.RuneCountInString(content) > entity.MaxCommentLen {
		return nil, apperr.Validation(MsgCommentTooLong)
	}

	post, err := s.loadPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	c := &entity.Comment{PostID: post.ID, Content: content}
	if parentID := strings.TrimSpace(in.ParentID); parentID != "" {
		parent, err := s.load(ctx, parentID, MsgParentNotFound)
		if err != nil {
			return nil, err
		}
		if parent.IsReply {
			return nil, apperr.Validation(MsgReplyToReply)
		}
		if parent.PostID != post.ID {
			return nil, apperr.Validation(MsgParentOtherPost)
		}
		c.ParentID = &parent.ID
		c.IsReply = true
	}

	u, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, apperr.Unauthorized(MsgUserNotFound)
		}
		return nil, internal("load author", err)
	}
	c.Author = entity.CommentAuthor{UserID: u.ID, Name: u.Name, Avatar: u.AvatarURL}

	if err := s.Comments.Create(ctx, c); err != nil {
		// post or parent vanished between the checks and the insert
		return nil, notFoundOr(err, "create comment", MsgPostNotFound)
	}
	invalidateStats(ctx, s.Stats, s.Logger, post.Author.UserID)
	return c, nil
}

// ListForPost returns the top-level comments of postID in the requested
// order, each with its replies oldest first.
func (s *CommentService) ListForPost(ctx context.Context, postID, sort string) ([]entity.CommentThread, error) {
	if _, err := s.loadPost(ctx, postID); err != nil {
		return nil, err
	}
	top, err := s.Comments.ListTopLevel(ctx, postID, repo.ParseCommentOrder(sort))
	if err != nil {
		return nil, internal("list comments", err)
	}
	threads := make([]entity.CommentThread, 0, len(top))
	if len(top) == 0 {
		return threads, nil
	}

	ids := make([]string, 0, len(top))
	for _, c := range top {
		ids = append(ids, c.ID)
	}
	replies, err := s.Comments.ListReplies(ctx, ids)
	if err != nil {
		return nil, internal("list replies", err)
	}
	for _, c := range top {
		r := replies[c.ID]
		if r == nil {
			r = []*entity.Comment{}
		}
		threads = append(threads, entity.CommentThread{Comment: c, Replies: r})
	}
	return threads, nil
}

func (s *CommentService) Update(ctx context.Context, userID, id, content string) (*entity.Comment, error) {
	c, err := s.load(ctx, id, MsgCommentNotFound)
	if err != nil {
		return nil, err
	}
	if !c.OwnedBy(userID) {
		return nil, apperr.Forbidden(MsgCommentEditForbidden)
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperr.Validation(MsgCommentEmpty)
	}
	if utf8.RuneCountInString(content) > entity.MaxCommentLen {
		return nil, apperr.Validation(MsgCommentTooLong)
	}
	updated, err := s.Comments.UpdateContent(ctx, id, content)
	if err != nil {
		return nil, notFoundOr(err, "update comment", MsgCommentNotFound)
	}
	return updated, nil
}

// Delete removes the comment and its replies and returns how many rows went.
func (s *CommentService) Delete(ctx context.Context, userID, id string) (int, error) {
	c, err := s.load(ctx, id, MsgCommentNotFound)
	if err != nil {
		return 0, err
	}
	if !c.OwnedBy(userID) {
		return 0, apperr.Forbidden(MsgCommentDelForbidden)
	}
	n, err := s.Comments.DeleteWithReplies(ctx, id)
	if err != nil {
		return 0, notFoundOr(err, "delete comment", MsgCommentNotFound)
	}
	if post, err := s.Posts.GetByID(ctx, c.PostID); err == nil {
		invalidateStats(ctx, s.Stats, s.Logger, post.Author.UserID)
	}
	s.Logger.WithFields(logrus.Fields{"comment_id": id, "removed": n}).Info("comment deleted")
	return n, nil
}

func (s *CommentService) loadPost(ctx context.Context, postID string) (*entity.Post, error) {
	if !validID(postID) {
		return nil, apperr.NotFound(MsgPostNotFound)
	}
	p, err := s.Posts.GetByID(ctx, postID)
	if err != nil {
		return nil, notFoundOr(err, "load post", MsgPostNotFound)
	}
	return p, nil
}

func (s *CommentService) load(ctx context.Context, id, missing string) (*entity.Comment, error) {
	if !validID(id) {
		return nil, apperr.NotFound(missing)
	}
	c, err := s.Comments.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "load comment", missing)
	}
	return c, nil
}
