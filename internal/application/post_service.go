package application

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/thinkel-blog-api/internal/domain/entity"
	repo "github.com/oksasatya/thinkel-blog-api/internal/domain/repository"
	"github.com/oksasatya/thinkel-blog-api/pkg/apperr"
	"github.com/oksasatya/thinkel-blog-api/pkg/helpers"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100

	slugAttempts = 5
)

type PostService struct {
	Posts  repo.PostRepository
	Users  repo.UserRepository
	Cache  StatsCache
	Logger *logrus.Logger

	now func() time.Time
}

func NewPostService(posts repo.PostRepository, users repo.UserRepository, stats StatsCache, logger *logrus.Logger) *PostService {
	if logger == nil {
		logger = helpers.NewNopLogger()
	}
	return &PostService{Posts: posts, Users: users, Cache: stats, Logger: logger, now: time.Now}
}

type CreatePostInput struct {
	Title       string
	Content     string
	Description string
	Thumbnail   string
	Tags        []string
	Published   *bool
}

func (s *PostService) Create(ctx context.Context, userID string, in CreatePostInput) (*entity.Post, error) {
	title := strings.TrimSpace(in.Title)
	content := strings.TrimSpace(in.Content)
	description := strings.TrimSpace(in.Description)
	if title == "" || content == "" || description == "" {
		return nil, apperr.Validation(MsgPostRequired)
	}
	if err := checkPostLengths(title, description); err != nil {
		return nil, err
	}
	author, err := s.author(ctx, userID)
	if err != nil {
		return nil, err
	}

	p := &entity.Post{
		Title:       title,
		Content:     content,
		Description: description,
		Thumbnail:   strings.TrimSpace(in.Thumbnail),
		Tags:        cleanTags(in.Tags),
		Author:      author,
		Published:   true,
	}
	if in.Published != nil {
		p.Published = *in.Published
	}
	if err := s.withFreshSlug(p, func() error { return s.Posts.Create(ctx, p) }); err != nil {
		return nil, internal("create post", err)
	}
	s.invalidateStats(ctx, userID)
	return p, nil
}

// withFreshSlug derives the slug and retries write with a later timestamp
// while the slug collides.
func (s *PostService) withFreshSlug(p *entity.Post, write func() error) error {
	regenerate := p.Slug == ""
	now := s.now()
	var err error
	for i := 0; i < slugAttempts; i++ {
		if regenerate {
			p.Slug = entity.Slugify(p.Title, now.Add(time.Duration(i)*time.Millisecond))
		}
		if err = write(); !errors.Is(err, repo.ErrDuplicate) || !regenerate {
			return err
		}
	}
	return err
}

func (s *PostService) Get(ctx context.Context, id string) (*entity.Post, error) {
	if !validID(id) {
		return nil, apperr.NotFound(MsgPostNotFound)
	}
	p, err := s.Posts.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "load post", MsgPostNotFound)
	}
	return p, nil
}

// ViewBySlug returns a published post and counts the view.
func (s *PostService) ViewBySlug(ctx context.Context, slug string) (*entity.Post, error) {
	p, err := s.Posts.ViewBySlug(ctx, strings.TrimSpace(slug))
	if err != nil {
		return nil, notFoundOr(err, "view post", MsgPostNotFound)
	}
	return p, nil
}

type UpdatePostInput struct {
	Title       *string
	Content     *string
	Description *string
	Thumbnail   *string
	Tags        *[]string
	Published   *bool
}

func (s *PostService) Update(ctx context.Context, userID, id string, in UpdatePostInput) (*entity.Post, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !p.OwnedBy(userID) {
		return nil, apperr.Forbidden(MsgPostEditForbidden)
	}

	if in.Title != nil {
		if title := strings.TrimSpace(*in.Title); title != "" {
			p.Rename(title)
		}
	}
	if in.Content != nil {
		if content := strings.TrimSpace(*in.Content); content != "" {
			p.Content = content
		}
	}
	if in.Description != nil {
		if description := strings.TrimSpace(*in.Description); description != "" {
			p.Description = description
		}
	}
	if in.Thumbnail != nil {
		p.Thumbnail = strings.TrimSpace(*in.Thumbnail)
	}
	if in.Tags != nil {
		p.Tags = cleanTags(*in.Tags)
	}
	if in.Published != nil {
		p.Published = *in.Published
	}
	if err := checkPostLengths(p.Title, p.Description); err != nil {
		return nil, err
	}
	if author, err := s.author(ctx, userID); err == nil {
		p.Author = author
	}

	if err := s.withFreshSlug(p, func() error { return s.Posts.Update(ctx, p) }); err != nil {
		return nil, notFoundOr(err, "update post", MsgPostNotFound)
	}
	return p, nil
}

func (s *PostService) Delete(ctx context.Context, userID, id string) error {
	p, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if !p.OwnedBy(userID) {
		return apperr.Forbidden(MsgPostDelForbidden)
	}
	if err := s.Posts.Delete(ctx, id); err != nil {
		return notFoundOr(err, "delete post", MsgPostNotFound)
	}
	s.invalidateStats(ctx, append([]string{userID}, p.BookmarkedBy...)...)
	s.Logger.WithFields(logrus.Fields{"post_id": id, "user_id": userID}).Info("post deleted")
	return nil
}

type ListQuery struct {
	Page   int
	Limit  int
	Tag    string
	Author string
	Search string
	Sort   string
}

// PostPage is one page of a listing.
type PostPage struct {
	Posts []*entity.Post
	Page  int
	Limit int
	Total int64
	Pages int
}

// List returns published posts.
func (s *PostService) List(ctx context.Context, q ListQuery) (PostPage, error) {
	return s.list(ctx, q, repo.PostFilter{
		PublishedOnly: true,
		Tag:           strings.TrimSpace(q.Tag),
		AuthorID:      strings.TrimSpace(q.Author),
		Search:        q.Search,
		Sort:          q.Sort,
	})
}

// ListMine returns every post of userID, drafts included.
func (s *PostService) ListMine(ctx context.Context, userID string, q ListQuery) (PostPage, error) {
	return s.list(ctx, q, repo.PostFilter{AuthorID: userID})
}

// ListBookmarked returns the published posts userID saved.
func (s *PostService) ListBookmarked(ctx context.Context, userID string, q ListQuery) (PostPage, error) {
	return s.list(ctx, q, repo.PostFilter{PublishedOnly: true, BookmarkedBy: userID})
}

func (s *PostService) list(ctx context.Context, q ListQuery, f repo.PostFilter) (PostPage, error) {
	page, limit := normalizePage(q.Page, q.Limit)
	if f.AuthorID != "" && !validID(f.AuthorID) {
		return PostPage{Posts: []*entity.Post{}, Page: page, Limit: limit}, nil
	}
	f.Limit = limit
	f.Offset = (page - 1) * limit

	posts, total, err := s.Posts.List(ctx, f)
	if err != nil {
		return PostPage{}, internal("list posts", err)
	}
	if posts == nil {
		posts = []*entity.Post{}
	}
	pages := int((total + int64(limit) - 1) / int64(limit))
	return PostPage{Posts: posts, Page: page, Limit: limit, Total: total, Pages: pages}, nil
}

// Stats returns the author dashboard, served from the cache when possible.
func (s *PostService) Stats(ctx context.Context, userID string) (entity.PostStats, error) {
	if s.Cache != nil {
		st, ok, err := s.Cache.Get(ctx, userID)
		if err != nil {
			s.Logger.WithError(err).WithField("user_id", userID).Warn("stats cache read failed")
		} else if ok {
			return st, nil
		}
	}
	st, err := s.Posts.Stats(ctx, userID)
	if err != nil {
		return entity.PostStats{}, internal("post stats", err)
	}
	if s.Cache != nil {
		if err := s.Cache.Set(ctx, userID, st); err != nil {
			s.Logger.WithError(err).WithField("user_id", userID).Warn("stats cache write failed")
		}
	}
	return st, nil
}

func (s *PostService) invalidateStats(ctx context.Context, userIDs ...string) {
	invalidateStats(ctx, s.Cache, s.Logger, userIDs...)
}

func invalidateStats(ctx context.Context, cache StatsCache, logger *logrus.Logger, userIDs ...string) {
	if cache == nil || len(userIDs) == 0 {
		return
	}
	if err := cache.Invalidate(ctx, userIDs...); err != nil {
		logger.WithError(err).Warn("stats cache invalidation failed")
	}
}

func (s *PostService) author(ctx context.Context, userID string) (entity.Author, error) {
	if !validID(userID) {
		return entity.Author{}, apperr.Unauthorized(MsgUserNotFound)
	}
	u, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return entity.Author{}, apperr.Unauthorized(MsgUserNotFound)
		}
		return entity.Author{}, internal("load author", err)
	}
	return entity.AuthorFrom(u), nil
}

func checkPostLengths(title, description string) error {
	if utf8.RuneCountInString(title) > entity.MaxTitleLen {
		return apperr.Validation(MsgPostTitleTooLong)
	}
	if utf8.RuneCountInString(description) > entity.MaxDescriptionLen {
		return apperr.Validation(MsgPostDescTooLong)
	}
	return nil
}

// cleanTags trims, drops empties and de-duplicates while keeping order.
func cleanTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	return page, limit
}
