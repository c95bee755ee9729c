package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/oksasatya/thinkel-blog-api/internal/domain/entity"
	"github.com/oksasatya/thinkel-blog-api/internal/domain/repository"
)

type PostRepository struct {
	s *Store
}

func (r *PostRepository) Create(ctx context.Context, p *entity.Post) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.slugTaken("", p.Slug) {
		return repository.ErrDuplicate
	}
	now := time.Now().UTC()
	p.ID = uuid.NewString()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now
	p.Likes, p.Comments, p.Views = 0, 0, 0
	p.LikedBy, p.BookmarkedBy = []string{}, []string{}
	if p.Tags == nil {
		p.Tags = []string{}
	}
	r.s.posts[p.ID] = p.Clone()
	return nil
}

func (r *PostRepository) GetByID(ctx context.Context, id string) (*entity.Post, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.posts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return p.Clone(), nil
}

func (r *PostRepository) ViewBySlug(ctx context.Context, slug string) (*entity.Post, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, p := range r.s.posts {
		if p.Slug == slug && p.Published {
			p.Views++
			return p.Clone(), nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *PostRepository) Update(ctx context.Context, p *entity.Post) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	cur, ok := r.s.posts[p.ID]
	if !ok {
		return repository.ErrNotFound
	}
	if r.slugTaken(p.ID, p.Slug) {
		return repository.ErrDuplicate
	}
	cur.Title = p.Title
	cur.Content = p.Content
	cur.Description = p.Description
	cur.Slug = p.Slug
	cur.Thumbnail = p.Thumbnail
	cur.Tags = append([]string{}, p.Tags...)
	cur.Published = p.Published
	cur.Author = p.Author
	cur.UpdatedAt = time.Now().UTC()

	// hand back the live counters, never overwrite them
	*p = *cur.Clone()
	return nil
}

func (r *PostRepository) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.posts[id]; !ok {
		return repository.ErrNotFound
	}
	for cid, c := range r.s.comments {
		if c.PostID == id {
			delete(r.s.comments, cid)
		}
	}
	delete(r.s.posts, id)
	return nil
}

func (r *PostRepository) List(ctx context.Context, f repository.PostFilter) ([]*entity.Post, int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	matched := make([]*entity.Post, 0)
	for _, p := range r.s.posts {
		if matches(p, f) {
			matched = append(matched, p)
		}
	}
	sortPosts(matched, f.Sort)

	total := int64(len(matched))
	start := f.Offset
	if start > len(matched) {
		start = len(matched)
	}
	end := len(matched)
	if f.Limit > 0 && start+f.Limit < end {
		end = start + f.Limit
	}
	out := make([]*entity.Post, 0, end-start)
	for _, p := range matched[start:end] {
		out = append(out, p.Clone())
	}
	return out, total, nil
}

func (r *PostRepository) ToggleLike(ctx context.Context, postID, userID string) (int, bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.posts[postID]
	if !ok {
		return 0, false, repository.ErrNotFound
	}
	likes, liked := p.ToggleLike(userID)
	p.UpdatedAt = time.Now().UTC()
	return likes, liked, nil
}

func (r *PostRepository) ToggleBookmark(ctx context.Context, postID, userID string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.posts[postID]
	if !ok {
		return false, repository.ErrNotFound
	}
	bookmarked := p.ToggleBookmark(userID)
	p.UpdatedAt = time.Now().UTC()
	return bookmarked, nil
}

func (r *PostRepository) Stats(ctx context.Context, userID string) (entity.PostStats, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var st entity.PostStats
	for _, p := range r.s.posts {
		if p.Author.UserID == userID {
			st.TotalPosts++
			st.TotalLikes += int64(p.Likes)
			st.TotalComments += int64(p.Comments)
		}
		if p.BookmarkedByUser(userID) {
			st.SavedPosts++
		}
	}
	return st, nil
}

func (r *PostRepository) RecountCounters(ctx context.Context) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	counts := make(map[string]int, len(r.s.posts))
	for _, c := range r.s.comments {
		counts[c.PostID]++
	}
	var fixed int64
	for id, p := range r.s.posts {
		likes := len(p.LikedBy)
		if p.Comments != counts[id] || p.Likes != likes {
			p.Comments = counts[id]
			p.Likes = likes
			fixed++
		}
	}
	return fixed, nil
}

func (r *PostRepository) slugTaken(selfID, slug string) bool {
	for id, p := range r.s.posts {
		if id != selfID && p.Slug == slug {
			return true
		}
	}
	return false
}

func matches(p *entity.Post, f repository.PostFilter) bool {
	if f.PublishedOnly && !p.Published {
		return false
	}
	if f.AuthorID != "" && p.Author.UserID != f.AuthorID {
		return false
	}
	if f.BookmarkedBy != "" && !p.BookmarkedByUser(f.BookmarkedBy) {
		return false
	}
	if f.Tag != "" {
		found := false
		for _, t := range p.Tags {
			if t == f.Tag {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if q := strings.ToLower(strings.TrimSpace(f.Search)); q != "" {
		hit := strings.Contains(strings.ToLower(p.Title), q) || strings.Contains(strings.ToLower(p.Description), q)
		for _, t := range p.Tags {
			if strings.Contains(strings.ToLower(t), q) {
				hit = true
			}
		}
		if !hit {
			return false
		}
	}
	return true
}

func sortPosts(posts []*entity.Post, order string) {
	desc := strings.HasPrefix(order, "-")
	field := strings.TrimPrefix(order, "-")
	var cmp func(a, b *entity.Post) int
	switch field {
	case "likes":
		cmp = func(a, b *entity.Post) int { return compareInt(a.Likes, b.Likes) }
	case "views":
		cmp = func(a, b *entity.Post) int { return compareInt(a.Views, b.Views) }
	case "comments":
		cmp = func(a, b *entity.Post) int { return compareInt(a.Comments, b.Comments) }
	case "title":
		cmp = func(a, b *entity.Post) int { return strings.Compare(a.Title, b.Title) }
	case "updatedAt":
		cmp = func(a, b *entity.Post) int { return a.UpdatedAt.Compare(b.UpdatedAt) }
	case "createdAt":
		cmp = func(a, b *entity.Post) int { return a.CreatedAt.Compare(b.CreatedAt) }
	default:
		cmp = func(a, b *entity.Post) int { return a.CreatedAt.Compare(b.CreatedAt) }
		desc = true
	}
	// Ties fall back to created_at DESC, then id, like the postgres ORDER BY.
	sort.Slice(posts, func(i, j int) bool {
		a, b := posts[i], posts[j]
		if c := cmp(a, b); c != 0 {
			return (c < 0) != desc
		}
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c > 0
		}
		return a.ID < b.ID
	})
}

func compareInt[T ~int | ~int64](a, b T) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
