package memory

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/oksasatya/thinkel-blog-api/internal/domain/entity"
	"github.com/oksasatya/thinkel-blog-api/internal/domain/repository"
)

type CommentRepository struct {
	s *Store
}

// Create inserts the comment and bumps the post counter under one lock.
func (r *CommentRepository) Create(ctx context.Context, c *entity.Comment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	post, ok := r.s.posts[c.PostID]
	if !ok {
		return repository.ErrNotFound
	}
	if c.ParentID != nil {
		if _, ok := r.s.comments[*c.ParentID]; !ok {
			return repository.ErrNotFound
		}
	}
	now := time.Now().UTC()
	c.ID = uuid.NewString()
	c.CreatedAt = now
	c.UpdatedAt = now
	c.Likes = 0
	c.LikedBy = []string{}
	r.s.comments[c.ID] = c.Clone()
	post.Comments++
	return nil
}

func (r *CommentRepository) GetByID(ctx context.Context, id string) (*entity.Comment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	c, ok := r.s.comments[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return c.Clone(), nil
}

func (r *CommentRepository) ListTopLevel(ctx context.Context, postID string, order repository.CommentOrder) ([]*entity.Comment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]*entity.Comment, 0)
	for _, c := range r.s.comments {
		if c.PostID == postID && c.ParentID == nil {
			out = append(out, c.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		switch order {
		case repository.MostLiked, repository.LeastLiked:
			if a.Likes != b.Likes {
				return (a.Likes > b.Likes) == (order == repository.MostLiked)
			}
			if !a.CreatedAt.Equal(b.CreatedAt) {
				return a.CreatedAt.After(b.CreatedAt)
			}
		case repository.OldestFirst:
			if !a.CreatedAt.Equal(b.CreatedAt) {
				return a.CreatedAt.Before(b.CreatedAt)
			}
		default:
			if !a.CreatedAt.Equal(b.CreatedAt) {
				return a.CreatedAt.After(b.CreatedAt)
			}
		}
		return a.ID < b.ID
	})
	return out, nil
}

func (r *CommentRepository) ListReplies(ctx context.Context, parentIDs []string) (map[string][]*entity.Comment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	wanted := make(map[string]struct{}, len(parentIDs))
	for _, id := range parentIDs {
		wanted[id] = struct{}{}
	}
	result := make(map[string][]*entity.Comment, len(parentIDs))
	for _, c := range r.s.comments {
		if c.ParentID == nil {
			continue
		}
		if _, ok := wanted[*c.ParentID]; ok {
			result[*c.ParentID] = append(result[*c.ParentID], c.Clone())
		}
	}
	for _, replies := range result {
		sort.Slice(replies, func(i, j int) bool {
			if !replies[i].CreatedAt.Equal(replies[j].CreatedAt) {
				return replies[i].CreatedAt.Before(replies[j].CreatedAt)
			}
			return replies[i].ID < replies[j].ID
		})
	}
	return result, nil
}

func (r *CommentRepository) UpdateContent(ctx context.Context, id, content string) (*entity.Comment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.comments[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	c.Content = content
	c.UpdatedAt = time.Now().UTC()
	return c.Clone(), nil
}

func (r *CommentRepository) DeleteWithReplies(ctx context.Context, id string) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	target, ok := r.s.comments[id]
	if !ok {
		return 0, repository.ErrNotFound
	}
	deleted := 0
	for cid, c := range r.s.comments {
		if c.ParentID != nil && *c.ParentID == id {
			delete(r.s.comments, cid)
			deleted++
		}
	}
	delete(r.s.comments, id)
	deleted++

	if post, ok := r.s.posts[target.PostID]; ok {
		post.Comments -= deleted
		if post.Comments < 0 {
			post.Comments = 0
		}
	}
	return deleted, nil
}

func (r *CommentRepository) ToggleLike(ctx context.Context, commentID, userID string) (int, bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.comments[commentID]
	if !ok {
		return 0, false, repository.ErrNotFound
	}
	likes, liked := c.ToggleLike(userID)
	return likes, liked, nil
}
