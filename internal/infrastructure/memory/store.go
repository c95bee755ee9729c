package memory

import (
	"sync"

	"github.com/oksasatya/thinkel-blog-api/internal/domain/entity"
	"github.com/oksasatya/thinkel-blog-api/internal/domain/repository"
)

// Store keeps users, posts and comments in maps behind one mutex, so that
// multi-entity operations (comment insert + post counter) are atomic.
type Store struct {
	mu       sync.RWMutex
	users    map[string]*entity.User
	posts    map[string]*entity.Post
	comments map[string]*entity.Comment
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{
		users:    make(map[string]*entity.User),
		posts:    make(map[string]*entity.Post),
		comments: make(map[string]*entity.Comment),
	}
}

func (s *Store) Users() *UserRepository       { return &UserRepository{s: s} }
func (s *Store) Posts() *PostRepository       { return &PostRepository{s: s} }
func (s *Store) Comments() *CommentRepository { return &CommentRepository{s: s} }

var (
	_ repository.UserRepository    = (*UserRepository)(nil)
	_ repository.PostRepository    = (*PostRepository)(nil)
	_ repository.CommentRepository = (*CommentRepository)(nil)
)
