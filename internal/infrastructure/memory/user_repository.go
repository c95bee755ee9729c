package memory

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/oksasatya/thinkel-blog-api/internal/domain/entity"
	"github.com/oksasatya/thinkel-blog-api/internal/domain/repository"
)

type UserRepository struct {
	s *Store
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.conflicts("", u) {
		return repository.ErrDuplicate
	}
	now := time.Now().UTC()
	u.ID = uuid.NewString()
	u.CreatedAt = now
	u.UpdatedAt = now
	cp := *u
	r.s.users[u.ID] = &cp
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.find(func(u *entity.User) bool { return strings.EqualFold(u.Email, email) })
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	return r.find(func(u *entity.User) bool { return u.Username != "" && strings.EqualFold(u.Username, username) })
}

func (r *UserRepository) Update(ctx context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[u.ID]; !ok {
		return repository.ErrNotFound
	}
	if r.conflicts(u.ID, u) {
		return repository.ErrDuplicate
	}
	u.UpdatedAt = time.Now().UTC()
	cp := *u
	r.s.users[u.ID] = &cp
	return nil
}

func (r *UserRepository) find(match func(*entity.User) bool) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, u := range r.s.users {
		if match(u) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

// conflicts mirrors the unique indexes on lower(email) and lower(username).
func (r *UserRepository) conflicts(selfID string, u *entity.User) bool {
	for id, other := range r.s.users {
		if id == selfID {
			continue
		}
		if strings.EqualFold(other.Email, u.Email) {
			return true
		}
		if u.Username != "" && strings.EqualFold(other.Username, u.Username) {
			return true
		}
	}
	return false
}
