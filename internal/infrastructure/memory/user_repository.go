// Package memory is a process-local user store for development runs and tests.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/oksasatya/go-user-management/internal/domain/entity"
	repo "github.com/oksasatya/go-user-management/internal/domain/repository"
)

type UserRepository struct {
	mu     sync.RWMutex
	nextID int64
	users  map[int64]*entity.User
	now    func() time.Time
}

func NewUserRepository() *UserRepository {
	return &UserRepository{
		users: make(map[int64]*entity.User),
		now:   time.Now,
	}
}

func (r *UserRepository) FindAll(ctx context.Context) ([]*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*entity.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, clone(u))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id int64) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return clone(u), nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.findEmail(func(stored string) bool { return stored == email })
}

func (r *UserRepository) FindByEmailFold(ctx context.Context, email string) (*entity.User, error) {
	return r.findEmail(func(stored string) bool { return strings.EqualFold(stored, email) })
}

func (r *UserRepository) findEmail(match func(string) bool) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if match(u.Email) {
			return clone(u), nil
		}
	}
	return nil, repo.ErrNotFound
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.emailTaken(u.Email, 0) {
		return repo.ErrDuplicateEmail
	}
	r.nextID++
	now := r.now().UTC()
	u.ID = r.nextID
	u.CreatedAt, u.UpdatedAt = now, now
	r.users[u.ID] = clone(u)
	return nil
}

func (r *UserRepository) Update(ctx context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.users[u.ID]
	if !ok {
		return repo.ErrNotFound
	}
	if r.emailTaken(u.Email, u.ID) {
		return repo.ErrDuplicateEmail
	}
	u.CreatedAt = cur.CreatedAt
	u.UpdatedAt = r.now().UTC()
	r.users[u.ID] = clone(u)
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[u.ID]; !ok {
		return repo.ErrNotFound
	}
	delete(r.users, u.ID)
	return nil
}

// emailTaken must be called with the write lock held.
func (r *UserRepository) emailTaken(email string, except int64) bool {
	for id, u := range r.users {
		if id != except && strings.EqualFold(u.Email, email) {
			return true
		}
	}
	return false
}

func clone(u *entity.User) *entity.User {
	c := *u
	c.Roles = append([]entity.Role(nil), u.Roles...)
	return &c
}
