package user

import (
	"context"
	"sync"
)

type MemoryRepo struct {
	mu    sync.RWMutex
	users []User
	index map[string]int
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{index: make(map[string]int)}
}

func (r *MemoryRepo) Insert(ctx context.Context, u User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.index[u.Username]; exists {
		return ErrDuplicateUsername
	}
	r.index[u.Username] = len(r.users)
	r.users = append(r.users, u)
	return nil
}

func (r *MemoryRepo) Get(ctx context.Context, username string) (User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i, ok := r.index[username]
	if !ok {
		return User{}, ErrNotFound
	}
	return r.users[i], nil
}

func (r *MemoryRepo) List(ctx context.Context) ([]User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]User, len(r.users))
	copy(out, r.users)
	return out, nil
}
