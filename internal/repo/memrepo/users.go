// Package memrepo holds mutex-guarded in-memory implementations of the domain
// repositories. They back unit tests and enforce the same uniqueness rules as
// the gorm stores.
package memrepo

import (
	"context"
	"sort"
	"sync"
	"time"

	"healthy-backend/internal/domain"
)

type Users struct {
	mu      sync.RWMutex
	nextID  uint64
	byID    map[uint64]domain.User
	byEmail map[string]uint64
}

func NewUsers() *Users {
	return &Users{byID: map[uint64]domain.User{}, byEmail: map[string]uint64{}}
}

func (r *Users) Create(_ context.Context, u *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byEmail[u.Email]; ok {
		return domain.ErrDuplicateEmail
	}
	r.nextID++
	u.ID = r.nextID
	now := time.Now()
	u.CreatedAt, u.UpdatedAt = now, now
	r.byID[u.ID] = *u
	r.byEmail[u.Email] = u.ID
	return nil
}

func (r *Users) FindByID(_ context.Context, id uint64) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *Users) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byEmail[email]
	if !ok {
		return nil, nil
	}
	u := r.byID[id]
	return &u, nil
}

func (r *Users) List(_ context.Context, offset, limit int) ([]domain.User, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	all := make([]domain.User, 0, len(r.byID))
	for _, u := range r.byID {
		all = append(all, u)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return page(all, offset, limit), int64(len(all)), nil
}

func (r *Users) Update(_ context.Context, u *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	old, ok := r.byID[u.ID]
	if !ok {
		return domain.ErrNotFound
	}
	if id, taken := r.byEmail[u.Email]; taken && id != u.ID {
		return domain.ErrDuplicateEmail
	}
	delete(r.byEmail, old.Email)
	u.UpdatedAt = time.Now()
	r.byID[u.ID] = *u
	r.byEmail[u.Email] = u.ID
	return nil
}

func (r *Users) Delete(_ context.Context, id uint64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[id]
	if !ok {
		return domain.ErrNotFound
	}
	delete(r.byID, id)
	delete(r.byEmail, u.Email)
	return nil
}

// Len reports how many users are stored.
func (r *Users) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byID)
}

func page[T any](all []T, offset, limit int) []T {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 || offset >= len(all) {
		return []T{}
	}
	end := min(offset+limit, len(all))
	return all[offset:end]
}
