package memrepo

import (
	"context"
	"sort"
	"sync"

	"healthy-backend/internal/domain"
)

type MealPlans struct {
	mu     sync.Mutex
	nextID uint64
	items  map[uint64]domain.MealPlan
}

func NewMealPlans() *MealPlans { return &MealPlans{items: map[uint64]domain.MealPlan{}} }

func (r *MealPlans) Create(_ context.Context, p *domain.MealPlan) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	p.ID = r.nextID
	r.items[p.ID] = *p
	return nil
}

func (r *MealPlans) ListByUser(_ context.Context, userID uint64) ([]domain.MealPlan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.MealPlan
	for _, p := range r.items {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].PlanDate.Equal(out[j].PlanDate) {
			return out[i].PlanDate.After(out[j].PlanDate)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (r *MealPlans) DeleteForUser(_ context.Context, userID, id uint64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.items[id]
	if !ok || p.UserID != userID {
		return domain.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

type Progress struct {
	mu     sync.Mutex
	nextID uint64
	items  []domain.UserProgress
}

func NewProgress() *Progress { return &Progress{} }

func (r *Progress) Create(_ context.Context, p *domain.UserProgress) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	p.ID = r.nextID
	r.items = append(r.items, *p)
	return nil
}

func (r *Progress) ListByUser(_ context.Context, userID uint64) ([]domain.UserProgress, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.UserProgress
	for _, p := range r.items {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.After(out[j].Date)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}
