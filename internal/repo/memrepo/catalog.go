package memrepo

import (
	"context"
	"sort"
	"strings"
	"sync"

	"healthy-backend/internal/domain"
)

// Catalog implements the recipe, diet and ingredient repositories over one
// shared state so that diet filters and cascades behave like the SQL store.
type Catalog struct {
	mu          sync.RWMutex
	nextID      uint64
	recipes     map[uint64]domain.Recipe
	diets       map[uint64]domain.Diet
	ingredients map[uint64]domain.Ingredient
}

func NewCatalog() *Catalog {
	return &Catalog{
		recipes:     map[uint64]domain.Recipe{},
		diets:       map[uint64]domain.Diet{},
		ingredients: map[uint64]domain.Ingredient{},
	}
}

func (c *Catalog) Recipes() *Recipes         { return &Recipes{c} }
func (c *Catalog) Diets() *Diets             { return &Diets{c} }
func (c *Catalog) Ingredients() *Ingredients { return &Ingredients{c} }

func (c *Catalog) id() uint64 {
	c.nextID++
	return c.nextID
}

// hydrate fills Diet from DietID; callers hold the lock.
func (c *Catalog) hydrate(r domain.Recipe) domain.Recipe {
	r.Diet = nil
	if r.DietID != nil {
		if d, ok := c.diets[*r.DietID]; ok {
			r.Diet = &d
		}
	}
	r.Ingredients = append([]domain.Ingredient(nil), r.Ingredients...)
	return r
}

type Recipes struct{ c *Catalog }

func (r *Recipes) Create(_ context.Context, rec *domain.Recipe) error {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()
	rec.ID = r.c.id()
	stored := *rec
	stored.Diet = nil
	r.c.recipes[rec.ID] = stored
	return nil
}

func (r *Recipes) FindByID(_ context.Context, id uint64) (*domain.Recipe, error) {
	r.c.mu.RLock()
	defer r.c.mu.RUnlock()
	rec, ok := r.c.recipes[id]
	if !ok {
		return nil, nil
	}
	out := r.c.hydrate(rec)
	return &out, nil
}

func (r *Recipes) List(_ context.Context, f domain.RecipeFilter) ([]domain.Recipe, int64, error) {
	r.c.mu.RLock()
	defer r.c.mu.RUnlock()
	q := strings.ToLower(strings.TrimSpace(f.Query))
	var all []domain.Recipe
	for _, rec := range r.c.recipes {
		rec = r.c.hydrate(rec)
		if f.Diet != "" && (rec.Diet == nil || rec.Diet.Name != f.Diet) {
			continue
		}
		if f.Difficulty != "" && rec.Difficulty != f.Difficulty {
			continue
		}
		if f.MaxCalories > 0 && rec.Calories > f.MaxCalories {
			continue
		}
		if q != "" && !strings.Contains(strings.ToLower(rec.Title+" "+rec.Description), q) {
			continue
		}
		all = append(all, rec)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return page(all, f.Offset, f.Limit), int64(len(all)), nil
}

func (r *Recipes) ListByDiet(ctx context.Context, dietName string) ([]domain.Recipe, error) {
	out, _, err := r.List(ctx, domain.RecipeFilter{Diet: dietName, Limit: 100})
	return out, err
}

func (r *Recipes) Delete(_ context.Context, id uint64) error {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()
	if _, ok := r.c.recipes[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.c.recipes, id)
	return nil
}

// Len reports how many recipes are stored.
func (r *Recipes) Len() int {
	r.c.mu.RLock()
	defer r.c.mu.RUnlock()
	return len(r.c.recipes)
}

type Diets struct{ c *Catalog }

func (r *Diets) Create(_ context.Context, d *domain.Diet) error {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()
	for _, existing := range r.c.diets {
		if existing.Name == d.Name {
			return domain.ErrInvalidInput
		}
	}
	d.ID = r.c.id()
	r.c.diets[d.ID] = *d
	return nil
}

func (r *Diets) FindByID(_ context.Context, id uint64) (*domain.Diet, error) {
	r.c.mu.RLock()
	defer r.c.mu.RUnlock()
	d, ok := r.c.diets[id]
	if !ok {
		return nil, nil
	}
	return &d, nil
}

func (r *Diets) List(_ context.Context) ([]domain.Diet, error) {
	r.c.mu.RLock()
	defer r.c.mu.RUnlock()
	out := make([]domain.Diet, 0, len(r.c.diets))
	for _, d := range r.c.diets {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *Diets) Delete(_ context.Context, id uint64) error {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()
	if _, ok := r.c.diets[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.c.diets, id)
	for rid, rec := range r.c.recipes {
		if rec.DietID != nil && *rec.DietID == id {
			rec.DietID = nil
			r.c.recipes[rid] = rec
		}
	}
	return nil
}

type Ingredients struct{ c *Catalog }

func (r *Ingredients) Create(_ context.Context, in *domain.Ingredient) error {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()
	in.ID = r.c.id()
	r.c.ingredients[in.ID] = *in
	return nil
}

func (r *Ingredients) FindByIDs(_ context.Context, ids []uint64) ([]domain.Ingredient, error) {
	r.c.mu.RLock()
	defer r.c.mu.RUnlock()
	var out []domain.Ingredient
	for _, id := range ids {
		if in, ok := r.c.ingredients[id]; ok {
			out = append(out, in)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *Ingredients) List(_ context.Context) ([]domain.Ingredient, error) {
	r.c.mu.RLock()
	defer r.c.mu.RUnlock()
	out := make([]domain.Ingredient, 0, len(r.c.ingredients))
	for _, in := range r.c.ingredients {
		out = append(out, in)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}
