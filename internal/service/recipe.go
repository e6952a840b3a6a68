package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"healthy-backend/internal/core/cache"
	"healthy-backend/internal/domain"
)

type RecipeInput struct {
	Title         string   `json:"title" binding:"required"`
	Description   string   `json:"description"`
	Calories      int      `json:"calories" binding:"gte=0"`
	Proteins      float32  `json:"proteins" binding:"gte=0"`
	Fats          float32  `json:"fats" binding:"gte=0"`
	Carbs         float32  `json:"carbs" binding:"gte=0"`
	ImageURL      string   `json:"imageUrl"`
	CookingTime   int      `json:"cookingTime" binding:"gte=0"`
	Difficulty    string   `json:"difficulty"`
	DietID        *uint64  `json:"dietId"`
	IngredientIDs []uint64 `json:"ingredientIds"`
}

type RecipePage struct {
	Total int64           `json:"total"`
	Items []domain.Recipe `json:"items"`
}

// RecipeService serves the recipe catalogue. Single-recipe and per-diet reads
// go through the optional cache; mutations drop the affected keys.
type RecipeService struct {
	recipes     domain.RecipeRepository
	diets       domain.DietRepository
	ingredients domain.IngredientRepository
	cache       *cache.Cache
	ttl         time.Duration
	log         *zap.Logger
}

func NewRecipeService(recipes domain.RecipeRepository, diets domain.DietRepository, ingredients domain.IngredientRepository) *RecipeService {
	return &RecipeService{
		recipes:     recipes,
		diets:       diets,
		ingredients: ingredients,
		log:         zap.NewNop(),
	}
}

func (s *RecipeService) WithCache(c *cache.Cache, ttl time.Duration) *RecipeService {
	s.cache, s.ttl = c, ttl
	return s
}

func (s *RecipeService) WithLogger(l *zap.Logger) *RecipeService {
	if l != nil {
		s.log = l.Named("recipes")
	}
	return s
}

func recipeKey(id uint64) string { return "recipe:" + strconv.FormatUint(id, 10) }
func dietKey(name string) string  { return "recipes:diet:" + name }

func (s *RecipeService) List(ctx context.Context, f domain.RecipeFilter) (*RecipePage, error) {
	items, total, err := s.recipes.List(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("list recipes: %w", err)
	}
	if items == nil {
		items = []domain.Recipe{}
	}
	return &RecipePage{Total: total, Items: items}, nil
}

func (s *RecipeService) Get(ctx context.Context, id uint64) (*domain.Recipe, error) {
	return cache.GetOrLoadJSON(s.cache, ctx, recipeKey(id), s.ttl, func(ctx context.Context) (*domain.Recipe, error) {
		r, err := s.recipes.FindByID(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("find recipe: %w", err)
		}
		if r == nil {
			return nil, fmt.Errorf("recipe %d: %w", id, domain.ErrNotFound)
		}
		return r, nil
	})
}

// ByDiet fails with ErrNotFound when the diet has no recipes.
func (s *RecipeService) ByDiet(ctx context.Context, dietName string) ([]domain.Recipe, error) {
	dietName = strings.TrimSpace(dietName)
	if dietName == "" {
		return nil, fmt.Errorf("%w: diet is required", domain.ErrInvalidInput)
	}
	out, err := cache.GetOrLoadJSON(s.cache, ctx, dietKey(dietName), s.ttl, func(ctx context.Context) (*[]domain.Recipe, error) {
		rs, err := s.recipes.ListByDiet(ctx, dietName)
		if err != nil {
			return nil, fmt.Errorf("list recipes by diet: %w", err)
		}
		if len(rs) == 0 {
			return nil, fmt.Errorf("no recipes for diet %q: %w", dietName, domain.ErrNotFound)
		}
		return &rs, nil
	})
	if err != nil {
		return nil, err
	}
	return *out, nil
}

func (s *RecipeService) Create(ctx context.Context, in RecipeInput) (*domain.Recipe, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, fmt.Errorf("%w: title is required", domain.ErrInvalidInput)
	}
	r := &domain.Recipe{
		Title:       in.Title,
		Description: in.Description,
		Calories:    in.Calories,
		Proteins:    in.Proteins,
		Fats:        in.Fats,
		Carbs:       in.Carbs,
		ImageURL:    in.ImageURL,
		CookingTime: in.CookingTime,
		Difficulty:  in.Difficulty,
		DietID:      in.DietID,
	}

	var diet *domain.Diet
	if in.DietID != nil {
		d, err := s.diets.FindByID(ctx, *in.DietID)
		if err != nil {
			return nil, fmt.Errorf("find diet: %w", err)
		}
		if d == nil {
			return nil, fmt.Errorf("%w: unknown diet %d", domain.ErrInvalidInput, *in.DietID)
		}
		diet = d
	}
	if len(in.IngredientIDs) > 0 {
		ids := uniqueIDs(in.IngredientIDs)
		ings, err := s.ingredients.FindByIDs(ctx, ids)
		if err != nil {
			return nil, fmt.Errorf("find ingredients: %w", err)
		}
		if len(ings) != len(ids) {
			return nil, fmt.Errorf("%w: unknown ingredient", domain.ErrInvalidInput)
		}
		r.Ingredients = ings
	}

	if err := s.recipes.Create(ctx, r); err != nil {
		return nil, fmt.Errorf("create recipe: %w", err)
	}
	r.Diet = diet
	if diet != nil {
		s.invalidate(ctx, dietKey(diet.Name))
	}
	s.log.Info("recipe created", zap.Uint64("id", r.ID), zap.String("title", r.Title))
	return r, nil
}

// Delete fails with ErrNotFound, leaving the store untouched, when id is absent.
func (s *RecipeService) Delete(ctx context.Context, id uint64) error {
	r, err := s.recipes.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("find recipe: %w", err)
	}
	if r == nil {
		return fmt.Errorf("recipe %d: %w", id, domain.ErrNotFound)
	}
	if err := s.recipes.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete recipe %d: %w", id, err)
	}
	keys := []string{recipeKey(id)}
	if r.Diet != nil {
		keys = append(keys, dietKey(r.Diet.Name))
	}
	s.invalidate(ctx, keys...)
	s.log.Info("recipe deleted", zap.Uint64("id", id))
	return nil
}

func (s *RecipeService) Diets(ctx context.Context) ([]domain.Diet, error) {
	out, err := s.diets.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list diets: %w", err)
	}
	if out == nil {
		out = []domain.Diet{}
	}
	return out, nil
}

func (s *RecipeService) CreateDiet(ctx context.Context, d *domain.Diet) error {
	d.Name = strings.TrimSpace(d.Name)
	if d.Name == "" {
		return fmt.Errorf("%w: diet name is required", domain.ErrInvalidInput)
	}
	if err := s.diets.Create(ctx, d); err != nil {
		return fmt.Errorf("create diet %q: %w", d.Name, err)
	}
	return nil
}

func (s *RecipeService) DeleteDiet(ctx context.Context, id uint64) error {
	d, err := s.diets.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("find diet: %w", err)
	}
	if d == nil {
		return fmt.Errorf("diet %d: %w", id, domain.ErrNotFound)
	}
	affected, err := s.recipes.ListByDiet(ctx, d.Name)
	if err != nil {
		return fmt.Errorf("list recipes by diet: %w", err)
	}
	if err := s.diets.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete diet %d: %w", id, err)
	}
	keys := []string{dietKey(d.Name)}
	for _, r := range affected {
		keys = append(keys, recipeKey(r.ID))
	}
	s.invalidate(ctx, keys...)
	return nil
}

func (s *RecipeService) Ingredients(ctx context.Context) ([]domain.Ingredient, error) {
	out, err := s.ingredients.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list ingredients: %w", err)
	}
	if out == nil {
		out = []domain.Ingredient{}
	}
	return out, nil
}

func (s *RecipeService) CreateIngredient(ctx context.Context, in *domain.Ingredient) error {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return fmt.Errorf("%w: ingredient name is required", domain.ErrInvalidInput)
	}
	if err := s.ingredients.Create(ctx, in); err != nil {
		return fmt.Errorf("create ingredient: %w", err)
	}
	return nil
}

func (s *RecipeService) invalidate(ctx context.Context, keys ...string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, keys...); err != nil {
		s.log.Warn("cache invalidate failed", zap.Strings("keys", keys), zap.Error(err))
	}
}

func uniqueIDs(ids []uint64) []uint64 {
	seen := make(map[uint64]struct{}, len(ids))
	out := make([]uint64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
