package repo

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"healthy-backend/internal/domain"
)

type RecipeRepo struct{ db *gorm.DB }

func NewRecipeRepo(db *gorm.DB) *RecipeRepo { return &RecipeRepo{db: db} }

func (r *RecipeRepo) Create(ctx context.Context, rec *domain.Recipe) error {
	return r.db.WithContext(ctx).Create(rec).Error
}

func (r *RecipeRepo) FindByID(ctx context.Context, id uint64) (*domain.Recipe, error) {
	var rec domain.Recipe
	err := r.db.WithContext(ctx).
		Preload("Diet").Preload("Ingredients").
		First(&rec, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *RecipeRepo) List(ctx context.Context, f domain.RecipeFilter) ([]domain.Recipe, int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.Recipe{})
	if s := strings.TrimSpace(f.Diet); s != "" {
		q = q.Joins("JOIN diets ON diets.id = recipes.diet_id").Where("diets.name = ?", s)
	}
	if s := strings.TrimSpace(f.Difficulty); s != "" {
		q = q.Where("recipes.difficulty = ?", s)
	}
	if f.MaxCalories > 0 {
		q = q.Where("recipes.calories <= ?", f.MaxCalories)
	}
	if s := strings.TrimSpace(f.Query); s != "" {
		like := "%" + s + "%"
		q = q.Where("recipes.title LIKE ? OR recipes.description LIKE ?", like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var out []domain.Recipe
	err := q.Preload("Diet").Preload("Ingredients").
		Order("recipes.id").Offset(max(0, f.Offset)).Limit(clampLimit(f.Limit)).
		Find(&out).Error
	if err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (r *RecipeRepo) ListByDiet(ctx context.Context, dietName string) ([]domain.Recipe, error) {
	var out []domain.Recipe
	err := r.db.WithContext(ctx).
		Joins("JOIN diets ON diets.id = recipes.diet_id").
		Where("diets.name = ?", dietName).
		Preload("Diet").Preload("Ingredients").
		Order("recipes.id").
		Find(&out).Error
	return out, err
}

func (r *RecipeRepo) Delete(ctx context.Context, id uint64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		rec := domain.Recipe{ID: id}
		if err := tx.Model(&rec).Association("Ingredients").Clear(); err != nil {
			return err
		}
		// 餐单里引用的菜谱置空
		for _, col := range []string{"breakfast_id", "lunch_id", "dinner_id"} {
			if err := tx.Model(&domain.MealPlan{}).Where(col+" = ?", id).Update(col, nil).Error; err != nil {
				return err
			}
		}
		res := tx.Delete(&domain.Recipe{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrNotFound
		}
		return nil
	})
}
