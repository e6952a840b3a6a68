package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"healthy-backend/internal/domain"
)

type DietRepo struct{ db *gorm.DB }

func NewDietRepo(db *gorm.DB) *DietRepo { return &DietRepo{db: db} }

func (r *DietRepo) Create(ctx context.Context, d *domain.Diet) error {
	err := r.db.WithContext(ctx).Create(d).Error
	if err != nil && isDupKey(err) {
		return domain.ErrInvalidInput
	}
	return err
}

func (r *DietRepo) FindByID(ctx context.Context, id uint64) (*domain.Diet, error) {
	var d domain.Diet
	err := r.db.WithContext(ctx).First(&d, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *DietRepo) List(ctx context.Context) ([]domain.Diet, error) {
	var out []domain.Diet
	err := r.db.WithContext(ctx).Order("name").Find(&out).Error
	return out, err
}

// Delete detaches recipes from the diet before removing it.
func (r *DietRepo) Delete(ctx context.Context, id uint64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&domain.Recipe{}).Where("diet_id = ?", id).Update("diet_id", nil).Error; err != nil {
			return err
		}
		res := tx.Delete(&domain.Diet{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrNotFound
		}
		return nil
	})
}

type IngredientRepo struct{ db *gorm.DB }

func NewIngredientRepo(db *gorm.DB) *IngredientRepo { return &IngredientRepo{db: db} }

func (r *IngredientRepo) Create(ctx context.Context, in *domain.Ingredient) error {
	return r.db.WithContext(ctx).Create(in).Error
}

func (r *IngredientRepo) FindByIDs(ctx context.Context, ids []uint64) ([]domain.Ingredient, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var out []domain.Ingredient
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Order("id").Find(&out).Error
	return out, err
}

func (r *IngredientRepo) List(ctx context.Context) ([]domain.Ingredient, error) {
	var out []domain.Ingredient
	err := r.db.WithContext(ctx).Order("name").Find(&out).Error
	return out, err
}
