package repo

import (
	"context"

	"gorm.io/gorm"

	"healthy-backend/internal/domain"
)

type MealPlanRepo struct{ db *gorm.DB }

func NewMealPlanRepo(db *gorm.DB) *MealPlanRepo { return &MealPlanRepo{db: db} }

func (r *MealPlanRepo) Create(ctx context.Context, p *domain.MealPlan) error {
	return r.db.WithContext(ctx).Omit("Breakfast", "Lunch", "Dinner").Create(p).Error
}

func (r *MealPlanRepo) ListByUser(ctx context.Context, userID uint64) ([]domain.MealPlan, error) {
	var out []domain.MealPlan
	err := r.db.WithContext(ctx).
		Preload("Breakfast").Preload("Lunch").Preload("Dinner").
		Where("user_id = ?", userID).
		Order("plan_date DESC, id DESC").
		Find(&out).Error
	return out, err
}

func (r *MealPlanRepo) DeleteForUser(ctx context.Context, userID, id uint64) error {
	res := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&domain.MealPlan{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

type ProgressRepo struct{ db *gorm.DB }

func NewProgressRepo(db *gorm.DB) *ProgressRepo { return &ProgressRepo{db: db} }

func (r *ProgressRepo) Create(ctx context.Context, p *domain.UserProgress) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *ProgressRepo) ListByUser(ctx context.Context, userID uint64) ([]domain.UserProgress, error) {
	var out []domain.UserProgress
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date DESC, id DESC").
		Find(&out).Error
	return out, err
}
