package service

import (
	"context"
	"fmt"
	"time"

	"healthy-backend/internal/domain"
)

type MealPlanInput struct {
	PlanDate      string  `json:"planDate" binding:"required"` // YYYY-MM-DD
	BreakfastID   *uint64 `json:"breakfastId"`
	LunchID       *uint64 `json:"lunchId"`
	DinnerID      *uint64 `json:"dinnerId"`
	TotalCalories *int    `json:"totalCalories"`
}

type ProgressInput struct {
	Date             string  `json:"date"` // YYYY-MM-DD, today when empty
	Weight           float32 `json:"weight" binding:"gte=0"`
	CaloriesConsumed int     `json:"caloriesConsumed" binding:"gte=0"`
	CaloriesBurned   int     `json:"caloriesBurned" binding:"gte=0"`
}

const dateLayout = "2006-01-02"

func parseDate(s string) (time.Time, error) {
	d, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date must be YYYY-MM-DD", domain.ErrInvalidInput)
	}
	return d, nil
}

type MealPlanService struct {
	plans   domain.MealPlanRepository
	recipes domain.RecipeRepository
}

func NewMealPlanService(plans domain.MealPlanRepository, recipes domain.RecipeRepository) *MealPlanService {
	return &MealPlanService{plans: plans, recipes: recipes}
}

// Create stores a plan for userID. Referenced recipes must exist; when no
// total is given it is the sum of their calories.
func (s *MealPlanService) Create(ctx context.Context, userID uint64, in MealPlanInput) (*domain.MealPlan, error) {
	day, err := parseDate(in.PlanDate)
	if err != nil {
		return nil, err
	}
	p := &domain.MealPlan{
		UserID:      userID,
		PlanDate:    day,
		BreakfastID: in.BreakfastID,
		LunchID:     in.LunchID,
		DinnerID:    in.DinnerID,
	}

	total := 0
	slots := []struct {
		id  *uint64
		dst **domain.Recipe
	}{{in.BreakfastID, &p.Breakfast}, {in.LunchID, &p.Lunch}, {in.DinnerID, &p.Dinner}}
	for _, slot := range slots {
		if slot.id == nil {
			continue
		}
		r, err := s.recipes.FindByID(ctx, *slot.id)
		if err != nil {
			return nil, fmt.Errorf("find recipe: %w", err)
		}
		if r == nil {
			return nil, fmt.Errorf("recipe %d: %w", *slot.id, domain.ErrNotFound)
		}
		total += r.Calories
		*slot.dst = r
	}
	if in.TotalCalories != nil {
		if *in.TotalCalories < 0 {
			return nil, fmt.Errorf("%w: totalCalories must be >= 0", domain.ErrInvalidInput)
		}
		total = *in.TotalCalories
	}
	p.TotalCalories = total

	if err := s.plans.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("create meal plan: %w", err)
	}
	return p, nil
}

func (s *MealPlanService) List(ctx context.Context, userID uint64) ([]domain.MealPlan, error) {
	out, err := s.plans.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list meal plans: %w", err)
	}
	if out == nil {
		out = []domain.MealPlan{}
	}
	return out, nil
}

func (s *MealPlanService) Delete(ctx context.Context, userID, id uint64) error {
	if err := s.plans.DeleteForUser(ctx, userID, id); err != nil {
		return fmt.Errorf("meal plan %d: %w", id, err)
	}
	return nil
}

type ProgressService struct {
	progress domain.ProgressRepository
	now      func() time.Time
}

func NewProgressService(progress domain.ProgressRepository) *ProgressService {
	return &ProgressService{progress: progress, now: time.Now}
}

func (s *ProgressService) Record(ctx context.Context, userID uint64, in ProgressInput) (*domain.UserProgress, error) {
	day := s.now().UTC().Truncate(24 * time.Hour)
	if in.Date != "" {
		d, err := parseDate(in.Date)
		if err != nil {
			return nil, err
		}
		day = d
	}
	if in.Weight < 0 || in.CaloriesConsumed < 0 || in.CaloriesBurned < 0 {
		return nil, fmt.Errorf("%w: values must be >= 0", domain.ErrInvalidInput)
	}
	p := &domain.UserProgress{
		UserID:           userID,
		Date:             day,
		Weight:           in.Weight,
		CaloriesConsumed: in.CaloriesConsumed,
		CaloriesBurned:   in.CaloriesBurned,
	}
	if err := s.progress.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("record progress: %w", err)
	}
	return p, nil
}

func (s *ProgressService) List(ctx context.Context, userID uint64) ([]domain.UserProgress, error) {
	out, err := s.progress.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list progress: %w", err)
	}
	if out == nil {
		out = []domain.UserProgress{}
	}
	return out, nil
}
