package domain

import (
	"context"
	"time"
)

type MealPlan struct {
	ID            uint64    `gorm:"primaryKey" json:"id"`
	UserID        uint64    `gorm:"index;not null" json:"userId"`
	PlanDate      time.Time `gorm:"type:date" json:"planDate"`
	TotalCalories int       `json:"totalCalories"`
	BreakfastID   *uint64   `json:"breakfastId,omitempty"`
	Breakfast     *Recipe   `json:"breakfast,omitempty"`
	LunchID       *uint64   `json:"lunchId,omitempty"`
	Lunch         *Recipe   `json:"lunch,omitempty"`
	DinnerID      *uint64   `json:"dinnerId,omitempty"`
	Dinner        *Recipe   `json:"dinner,omitempty"`
}

func (MealPlan) TableName() string { return "meal_plans" }

type UserProgress struct {
	ID               uint64    `gorm:"primaryKey" json:"id"`
	UserID           uint64    `gorm:"index;not null" json:"userId"`
	Date             time.Time `gorm:"type:date" json:"date"`
	Weight           float32   `json:"weight"`
	CaloriesConsumed int       `json:"caloriesConsumed"`
	CaloriesBurned   int       `json:"caloriesBurned"`
}

func (UserProgress) TableName() string { return "user_progress" }

type MealPlanRepository interface {
	Create(ctx context.Context, p *MealPlan) error
	ListByUser(ctx context.Context, userID uint64) ([]MealPlan, error)
	DeleteForUser(ctx context.Context, userID, id uint64) error
}

type ProgressRepository interface {
	Create(ctx context.Context, p *UserProgress) error
	ListByUser(ctx context.Context, userID uint64) ([]UserProgress, error)
}
