package domain

import "context"

type Diet struct {
	ID          uint64 `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"uniqueIndex;size:100;not null" json:"name"`
	Description string `gorm:"size:1000" json:"description"`
}

func (Diet) TableName() string { return "diets" }

type Ingredient struct {
	ID              uint64  `gorm:"primaryKey" json:"id"`
	Name            string  `gorm:"size:191;not null" json:"name"`
	CaloriesPer100g int     `json:"caloriesPer100g"`
	Proteins        float32 `json:"proteins"`
	Fats            float32 `json:"fats"`
	Carbs           float32 `json:"carbs"`
}

func (Ingredient) TableName() string { return "ingredients" }

type Recipe struct {
	ID          uint64       `gorm:"primaryKey" json:"id"`
	Title       string       `gorm:"size:191;not null" json:"title"`
	Description string       `gorm:"size:4000" json:"description"`
	Calories    int          `gorm:"index" json:"calories"`
	Proteins    float32      `json:"proteins"`
	Fats        float32      `json:"fats"`
	Carbs       float32      `json:"carbs"`
	ImageURL    string       `gorm:"size:500" json:"imageUrl"`
	CookingTime int          `json:"cookingTime"`
	Difficulty  string       `gorm:"size:32;index" json:"difficulty"`
	DietID      *uint64      `gorm:"index" json:"dietId,omitempty"`
	Diet        *Diet        `json:"diet,omitempty"`
	Ingredients []Ingredient `gorm:"many2many:recipe_ingredients" json:"ingredients"`
}

func (Recipe) TableName() string { return "recipes" }

type RecipeFilter struct {
	Diet        string
	Difficulty  string
	MaxCalories int
	Query       string
	Offset      int
	Limit       int
}

// RecipeRepository returns (nil, nil) from FindByID for a missing recipe and
// ErrNotFound from Delete when nothing was removed.
type RecipeRepository interface {
	Create(ctx context.Context, r *Recipe) error
	FindByID(ctx context.Context, id uint64) (*Recipe, error)
	List(ctx context.Context, f RecipeFilter) ([]Recipe, int64, error)
	ListByDiet(ctx context.Context, dietName string) ([]Recipe, error)
	Delete(ctx context.Context, id uint64) error
}

type DietRepository interface {
	Create(ctx context.Context, d *Diet) error
	FindByID(ctx context.Context, id uint64) (*Diet, error)
	List(ctx context.Context) ([]Diet, error)
	Delete(ctx context.Context, id uint64) error
}

type IngredientRepository interface {
	Create(ctx context.Context, in *Ingredient) error
	FindByIDs(ctx context.Context, ids []uint64) ([]Ingredient, error)
	List(ctx context.Context) ([]Ingredient, error)
}
