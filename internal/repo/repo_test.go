package repo

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"healthy-backend/internal/core/database"
	"healthy-backend/internal/domain"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.NewGorm(database.Opts{
		Driver:   "sqlite",
		DSN:      filepath.Join(t.TempDir(), "test.db"),
		LogLevel: "silent",
	})
	require.NoError(t, err)
	require.NoError(t, Migrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func uptr(v uint64) *uint64 { return &v }

func TestUserRepo_CreateAndFind(t *testing.T) {
	r := NewUserRepo(newTestDB(t))
	ctx := context.Background()

	u := &domain.User{Email: "a@x.com", PasswordHash: "h", Role: domain.RoleUser}
	require.NoError(t, r.Create(ctx, u))
	assert.NotZero(t, u.ID)

	got, err := r.FindByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, u.ID, got.ID)

	got, err = r.FindByID(ctx, u.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "a@x.com", got.Email)

	missing, err := r.FindByEmail(ctx, "nobody@x.com")
	require.NoError(t, err)
	assert.Nil(t, missing)

	// case-sensitive, as stored
	missing, err = r.FindByEmail(ctx, "A@X.COM")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestUserRepo_UniqueEmail(t *testing.T) {
	r := NewUserRepo(newTestDB(t))
	ctx := context.Background()

	require.NoError(t, r.Create(ctx, &domain.User{Email: "dup@x.com", PasswordHash: "h", Role: domain.RoleUser}))
	err := r.Create(ctx, &domain.User{Email: "dup@x.com", PasswordHash: "h2", Role: domain.RoleUser})
	require.ErrorIs(t, err, domain.ErrDuplicateEmail)

	_, total, err := r.List(ctx, 0, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
}

func TestUserRepo_UpdateAndDelete(t *testing.T) {
	r := NewUserRepo(newTestDB(t))
	ctx := context.Background()

	u := &domain.User{Email: "a@x.com", PasswordHash: "h", Role: domain.RoleUser}
	require.NoError(t, r.Create(ctx, u))

	u.Role = domain.RoleAdmin
	require.NoError(t, r.Update(ctx, u))
	got, err := r.FindByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, got.Role)

	require.NoError(t, r.Delete(ctx, u.ID))
	require.ErrorIs(t, r.Delete(ctx, u.ID), domain.ErrNotFound)
}

func seedCatalog(t *testing.T, db *gorm.DB) (vegan, keto domain.Diet, oats domain.Ingredient) {
	t.Helper()
	ctx := context.Background()
	diets := NewDietRepo(db)
	vegan = domain.Diet{Name: "vegan"}
	keto = domain.Diet{Name: "keto"}
	require.NoError(t, diets.Create(ctx, &vegan))
	require.NoError(t, diets.Create(ctx, &keto))

	oats = domain.Ingredient{Name: "oats", CaloriesPer100g: 389}
	require.NoError(t, NewIngredientRepo(db).Create(ctx, &oats))
	return
}

func TestRecipeRepo_ListFilters(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	vegan, keto, oats := seedCatalog(t, db)
	r := NewRecipeRepo(db)

	require.NoError(t, r.Create(ctx, &domain.Recipe{Title: "Porridge", Calories: 300, Difficulty: "easy", DietID: uptr(vegan.ID), Ingredients: []domain.Ingredient{oats}}))
	require.NoError(t, r.Create(ctx, &domain.Recipe{Title: "Steak", Calories: 700, Difficulty: "medium", DietID: uptr(keto.ID)}))
	require.NoError(t, r.Create(ctx, &domain.Recipe{Title: "Salad", Description: "green", Calories: 150, Difficulty: "easy"}))

	all, total, err := r.List(ctx, domain.RecipeFilter{})
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	require.Len(t, all, 3)
	require.Len(t, all[0].Ingredients, 1)
	require.NotNil(t, all[0].Diet)
	assert.Equal(t, "vegan", all[0].Diet.Name)

	got, total, err := r.List(ctx, domain.RecipeFilter{Difficulty: "easy", MaxCalories: 200})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Equal(t, "Salad", got[0].Title)

	got, _, err = r.List(ctx, domain.RecipeFilter{Diet: "keto"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Steak", got[0].Title)

	got, _, err = r.List(ctx, domain.RecipeFilter{Query: "gree"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Salad", got[0].Title)

	byDiet, err := r.ListByDiet(ctx, "vegan")
	require.NoError(t, err)
	require.Len(t, byDiet, 1)
	assert.Equal(t, "Porridge", byDiet[0].Title)

	none, err := r.ListByDiet(ctx, "paleo")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestRecipeRepo_Delete(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	_, _, oats := seedCatalog(t, db)
	r := NewRecipeRepo(db)

	rec := &domain.Recipe{Title: "Porridge", Ingredients: []domain.Ingredient{oats}}
	require.NoError(t, r.Create(ctx, rec))
	plan := &domain.MealPlan{UserID: 1, PlanDate: time.Now(), BreakfastID: uptr(rec.ID)}
	require.NoError(t, NewMealPlanRepo(db).Create(ctx, plan))

	require.NoError(t, r.Delete(ctx, rec.ID))
	got, err := r.FindByID(ctx, rec.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	plans, err := NewMealPlanRepo(db).ListByUser(ctx, 1)
	require.NoError(t, err)
	require.Len(t, plans, 1)
	assert.Nil(t, plans[0].BreakfastID)

	require.ErrorIs(t, r.Delete(ctx, rec.ID), domain.ErrNotFound)
	require.ErrorIs(t, r.Delete(ctx, 9999), domain.ErrNotFound)
}

func TestDietRepo_DeleteDetachesRecipes(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	vegan, _, _ := seedCatalog(t, db)
	recipes := NewRecipeRepo(db)

	rec := &domain.Recipe{Title: "Porridge", DietID: uptr(vegan.ID)}
	require.NoError(t, recipes.Create(ctx, rec))

	diets := NewDietRepo(db)
	require.NoError(t, diets.Delete(ctx, vegan.ID))
	require.ErrorIs(t, diets.Delete(ctx, vegan.ID), domain.ErrNotFound)

	got, err := recipes.FindByID(ctx, rec.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Nil(t, got.DietID)

	err = diets.Create(ctx, &domain.Diet{Name: "keto"})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestProgressAndMealPlans_ScopedByUser(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	progress := NewProgressRepo(db)
	day := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)
	require.NoError(t, progress.Create(ctx, &domain.UserProgress{UserID: 1, Date: day, Weight: 80}))
	require.NoError(t, progress.Create(ctx, &domain.UserProgress{UserID: 1, Date: day.AddDate(0, 0, 1), Weight: 79.5}))
	require.NoError(t, progress.Create(ctx, &domain.UserProgress{UserID: 2, Date: day, Weight: 60}))

	mine, err := progress.ListByUser(ctx, 1)
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.InDelta(t, 79.5, mine[0].Weight, 0.001)

	plans := NewMealPlanRepo(db)
	p := &domain.MealPlan{UserID: 2, PlanDate: day, TotalCalories: 1800}
	require.NoError(t, plans.Create(ctx, p))
	require.ErrorIs(t, plans.DeleteForUser(ctx, 1, p.ID), domain.ErrNotFound)
	require.NoError(t, plans.DeleteForUser(ctx, 2, p.ID))
}
