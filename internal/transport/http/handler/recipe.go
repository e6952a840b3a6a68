package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"healthy-backend/internal/domain"
	"healthy-backend/internal/service"
	"healthy-backend/internal/transport/http/ez"
)

// RecipeHandler serves the public catalogue and its admin mutations.
type RecipeHandler struct {
	svc *service.RecipeService
	log *zap.Logger
}

func NewRecipeHandler(svc *service.RecipeService, l *zap.Logger) *RecipeHandler {
	return &RecipeHandler{svc: svc, log: l}
}

type recipeQuery struct {
	Diet        string `form:"diet"`
	Difficulty  string `form:"difficulty"`
	MaxCalories int    `form:"maxCalories" binding:"gte=0"`
	Q           string `form:"q"`
	Offset      int    `form:"offset,default=0" binding:"gte=0"`
	Limit       int    `form:"limit,default=20" binding:"gte=0,lte=100"`
}

type byDietQuery struct {
	Diet string `form:"diet" binding:"required"`
}

func (h *RecipeHandler) MountAPI(api *gin.RouterGroup) {
	e := ez.New(api, h.log)

	ez.RegisterAction(e, ez.Action[recipeQuery, *service.RecipePage]{
		Method: http.MethodGet,
		Path:   "/recipes",
		Binder: ez.BindQuery,
		Handler: func(c *gin.Context, in *recipeQuery) (*service.RecipePage, error) {
			return h.svc.List(c.Request.Context(), domain.RecipeFilter{
				Diet:        in.Diet,
				Difficulty:  in.Difficulty,
				MaxCalories: in.MaxCalories,
				Query:       in.Q,
				Offset:      in.Offset,
				Limit:       in.Limit,
			})
		},
	})

	ez.RegisterAction(e, ez.Action[byDietQuery, []domain.Recipe]{
		Method: http.MethodGet,
		Path:   "/recipes/by-diet",
		Binder: ez.BindQuery,
		Handler: func(c *gin.Context, in *byDietQuery) ([]domain.Recipe, error) {
			return h.svc.ByDiet(c.Request.Context(), in.Diet)
		},
	})

	ez.RegisterAction(e, ez.Action[struct{}, *domain.Recipe]{
		Method: http.MethodGet,
		Path:   "/recipes/:id",
		Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (*domain.Recipe, error) {
			id, err := ez.ParamID(c, "id")
			if err != nil {
				return nil, err
			}
			return h.svc.Get(c.Request.Context(), id)
		},
	})

	ez.RegisterAction(e, ez.Action[struct{}, []domain.Diet]{
		Method: http.MethodGet,
		Path:   "/diets",
		Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) ([]domain.Diet, error) {
			return h.svc.Diets(c.Request.Context())
		},
	})

	ez.RegisterAction(e, ez.Action[struct{}, []domain.Ingredient]{
		Method: http.MethodGet,
		Path:   "/ingredients",
		Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) ([]domain.Ingredient, error) {
			return h.svc.Ingredients(c.Request.Context())
		},
	})
}

type dietIn struct {
	Name        string `json:"name" binding:"required,max=100"`
	Description string `json:"description" binding:"max=1000"`
}

type ingredientIn struct {
	Name            string  `json:"name" binding:"required"`
	CaloriesPer100g int     `json:"caloriesPer100g" binding:"gte=0"`
	Proteins        float32 `json:"proteins" binding:"gte=0"`
	Fats            float32 `json:"fats" binding:"gte=0"`
	Carbs           float32 `json:"carbs" binding:"gte=0"`
}

// MountAdmin expects the group to be gated by RequireAdmin.
func (h *RecipeHandler) MountAdmin(admin *gin.RouterGroup) {
	e := ez.New(admin, h.log)

	ez.RegisterAction(e, ez.Action[service.RecipeInput, *domain.Recipe]{
		Method: http.MethodPost,
		Path:   "/recipes",
		Binder: ez.BindJSON,
		Status: http.StatusCreated,
		Handler: func(c *gin.Context, in *service.RecipeInput) (*domain.Recipe, error) {
			return h.svc.Create(c.Request.Context(), *in)
		},
	})

	ez.RegisterAction(e, ez.Action[struct{}, ez.Empty]{
		Method: http.MethodDelete,
		Path:   "/recipes/:id",
		Binder: ez.BindNone,
		Status: http.StatusNoContent,
		Handler: func(c *gin.Context, _ *struct{}) (ez.Empty, error) {
			id, err := ez.ParamID(c, "id")
			if err != nil {
				return ez.Empty{}, err
			}
			return ez.Empty{}, h.svc.Delete(c.Request.Context(), id)
		},
	})

	ez.RegisterAction(e, ez.Action[dietIn, *domain.Diet]{
		Method: http.MethodPost,
		Path:   "/diets",
		Binder: ez.BindJSON,
		Status: http.StatusCreated,
		Handler: func(c *gin.Context, in *dietIn) (*domain.Diet, error) {
			d := &domain.Diet{Name: in.Name, Description: in.Description}
			if err := h.svc.CreateDiet(c.Request.Context(), d); err != nil {
				return nil, err
			}
			return d, nil
		},
	})

	ez.RegisterAction(e, ez.Action[struct{}, ez.Empty]{
		Method: http.MethodDelete,
		Path:   "/diets/:id",
		Binder: ez.BindNone,
		Status: http.StatusNoContent,
		Handler: func(c *gin.Context, _ *struct{}) (ez.Empty, error) {
			id, err := ez.ParamID(c, "id")
			if err != nil {
				return ez.Empty{}, err
			}
			return ez.Empty{}, h.svc.DeleteDiet(c.Request.Context(), id)
		},
	})

	ez.RegisterAction(e, ez.Action[ingredientIn, *domain.Ingredient]{
		Method: http.MethodPost,
		Path:   "/ingredients",
		Binder: ez.BindJSON,
		Status: http.StatusCreated,
		Handler: func(c *gin.Context, in *ingredientIn) (*domain.Ingredient, error) {
			ing := &domain.Ingredient{
				Name:            in.Name,
				CaloriesPer100g: in.CaloriesPer100g,
				Proteins:        in.Proteins,
				Fats:            in.Fats,
				Carbs:           in.Carbs,
			}
			if err := h.svc.CreateIngredient(c.Request.Context(), ing); err != nil {
				return nil, err
			}
			return ing, nil
		},
	})
}
