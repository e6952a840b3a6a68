package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"healthy-backend/internal/domain"
	"healthy-backend/internal/service"
	"healthy-backend/internal/transport/http/ez"
	mdw "healthy-backend/internal/transport/http/middleware"
)

// TrackingHandler serves per-user progress entries and meal plans. Every
// route requires a bearer token of an existing user.
type TrackingHandler struct {
	progress *service.ProgressService
	plans    *service.MealPlanService
	auth     mdw.Authorizer
	log      *zap.Logger
}

func NewTrackingHandler(progress *service.ProgressService, plans *service.MealPlanService, auth mdw.Authorizer, l *zap.Logger) *TrackingHandler {
	return &TrackingHandler{progress: progress, plans: plans, auth: auth, log: l}
}

func currentUser(c *gin.Context) (*domain.User, error) {
	u, ok := mdw.CurrentUser(c)
	if !ok {
		return nil, domain.ErrMissingToken
	}
	return u, nil
}

func (h *TrackingHandler) MountAPI(api *gin.RouterGroup) {
	e := ez.New(api, h.log).Group("", mdw.RequireUser(h.auth))

	ez.RegisterAction(e, ez.Action[struct{}, []domain.UserProgress]{
		Method: http.MethodGet,
		Path:   "/progress",
		Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) ([]domain.UserProgress, error) {
			u, err := currentUser(c)
			if err != nil {
				return nil, err
			}
			return h.progress.List(c.Request.Context(), u.ID)
		},
	})

	ez.RegisterAction(e, ez.Action[service.ProgressInput, *domain.UserProgress]{
		Method: http.MethodPost,
		Path:   "/progress",
		Binder: ez.BindJSON,
		Status: http.StatusCreated,
		Handler: func(c *gin.Context, in *service.ProgressInput) (*domain.UserProgress, error) {
			u, err := currentUser(c)
			if err != nil {
				return nil, err
			}
			return h.progress.Record(c.Request.Context(), u.ID, *in)
		},
	})

	ez.RegisterAction(e, ez.Action[struct{}, []domain.MealPlan]{
		Method: http.MethodGet,
		Path:   "/meal-plans",
		Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) ([]domain.MealPlan, error) {
			u, err := currentUser(c)
			if err != nil {
				return nil, err
			}
			return h.plans.List(c.Request.Context(), u.ID)
		},
	})

	ez.RegisterAction(e, ez.Action[service.MealPlanInput, *domain.MealPlan]{
		Method: http.MethodPost,
		Path:   "/meal-plans",
		Binder: ez.BindJSON,
		Status: http.StatusCreated,
		Handler: func(c *gin.Context, in *service.MealPlanInput) (*domain.MealPlan, error) {
			u, err := currentUser(c)
			if err != nil {
				return nil, err
			}
			return h.plans.Create(c.Request.Context(), u.ID, *in)
		},
	})

	ez.RegisterAction(e, ez.Action[struct{}, ez.Empty]{
		Method: http.MethodDelete,
		Path:   "/meal-plans/:id",
		Binder: ez.BindNone,
		Status: http.StatusNoContent,
		Handler: func(c *gin.Context, _ *struct{}) (ez.Empty, error) {
			u, err := currentUser(c)
			if err != nil {
				return ez.Empty{}, err
			}
			id, err := ez.ParamID(c, "id")
			if err != nil {
				return ez.Empty{}, err
			}
			return ez.Empty{}, h.plans.Delete(c.Request.Context(), u.ID, id)
		},
	})
}
