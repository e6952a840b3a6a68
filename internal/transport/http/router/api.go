package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"healthy-backend/internal/core/server"
	"healthy-backend/internal/service"
	"healthy-backend/internal/transport/http/handler"
	mdw "healthy-backend/internal/transport/http/middleware"
)

// Services is everything the HTTP layer calls into.
type Services struct {
	Auth      *service.AuthService
	Recipes   *service.RecipeService
	Users     *service.UserService
	MealPlans *service.MealPlanService
	Progress  *service.ProgressService
}

// common 两个引擎共用的中间件链
func common(l *zap.Logger) *gin.Engine {
	r := server.NewRouter(l)
	r.Use(
		mdw.RequestID(),
		mdw.RateLimit(500, 1000),
		mdw.RateLimitPerIP(50, 100, 10*time.Minute),
		mdw.ConcurrencyLimit(300),
		mdw.MaxBodyBytes(1<<20),
		mdw.Timeout(10*time.Second),
		mdw.Metrics(),
		mdw.AccessLog(l),
	)

	// 健康检查
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	return r
}

func NewAPIEngine(l *zap.Logger, s Services) *gin.Engine {
	r := common(l)
	api := r.Group("/api/v1")

	reg := &Registry{}
	reg.Register(
		handler.NewAuthHandler(s.Auth, l),
		handler.NewRecipeHandler(s.Recipes, l),
		handler.NewTrackingHandler(s.Progress, s.MealPlans, s.Auth, l),
	)
	reg.MountAPI(api)
	return r
}
