package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"healthy-backend/internal/transport/http/handler"
	mdw "healthy-backend/internal/transport/http/middleware"
)

func NewAdminEngine(l *zap.Logger, s Services) *gin.Engine {
	r := common(l)

	// 管理端 v1（统一要求 ADMIN 角色）
	admin := r.Group("/admin/v1", mdw.RequireAdmin(s.Auth))

	reg := &Registry{}
	reg.Register(
		handler.NewRecipeHandler(s.Recipes, l),
		handler.NewUserAdminHandler(s.Users, l),
	)
	reg.MountAdmin(admin)
	return r
}
