package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"healthy-backend/internal/service"
	"healthy-backend/internal/transport/http/ez"
)

// UserAdminHandler lists and removes accounts.
type UserAdminHandler struct {
	svc *service.UserService
	log *zap.Logger
}

func NewUserAdminHandler(svc *service.UserService, l *zap.Logger) *UserAdminHandler {
	return &UserAdminHandler{svc: svc, log: l}
}

type userListQuery struct {
	Offset int `form:"offset,default=0" binding:"gte=0"`
	Limit  int `form:"limit,default=20" binding:"gte=0,lte=100"`
}

func (h *UserAdminHandler) MountAdmin(admin *gin.RouterGroup) {
	e := ez.New(admin, h.log)

	// --- GET /admin/v1/users  用户列表 ---
	ez.RegisterAction(e, ez.Action[userListQuery, *service.UserPage]{
		Method: http.MethodGet,
		Path:   "/users",
		Binder: ez.BindQuery,
		Handler: func(c *gin.Context, in *userListQuery) (*service.UserPage, error) {
			return h.svc.List(c.Request.Context(), in.Offset, in.Limit)
		},
	})

	// --- DELETE /admin/v1/users/:id ---
	ez.RegisterAction(e, ez.Action[struct{}, ez.Empty]{
		Method: http.MethodDelete,
		Path:   "/users/:id",
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
}
