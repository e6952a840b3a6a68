package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"healthy-backend/internal/domain"
	"healthy-backend/internal/service"
	"healthy-backend/internal/transport/http/ez"
)

// AuthHandler exposes register, login and token check under /users.
type AuthHandler struct {
	svc *service.AuthService
	log *zap.Logger
}

func NewAuthHandler(svc *service.AuthService, l *zap.Logger) *AuthHandler {
	return &AuthHandler{svc: svc, log: l}
}

func (h *AuthHandler) Priority() int { return 10 }

type loginIn struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) MountAPI(api *gin.RouterGroup) {
	e := ez.New(api.Group("/users"), h.log)

	ez.RegisterAction(e, ez.Action[service.RegisterInput, *domain.User]{
		Method: http.MethodPost,
		Path:   "/register",
		Binder: ez.BindJSON,
		Handler: func(c *gin.Context, in *service.RegisterInput) (*domain.User, error) {
			return h.svc.Register(c.Request.Context(), *in)
		},
	})

	ez.RegisterAction(e, ez.Action[loginIn, *service.LoginResult]{
		Method: http.MethodPost,
		Path:   "/login",
		Binder: ez.BindJSON,
		Handler: func(c *gin.Context, in *loginIn) (*service.LoginResult, error) {
			return h.svc.Login(c.Request.Context(), in.Email, in.Password)
		},
	})

	ez.RegisterAction(e, ez.Action[struct{}, *service.TokenCheck]{
		Method: http.MethodGet,
		Path:   "/check",
		Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (*service.TokenCheck, error) {
			return h.svc.CheckToken(c.GetHeader("Authorization"))
		},
	})
}
