package middleware

import (
	"context"

	"github.com/gin-gonic/gin"

	"healthy-backend/internal/domain"
	resp "healthy-backend/internal/transport/http/response"
)

const KeyUser = "user"

// Authorizer resolves the Authorization header to a stored user.
type Authorizer interface {
	AuthorizeUser(ctx context.Context, authHeader string) (*domain.User, error)
	AuthorizeAdmin(ctx context.Context, authHeader string) (*domain.User, error)
}

// RequireUser admits any bearer whose email belongs to a stored user.
func RequireUser(a Authorizer) gin.HandlerFunc {
	return gate(a.AuthorizeUser)
}

// RequireAdmin additionally requires the ADMIN role.
func RequireAdmin(a Authorizer) gin.HandlerFunc {
	return gate(a.AuthorizeAdmin)
}

func gate(authorize func(context.Context, string) (*domain.User, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		u, err := authorize(c.Request.Context(), c.GetHeader("Authorization"))
		if err != nil {
			resp.Abort(c, err)
			return
		}
		c.Set(KeyUser, u)
		c.Next()
	}
}

// CurrentUser returns the user stored by RequireUser/RequireAdmin.
func CurrentUser(c *gin.Context) (*domain.User, bool) {
	v, ok := c.Get(KeyUser)
	if !ok {
		return nil, false
	}
	u, ok := v.(*domain.User)
	return u, ok && u != nil
}
