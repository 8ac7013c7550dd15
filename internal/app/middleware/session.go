package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/MuhamadAsim/admin-library-haven-sub000/internal/pkg/consts"
	"github.com/MuhamadAsim/admin-library-haven-sub000/internal/pkg/models"
	"github.com/MuhamadAsim/admin-library-haven-sub000/internal/pkg/services"

	"github.com/gin-gonic/gin"
)

// SessionAuth resolves the bearer token to its session and attaches the
// session to the request context. With adminOnly set, a member session is
// rejected with 403.
func SessionAuth(sessionService services.SessionServiceInterface, adminOnly bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"code":  consts.ErrSessionInvalid.Code,
				"error": consts.ErrSessionInvalid.Message,
			})
			return
		}

		session, err := sessionService.SessionByToken(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"code":  consts.ErrSessionInvalid.Code,
				"error": consts.ErrSessionInvalid.Message,
			})
			return
		}

		if adminOnly && session.Role != models.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"code":  consts.ErrAdminOnly.Code,
				"error": consts.ErrAdminOnly.Message,
			})
			return
		}

		c.Request = c.Request.WithContext(context.WithValue(c.Request.Context(), models.SessionContextKey, session))
		c.Next()
	}
}

// SessionFromContext returns the session attached by SessionAuth, nil when
// the route is unauthenticated.
func SessionFromContext(ctx context.Context) *models.Session {
	session, _ := ctx.Value(models.SessionContextKey).(*models.Session)
	return session
}

func bearerToken(header string) string {
	const prefix = "Bearer "
	if len(header) > len(prefix) && strings.EqualFold(header[:len(prefix)], prefix) {
		return strings.TrimSpace(header[len(prefix):])
	}
	return ""
}
