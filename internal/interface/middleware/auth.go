package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/identity-service/internal/application"
	repo "github.com/oksasatya/identity-service/internal/domain/repository"
	"github.com/oksasatya/identity-service/pkg/helpers"
	"github.com/oksasatya/identity-service/pkg/response"
)

// RequireAuth validates the access token and makes sure its session is still
// alive in Redis. On success it stores "userID" and "sessionID" in the Gin
// context.
func RequireAuth(jwt *helpers.JWTManager, sessions repo.SessionRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := tokenFromRequest(c)
		if raw == "" {
			response.Error[any](c, http.StatusUnauthorized, "missing access token", nil)
			c.Abort()
			return
		}
		claims, err := jwt.ParseAccessToken(raw)
		if err != nil {
			response.Error[any](c, http.StatusUnauthorized, "invalid access token", nil)
			c.Abort()
			return
		}
		s, err := sessions.FindByID(c.Request.Context(), claims.SessionID)
		if err != nil || !s.IsActive() {
			response.Error[any](c, http.StatusUnauthorized, "session expired", nil)
			c.Abort()
			return
		}
		c.Set("userID", claims.UserID)
		c.Set("sessionID", claims.SessionID)
		c.Next()
	}
}

// RequireRole gates a route behind a role. Must run after RequireAuth.
func RequireRole(users *application.UserService, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		u, err := users.GetUser(c.Request.Context(), c.GetString("userID"))
		if err != nil || !u.HasRole(role) {
			response.Error[any](c, http.StatusForbidden, "insufficient privileges", nil)
			c.Abort()
			return
		}
		c.Next()
	}
}

func tokenFromRequest(c *gin.Context) string {
	if cookie, err := c.Cookie("access_token"); err == nil && cookie != "" {
		return cookie
	}
	if h := c.GetHeader("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer ")
	}
	return ""
}
