package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/identity-service/internal/application"
	"github.com/oksasatya/identity-service/internal/container"
	repo "github.com/oksasatya/identity-service/internal/domain/repository"
	handlers "github.com/oksasatya/identity-service/internal/interface/http"
	"github.com/oksasatya/identity-service/internal/interface/middleware"
)

// AdminModule mounts account administration under /admin. Every route
// requires the "admin" role.
type AdminModule struct {
	Handler  *handlers.AdminHandler
	C        *container.Container
	Users    *application.UserService
	Sessions repo.SessionRepository
}

func NewAdminModule(h *handlers.AdminHandler, c *container.Container, users *application.UserService, sessions repo.SessionRepository) *AdminModule {
	return &AdminModule{Handler: h, C: c, Users: users, Sessions: sessions}
}

func (m *AdminModule) Register(rg *gin.RouterGroup) {
	admin := rg.Group("/admin")
	admin.Use(middleware.RequireAuth(m.C.JWT, m.Sessions))
	admin.Use(middleware.RequireRole(m.Users, "admin"))
	admin.Use(middleware.RateLimit(m.C.Redis, 120, time.Minute, middleware.KeyByUserID(), nil))
	{
		admin.GET("/users", m.Handler.ListUsers)
		admin.GET("/users/:id", m.Handler.GetUser)
		admin.POST("/users/:id/roles", m.Handler.AssignRole)
		admin.DELETE("/users/:id/roles/:role", m.Handler.RemoveRole)
		admin.POST("/users/:id/disable", m.Handler.Disable)
	}
}
