package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/identity-service/internal/container"
	repo "github.com/oksasatya/identity-service/internal/domain/repository"
	handlers "github.com/oksasatya/identity-service/internal/interface/http"
	"github.com/oksasatya/identity-service/internal/interface/middleware"
)

// UserModule mounts the self-service account endpoints under /users.
type UserModule struct {
	Handler  *handlers.UserHandler
	C        *container.Container
	Sessions repo.SessionRepository
}

func NewUserModule(h *handlers.UserHandler, c *container.Container, sessions repo.SessionRepository) *UserModule {
	return &UserModule{Handler: h, C: c, Sessions: sessions}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	rdb := m.C.Redis

	auth := rg.Group("/")
	auth.Use(middleware.RequireAuth(m.C.JWT, m.Sessions))
	auth.Use(
		middleware.RateLimit(rdb, 300, time.Minute, middleware.KeyByIP(), nil),
		middleware.RateLimit(rdb, 120, time.Minute, middleware.KeyByUserID(), nil),
	)
	{
		auth.GET("/users/me", m.Handler.GetProfile)
		auth.PUT("/users/me/password", m.Handler.ChangePassword)
		auth.GET("/users/search", m.Handler.Search)
	}
}
