package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/identity-service/internal/container"
	repo "github.com/oksasatya/identity-service/internal/domain/repository"
	handlers "github.com/oksasatya/identity-service/internal/interface/http"
	"github.com/oksasatya/identity-service/internal/interface/middleware"
)

// AuthModule mounts registration, login, and the token workflows.
// Public: register, login, refresh, verify/confirm, reset/init, reset/confirm.
// Protected: logout, verify/init.
type AuthModule struct {
	Handler  *handlers.AuthHandler
	C        *container.Container
	Sessions repo.SessionRepository
}

func NewAuthModule(h *handlers.AuthHandler, c *container.Container, sessions repo.SessionRepository) *AuthModule {
	return &AuthModule{Handler: h, C: c, Sessions: sessions}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	rdb := m.C.Redis

	registerLimiter := middleware.RateLimit(rdb, 5, time.Minute, middleware.KeyByIPAndPath(), nil)
	loginLimiter := middleware.RateLimit(rdb, 10, time.Minute, middleware.KeyByIP(), nil)
	refreshLimiter := middleware.RateLimit(rdb, 60, time.Minute, middleware.KeyByIP(), nil)
	verifyConfirmLimiter := middleware.RateLimit(rdb, 30, time.Minute, middleware.KeyByIPAndPath(), nil)
	resetInitLimiter := middleware.RateLimit(rdb, 5, time.Minute, middleware.KeyByIPAndPath(), nil)
	resetConfirmLimiter := middleware.RateLimit(rdb, 30, time.Minute, middleware.KeyByIPAndPath(), nil)

	rg.POST("/auth/register", registerLimiter, m.Handler.Register)
	rg.POST("/auth/login", loginLimiter, m.Handler.Login)
	rg.POST("/auth/refresh", refreshLimiter, m.Handler.Refresh)
	rg.POST("/auth/verify/confirm", verifyConfirmLimiter, m.Handler.VerifyConfirm)
	rg.POST("/auth/reset/init", resetInitLimiter, m.Handler.ResetInit)
	rg.POST("/auth/reset/confirm", resetConfirmLimiter, m.Handler.ResetConfirm)

	auth := rg.Group("/")
	auth.Use(middleware.RequireAuth(m.C.JWT, m.Sessions))
	auth.Use(middleware.RateLimit(rdb, 5, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.POST("/auth/logout", m.Handler.Logout)
		auth.POST("/auth/verify/init", m.Handler.VerifyInit)
	}
}
