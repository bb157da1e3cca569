package router

import (
	"context"
	"time"

	"github.com/oksasatya/identity-service/internal/application"
	"github.com/oksasatya/identity-service/internal/container"
	"github.com/oksasatya/identity-service/internal/domain/entity"
	"github.com/oksasatya/identity-service/internal/domain/event"
	repo "github.com/oksasatya/identity-service/internal/domain/repository"
	pginfra "github.com/oksasatya/identity-service/internal/infrastructure/postgres"
	redisinfra "github.com/oksasatya/identity-service/internal/infrastructure/redis"
	"github.com/oksasatya/identity-service/internal/infrastructure/search"
	"github.com/oksasatya/identity-service/internal/infrastructure/security"
	handlers "github.com/oksasatya/identity-service/internal/interface/http"
	"github.com/oksasatya/identity-service/internal/router/modules"
	"github.com/oksasatya/identity-service/pkg/mailer"
)

// Deps is the wired object graph for the HTTP layer. Everything is built
// here, in one place, from the container's infrastructure handles.
type Deps struct {
	Users    *application.UserService
	Tokens   *application.TokenService
	Sessions repo.SessionRepository
	Auth     *handlers.AuthHandler
	User     *handlers.UserHandler
	Admin    *handlers.AdminHandler
}

func buildDeps(c *container.Container) Deps {
	userRepo := pginfra.NewUserRepository(c.PG)
	tokenRepo := pginfra.NewTokenRepository(c.PG)
	sessionRepo := redisinfra.NewSessionRepository(c.Redis, c.Cfg.SessionTTL)

	hasher := security.NewBcryptHasher()
	provider := security.NewRandomTokenProvider()

	var index application.UserIndexer
	if c.ES != nil {
		index = search.NewUserIndex(c.ES, c.Cfg.ESUsersIndex, c.Logger)
	}

	events := event.NewDispatcher()
	userSvc := application.NewUserService(userRepo, hasher, events, index, c.Logger)
	tokenSvc := application.NewTokenService(userRepo, tokenRepo, provider, hasher, events, c.Logger)
	subscribeHandlers(c, events, tokenSvc)

	authHandler := handlers.NewAuthHandler(userSvc, tokenSvc, sessionRepo, provider, c.JWT, c.Rabbit, c.Logger, c.Cfg)
	userHandler := handlers.NewUserHandler(userSvc, c.Logger)
	adminHandler := handlers.NewAdminHandler(userSvc, sessionRepo, c.Logger)

	return Deps{
		Users:    userSvc,
		Tokens:   tokenSvc,
		Sessions: sessionRepo,
		Auth:     authHandler,
		User:     userHandler,
		Admin:    adminHandler,
	}
}

// subscribeHandlers attaches the side-effect reactions to domain events.
// On registration a verification token is minted and the email job queued.
func subscribeHandlers(c *container.Container, events *event.Dispatcher, tokens *application.TokenService) {
	events.Subscribe(event.UserRegistered, func(ctx context.Context, e event.Event) {
		t, secret, err := tokens.IssueToken(ctx, e.UserID, entity.PurposeEmailVerification, c.Cfg.VerifyTokenTTL)
		if err != nil {
			c.Logger.WithError(err).WithField("user_id", e.UserID).Error("verification token issuance failed")
			return
		}
		if c.Rabbit == nil || !c.Cfg.MailSendEnabled {
			return
		}
		job := mailer.EmailJob{
			To:       e.Email,
			Template: mailer.VerifyEmail,
			Data: map[string]any{
				"Link":      c.Cfg.VerifyEmailURL + "?token=" + secret,
				"ExpiresAt": t.ExpiresAt.UTC().Format(time.RFC1123),
			},
		}
		if err := c.Rabbit.PublishJSON(ctx, job); err != nil {
			c.Logger.WithError(err).Warn("failed to queue verification email")
		}
	})

	events.Subscribe(event.UserDisabled, func(ctx context.Context, e event.Event) {
		c.Logger.WithFields(map[string]any{"user_id": e.UserID}).Info("user disabled")
	})
}

// InitModules builds the dependency graph and registers every feature
// module on the registry. Called once during startup.
func InitModules(r *Registry, c *container.Container) {
	deps := buildDeps(c)
	r.Add(modules.NewAuthModule(deps.Auth, c, deps.Sessions))
	r.Add(modules.NewUserModule(deps.User, c, deps.Sessions))
	r.Add(modules.NewAdminModule(deps.Admin, c, deps.Users, deps.Sessions))
	if c.Cfg.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule(c))
	}
}
