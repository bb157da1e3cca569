package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/identity-service/config"
	"github.com/oksasatya/identity-service/internal/application"
	"github.com/oksasatya/identity-service/internal/domain"
	"github.com/oksasatya/identity-service/internal/domain/entity"
	repo "github.com/oksasatya/identity-service/internal/domain/repository"
	"github.com/oksasatya/identity-service/internal/domain/service"
	"github.com/oksasatya/identity-service/pkg/helpers"
	"github.com/oksasatya/identity-service/pkg/mailer"
	"github.com/oksasatya/identity-service/pkg/response"
	"github.com/oksasatya/identity-service/pkg/validation"
)

type AuthHandler struct {
	Users    *application.UserService
	Tokens   *application.TokenService
	Sessions repo.SessionRepository
	Provider service.TokenProvider
	JWT      *helpers.JWTManager
	Cookies  *helpers.Manager
	Pub      *helpers.RabbitPublisher
	Logger   *logrus.Logger
	Cfg      *config.Config
}

func NewAuthHandler(users *application.UserService, tokens *application.TokenService, sessions repo.SessionRepository, provider service.TokenProvider, jwt *helpers.JWTManager, pub *helpers.RabbitPublisher, logger *logrus.Logger, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		Users:    users,
		Tokens:   tokens,
		Sessions: sessions,
		Provider: provider,
		JWT:      jwt,
		Cookies:  helpers.NewCookie(cfg.CookieDomain, cfg.CookieSecure),
		Pub:      pub,
		Logger:   logger,
		Cfg:      cfg,
	}
}

type registerRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,strongpwd"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Register POST /api/v1/auth/register
// Accounts start with no roles; roles are granted only through the admin
// endpoints, never from the registration payload.
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	u, err := h.Users.Register(c.Request.Context(), req.Email, req.Password, nil)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, userView(u), "registered; verification email on its way", nil)
}

// Login POST /api/v1/auth/login
// NotFound and credential mismatch both answer 401 so callers cannot probe
// which emails exist.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	u, err := h.Users.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if domain.Is(err, domain.ErrCodeInactiveAccount) {
			writeError(c, err)
			return
		}
		response.ErrorCode[any](c, http.StatusUnauthorized, string(domain.ErrCodeInvalidCredentials), "invalid credentials", nil)
		return
	}

	if err := h.openSession(c, u); err != nil {
		response.Error[any](c, http.StatusInternalServerError, "session setup failed", nil)
		return
	}
	response.Success(c, http.StatusOK, userView(u), "login successful", nil)
}

// Refresh POST /api/v1/auth/refresh rotates the token pair bound to the session.
func (h *AuthHandler) Refresh(c *gin.Context) {
	refresh, err := c.Cookie("refresh_token")
	if err != nil || refresh == "" {
		response.Error[any](c, http.StatusUnauthorized, "missing refresh token", nil)
		return
	}
	claims, err := h.JWT.ParseRefreshToken(refresh)
	if err != nil {
		response.Error[any](c, http.StatusUnauthorized, "invalid refresh token", nil)
		return
	}
	s, err := h.Sessions.FindByID(c.Request.Context(), claims.SessionID)
	if err != nil || !s.IsActive() || s.TokenHash != h.Provider.Hash(refresh) {
		response.Error[any](c, http.StatusUnauthorized, "invalid refresh token", nil)
		return
	}

	access, aexp, err := h.JWT.GenerateAccessToken(claims.UserID, s.ID.Value())
	if err != nil {
		response.Error[any](c, http.StatusInternalServerError, "token generation failed", nil)
		return
	}
	newRefresh, rexp, err := h.JWT.GenerateRefreshToken(claims.UserID, s.ID.Value())
	if err != nil {
		response.Error[any](c, http.StatusInternalServerError, "token generation failed", nil)
		return
	}
	s.Rotate(h.Provider.Hash(newRefresh), rexp)
	if err := h.Sessions.Save(c.Request.Context(), s); err != nil {
		response.Error[any](c, http.StatusInternalServerError, "session update failed", nil)
		return
	}
	h.Cookies.SetPair(c, access, aexp, newRefresh, rexp)
	response.Success[any](c, http.StatusOK, map[string]any{"refreshed": true}, "token refreshed", nil)
}

// Logout POST /api/v1/auth/logout (auth required)
func (h *AuthHandler) Logout(c *gin.Context) {
	if sid := c.GetString("sessionID"); sid != "" {
		_ = h.Sessions.Delete(c.Request.Context(), sid)
	}
	h.Cookies.Clear(c)
	response.Success[any](c, http.StatusOK, map[string]any{"logged_out": true}, "logged out", nil)
}

// VerifyInit POST /api/v1/auth/verify/init (auth required)
// Re-issues a verification token for the logged-in user, e.g. when the
// original email went missing.
func (h *AuthHandler) VerifyInit(c *gin.Context) {
	uid := c.GetString("userID")
	u, err := h.Users.GetUser(c.Request.Context(), uid)
	if err != nil {
		writeError(c, err)
		return
	}
	if u.EmailVerifiedAt != nil {
		response.Success(c, http.StatusOK, gin.H{"already_verified": true}, "already verified", nil)
		return
	}
	t, secret, err := h.Tokens.IssueToken(c.Request.Context(), uid, entity.PurposeEmailVerification, h.Cfg.VerifyTokenTTL)
	if err != nil {
		writeError(c, err)
		return
	}
	link := h.Cfg.VerifyEmailURL + "?token=" + secret
	h.enqueueMail(c, u.Email.Value(), mailer.VerifyEmail, link, t.ExpiresAt)
	response.Success(c, http.StatusOK, gin.H{"verify_link": link}, "verification link", nil)
}

type verifyConfirmRequest struct {
	Token string `json:"token" binding:"required"`
}

// VerifyConfirm POST /api/v1/auth/verify/confirm {token}
func (h *AuthHandler) VerifyConfirm(c *gin.Context) {
	var req verifyConfirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	u, err := h.Tokens.VerifyEmail(c.Request.Context(), req.Token)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, userView(u), "email verified", nil)
}

type resetInitRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ResetInit POST /api/v1/auth/reset/init {email}
// Always answers OK so the endpoint cannot be used to enumerate accounts.
func (h *AuthHandler) ResetInit(c *gin.Context) {
	var req resetInitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	u, err := h.Users.GetUserByEmail(c.Request.Context(), req.Email)
	if err == nil {
		t, secret, terr := h.Tokens.IssueToken(c.Request.Context(), u.ID.Value(), entity.PurposePasswordReset, h.Cfg.ResetTokenTTL)
		if terr == nil {
			link := h.Cfg.ResetPasswordURL + "?token=" + secret
			h.enqueueMail(c, u.Email.Value(), mailer.ResetPassword, link, t.ExpiresAt)
		} else if h.Logger != nil {
			h.Logger.WithError(terr).Warn("reset token issuance failed")
		}
	} else if h.Logger != nil {
		h.Logger.WithField("email", req.Email).Info("password reset for unknown email")
	}
	response.Success[any](c, http.StatusOK, map[string]any{"sent": true}, "if the account exists, a reset email is on its way", nil)
}

type resetConfirmRequest struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,strongpwd"`
}

// ResetConfirm POST /api/v1/auth/reset/confirm {token, new_password}
func (h *AuthHandler) ResetConfirm(c *gin.Context) {
	var req resetConfirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	u, err := h.Tokens.ResetPassword(c.Request.Context(), req.Token, req.NewPassword)
	if err != nil {
		writeError(c, err)
		return
	}
	// Every device gets logged out after a reset.
	_ = h.Sessions.DeleteByUserID(c.Request.Context(), u.ID.Value())
	response.Success(c, http.StatusOK, userView(u), "password reset", nil)
}

func (h *AuthHandler) openSession(c *gin.Context, u *entity.User) error {
	s := entity.NewSession(u.ID, "", c.GetHeader("User-Agent"), clientIP(c), time.Now().Add(h.Cfg.SessionTTL))
	access, aexp, err := h.JWT.GenerateAccessToken(u.ID.Value(), s.ID.Value())
	if err != nil {
		return err
	}
	refresh, rexp, err := h.JWT.GenerateRefreshToken(u.ID.Value(), s.ID.Value())
	if err != nil {
		return err
	}
	s.Rotate(h.Provider.Hash(refresh), rexp)
	if err := h.Sessions.Save(c.Request.Context(), s); err != nil {
		return err
	}
	h.Cookies.SetPair(c, access, aexp, refresh, rexp)
	return nil
}

func (h *AuthHandler) enqueueMail(c *gin.Context, to, template, link string, expiresAt time.Time) {
	if h.Pub == nil || h.Cfg == nil || !h.Cfg.MailSendEnabled {
		return
	}
	job := mailer.EmailJob{
		To:       to,
		Template: template,
		Data: map[string]any{
			"Link":      link,
			"ExpiresAt": expiresAt.UTC().Format(time.RFC1123),
		},
	}
	if err := h.Pub.PublishJSON(c.Request.Context(), job); err != nil && h.Logger != nil {
		h.Logger.WithError(err).Warn("failed to publish email job")
	}
}

func clientIP(c *gin.Context) string {
	if ip := c.GetString("real_ip"); ip != "" {
		return ip
	}
	return c.ClientIP()
}

func userView(u *entity.User) gin.H {
	return gin.H{
		"id":                u.ID.Value(),
		"email":             u.Email.Value(),
		"status":            u.Status,
		"roles":             u.Roles,
		"created_at":        u.CreatedAt,
		"updated_at":        u.UpdatedAt,
		"email_verified_at": u.EmailVerifiedAt,
	}
}
