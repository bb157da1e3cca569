package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/identity-service/internal/application"
	"github.com/oksasatya/identity-service/internal/domain/entity"
	repo "github.com/oksasatya/identity-service/internal/domain/repository"
	"github.com/oksasatya/identity-service/pkg/response"
	"github.com/oksasatya/identity-service/pkg/validation"
)

// AdminHandler groups account-administration endpoints. Routes mounting it
// must sit behind the admin-role middleware.
type AdminHandler struct {
	Users    *application.UserService
	Sessions repo.SessionRepository
	Logger   *logrus.Logger
}

func NewAdminHandler(users *application.UserService, sessions repo.SessionRepository, logger *logrus.Logger) *AdminHandler {
	return &AdminHandler{Users: users, Sessions: sessions, Logger: logger}
}

// GetUser GET /api/v1/admin/users/:id
func (h *AdminHandler) GetUser(c *gin.Context) {
	u, err := h.Users.GetUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, userView(u), "user", nil)
}

// ListUsers GET /api/v1/admin/users?email=&status=
func (h *AdminHandler) ListUsers(c *gin.Context) {
	filter := repo.UserFilter{
		Email:  c.Query("email"),
		Status: entity.UserStatus(c.Query("status")),
	}
	users, err := h.Users.ListUsers(c.Request.Context(), filter)
	if err != nil {
		writeError(c, err)
		return
	}
	views := make([]gin.H, 0, len(users))
	for _, u := range users {
		views = append(views, userView(u))
	}
	response.Success(c, http.StatusOK, views, "users", gin.H{"count": len(views)})
}

type roleRequest struct {
	Role string `json:"role" binding:"required"`
}

// AssignRole POST /api/v1/admin/users/:id/roles
func (h *AdminHandler) AssignRole(c *gin.Context) {
	var req roleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	u, err := h.Users.AssignRole(c.Request.Context(), c.Param("id"), req.Role)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, userView(u), "role assigned", nil)
}

// RemoveRole DELETE /api/v1/admin/users/:id/roles/:role
func (h *AdminHandler) RemoveRole(c *gin.Context) {
	u, err := h.Users.RemoveRole(c.Request.Context(), c.Param("id"), c.Param("role"))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, userView(u), "role removed", nil)
}

// Disable POST /api/v1/admin/users/:id/disable
// Also revokes every live session so the account is locked out immediately.
func (h *AdminHandler) Disable(c *gin.Context) {
	u, err := h.Users.Disable(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	if err := h.Sessions.DeleteByUserID(c.Request.Context(), u.ID.Value()); err != nil && h.Logger != nil {
		h.Logger.WithError(err).WithField("user_id", u.ID.Value()).Warn("failed to revoke sessions for disabled user")
	}
	response.Success(c, http.StatusOK, userView(u), "user disabled", nil)
}
