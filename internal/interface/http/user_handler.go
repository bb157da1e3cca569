package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/identity-service/internal/application"
	"github.com/oksasatya/identity-service/pkg/response"
	"github.com/oksasatya/identity-service/pkg/validation"
)

type UserHandler struct {
	Users  *application.UserService
	Logger *logrus.Logger
}

func NewUserHandler(users *application.UserService, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Users: users, Logger: logger}
}

// GetProfile GET /api/v1/users/me
func (h *UserHandler) GetProfile(c *gin.Context) {
	u, err := h.Users.GetUser(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, userView(u), "profile", nil)
}

type changePasswordRequest struct {
	NewPassword string `json:"new_password" binding:"required,strongpwd"`
}

// ChangePassword PUT /api/v1/users/me/password
func (h *UserHandler) ChangePassword(c *gin.Context) {
	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	u, err := h.Users.ChangePassword(c.Request.Context(), c.GetString("userID"), req.NewPassword)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, userView(u), "password changed", nil)
}

// Search GET /api/v1/users/search?q=...&size=10
// Backed by the Elasticsearch index; results may lag writes slightly.
func (h *UserHandler) Search(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		response.Error[any](c, http.StatusBadRequest, "missing query parameter q", nil)
		return
	}
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))
	hits, err := h.Users.SearchUsers(c.Request.Context(), q, size)
	if err != nil {
		if h.Logger != nil {
			h.Logger.WithError(err).Warn("user search failed")
		}
		response.Error[any](c, http.StatusBadGateway, "search unavailable", nil)
		return
	}
	response.Success(c, http.StatusOK, hits, "search results", gin.H{"count": len(hits)})
}
