package router

import "github.com/gin-gonic/gin"

// Module is a feature area (auth, users, admin) that mounts its routes on
// the shared /api/v1 group.
type Module interface {
	Register(rg *gin.RouterGroup)
}
