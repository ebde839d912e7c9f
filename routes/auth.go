package routes

import (
	userControllers "github.com/DillanMilo/angus-biltong-sub000/controllers/user"
	"github.com/gin-gonic/gin"
)

// SetupAuthRoutes registers all "/auth/*" endpoints.
func SetupAuthRoutes(r *gin.Engine, d Deps) {
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/register", userControllers.Register(d.Accounts))
		authGroup.POST("/login", userControllers.Login(d.Accounts))
	}
}
