package routes

import (
	userControllers "github.com/DillanMilo/angus-biltong-sub000/controllers/user"
	"github.com/DillanMilo/angus-biltong-sub000/middleware"
	"github.com/gin-gonic/gin"
)

func SetupUserRoutes(r *gin.Engine, d Deps) {
	account := r.Group("/account")
	account.Use(middleware.ValidateToken(d.Accounts.Secret()))
	{
		account.GET("", userControllers.GetAccount(d.Accounts))
	}
}
