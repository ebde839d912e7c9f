package routes

import (
	productcontroller "github.com/DillanMilo/angus-biltong-sub000/controllers/product"
	"github.com/DillanMilo/angus-biltong-sub000/middleware"
	"github.com/gin-gonic/gin"
)

// SetupAdminRoutes registers all "/admin/*" endpoints. Requires API-Key middleware.
func SetupAdminRoutes(r *gin.Engine, d Deps) {
	adminGroup := r.Group("/admin")
	adminGroup.Use(middleware.ValidateAPIKey(d.AdminAPIKey))
	{
		adminGroup.GET("/catalog/export", productcontroller.ExportProductsToExcel(d.Catalog))
	}
}
