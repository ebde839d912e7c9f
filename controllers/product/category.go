package productcontroller

import (
	"errors"
	"net/http"
	"strings"

	"github.com/DillanMilo/angus-biltong-sub000/catalog"
	"github.com/DillanMilo/angus-biltong-sub000/controllers/respond"
	"github.com/DillanMilo/angus-biltong-sub000/models"
	"github.com/gin-gonic/gin"
)

// GET /categories
func GetAllCategories(svc *catalog.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, svc.Categories())
	}
}

// GetCategoryProducts filters the catalog to one category, e.g.
// /categories/chilli-bites/inferno.
func GetCategoryProducts(svc *catalog.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := strings.Trim(c.Param("path"), "/")

		products, category, err := svc.ProductsInCategory(c.Request.Context(), path)
		if err != nil {
			if errors.Is(err, catalog.ErrCategoryNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "category not found", "products": []models.Product{}})
				return
			}
			respond.Upstream(c, err, "Failed to fetch products")
			return
		}
		c.JSON(http.StatusOK, gin.H{"category": category, "products": products})
	}
}
