package productcontroller

import (
	"net/http"

	"github.com/DillanMilo/angus-biltong-sub000/catalog"
	"github.com/DillanMilo/angus-biltong-sub000/controllers/respond"
	"github.com/gin-gonic/gin"
)

// GetProducts returns the whole catalog, images included.
// GET /products
func GetProducts(svc *catalog.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		products, err := svc.Products(c.Request.Context())
		if err != nil {
			respond.Upstream(c, err, "Failed to fetch products")
			return
		}
		c.JSON(http.StatusOK, products)
	}
}
