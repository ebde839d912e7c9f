package productcontroller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/DillanMilo/angus-biltong-sub000/catalog"
	"github.com/DillanMilo/angus-biltong-sub000/commerce"
	"github.com/DillanMilo/angus-biltong-sub000/controllers/respond"
	"github.com/gin-gonic/gin"
)

// GetProductByID returns a single product.
// URL param: /products/:id
func GetProductByID(svc *catalog.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil || id < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
			return
		}

		product, err := svc.Product(c.Request.Context(), id)
		if err != nil {
			if errors.Is(err, commerce.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
				return
			}
			respond.Upstream(c, err, "Failed to retrieve product")
			return
		}
		c.JSON(http.StatusOK, product)
	}
}
