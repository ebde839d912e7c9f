package productcontroller

import (
	"bytes"
	"net/http"

	"github.com/DillanMilo/angus-biltong-sub000/catalog"
	"github.com/DillanMilo/angus-biltong-sub000/controllers/respond"
	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// GET /admin/catalog/export
func ExportProductsToExcel(svc *catalog.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		products, err := svc.Products(c.Request.Context())
		if err != nil {
			respond.Upstream(c, err, "Failed to fetch products")
			return
		}

		var buf bytes.Buffer
		if err := catalog.ExportXLSX(&buf, products, svc.Resolver()); err != nil {
			_ = c.Error(err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to write Excel file"})
			return
		}

		c.Header("Content-Disposition", "attachment; filename=products.xlsx")
		c.Header("Content-Transfer-Encoding", "binary")
		c.Header("Expires", "0")
		c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
	}
}
