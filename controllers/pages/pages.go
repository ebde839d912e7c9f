package pageControllers

import (
	"net/http"

	"github.com/DillanMilo/angus-biltong-sub000/pages"
	"github.com/gin-gonic/gin"
)

// GET /pages
func ListPages(lib *pages.Library) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"pages": lib.Slugs()})
	}
}

// GET /pages/:slug
func GetPage(lib *pages.Library) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, err := lib.Get(c.Param("slug"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Page not found"})
			return
		}
		c.JSON(http.StatusOK, page)
	}
}
