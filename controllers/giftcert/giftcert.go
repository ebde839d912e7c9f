package giftcertControllers

import (
	"errors"
	"net/http"

	"github.com/DillanMilo/angus-biltong-sub000/controllers/respond"
	"github.com/DillanMilo/angus-biltong-sub000/giftcert"
	"github.com/gin-gonic/gin"
)

// POST /gift-certificates
func CreateGiftCertificate(svc *giftcert.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input giftcert.Input
		if err := c.ShouldBindJSON(&input); err != nil {
			respond.BadJSON(c, err)
			return
		}

		gc, err := svc.Create(c.Request.Context(), input)
		if err != nil {
			var invalid *giftcert.InvalidInputError
			if errors.As(err, &invalid) {
				respond.Invalid(c, invalid.Fields)
				return
			}
			respond.Upstream(c, err, "Failed to create gift certificate")
			return
		}
		c.JSON(http.StatusCreated, gc)
	}
}

// GET /gift-certificates/:code
func GetGiftCertificate(svc *giftcert.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		gc, err := svc.Lookup(c.Request.Context(), c.Param("code"))
		if err != nil {
			if errors.Is(err, giftcert.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Gift certificate not found"})
				return
			}
			respond.Upstream(c, err, "Failed to look up gift certificate")
			return
		}
		c.JSON(http.StatusOK, gc)
	}
}
