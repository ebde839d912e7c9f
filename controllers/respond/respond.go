// Package respond holds the error responses shared by the controllers.
package respond

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Upstream reports a failed commerce platform call. The cause is attached to the
// request for the request logger; the client only sees msg.
func Upstream(c *gin.Context, err error, msg string) {
	_ = c.Error(err)
	c.JSON(http.StatusBadGateway, gin.H{"error": msg})
}

// Invalid reports field-level validation failures.
func Invalid(c *gin.Context, fields map[string]string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "fields": fields})
}

// BadJSON reports a body that could not be bound.
func BadJSON(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
}
