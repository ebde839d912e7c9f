package middleware

import (
	"net/http"
	"strings"

	"github.com/DillanMilo/angus-biltong-sub000/auth"
	"github.com/gin-gonic/gin"
)

// Context keys set by ValidateToken.
const (
	CustomerIDKey = "customer_id"
	EmailKey      = "email"
)

func ValidateToken(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := strings.TrimSpace(c.GetHeader("Authorization"))
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is missing"})
			return
		}
		if len(tokenString) > 7 && strings.EqualFold(tokenString[:7], "bearer ") {
			tokenString = strings.TrimSpace(tokenString[7:])
		}

		claims, err := auth.ParseToken(secret, tokenString)
		if err != nil || claims.Role != auth.RoleCustomer {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		c.Set(CustomerIDKey, claims.CustomerID)
		c.Set(EmailKey, claims.Email)
		c.Next()
	}
}
