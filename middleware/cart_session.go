package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	CartCookie     = "cart_session"
	CartSessionKey = "cart_session"
	cartCookieAge  = 60 * 60 * 24 * 30
)

// CartSession identifies the visitor's cart by cookie, issuing a new id when the
// cookie is missing or malformed.
func CartSession(secure bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := c.Cookie(CartCookie)
		if err != nil || uuid.Validate(id) != nil {
			id = uuid.NewString()
		}
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(CartCookie, id, cartCookieAge, "/", "", secure, true)
		c.Set(CartSessionKey, id)
		c.Next()
	}
}

// SessionID returns the id set by CartSession.
func SessionID(c *gin.Context) string {
	return c.GetString(CartSessionKey)
}
