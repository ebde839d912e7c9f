package routes

import (
	cartControllers "github.com/DillanMilo/angus-biltong-sub000/controllers/cart"
	"github.com/DillanMilo/angus-biltong-sub000/middleware"
	"github.com/gin-gonic/gin"
)

// SetupCartRoutes registers all "/cart/*" endpoints. The cart is keyed by the
// cart_session cookie, so no login is needed.
func SetupCartRoutes(r *gin.Engine, d Deps) {
	policy := d.HandOff.Policy()

	cartGroup := r.Group("/cart")
	cartGroup.Use(middleware.CartSession(d.SecureCookies))
	{
		cartGroup.GET("", cartControllers.GetCart(d.Sessions, policy))
		cartGroup.DELETE("", cartControllers.ClearCart(d.Sessions, policy))
		cartGroup.POST("/items", cartControllers.AddCartItem(d.Sessions, d.Catalog, policy))
		cartGroup.PUT("/items/:product_id", cartControllers.UpdateCartItem(d.Sessions, policy))
		cartGroup.DELETE("/items/:product_id", cartControllers.DeleteCartItem(d.Sessions, policy))
		cartGroup.POST("/checkout", cartControllers.Checkout(d.Sessions, d.HandOff))

		// websocket endpoint for live cart state
		cartGroup.GET("/ws", cartControllers.CartWebSocketHandler(d.Sessions, d.AllowedOrigins))
	}
}
