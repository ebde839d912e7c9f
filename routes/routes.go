package routes

import (
	"net/http"

	"github.com/DillanMilo/angus-biltong-sub000/auth"
	"github.com/DillanMilo/angus-biltong-sub000/cart"
	"github.com/DillanMilo/angus-biltong-sub000/catalog"
	"github.com/DillanMilo/angus-biltong-sub000/checkout"
	"github.com/DillanMilo/angus-biltong-sub000/giftcert"
	"github.com/DillanMilo/angus-biltong-sub000/pages"
	"github.com/gin-gonic/gin"
)

// Deps are the services the HTTP surface is built on.
type Deps struct {
	Catalog   *catalog.Service
	Sessions  *cart.Sessions
	HandOff   *checkout.HandOff
	Accounts  *auth.Accounts
	GiftCerts *giftcert.Service
	Pages     *pages.Library

	AdminAPIKey    string
	AllowedOrigins []string // browser origins trusted with the cart cookie
	SecureCookies  bool
}

// SetupRoutes is the single entry-point that wires up every route group.
func SetupRoutes(r *gin.Engine, d Deps) {
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Public storefront: catalog, gift certificates, pages
	SetupStoreRoutes(r, d)

	// Cookie-identified cart
	SetupCartRoutes(r, d)

	// Registration and login
	SetupAuthRoutes(r, d)

	// JWT-protected account
	SetupUserRoutes(r, d)

	// API-key-protected admin
	SetupAdminRoutes(r, d)
}
