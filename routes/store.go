package routes

import (
	giftcertControllers "github.com/DillanMilo/angus-biltong-sub000/controllers/giftcert"
	pageControllers "github.com/DillanMilo/angus-biltong-sub000/controllers/pages"
	productcontroller "github.com/DillanMilo/angus-biltong-sub000/controllers/product"
	"github.com/gin-gonic/gin"
)

func SetupStoreRoutes(r *gin.Engine, d Deps) {
	products := r.Group("/products")
	{
		products.GET("", productcontroller.GetProducts(d.Catalog))
		products.GET("/:id", productcontroller.GetProductByID(d.Catalog))
	}

	categories := r.Group("/categories")
	{
		categories.GET("", productcontroller.GetAllCategories(d.Catalog))
		categories.GET("/*path", productcontroller.GetCategoryProducts(d.Catalog))
	}

	gifts := r.Group("/gift-certificates")
	{
		gifts.POST("", giftcertControllers.CreateGiftCertificate(d.GiftCerts))
		gifts.GET("/:code", giftcertControllers.GetGiftCertificate(d.GiftCerts))
	}

	pageGroup := r.Group("/pages")
	{
		pageGroup.GET("", pageControllers.ListPages(d.Pages))
		pageGroup.GET("/:slug", pageControllers.GetPage(d.Pages))
	}
}
