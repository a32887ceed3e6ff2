package routes

import (
	productcontroller "github.com/alfar-programer/Store-B-sub000/controllers/product"
	"github.com/alfar-programer/Store-B-sub000/middleware"
	"github.com/gin-gonic/gin"
)

// SetupProductRoutes registers "/api/products/*" and "/api/categories/*".
func SetupProductRoutes(api *gin.RouterGroup, d Deps) {
	pd := productcontroller.Deps{
		Products:      d.Repos.Products,
		Categories:    d.Repos.Categories,
		Uploads:       d.Uploads,
		PublicBaseURL: d.Config.PublicBaseURL,
	}
	adminOnly := []gin.HandlerFunc{middleware.RequireAuth(d.Auth.Tokens()), middleware.RequireAdmin()}

	products := api.Group("/products")
	{
		products.GET("", productcontroller.GetProducts(pd))
		products.GET("/featured", productcontroller.GetFeaturedProducts(pd))
		products.GET("/:id", productcontroller.GetProductByID(pd))

		admin := products.Group("", adminOnly...)
		admin.POST("", productcontroller.CreateProduct(pd))
		admin.PUT("/:id", productcontroller.UpdateProduct(pd))
		admin.DELETE("/:id", productcontroller.DeleteProduct(pd))
		admin.GET("/export", productcontroller.ExportProductsToExcel(pd))
		admin.POST("/import", productcontroller.ImportProductsFromExcel(pd))
	}

	categories := api.Group("/categories")
	{
		categories.GET("", productcontroller.GetAllCategories(pd))
		categories.GET("/:id", productcontroller.GetCategoryByID(pd))

		admin := categories.Group("", adminOnly...)
		admin.POST("", productcontroller.CreateCategory(pd))
		admin.PUT("/:id", productcontroller.UpdateCategory(pd))
		admin.DELETE("/:id", productcontroller.DeleteCategory(pd))
	}
}
