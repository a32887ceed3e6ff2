package routes

import (
	orderControllers "github.com/alfar-programer/Store-B-sub000/controllers/order"
	userControllers "github.com/alfar-programer/Store-B-sub000/controllers/user"
	"github.com/alfar-programer/Store-B-sub000/middleware"
	"github.com/gin-gonic/gin"
)

// SetupUserRoutes registers all "/api/user/*" endpoints. Requires a token.
func SetupUserRoutes(api *gin.RouterGroup, d Deps) {
	ud := userControllers.Deps{
		Users:         d.Repos.Users,
		Uploads:       d.Uploads,
		PublicBaseURL: d.Config.PublicBaseURL,
	}

	userGroup := api.Group("/user")
	userGroup.Use(middleware.RequireAuth(d.Auth.Tokens()))
	{
		userGroup.GET("/profile", userControllers.GetProfile(ud))
		userGroup.PUT("/profile", userControllers.UpdateProfile(ud))
		userGroup.POST("/profile/image", userControllers.UploadProfileImage(ud))
		userGroup.GET("/orders", orderControllers.GetMyOrdersHandler(d.Orders))
	}
}
