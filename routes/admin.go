package routes

import (
	"time"

	adminController "github.com/alfar-programer/Store-B-sub000/controllers/admin"
	"github.com/alfar-programer/Store-B-sub000/middleware"
	"github.com/gin-gonic/gin"
)

// SetupAdminRoutes registers the dashboard endpoints. Requires an admin token.
func SetupAdminRoutes(api *gin.RouterGroup, d Deps) {
	adminGroup := api.Group("")
	adminGroup.Use(middleware.RequireAuth(d.Auth.Tokens()), middleware.RequireAdmin())
	{
		adminGroup.GET("/stats", adminController.GetStats(d.Repos.Stats, time.Now))
		adminGroup.GET("/users", adminController.GetAllUsers(d.Repos.Users, d.Config.PublicBaseURL))
	}
}
