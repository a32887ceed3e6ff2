package routes

import (
	"github.com/alfar-programer/Store-B-sub000/auth"
	"github.com/alfar-programer/Store-B-sub000/middleware"
	"github.com/gin-gonic/gin"
)

// SetupAuthRoutes registers all "/api/auth/*" endpoints.
func SetupAuthRoutes(api *gin.RouterGroup, d Deps) {
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", auth.RegisterHandler(d.Auth))
		authGroup.POST("/login", auth.LoginHandler(d.Auth))
		authGroup.POST("/logout", middleware.RequireAuth(d.Auth.Tokens()), auth.LogoutHandler(d.Auth))
	}
}
