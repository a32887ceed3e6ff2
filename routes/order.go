package routes

import (
	orderControllers "github.com/alfar-programer/Store-B-sub000/controllers/order"
	"github.com/alfar-programer/Store-B-sub000/middleware"
	"github.com/gin-gonic/gin"
)

func SetupOrderRoutes(api *gin.RouterGroup, d Deps) {
	tokens := d.Auth.Tokens()

	orders := api.Group("/orders")
	{
		// Guests may check out; a customer token pins the order to its owner
		orders.POST("", middleware.OptionalAuth(tokens), orderControllers.CreateOrderHandler(d.Orders))

		admin := orders.Group("", middleware.RequireAuth(tokens), middleware.RequireAdmin())
		admin.GET("", orderControllers.GetAllOrdersHandler(d.Orders))

		// websocket endpoint for real-time order updates
		admin.GET("/ws", d.Hub.Handler())

		admin.GET("/:id", orderControllers.GetOrderByIDHandler(d.Orders))
		admin.PUT("/:id", orderControllers.UpdateOrderStatusHandler(d.Orders))
	}
}
