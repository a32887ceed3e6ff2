package orderControllers

import (
	"net/http"
	"strconv"

	"github.com/alfar-programer/Store-B-sub000/apperror"
	"github.com/alfar-programer/Store-B-sub000/auth"
	"github.com/alfar-programer/Store-B-sub000/models"
	"github.com/gin-gonic/gin"
)

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func parseOrderID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		apperror.Respond(c, apperror.Validation("Invalid order ID", map[string]string{"id": "must be a positive integer"}))
		return 0, false
	}
	return uint(id), true
}

func nonNil(orders []models.Order) []models.Order {
	if orders == nil {
		return []models.Order{}
	}
	return orders
}

// CreateOrderHandler handles POST /api/orders. Guests may check out; a
// customer token pins the order to the caller.
func CreateOrderHandler(svc *Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in CreateOrderInput
		if err := c.ShouldBindJSON(&in); err != nil {
			apperror.Respond(c, apperror.FromBinding(err))
			return
		}

		if claims, ok := auth.ClaimsFrom(c); ok && !claims.Role.IsAdmin() {
			uid := claims.UserID
			in.UserID = &uid
		}

		order, err := svc.CreateOrder(c.Request.Context(), in)
		if err != nil {
			apperror.Respond(c, err)
			return
		}
		c.JSON(http.StatusCreated, order)
	}
}

// GetAllOrdersHandler handles GET /api/orders (admin).
func GetAllOrdersHandler(svc *Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		orders, err := svc.ListAll(c.Request.Context())
		if err != nil {
			apperror.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, nonNil(orders))
	}
}

// GetMyOrdersHandler handles GET /api/user/orders.
func GetMyOrdersHandler(svc *Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := auth.ClaimsFrom(c)
		if !ok {
			apperror.Respond(c, apperror.Unauthenticated("Authentication required"))
			return
		}
		orders, err := svc.ListForUser(c.Request.Context(), claims.UserID)
		if err != nil {
			apperror.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, nonNil(orders))
	}
}

// GetOrderByIDHandler handles GET /api/orders/:id (admin).
func GetOrderByIDHandler(svc *Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseOrderID(c)
		if !ok {
			return
		}
		order, err := svc.Get(c.Request.Context(), id)
		if err != nil {
			apperror.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

// UpdateOrderStatusHandler handles PUT /api/orders/:id (admin).
func UpdateOrderStatusHandler(svc *Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseOrderID(c)
		if !ok {
			return
		}
		var req UpdateOrderStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			apperror.Respond(c, apperror.FromBinding(err))
			return
		}

		order, err := svc.UpdateStatus(c.Request.Context(), id, req.Status)
		if err != nil {
			apperror.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Order status updated successfully", "order": order})
	}
}
