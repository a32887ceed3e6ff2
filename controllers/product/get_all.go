package productcontroller

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/alfar-programer/Store-B-sub000/apperror"
	"github.com/alfar-programer/Store-B-sub000/repository"
	"github.com/gin-gonic/gin"
)

// GetProducts handles GET /api/products?category=&search=&featured=
func GetProducts(d Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		filter := repository.ProductFilter{
			Category: strings.TrimSpace(c.Query("category")),
			Search:   strings.TrimSpace(c.Query("search")),
		}
		if raw := c.Query("featured"); raw != "" {
			featured, err := strconv.ParseBool(raw)
			if err != nil {
				apperror.Respond(c, apperror.Validation("Invalid featured filter", map[string]string{"featured": "must be true or false"}))
				return
			}
			filter.Featured = &featured
		}

		products, err := d.Products.List(c.Request.Context(), filter)
		if err != nil {
			apperror.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, d.presentProducts(c, products))
	}
}

// GetFeaturedProducts handles GET /api/products/featured.
func GetFeaturedProducts(d Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		featured := true
		products, err := d.Products.List(c.Request.Context(), repository.ProductFilter{Featured: &featured})
		if err != nil {
			apperror.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, d.presentProducts(c, products))
	}
}
