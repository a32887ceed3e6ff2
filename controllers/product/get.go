package productcontroller

import (
	"net/http"

	"github.com/alfar-programer/Store-B-sub000/apperror"
	"github.com/gin-gonic/gin"
)

func GetProductByID(d Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c, "product")
		if !ok {
			return
		}
		product, err := d.Products.Get(c.Request.Context(), id)
		if err != nil {
			apperror.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, d.presentProduct(c, *product))
	}
}
