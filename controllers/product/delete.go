package productcontroller

import (
	"log"
	"net/http"

	"github.com/alfar-programer/Store-B-sub000/apperror"
	"github.com/gin-gonic/gin"
)

// DeleteProduct handles DELETE /api/products/:id. Past orders keep their own
// item snapshots, so nothing else is checked.
func DeleteProduct(d Deps) gin.HandlerFunc {
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
		if err := d.Products.Delete(c.Request.Context(), id); err != nil {
			apperror.Respond(c, err)
			return
		}
		if err := d.Uploads.Remove(product.Image); err != nil {
			log.Printf("⚠️ Failed to remove product image %s: %v", product.Image, err)
		}

		c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
	}
}
