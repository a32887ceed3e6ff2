package productcontroller

import (
	"log"
	"net/http"
	"strings"

	"github.com/alfar-programer/Store-B-sub000/apperror"
	"github.com/alfar-programer/Store-B-sub000/models"
	"github.com/gin-gonic/gin"
)

// CreateProductForm is the multipart (or JSON) body of POST /api/products.
type CreateProductForm struct {
	Title       string   `form:"title" json:"title" binding:"required,min=3,max=255"`
	Description string   `form:"description" json:"description" binding:"required,min=1,max=5000"`
	Price       *float64 `form:"price" json:"price" binding:"required,gte=0"`
	Category    string   `form:"category" json:"category" binding:"max=100"`
	Stock       *int     `form:"stock" json:"stock" binding:"omitempty,gte=0"`
	Discount    *int     `form:"discount" json:"discount" binding:"omitempty,gte=0,lte=100"`
	Rating      *float64 `form:"rating" json:"rating" binding:"omitempty,gte=0,lte=5"`
	IsFeatured  *bool    `form:"isFeatured" json:"isFeatured"`
}

func (f CreateProductForm) product() models.Product {
	p := models.Product{
		Title:       strings.TrimSpace(f.Title),
		Description: strings.TrimSpace(f.Description),
		Price:       *f.Price,
		Category:    strings.TrimSpace(f.Category),
		Rating:      models.DefaultRating,
	}
	if f.Stock != nil {
		p.Stock = *f.Stock
	}
	if f.Discount != nil {
		p.Discount = *f.Discount
	}
	if f.Rating != nil {
		p.Rating = *f.Rating
	}
	if f.IsFeatured != nil {
		p.IsFeatured = *f.IsFeatured
	}
	return p
}

// CreateProduct handles POST /api/products with an optional "image" file.
func CreateProduct(d Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		var form CreateProductForm
		if err := c.ShouldBind(&form); err != nil {
			apperror.Respond(c, apperror.FromBinding(err))
			return
		}

		product := form.product()
		if fields := productProblems(product); len(fields) > 0 {
			apperror.Respond(c, apperror.Validation("Invalid input", fields))
			return
		}
		image, err := d.saveOptionalImage(c, productImageDir)
		if err != nil {
			apperror.Respond(c, err)
			return
		}
		product.Image = image

		if err := d.Products.Create(c.Request.Context(), &product); err != nil {
			_ = d.Uploads.Remove(image)
			apperror.Respond(c, err)
			return
		}

		log.Printf("📦 Product %d created: %s", product.ID, product.Title)
		c.JSON(http.StatusCreated, d.presentProduct(c, product))
	}
}
