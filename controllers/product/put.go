package productcontroller

import (
	"log"
	"net/http"
	"strings"

	"github.com/alfar-programer/Store-B-sub000/apperror"
	"github.com/alfar-programer/Store-B-sub000/models"
	"github.com/gin-gonic/gin"
)

// UpdateProductForm is a partial update; absent fields keep their value.
type UpdateProductForm struct {
	Title       *string  `form:"title" json:"title" binding:"omitempty,min=3,max=255"`
	Description *string  `form:"description" json:"description" binding:"omitempty,min=1,max=5000"`
	Price       *float64 `form:"price" json:"price" binding:"omitempty,gte=0"`
	Category    *string  `form:"category" json:"category" binding:"omitempty,max=100"`
	Stock       *int     `form:"stock" json:"stock" binding:"omitempty,gte=0"`
	Discount    *int     `form:"discount" json:"discount" binding:"omitempty,gte=0,lte=100"`
	Rating      *float64 `form:"rating" json:"rating" binding:"omitempty,gte=0,lte=5"`
	IsFeatured  *bool    `form:"isFeatured" json:"isFeatured"`
}

func (f UpdateProductForm) apply(p *models.Product) {
	if f.Title != nil {
		p.Title = strings.TrimSpace(*f.Title)
	}
	if f.Description != nil {
		p.Description = strings.TrimSpace(*f.Description)
	}
	if f.Price != nil {
		p.Price = *f.Price
	}
	if f.Category != nil {
		p.Category = strings.TrimSpace(*f.Category)
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
}

// UpdateProduct handles PUT /api/products/:id. A new image replaces the old file.
func UpdateProduct(d Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c, "product")
		if !ok {
			return
		}
		var form UpdateProductForm
		if err := c.ShouldBind(&form); err != nil {
			apperror.Respond(c, apperror.FromBinding(err))
			return
		}

		product, err := d.Products.Get(c.Request.Context(), id)
		if err != nil {
			apperror.Respond(c, err)
			return
		}
		form.apply(product)
		if fields := productProblems(*product); len(fields) > 0 {
			apperror.Respond(c, apperror.Validation("Invalid input", fields))
			return
		}

		image, err := d.saveOptionalImage(c, productImageDir)
		if err != nil {
			apperror.Respond(c, err)
			return
		}
		oldImage := product.Image
		if image != "" {
			product.Image = image
		}

		if err := d.Products.Save(c.Request.Context(), product); err != nil {
			_ = d.Uploads.Remove(image)
			apperror.Respond(c, err)
			return
		}
		if image != "" && oldImage != image {
			if err := d.Uploads.Remove(oldImage); err != nil {
				log.Printf("⚠️ Failed to remove old product image %s: %v", oldImage, err)
			}
		}

		c.JSON(http.StatusOK, d.presentProduct(c, *product))
	}
}
