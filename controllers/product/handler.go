package productcontroller

import (
	"strconv"

	"github.com/alfar-programer/Store-B-sub000/apperror"
	"github.com/alfar-programer/Store-B-sub000/models"
	"github.com/alfar-programer/Store-B-sub000/repository"
	"github.com/alfar-programer/Store-B-sub000/uploads"
	"github.com/gin-gonic/gin"
)

const (
	productImageDir  = "products"
	categoryImageDir = "categories"
)

// Deps is what the product and category handlers share.
type Deps struct {
	Products      *repository.Products
	Categories    *repository.Categories
	Uploads       *uploads.Store
	PublicBaseURL string
}

func parseID(c *gin.Context, what string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		apperror.Respond(c, apperror.Validation("Invalid "+what+" ID", map[string]string{"id": "must be a positive integer"}))
		return 0, false
	}
	return uint(id), true
}

// saveOptionalImage stores the "image" part when the request carries one.
// It returns "" when no file was sent.
func (d Deps) saveOptionalImage(c *gin.Context, subdir string) (string, error) {
	file, err := c.FormFile("image")
	if err != nil {
		return "", nil
	}
	return d.Uploads.SaveImage(c, file, subdir)
}

func (d Deps) presentProduct(c *gin.Context, p models.Product) models.Product {
	p.Image = uploads.AbsoluteURL(uploads.BaseURL(c, d.PublicBaseURL), p.Image)
	return p
}

func (d Deps) presentProducts(c *gin.Context, products []models.Product) []models.Product {
	base := uploads.BaseURL(c, d.PublicBaseURL)
	out := make([]models.Product, len(products))
	for i, p := range products {
		p.Image = uploads.AbsoluteURL(base, p.Image)
		out[i] = p
	}
	return out
}

func (d Deps) presentCategory(c *gin.Context, cat models.Category) models.Category {
	cat.Image = uploads.AbsoluteURL(uploads.BaseURL(c, d.PublicBaseURL), cat.Image)
	return cat
}
