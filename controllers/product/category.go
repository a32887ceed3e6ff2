package productcontroller

import (
	"log"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/alfar-programer/Store-B-sub000/apperror"
	"github.com/alfar-programer/Store-B-sub000/models"
	"github.com/gin-gonic/gin"
)

type CreateCategoryForm struct {
	Name        string `form:"name" json:"name" binding:"required,min=2,max=100"`
	Description string `form:"description" json:"description" binding:"max=1000"`
}

type UpdateCategoryForm struct {
	Name        *string `form:"name" json:"name" binding:"omitempty,min=2,max=100"`
	Description *string `form:"description" json:"description" binding:"omitempty,max=1000"`
}

// categoryNameProblem checks a trimmed category name.
func categoryNameProblem(name string) map[string]string {
	switch n := utf8.RuneCountInString(name); {
	case n < 2:
		return map[string]string{"name": "must be at least 2 characters"}
	case n > 100:
		return map[string]string{"name": "must be at most 100 characters"}
	}
	return nil
}

func CreateCategory(d Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		var form CreateCategoryForm
		if err := c.ShouldBind(&form); err != nil {
			apperror.Respond(c, apperror.FromBinding(err))
			return
		}
		form.Name = strings.TrimSpace(form.Name)
		if fields := categoryNameProblem(form.Name); fields != nil {
			apperror.Respond(c, apperror.Validation("Invalid input", fields))
			return
		}

		image, err := d.saveOptionalImage(c, categoryImageDir)
		if err != nil {
			apperror.Respond(c, err)
			return
		}
		category := models.Category{
			Name:        form.Name,
			Description: strings.TrimSpace(form.Description),
			Image:       image,
		}
		if category.Image == "" {
			category.Image = models.DefaultCategoryImage
		}

		if err := d.Categories.Create(c.Request.Context(), &category); err != nil {
			_ = d.Uploads.Remove(image)
			apperror.Respond(c, err)
			return
		}

		log.Printf("🗂️ Category %d created: %s", category.ID, category.Name)
		c.JSON(http.StatusCreated, d.presentCategory(c, category))
	}
}

// GetAllCategories returns every category by name. An empty list is not an error.
func GetAllCategories(d Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		categories, err := d.Categories.List(c.Request.Context())
		if err != nil {
			apperror.Respond(c, err)
			return
		}
		out := make([]models.Category, len(categories))
		for i, cat := range categories {
			out[i] = d.presentCategory(c, cat)
		}
		c.JSON(http.StatusOK, out)
	}
}

func GetCategoryByID(d Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c, "category")
		if !ok {
			return
		}
		category, err := d.Categories.Get(c.Request.Context(), id)
		if err != nil {
			apperror.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, d.presentCategory(c, *category))
	}
}

func UpdateCategory(d Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c, "category")
		if !ok {
			return
		}
		var form UpdateCategoryForm
		if err := c.ShouldBind(&form); err != nil {
			apperror.Respond(c, apperror.FromBinding(err))
			return
		}
		if form.Name != nil {
			name := strings.TrimSpace(*form.Name)
			if fields := categoryNameProblem(name); fields != nil {
				apperror.Respond(c, apperror.Validation("Invalid input", fields))
				return
			}
			form.Name = &name
		}

		category, err := d.Categories.Get(c.Request.Context(), id)
		if err != nil {
			apperror.Respond(c, err)
			return
		}
		if form.Name != nil {
			category.Name = *form.Name
		}
		if form.Description != nil {
			category.Description = strings.TrimSpace(*form.Description)
		}

		image, err := d.saveOptionalImage(c, categoryImageDir)
		if err != nil {
			apperror.Respond(c, err)
			return
		}
		oldImage := category.Image
		if image != "" {
			category.Image = image
		}

		if err := d.Categories.Save(c.Request.Context(), category); err != nil {
			_ = d.Uploads.Remove(image)
			apperror.Respond(c, err)
			return
		}
		// 🔥 Delete old image once the new one is saved
		if image != "" {
			if err := d.Uploads.Remove(oldImage); err != nil {
				log.Printf("⚠️ Failed to remove old category image %s: %v", oldImage, err)
			}
		}

		c.JSON(http.StatusOK, d.presentCategory(c, *category))
	}
}

// DeleteCategory removes the category and clears it from its products.
func DeleteCategory(d Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c, "category")
		if !ok {
			return
		}

		category, err := d.Categories.Get(c.Request.Context(), id)
		if err != nil {
			apperror.Respond(c, err)
			return
		}
		if err := d.Categories.Delete(c.Request.Context(), id); err != nil {
			apperror.Respond(c, err)
			return
		}
		if err := d.Uploads.Remove(category.Image); err != nil {
			log.Printf("⚠️ Failed to remove category image %s: %v", category.Image, err)
		}

		c.JSON(http.StatusOK, gin.H{"message": "Category deleted successfully"})
	}
}
