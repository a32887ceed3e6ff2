package repository

import (
	"context"
	"errors"

	"github.com/alfar-programer/Store-B-sub000/apperror"
	"github.com/alfar-programer/Store-B-sub000/models"
	"gorm.io/gorm"
)

type Categories struct {
	db *gorm.DB
}

func NewCategories(db *gorm.DB) *Categories {
	return &Categories{db: db}
}

func (r *Categories) List(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&categories).Error; err != nil {
		return nil, apperror.FromDB("Categories", err)
	}
	return categories, nil
}

func (r *Categories) Get(ctx context.Context, id uint) (*models.Category, error) {
	var c models.Category
	if err := r.db.WithContext(ctx).First(&c, id).Error; err != nil {
		return nil, apperror.FromDB("Category", err)
	}
	return &c, nil
}

func (r *Categories) Create(ctx context.Context, c *models.Category) error {
	if err := r.ensureNameFree(ctx, c.Name, 0); err != nil {
		return err
	}
	return r.translate(r.db.WithContext(ctx).Create(c).Error)
}

// Save updates c. A rename is carried over to the products filed under the old name.
func (r *Categories) Save(ctx context.Context, c *models.Category) error {
	if err := r.ensureNameFree(ctx, c.Name, c.ID); err != nil {
		return err
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current models.Category
		if err := tx.First(&current, c.ID).Error; err != nil {
			return err
		}
		if current.Name != c.Name {
			if err := tx.Model(&models.Product{}).
				Where("category = ?", current.Name).
				Update("category", c.Name).Error; err != nil {
				return err
			}
		}
		return tx.Save(c).Error
	})
	return r.translate(err)
}

// Delete removes the category and clears it from the products filed under it.
func (r *Categories) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current models.Category
		if err := tx.First(&current, id).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Product{}).
			Where("category = ?", current.Name).
			Update("category", "").Error; err != nil {
			return err
		}
		return tx.Delete(&current).Error
	})
	return apperror.FromDB("Category", err)
}

func (r *Categories) ensureNameFree(ctx context.Context, name string, exceptID uint) error {
	var count int64
	q := r.db.WithContext(ctx).Model(&models.Category{}).Where("LOWER(name) = LOWER(?)", name)
	if exceptID != 0 {
		q = q.Where("id <> ?", exceptID)
	}
	if err := q.Count(&count).Error; err != nil {
		return apperror.FromDB("Category", err)
	}
	if count > 0 {
		return apperror.Conflict("Category name already exists")
	}
	return nil
}

func (r *Categories) translate(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperror.Conflict("Category name already exists")
	}
	return apperror.FromDB("Category", err)
}
