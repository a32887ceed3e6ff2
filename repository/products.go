package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/alfar-programer/Store-B-sub000/apperror"
	"github.com/alfar-programer/Store-B-sub000/models"
	"gorm.io/gorm"
)

// ProductFilter narrows List. Zero values mean "no filter".
type ProductFilter struct {
	Category string
	Search   string
	Featured *bool
}

type Products struct {
	db *gorm.DB
}

func NewProducts(db *gorm.DB) *Products {
	return &Products{db: db}
}

// List returns matching products newest first.
func (r *Products) List(ctx context.Context, f ProductFilter) ([]models.Product, error) {
	query := r.db.WithContext(ctx).Model(&models.Product{})

	if f.Category != "" {
		query = query.Where("LOWER(category) = ?", strings.ToLower(f.Category))
	}
	if f.Search != "" {
		like := "%" + strings.ToLower(f.Search) + "%"
		query = query.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}
	if f.Featured != nil {
		query = query.Where("is_featured = ?", *f.Featured)
	}

	var products []models.Product
	if err := query.Order("created_at DESC, id DESC").Find(&products).Error; err != nil {
		return nil, apperror.FromDB("Products", err)
	}
	return products, nil
}

func (r *Products) Get(ctx context.Context, id uint) (*models.Product, error) {
	var p models.Product
	if err := r.db.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, apperror.FromDB("Product", err)
	}
	return &p, nil
}

func (r *Products) Create(ctx context.Context, p *models.Product) error {
	return apperror.FromDB("Product", r.db.WithContext(ctx).Create(p).Error)
}

// Save persists every column of p, zero values included.
func (r *Products) Save(ctx context.Context, p *models.Product) error {
	return apperror.FromDB("Product", r.db.WithContext(ctx).Save(p).Error)
}

// Delete removes the product. Orders keep their own snapshot, so nothing else is touched.
func (r *Products) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Product{}, id)
	if res.Error != nil {
		return apperror.FromDB("Product", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperror.NotFound("Product")
	}
	return nil
}

// ImportResult counts what Import did with each row.
type ImportResult struct {
	Created int `json:"created_count"`
	Updated int `json:"updated_count"`
	Skipped int `json:"skipped_count"`
}

// Import upserts rows in one transaction: a row whose ID matches an existing
// product overwrites it, every other row is inserted as new.
func (r *Products) Import(ctx context.Context, rows []models.Product) (ImportResult, error) {
	var res ImportResult
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range rows {
			row := rows[i]
			if row.ID != 0 {
				var existing models.Product
				err := tx.First(&existing, row.ID).Error
				if err == nil {
					row.CreatedAt = existing.CreatedAt
					if err := tx.Save(&row).Error; err != nil {
						return err
					}
					res.Updated++
					continue
				}
				if !errors.Is(err, gorm.ErrRecordNotFound) {
					return err
				}
				row.ID = 0
			}
			// a failed insert must not poison the surrounding transaction
			if err := tx.SavePoint("import_row").Error; err != nil {
				return err
			}
			if err := tx.Create(&row).Error; err != nil {
				if err := tx.RollbackTo("import_row").Error; err != nil {
					return err
				}
				res.Skipped++
				continue
			}
			res.Created++
		}
		return nil
	})
	if err != nil {
		return ImportResult{}, apperror.FromDB("Products", err)
	}
	return res, nil
}
