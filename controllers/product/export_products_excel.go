package productcontroller

import (
	"github.com/alfar-programer/Store-B-sub000/apperror"
	"github.com/alfar-programer/Store-B-sub000/models"
	"github.com/alfar-programer/Store-B-sub000/repository"
	"github.com/gin-gonic/gin"
	"github.com/tealeg/xlsx"
)

const timeLayout = "2006-01-02 15:04:05"

// ExportProductsToExcel handles GET /api/products/export. Image paths are
// written as stored so the sheet can be imported back unchanged.
func ExportProductsToExcel(d Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		products, err := d.Products.List(c.Request.Context(), repository.ProductFilter{})
		if err != nil {
			apperror.Respond(c, err)
			return
		}

		file, err := productWorkbook(products)
		if err != nil {
			apperror.Respond(c, apperror.Internal("Failed to create Excel sheet", err))
			return
		}

		// Set response headers for download
		c.Header("Content-Disposition", "attachment; filename=products.xlsx")
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Header("Content-Transfer-Encoding", "binary")
		c.Header("Expires", "0")

		if err := file.Write(c.Writer); err != nil {
			apperror.Respond(c, apperror.Internal("Failed to write Excel file", err))
			return
		}
	}
}

func productWorkbook(products []models.Product) (*xlsx.File, error) {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Products")
	if err != nil {
		return nil, err
	}

	headerRow := sheet.AddRow()
	for _, h := range sheetColumns {
		headerRow.AddCell().SetValue(h)
	}

	for _, p := range products {
		row := sheet.AddRow()
		row.AddCell().SetValue(p.ID)
		row.AddCell().SetValue(p.Title)
		row.AddCell().SetValue(p.Description)
		row.AddCell().SetValue(p.Price)
		row.AddCell().SetValue(p.Category)
		row.AddCell().SetValue(p.Stock)
		row.AddCell().SetValue(p.Image)
		row.AddCell().SetValue(p.Discount)
		row.AddCell().SetValue(p.Rating)
		row.AddCell().SetValue(p.IsFeatured)
		row.AddCell().SetValue(p.CreatedAt.Format(timeLayout))
		row.AddCell().SetValue(p.UpdatedAt.Format(timeLayout))
	}
	return file, nil
}
