package productcontroller

import (
	"net/http"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/alfar-programer/Store-B-sub000/apperror"
	"github.com/alfar-programer/Store-B-sub000/models"
	"github.com/gin-gonic/gin"
	"github.com/tealeg/xlsx"
)

// sheetColumns is the layout shared by import and export.
var sheetColumns = []string{
	"ID", "Title", "Description", "Price", "Category", "Stock",
	"Image", "Discount", "Rating", "IsFeatured", "CreatedAt", "UpdatedAt",
}

// minImportColumns covers ID through Image; the rest are optional.
const minImportColumns = 7

// ImportProductsFromExcel handles POST /api/products/import. Rows whose ID
// matches an existing product overwrite it; other valid rows are inserted.
func ImportProductsFromExcel(d Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		excelFileHeader, err := c.FormFile("file")
		if err != nil {
			apperror.Respond(c, apperror.Validation("Excel file is required", map[string]string{"file": "is required"}))
			return
		}

		file, err := excelFileHeader.Open()
		if err != nil {
			apperror.Respond(c, apperror.Internal("Failed to open Excel file", err))
			return
		}
		defer file.Close()

		xlFile, err := xlsx.OpenReaderAt(file, excelFileHeader.Size)
		if err != nil {
			apperror.Respond(c, apperror.Validation("Failed to parse Excel file", map[string]string{"file": "must be an .xlsx workbook"}))
			return
		}
		if len(xlFile.Sheets) == 0 || xlFile.Sheets[0].MaxRow < 2 {
			apperror.Respond(c, apperror.Validation("Excel file is empty or missing header row", nil))
			return
		}

		rows, skipped := parseProductSheet(xlFile.Sheets[0])
		result, err := d.Products.Import(c.Request.Context(), rows)
		if err != nil {
			apperror.Respond(c, err)
			return
		}
		result.Skipped += skipped

		c.JSON(http.StatusOK, gin.H{
			"message":       "Import completed",
			"created_count": result.Created,
			"updated_count": result.Updated,
			"skipped_count": result.Skipped,
		})
	}
}

// parseProductSheet reads every row after the header. Rows that are short,
// unparsable or fail product validation are counted as skipped.
func parseProductSheet(sheet *xlsx.Sheet) ([]models.Product, int) {
	var products []models.Product
	skipped := 0

	for i := 1; i < len(sheet.Rows); i++ {
		row := sheet.Rows[i]
		if row == nil || len(row.Cells) < minImportColumns {
			skipped++
			continue
		}
		get := func(index int) string {
			if index < len(row.Cells) {
				return strings.TrimSpace(row.Cells[index].String())
			}
			return ""
		}

		price, err := strconv.ParseFloat(get(3), 64)
		if err != nil {
			skipped++
			continue
		}
		p := models.Product{
			Title:       get(1),
			Description: get(2),
			Price:       price,
			Category:    get(4),
			Image:       get(6),
			Rating:      models.DefaultRating,
		}
		if id, err := strconv.ParseUint(get(0), 10, 64); err == nil {
			p.ID = uint(id)
		}
		if v := get(5); v != "" {
			if p.Stock, err = strconv.Atoi(v); err != nil {
				skipped++
				continue
			}
		}
		if v := get(7); v != "" {
			if p.Discount, err = strconv.Atoi(v); err != nil {
				skipped++
				continue
			}
		}
		if v := get(8); v != "" {
			if p.Rating, err = strconv.ParseFloat(v, 64); err != nil {
				skipped++
				continue
			}
		}
		if v := get(9); v != "" {
			p.IsFeatured, _ = strconv.ParseBool(v)
		}

		if !validProduct(p) {
			skipped++
			continue
		}
		products = append(products, p)
	}
	return products, skipped
}

// validProduct applies the same bounds as the product forms.
func validProduct(p models.Product) bool {
	return len(productProblems(p)) == 0
}

// productProblems checks a trimmed product against the form bounds and
// reports them per field.
func productProblems(p models.Product) map[string]string {
	fields := map[string]string{}
	if n := utf8.RuneCountInString(p.Title); n < 3 {
		fields["title"] = "must be at least 3 characters"
	} else if n > 255 {
		fields["title"] = "must be at most 255 characters"
	}
	if n := utf8.RuneCountInString(p.Description); n < 1 {
		fields["description"] = "is required"
	} else if n > 5000 {
		fields["description"] = "must be at most 5000 characters"
	}
	if utf8.RuneCountInString(p.Category) > 100 {
		fields["category"] = "must be at most 100 characters"
	}
	if p.Price < 0 {
		fields["price"] = "must be greater than or equal to 0"
	} else if p.Price > models.MaxAmount {
		fields["price"] = "must be at most 99999999.99"
	}
	if p.Stock < 0 {
		fields["stock"] = "must be greater than or equal to 0"
	}
	if p.Discount < 0 || p.Discount > 100 {
		fields["discount"] = "must be between 0 and 100"
	}
	if p.Rating < 0 || p.Rating > 5 {
		fields["rating"] = "must be between 0 and 5"
	}
	return fields
}
