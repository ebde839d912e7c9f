package catalog

import (
	"fmt"
	"io"
	"strings"

	"github.com/DillanMilo/angus-biltong-sub000/models"
	"github.com/tealeg/xlsx"
)

var exportHeaders = []string{"ID", "Name", "Price", "SKU", "Category", "Rating", "Images", "CreatedAt"}

// ExportXLSX writes products as a single-sheet spreadsheet. Each product is
// labelled with the category Classify puts it in.
func ExportXLSX(w io.Writer, products []models.Product, r *Resolver) error {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Products")
	if err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}

	header := sheet.AddRow()
	for _, h := range exportHeaders {
		header.AddCell().SetString(h)
	}

	for _, p := range products {
		row := sheet.AddRow()
		row.AddCell().SetInt(p.ID)
		row.AddCell().SetString(p.Name)
		row.AddCell().SetString(p.Price.StringFixed(2))
		row.AddCell().SetString(p.SKU)

		category := ""
		if c, ok := r.Classify(p); ok {
			category = c.Title
		}
		row.AddCell().SetString(category)
		row.AddCell().SetFloat(p.Rating)
		row.AddCell().SetString(strings.Join(p.Images, ","))

		created := ""
		if !p.CreatedAt.IsZero() {
			created = p.CreatedAt.Format("2006-01-02 15:04:05")
		}
		row.AddCell().SetString(created)
	}

	if err := file.Write(w); err != nil {
		return fmt.Errorf("write spreadsheet: %w", err)
	}
	return nil
}
