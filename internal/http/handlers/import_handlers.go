package handlers

import (
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/rogerio-castellano/chuzone-catalog/internal/catalog"
)

var csvColumns = []string{"name", "price", "category"}

func parseCSV(file io.Reader) ([]catalog.ProductInput, error) {
	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	headers, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("invalid CSV header")
	}

	index := map[string]int{}
	for i, h := range headers {
		index[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, col := range csvColumns {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("missing CSV column %q", col)
		}
	}

	field := func(record []string, col string) string {
		if i := index[col]; i < len(record) {
			return record[i]
		}
		return ""
	}

	var rows []catalog.ProductInput
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("CSV read error: %v", err)
		}
		rows = append(rows, catalog.ProductInput{
			Name:     field(record, "name"),
			Price:    field(record, "price"),
			Category: field(record, "category"),
		})
	}
	return rows, nil
}

// ImportProductsHandler godoc
// @Summary Import products via CSV
// @Description Columns name, price and category. Rows are added in file order, so the last row ends up first.
// @Tags import
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "CSV file"
// @Success 200 {object} ImportProductsResult
// @Failure 400 {string} string "Invalid file"
// @Router /api/products/import [post]
func (s *Server) ImportProductsHandler(w http.ResponseWriter, r *http.Request) {
	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "missing file", http.StatusBadRequest)
		return
	}
	defer file.Close()

	records, err := parseCSV(file)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	result := ImportProductsResult{Errors: []catalog.FieldError{}}
	for i, rec := range records {
		rowNum := i + 2 // header is row 1

		if _, err := s.catalog.AddProduct(r.Context(), rec); err != nil {
			fields, ok := validationErrors(err)
			if !ok {
				s.log.Error("import failed", zap.Int("row", rowNum), zap.Error(err))
				http.Error(w, "could not import products", http.StatusInternalServerError)
				return
			}
			for _, f := range fields {
				result.Errors = append(result.Errors, catalog.FieldError{
					Field:       f.Field,
					Description: fmt.Sprintf("row %d: %s", rowNum, f.Description),
				})
			}
			continue
		}
		result.ImportedProductsCount++
	}

	s.log.Info("products imported",
		zap.Int("imported", result.ImportedProductsCount),
		zap.Int("rejected", len(records)-result.ImportedProductsCount))
	s.respond(w, http.StatusOK, result)
}
