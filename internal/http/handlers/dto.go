package handlers

import (
	"bytes"
	"encoding/json"
	"errors"

	"github.com/rogerio-castellano/chuzone-catalog/internal/catalog"
	"github.com/rogerio-castellano/chuzone-catalog/internal/models"
)

// PriceText accepts a JSON number or a JSON string. Either way the text is
// handed to the catalog's strict parser.
type PriceText string

func (p *PriceText) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*p = PriceText(s)
		return nil
	}
	if bytes.Equal(data, []byte("null")) {
		*p = ""
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return errors.New("price must be a number or a string")
	}
	*p = PriceText(n.String())
	return nil
}

type ProductRequest struct {
	Name     string    `json:"name"`
	Price    PriceText `json:"price" swaggertype:"string" example:"19.99"`
	Category string    `json:"category"`
}

type Meta struct {
	TotalCount int `json:"total_count"`
}

type ProductsSearchResult struct {
	Data []models.Product `json:"data"`
	Meta Meta             `json:"meta"`
}

type FilterRequest struct {
	Filter string `json:"filter"`
}

type FilterResponse struct {
	Filter string `json:"filter"`
}

type StatsResponse struct {
	Count         int      `json:"count"`
	CategoryCount int      `json:"category_count"`
	TotalValue    string   `json:"total_value"`
	Categories    []string `json:"categories"`
}

type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

type ImportProductsResult struct {
	ImportedProductsCount int                  `json:"imported"`
	Errors                []catalog.FieldError `json:"errors"`
}
