package catalog

import (
	"github.com/shopspring/decimal"

	"github.com/rogerio-castellano/chuzone-catalog/internal/models"
)

// AllCategories is the filter value that shows every product.
const AllCategories = "all"

// Stats are computed over the whole catalog, never the filtered view.
type Stats struct {
	Count         int    `json:"count"`
	CategoryCount int    `json:"category_count"`
	TotalValue    string `json:"total_value"`

	total decimal.Decimal
}

// View is everything a surface needs to render the catalog.
type View struct {
	Filter     string           `json:"filter"`
	Products   []models.Product `json:"products"`
	Categories []string         `json:"categories"`
	Stats      Stats            `json:"stats"`
	Warnings   []string         `json:"warnings,omitempty"`
}

// Derive recomputes the filtered list, the category options and the stats.
func (c *Catalog) Derive() View {
	c.mu.Lock()
	defer c.mu.Unlock()

	view := View{
		Filter:     c.filter,
		Products:   filterProducts(c.products, c.filter),
		Categories: categoriesOf(c.products),
		Stats:      computeStats(c.products),
	}
	for _, w := range []string{c.loadWarning, c.syncWarning} {
		if w != "" {
			view.Warnings = append(view.Warnings, w)
		}
	}
	return view
}

// categoriesOf returns "all" followed by the distinct categories in first-seen order.
func categoriesOf(products []models.Product) []string {
	seen := make(map[string]struct{}, len(products))
	categories := []string{AllCategories}
	for _, p := range products {
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		categories = append(categories, p.Category)
	}
	return categories
}

func filterProducts(products []models.Product, filter string) []models.Product {
	if filter == AllCategories {
		return append([]models.Product{}, products...)
	}
	filtered := []models.Product{}
	for _, p := range products {
		if p.Category == filter {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

// FormatPrice renders a price with two decimals, rounding halves away from
// zero like the stats total.
func FormatPrice(p float64) string {
	return decimal.NewFromFloat(p).StringFixed(2)
}

func computeStats(products []models.Product) Stats {
	total := decimal.Zero
	for _, p := range products {
		total = total.Add(decimal.NewFromFloat(p.Price))
	}
	return Stats{
		Count:         len(products),
		CategoryCount: len(categoriesOf(products)) - 1,
		TotalValue:    total.StringFixed(2),
		total:         total,
	}
}

// ProductsIn returns the products of one category without touching the
// current filter. An empty category or "all" returns everything.
func (c *Catalog) ProductsIn(category string) []models.Product {
	if category == "" {
		category = AllCategories
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return filterProducts(c.products, category)
}
