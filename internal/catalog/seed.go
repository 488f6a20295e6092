package catalog

import (
	"time"

	"github.com/rogerio-castellano/chuzone-catalog/internal/models"
)

// Seed returns the demo catalog used when nothing was stored yet.
func Seed(now time.Time) []models.Product {
	createdAt := now.UTC().Truncate(time.Millisecond)
	return []models.Product{
		{ID: models.NumericID(1), Name: "MacBook Pro M3", Price: 2499, Category: "Informatique", CreatedAt: createdAt},
		{ID: models.NumericID(2), Name: "iPhone 15 Pro", Price: 1299, Category: "Téléphonie", CreatedAt: createdAt},
		{ID: models.NumericID(3), Name: "AirPods Pro", Price: 279, Category: "Audio", CreatedAt: createdAt},
	}
}
