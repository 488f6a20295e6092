package catalog

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/rogerio-castellano/chuzone-catalog/internal/models"
)

// IDStrategy names how new product ids are allocated.
type IDStrategy string

const (
	// IDSequence allocates numeric ids derived from the current millisecond,
	// bumped past the last allocated value so they strictly increase.
	IDSequence IDStrategy = "sequence"
	// IDUUID allocates random UUID strings.
	IDUUID IDStrategy = "uuid"
)

// IDAllocator hands out product ids.
type IDAllocator interface {
	Next(now time.Time) models.ProductID
	// Observe lets the allocator account for ids already in the catalog.
	Observe(products []models.Product)
}

// NewIDAllocator returns the allocator for strategy.
func NewIDAllocator(strategy IDStrategy) (IDAllocator, error) {
	switch strategy {
	case "", IDSequence:
		return &sequenceAllocator{}, nil
	case IDUUID:
		return uuidAllocator{}, nil
	default:
		return nil, fmt.Errorf("unknown id strategy %q", strategy)
	}
}

type sequenceAllocator struct {
	last int64
}

func (a *sequenceAllocator) Next(now time.Time) models.ProductID {
	n := now.UnixMilli()
	if n <= a.last {
		n = a.last + 1
	}
	a.last = n
	return models.NumericID(n)
}

func (a *sequenceAllocator) Observe(products []models.Product) {
	for _, p := range products {
		if n, ok := p.ID.Int64(); ok && n > a.last {
			a.last = n
		}
	}
}

type uuidAllocator struct{}

func (uuidAllocator) Next(time.Time) models.ProductID {
	return models.StringID(uuid.NewString())
}

func (uuidAllocator) Observe([]models.Product) {}
