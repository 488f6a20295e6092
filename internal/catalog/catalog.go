// Package catalog holds the product catalog state: the ordered product list,
// the category filter, the pending destructive actions, and the rule that
// keeps the persisted slot in step with memory.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/rogerio-castellano/chuzone-catalog/internal/models"
	"github.com/rogerio-castellano/chuzone-catalog/internal/repo"
)

// DefaultKey is the slot holding the serialized product list.
const DefaultKey = "chuzone-products"

// SyncPolicy decides what storage receives when a delete empties the catalog.
type SyncPolicy string

const (
	// SyncLegacy skips the write when a delete leaves the list empty, so the
	// previous snapshot stays in storage.
	SyncLegacy SyncPolicy = "legacy"
	// SyncStrict writes the empty list so storage always matches memory.
	SyncStrict SyncPolicy = "strict"
)

// Recorder receives catalog events. The metrics package implements it.
type Recorder interface {
	Mutation(operation string)
	SyncFailure(operation string)
	Observe(products, categories int, totalValue float64)
}

type nopRecorder struct{}

func (nopRecorder) Mutation(string)           {}
func (nopRecorder) SyncFailure(string)        {}
func (nopRecorder) Observe(int, int, float64) {}

// Options configures a Catalog. Zero values pick the defaults.
type Options struct {
	Key        string
	SyncPolicy SyncPolicy
	IDStrategy IDStrategy
	ConfirmTTL time.Duration
	Clock      func() time.Time
	Logger     *zap.Logger
	Recorder   Recorder
}

// ProductInput is the raw text of the add form.
type ProductInput struct {
	Name     string `validate:"required"`
	Price    string `validate:"required"`
	Category string `validate:"required"`
}

// Catalog is the state container behind every user surface.
type Catalog struct {
	mu sync.Mutex

	store      repo.KeyValueRepository
	key        string
	policy     SyncPolicy
	ids        IDAllocator
	confirmTTL time.Duration
	clock      func() time.Time
	log        *zap.Logger
	recorder   Recorder
	validate   *validator.Validate

	products    []models.Product
	filter      string
	pending     map[string]Confirmation
	loadWarning string
	syncWarning string
}

// New builds a catalog over store. Call Load before using it.
func New(store repo.KeyValueRepository, opts Options) (*Catalog, error) {
	ids, err := NewIDAllocator(opts.IDStrategy)
	if err != nil {
		return nil, err
	}

	c := &Catalog{
		store:      store,
		key:        opts.Key,
		policy:     opts.SyncPolicy,
		ids:        ids,
		confirmTTL: opts.ConfirmTTL,
		clock:      opts.Clock,
		log:        opts.Logger,
		recorder:   opts.Recorder,
		validate:   validator.New(),
		products:   []models.Product{},
		filter:     AllCategories,
		pending:    map[string]Confirmation{},
	}

	switch c.policy {
	case "":
		c.policy = SyncLegacy
	case SyncLegacy, SyncStrict:
	default:
		return nil, fmt.Errorf("unknown sync policy %q", opts.SyncPolicy)
	}
	if c.key == "" {
		c.key = DefaultKey
	}
	if c.confirmTTL <= 0 {
		c.confirmTTL = 5 * time.Minute
	}
	if c.clock == nil {
		c.clock = time.Now
	}
	if c.log == nil {
		c.log = zap.NewNop()
	}
	if c.recorder == nil {
		c.recorder = nopRecorder{}
	}
	return c, nil
}

// Key returns the storage key the catalog syncs to.
func (c *Catalog) Key() string {
	return c.key
}

// Load reads the stored list, or seeds and persists the demo catalog when the
// slot is empty or unreadable.
func (c *Catalog) Load(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	raw, found, err := c.store.Get(ctx, c.key)
	if err != nil {
		return fmt.Errorf("failed to read catalog %q: %w", c.key, err)
	}

	if found {
		products, err := decodeProducts(raw)
		if err == nil {
			c.products = products
			c.ids.Observe(products)
			c.observe()
			c.log.Info("catalog loaded", zap.String("key", c.key), zap.Int("products", len(products)))
			return nil
		}
		c.loadWarning = "Stored catalog was unreadable; the demo catalog was restored."
		c.log.Warn("stored catalog is corrupted, reseeding",
			zap.String("key", c.key),
			zap.Int("bytes", len(raw)),
			zap.Error(err))
	}

	c.products = Seed(c.clock())
	c.ids.Observe(c.products)
	c.log.Info("catalog seeded", zap.String("key", c.key), zap.Int("products", len(c.products)))
	c.persist(ctx, "seed")
	c.observe()
	return nil
}

func decodeProducts(raw string) ([]models.Product, error) {
	var products []models.Product
	if err := json.Unmarshal([]byte(raw), &products); err != nil {
		return nil, err
	}
	if products == nil {
		return nil, errors.New("stored catalog is not a list")
	}
	return products, nil
}

// AddProduct validates the form input and prepends the new product.
func (c *Catalog) AddProduct(ctx context.Context, in ProductInput) (models.Product, error) {
	in = ProductInput{
		Name:     strings.TrimSpace(in.Name),
		Price:    strings.TrimSpace(in.Price),
		Category: strings.TrimSpace(in.Category),
	}
	price, err := c.checkInput(in)
	if err != nil {
		return models.Product{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.clock()
	id := c.ids.Next(now)
	for c.indexOf(id) >= 0 {
		id = c.ids.Next(now)
	}

	p := models.Product{
		ID:        id,
		Name:      in.Name,
		Price:     price,
		Category:  in.Category,
		CreatedAt: now.UTC().Truncate(time.Millisecond),
	}

	products := make([]models.Product, 0, len(c.products)+1)
	products = append(products, p)
	c.products = append(products, c.products...)

	c.log.Info("product added",
		zap.Stringer("id", p.ID),
		zap.String("name", p.Name),
		zap.Float64("price", p.Price),
		zap.String("category", p.Category))
	c.recorder.Mutation("add")
	c.syncAfterMutation(ctx, "add")
	c.observe()
	return p, nil
}

// checkInput runs the required-field pass first and parses the price only
// once every field is present.
func (c *Catalog) checkInput(in ProductInput) (float64, error) {
	if err := c.validate.Struct(in); err != nil {
		verrs, ok := err.(validator.ValidationErrors)
		if !ok {
			return 0, err
		}
		fields := make([]FieldError, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, FieldError{
				Field:       fe.Field(),
				Description: fe.Field() + " is required",
			})
		}
		return 0, &ValidationError{Fields: fields}
	}

	d, err := decimal.NewFromString(strings.Replace(in.Price, ",", ".", 1))
	if err != nil {
		return 0, &ValidationError{Fields: []FieldError{{Field: "Price", Description: "Price must be a number"}}}
	}
	if d.IsNegative() {
		return 0, &ValidationError{Fields: []FieldError{{Field: "Price", Description: "Price cannot be negative"}}}
	}
	price := d.InexactFloat64()
	if math.IsInf(price, 0) {
		return 0, &ValidationError{Fields: []FieldError{{Field: "Price", Description: "Price must be a number"}}}
	}
	return price, nil
}

// SetFilter selects the category shown by Derive. Any value is accepted; an
// unknown category simply yields an empty view.
func (c *Catalog) SetFilter(value string) {
	value = strings.TrimSpace(value)
	if value == "" {
		value = AllCategories
	}

	c.mu.Lock()
	c.filter = value
	c.mu.Unlock()
}

// Filter returns the current category filter.
func (c *Catalog) Filter() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.filter
}

// Products returns a copy of the full list, newest first.
func (c *Catalog) Products() []models.Product {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]models.Product(nil), c.products...)
}

// Product looks a product up by id.
func (c *Catalog) Product(id models.ProductID) (models.Product, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if i := c.indexOf(id); i >= 0 {
		return c.products[i], true
	}
	return models.Product{}, false
}

func (c *Catalog) indexOf(id models.ProductID) int {
	for i, p := range c.products {
		if p.ID.Equal(id) {
			return i
		}
	}
	return -1
}

// deleteProduct removes id keeping the order of the rest. Unknown ids leave
// the list as it was, and the list is synced either way.
func (c *Catalog) deleteProduct(ctx context.Context, id models.ProductID) {
	remaining := make([]models.Product, 0, len(c.products))
	for _, p := range c.products {
		if !p.ID.Equal(id) {
			remaining = append(remaining, p)
		}
	}
	removed := len(c.products) - len(remaining)
	c.products = remaining

	c.log.Info("product deleted", zap.Stringer("id", id), zap.Int("removed", removed))
	c.recorder.Mutation("delete")
	c.syncAfterMutation(ctx, "delete")
	c.observe()
}

// clearAll empties the list and removes the stored key outright.
func (c *Catalog) clearAll(ctx context.Context) {
	c.products = []models.Product{}

	c.log.Info("catalog cleared", zap.String("key", c.key))
	c.recorder.Mutation("clear")
	if err := c.store.Delete(ctx, c.key); err != nil {
		c.syncFailed("clear", err)
	} else {
		c.syncWarning = ""
	}
	c.observe()
}

func (c *Catalog) syncAfterMutation(ctx context.Context, op string) {
	if len(c.products) > 0 || c.policy == SyncStrict {
		c.persist(ctx, op)
		return
	}
	c.log.Debug("sync skipped for empty catalog", zap.String("operation", op))
}

// persist overwrites the slot with the full list. A failure keeps memory as
// the source of truth and surfaces a warning.
func (c *Catalog) persist(ctx context.Context, op string) {
	data, err := json.Marshal(c.products)
	if err != nil {
		c.syncFailed(op, err)
		return
	}
	if err := c.store.Set(ctx, c.key, string(data)); err != nil {
		c.syncFailed(op, err)
		return
	}
	c.syncWarning = ""
}

func (c *Catalog) syncFailed(op string, err error) {
	c.syncWarning = "Changes could not be saved; they are kept for this session only."
	c.recorder.SyncFailure(op)
	c.log.Warn("catalog sync failed",
		zap.String("operation", op),
		zap.String("key", c.key),
		zap.Error(err))
}

func (c *Catalog) observe() {
	stats := computeStats(c.products)
	c.recorder.Observe(stats.Count, stats.CategoryCount, stats.total.InexactFloat64())
}
