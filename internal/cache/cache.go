package cache

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/prakoso/catalog-manager-be/internal/catalog"
)

// Catalog wraps a catalog.Store behind a read cache. Reads are served from
// the cached copy; every successful mutation invalidates it, so the next
// read re-fetches from storage. Consumers therefore never observe a
// mutation without its effect on the following read.
//
// Storage operations are retried with exponential backoff, the same policy
// for reads and writes. Domain errors (not found, duplicate id) are
// terminal and never retried.
type Catalog struct {
	store *catalog.Store

	maxRetries      uint64
	initialInterval time.Duration
	maxInterval     time.Duration

	mu       sync.Mutex
	products []catalog.Product
	valid    bool
}

func New(store *catalog.Store) *Catalog {
	return &Catalog{
		store:           store,
		maxRetries:      3,
		initialInterval: time.Second,
		maxInterval:     30 * time.Second,
	}
}

// SetRetryPolicy overrides the default 3 retries / 1s base / 30s cap.
func (c *Catalog) SetRetryPolicy(maxRetries uint64, initial, max time.Duration) {
	c.maxRetries = maxRetries
	c.initialInterval = initial
	c.maxInterval = max
}

func (c *Catalog) retry(ctx context.Context, op func() error) error {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = c.initialInterval
	bo.MaxInterval = c.maxInterval
	bo.Multiplier = 2
	bo.RandomizationFactor = 0
	bo.MaxElapsedTime = 0

	return backoff.Retry(func() error {
		err := op()
		if errors.Is(err, catalog.ErrProductNotFound) ||
			errors.Is(err, catalog.ErrVariantNotFound) ||
			errors.Is(err, catalog.ErrDuplicateID) {
			return backoff.Permanent(err)
		}
		return err
	}, backoff.WithMaxRetries(backoff.WithContext(bo, ctx), c.maxRetries))
}

// Invalidate drops the cached read; the next Products call hits storage.
func (c *Catalog) Invalidate() {
	c.mu.Lock()
	c.valid = false
	c.products = nil
	c.mu.Unlock()
}

// Products returns the catalog, from cache when valid. A read that still
// fails after retries degrades to empty but is not cached, so the next
// read hits storage again instead of serving a wiped catalog.
func (c *Catalog) Products(ctx context.Context) []catalog.Product {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.valid {
		var products []catalog.Product
		err := c.retry(ctx, func() error {
			var opErr error
			products, opErr = c.store.List(ctx)
			return opErr
		})
		if err != nil {
			log.Printf("catalog: read failed after retries, serving empty: %v", err)
			return []catalog.Product{}
		}
		c.products = products
		c.valid = true
	}
	return copyProducts(c.products)
}

func (c *Catalog) AddProduct(ctx context.Context, p catalog.Product) (catalog.Product, error) {
	var out catalog.Product
	err := c.retry(ctx, func() error {
		var opErr error
		out, opErr = c.store.AddProduct(ctx, p)
		return opErr
	})
	if err != nil {
		return catalog.Product{}, err
	}
	c.Invalidate()
	return out, nil
}

func (c *Catalog) UpdateProduct(ctx context.Context, p catalog.Product) (catalog.Product, error) {
	var out catalog.Product
	err := c.retry(ctx, func() error {
		var opErr error
		out, opErr = c.store.UpdateProduct(ctx, p)
		return opErr
	})
	if err != nil {
		return catalog.Product{}, err
	}
	c.Invalidate()
	return out, nil
}

func (c *Catalog) DeleteProduct(ctx context.Context, id string) error {
	if err := c.retry(ctx, func() error { return c.store.DeleteProduct(ctx, id) }); err != nil {
		return err
	}
	c.Invalidate()
	return nil
}

func (c *Catalog) AddVariant(ctx context.Context, v catalog.Variant) (catalog.Variant, error) {
	var out catalog.Variant
	err := c.retry(ctx, func() error {
		var opErr error
		out, opErr = c.store.AddVariant(ctx, v)
		return opErr
	})
	if err != nil {
		return catalog.Variant{}, err
	}
	c.Invalidate()
	return out, nil
}

func (c *Catalog) UpdateVariant(ctx context.Context, v catalog.Variant) (catalog.Variant, error) {
	var out catalog.Variant
	err := c.retry(ctx, func() error {
		var opErr error
		out, opErr = c.store.UpdateVariant(ctx, v)
		return opErr
	})
	if err != nil {
		return catalog.Variant{}, err
	}
	c.Invalidate()
	return out, nil
}

func (c *Catalog) DeleteVariant(ctx context.Context, id string) error {
	if err := c.retry(ctx, func() error { return c.store.DeleteVariant(ctx, id) }); err != nil {
		return err
	}
	c.Invalidate()
	return nil
}

func copyProducts(products []catalog.Product) []catalog.Product {
	out := make([]catalog.Product, len(products))
	copy(out, products)
	for i := range out {
		variants := make([]catalog.Variant, len(out[i].Variants))
		copy(variants, out[i].Variants)
		out[i].Variants = variants
	}
	return out
}
