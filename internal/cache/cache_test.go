package cache

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prakoso/catalog-manager-be/internal/catalog"
	"github.com/prakoso/catalog-manager-be/internal/storage"
)

// flakySlot fails the first failures calls of each method, then delegates.
type flakySlot struct {
	mu       sync.Mutex
	inner    storage.Slot
	failures int
	calls    int
}

func (f *flakySlot) Load(ctx context.Context, key string) ([]byte, error) {
	f.mu.Lock()
	f.calls++
	failing := f.calls <= f.failures
	f.mu.Unlock()

	if failing {
		return nil, errors.New("transient storage failure")
	}
	return f.inner.Load(ctx, key)
}

func (f *flakySlot) Save(ctx context.Context, key string, payload []byte) error {
	return f.inner.Save(ctx, key, payload)
}

func newFastCatalog(slot storage.Slot) *Catalog {
	c := New(catalog.NewStore(slot, "catalog:test"))
	c.SetRetryPolicy(3, time.Millisecond, 4*time.Millisecond)
	return c
}

func TestProductsCaching(t *testing.T) {
	ctx := context.Background()
	slot := storage.NewMemorySlot()
	store := catalog.NewStore(slot, "catalog:test")
	cached := newFastCatalog(slot)

	_, err := store.AddProduct(ctx, catalog.Product{ID: "p1", Title: "Cap"})
	require.NoError(t, err)

	require.Len(t, cached.Products(ctx), 1)

	t.Run("reads are served from cache until invalidated", func(t *testing.T) {
		// write behind the cache's back
		_, err := store.AddProduct(ctx, catalog.Product{ID: "p2", Title: "Shirt"})
		require.NoError(t, err)

		assert.Len(t, cached.Products(ctx), 1)

		cached.Invalidate()
		assert.Len(t, cached.Products(ctx), 2)
	})

	t.Run("returned slice does not alias the cache", func(t *testing.T) {
		products := cached.Products(ctx)
		products[0].Title = "mutated"

		assert.Equal(t, "Cap", cached.Products(ctx)[0].Title)
	})
}

func TestMutationsInvalidate(t *testing.T) {
	ctx := context.Background()
	cached := newFastCatalog(storage.NewMemorySlot())

	assert.Empty(t, cached.Products(ctx))

	p, err := cached.AddProduct(ctx, catalog.Product{ID: "p1", Title: "Cap", Description: "Plain cap"})
	require.NoError(t, err)

	// read after write observes the mutation without an explicit refresh
	products := cached.Products(ctx)
	require.Len(t, products, 1)
	assert.Equal(t, p.ID, products[0].ID)

	_, err = cached.AddVariant(ctx, catalog.Variant{ID: "v1", ProductID: "p1", Name: "Red/L", SKU: "CAP-R-L", Price: 10, Stock: 5})
	require.NoError(t, err)
	require.Len(t, cached.Products(ctx)[0].Variants, 1)

	_, err = cached.UpdateVariant(ctx, catalog.Variant{ID: "v1", ProductID: "p1", Name: "Red/XL", SKU: "CAP-R-XL", Price: 12, Stock: 2})
	require.NoError(t, err)
	assert.Equal(t, "Red/XL", cached.Products(ctx)[0].Variants[0].Name)

	require.NoError(t, cached.DeleteVariant(ctx, "v1"))
	assert.Empty(t, cached.Products(ctx)[0].Variants)

	_, err = cached.UpdateProduct(ctx, catalog.Product{ID: "p1", Title: "Better cap", Description: "Upgraded"})
	require.NoError(t, err)
	assert.Equal(t, "Better cap", cached.Products(ctx)[0].Title)

	require.NoError(t, cached.DeleteProduct(ctx, "p1"))
	assert.Empty(t, cached.Products(ctx))
}

func TestRetryPolicy(t *testing.T) {
	ctx := context.Background()

	t.Run("transient failures are retried", func(t *testing.T) {
		slot := &flakySlot{inner: storage.NewMemorySlot(), failures: 2}
		cached := newFastCatalog(slot)

		_, err := cached.AddProduct(ctx, catalog.Product{ID: "p1", Title: "Cap"})
		require.NoError(t, err)
		assert.Len(t, cached.Products(ctx), 1)
	})

	t.Run("exhausted retries surface the failure", func(t *testing.T) {
		slot := &flakySlot{inner: storage.NewMemorySlot(), failures: 10}
		cached := newFastCatalog(slot)

		_, err := cached.AddProduct(ctx, catalog.Product{ID: "p1", Title: "Cap"})
		assert.Error(t, err)
	})

	t.Run("transient read failures are retried", func(t *testing.T) {
		inner := storage.NewMemorySlot()
		seed := catalog.NewStore(inner, "catalog:test")
		_, err := seed.AddProduct(ctx, catalog.Product{ID: "p1", Title: "Cap"})
		require.NoError(t, err)

		slot := &flakySlot{inner: inner, failures: 1}
		cached := newFastCatalog(slot)

		products := cached.Products(ctx)
		require.Len(t, products, 1)
		assert.Equal(t, "p1", products[0].ID)
	})

	t.Run("a failed read is not cached as an empty catalog", func(t *testing.T) {
		inner := storage.NewMemorySlot()
		seed := catalog.NewStore(inner, "catalog:test")
		_, err := seed.AddProduct(ctx, catalog.Product{ID: "p1", Title: "Cap"})
		require.NoError(t, err)

		// fails the first read entirely (initial attempt plus 3 retries)
		slot := &flakySlot{inner: inner, failures: 4}
		cached := newFastCatalog(slot)

		assert.Empty(t, cached.Products(ctx))

		// storage recovered; the empty result must not have stuck
		products := cached.Products(ctx)
		require.Len(t, products, 1)
		assert.Equal(t, "p1", products[0].ID)
	})

	t.Run("domain errors are not retried", func(t *testing.T) {
		slot := &flakySlot{inner: storage.NewMemorySlot(), failures: 0}
		cached := newFastCatalog(slot)

		_, err := cached.UpdateProduct(ctx, catalog.Product{ID: "ghost", Title: "Ghost"})
		assert.ErrorIs(t, err, catalog.ErrProductNotFound)

		slot.mu.Lock()
		defer slot.mu.Unlock()
		assert.Equal(t, 1, slot.calls)
	})
}
