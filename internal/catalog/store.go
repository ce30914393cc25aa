package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"log"

	"github.com/prakoso/catalog-manager-be/internal/storage"
)

// Store is the persistence layer for one personal catalog. The entire
// product collection lives as a JSON array in a single storage slot;
// every mutation is a full read-modify-write of that slot.
type Store struct {
	slot storage.Slot
	key  string
}

func NewStore(slot storage.Slot, key string) *Store {
	return &Store{slot: slot, key: key}
}

func (s *Store) load(ctx context.Context) ([]Product, error) {
	payload, err := s.slot.Load(ctx, s.key)
	if errors.Is(err, storage.ErrNoData) {
		return []Product{}, nil
	}
	if err != nil {
		return nil, err
	}

	var products []Product
	if err := json.Unmarshal(payload, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (s *Store) save(ctx context.Context, products []Product) error {
	payload, err := json.Marshal(products)
	if err != nil {
		return err
	}
	return s.slot.Save(ctx, s.key, payload)
}

// List returns the stored collection. A slot that was never written reads
// as empty; anything else (unreachable storage, corrupt payload) is an
// error so callers can retry before degrading.
func (s *Store) List(ctx context.Context) ([]Product, error) {
	return s.load(ctx)
}

// ListProducts is the never-fails boundary read: storage that cannot be
// reached reads as empty.
func (s *Store) ListProducts(ctx context.Context) []Product {
	products, err := s.load(ctx)
	if err != nil {
		log.Printf("catalog: list %s unavailable, treating as empty: %v", s.key, err)
		return []Product{}
	}
	return products
}

// AddProduct appends p with its variants forced empty. Variants are only
// ever attached through AddVariant. A duplicate id is rejected.
func (s *Store) AddProduct(ctx context.Context, p Product) (Product, error) {
	products, err := s.load(ctx)
	if err != nil {
		return Product{}, err
	}

	for _, existing := range products {
		if existing.ID == p.ID {
			return Product{}, ErrDuplicateID
		}
	}

	p.Variants = []Variant{}
	if err := s.save(ctx, append(products, p)); err != nil {
		return Product{}, err
	}
	return p, nil
}

// UpdateProduct replaces every field of the stored product except its
// variants, which are always preserved from the stored copy. Returns the
// merged record as persisted.
func (s *Store) UpdateProduct(ctx context.Context, p Product) (Product, error) {
	products, err := s.load(ctx)
	if err != nil {
		return Product{}, err
	}

	for i := range products {
		if products[i].ID == p.ID {
			p.Variants = products[i].Variants
			products[i] = p
			if err := s.save(ctx, products); err != nil {
				return Product{}, err
			}
			return p, nil
		}
	}
	return Product{}, ErrProductNotFound
}

// DeleteProduct removes the product and, with it, all of its variants.
// A missing id is a no-op, not an error.
func (s *Store) DeleteProduct(ctx context.Context, id string) error {
	products, err := s.load(ctx)
	if err != nil {
		return err
	}

	kept := make([]Product, 0, len(products))
	for _, p := range products {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	return s.save(ctx, kept)
}

// AddVariant appends v to the product referenced by v.ProductID.
func (s *Store) AddVariant(ctx context.Context, v Variant) (Variant, error) {
	products, err := s.load(ctx)
	if err != nil {
		return Variant{}, err
	}

	for i := range products {
		if products[i].ID == v.ProductID {
			products[i].Variants = append(products[i].Variants, v)
			if err := s.save(ctx, products); err != nil {
				return Variant{}, err
			}
			return v, nil
		}
	}
	return Variant{}, ErrProductNotFound
}

// UpdateVariant replaces the variant in place within its owning product.
func (s *Store) UpdateVariant(ctx context.Context, v Variant) (Variant, error) {
	products, err := s.load(ctx)
	if err != nil {
		return Variant{}, err
	}

	for i := range products {
		if products[i].ID != v.ProductID {
			continue
		}
		for j := range products[i].Variants {
			if products[i].Variants[j].ID == v.ID {
				products[i].Variants[j] = v
				if err := s.save(ctx, products); err != nil {
					return Variant{}, err
				}
				return v, nil
			}
		}
		return Variant{}, ErrVariantNotFound
	}
	return Variant{}, ErrProductNotFound
}

// DeleteVariant removes the first variant with the given id, scanning all
// products. Variant ids are globally unique so the scan stops at the first
// match. A missing id is a no-op.
func (s *Store) DeleteVariant(ctx context.Context, id string) error {
	products, err := s.load(ctx)
	if err != nil {
		return err
	}

	for i := range products {
		for j, v := range products[i].Variants {
			if v.ID == id {
				products[i].Variants = append(products[i].Variants[:j], products[i].Variants[j+1:]...)
				return s.save(ctx, products)
			}
		}
	}
	return s.save(ctx, products)
}
