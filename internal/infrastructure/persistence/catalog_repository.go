package persistence

import (
	"context"
	"fmt"
	"slices"

	"github.com/satyaprakrati/cozico/internal/domain/catalog"
	"github.com/satyaprakrati/cozico/internal/domain/shared"
)

// StaticCatalogRepository serves the compiled-in catalog.
// It is immutable after construction and safe for concurrent use.
type StaticCatalogRepository struct {
	products    []catalog.Product
	byID        map[string]int
	collections []catalog.Collection
	taxonomy    catalog.Taxonomy
}

// NewStaticCatalogRepository loads and validates the built-in catalog
func NewStaticCatalogRepository() (*StaticCatalogRepository, error) {
	return newCatalogRepository(seedProducts(), seedTaxonomy(), seedCollections())
}

// newCatalogRepository builds a repository from the given records.
// Every product must validate, IDs must be unique and every collection member
// must exist.
func newCatalogRepository(products []catalog.Product, taxonomy catalog.Taxonomy, collections []collectionSeed) (*StaticCatalogRepository, error) {
	r := &StaticCatalogRepository{
		products: products,
		byID:     make(map[string]int, len(products)),
		taxonomy: taxonomy,
	}

	for i, p := range products {
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("invalid catalog product at %d: %w", i, err)
		}
		if _, dup := r.byID[p.ID]; dup {
			return nil, fmt.Errorf("duplicate catalog product id %q", p.ID)
		}
		r.byID[p.ID] = i
	}

	for _, seed := range collections {
		c := seed.Collection
		c.Products = make([]catalog.Product, 0, len(seed.productIDs))
		for _, id := range seed.productIDs {
			idx, ok := r.byID[id]
			if !ok {
				return nil, fmt.Errorf("collection %q references unknown product %q", c.ID, id)
			}
			c.Products = append(c.Products, products[idx])
		}
		r.collections = append(r.collections, c)
	}

	return r, nil
}

// FindAll returns every product in featured order
func (r *StaticCatalogRepository) FindAll(_ context.Context) ([]catalog.Product, error) {
	return slices.Clone(r.products), nil
}

// FindByID returns a product by its ID
func (r *StaticCatalogRepository) FindByID(_ context.Context, id string) (*catalog.Product, error) {
	idx, ok := r.byID[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	p := r.products[idx]
	return &p, nil
}

// FindAllCollections returns the curated collections
func (r *StaticCatalogRepository) FindAllCollections(_ context.Context) ([]catalog.Collection, error) {
	return slices.Clone(r.collections), nil
}

// FindCollectionByID returns the collection with exactly this ID
func (r *StaticCatalogRepository) FindCollectionByID(_ context.Context, id string) (*catalog.Collection, error) {
	for _, c := range r.collections {
		if c.ID == id {
			c.Products = slices.Clone(c.Products)
			return &c, nil
		}
	}
	return nil, shared.ErrNotFound
}

// Taxonomy returns the category tree
func (r *StaticCatalogRepository) Taxonomy(_ context.Context) (catalog.Taxonomy, error) {
	return r.taxonomy, nil
}

var (
	_ catalog.ProductRepository    = (*StaticCatalogRepository)(nil)
	_ catalog.CollectionRepository = (*StaticCatalogRepository)(nil)
	_ catalog.TaxonomyRepository   = (*StaticCatalogRepository)(nil)
)
