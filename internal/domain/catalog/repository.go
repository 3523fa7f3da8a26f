package catalog

import "context"

// ProductRepository provides read access to catalog products.
// Implementations return products in catalog (featured) order.
type ProductRepository interface {
	// FindAll returns every product
	FindAll(ctx context.Context) ([]Product, error)

	// FindByID returns a product or shared.ErrNotFound
	FindByID(ctx context.Context, id string) (*Product, error)
}

// CollectionRepository provides read access to curated collections
type CollectionRepository interface {
	FindAllCollections(ctx context.Context) ([]Collection, error)

	// FindCollectionByID matches the ID exactly or returns shared.ErrNotFound
	FindCollectionByID(ctx context.Context, id string) (*Collection, error)
}

// TaxonomyRepository provides the category tree
type TaxonomyRepository interface {
	Taxonomy(ctx context.Context) (Taxonomy, error)
}
