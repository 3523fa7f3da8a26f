package catalog

import (
	"context"
	"fmt"

	"github.com/satyaprakrati/cozico/internal/domain/catalog"
	"github.com/satyaprakrati/cozico/internal/infrastructure/telemetry"
)

// Home page copy
var (
	homeHero = Hero{
		Eyebrow:     "New Season Collection",
		Headline:    "Redefine Your",
		Tagline:     "Style Statement",
		Description: "Discover premium menswear crafted for the modern gentleman. From boardroom to wedding, dress with confidence.",
	}
	homeFeatures = []Feature{
		{Title: "Premium Quality", Description: "Handpicked fabrics and meticulous craftsmanship in every piece."},
		{Title: "Free Shipping", Description: "Complimentary delivery on all orders above ₹2,999."},
		{Title: "Easy Returns", Description: "30-day hassle-free returns and exchanges."},
		{Title: "24/7 Support", Description: "Our style experts are here to help anytime."},
	}
)

const trendingCategory = "shoes"

// QueryRecorder records listing queries
type QueryRecorder interface {
	RecordCatalogQuery(ctx context.Context, sort string)
}

// ProductServiceOptions tunes the catalog views
type ProductServiceOptions struct {
	RelatedLimit  int
	TrendingLimit int
}

// ProductService serves the read-only catalog views
type ProductService struct {
	products    catalog.ProductRepository
	collections catalog.CollectionRepository
	taxonomy    catalog.TaxonomyRepository
	opts        ProductServiceOptions
	recorder    QueryRecorder
}

// NewProductService creates a new ProductService
func NewProductService(
	products catalog.ProductRepository,
	collections catalog.CollectionRepository,
	taxonomy catalog.TaxonomyRepository,
	opts ProductServiceOptions,
) *ProductService {
	if opts.RelatedLimit <= 0 {
		opts.RelatedLimit = 4
	}
	if opts.TrendingLimit <= 0 {
		opts.TrendingLimit = 4
	}
	return &ProductService{
		products:    products,
		collections: collections,
		taxonomy:    taxonomy,
		opts:        opts,
	}
}

// WithQueryRecorder sets the recorder for listing queries
func (s *ProductService) WithQueryRecorder(r QueryRecorder) *ProductService {
	s.recorder = r
	return s
}

// List returns the filtered and sorted listing. There is no pagination.
func (s *ProductService) List(ctx context.Context, req ListProductsRequest) (*ProductListResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "catalog", "list")
	defer span.End()

	q, err := req.ToQuery()
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	all, err := s.products.FindAll(ctx)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	tax, err := s.taxonomy.Taxonomy(ctx)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	result := q.Apply(all)
	span.SetAttributes(
		telemetry.SpanAttrCategory.String(q.Category),
		telemetry.SpanAttrSort.String(string(q.Sort)),
		telemetry.SpanAttrResultSize.Int(len(result)),
	)
	if s.recorder != nil {
		s.recorder.RecordCatalogQuery(ctx, string(q.Sort))
	}

	return &ProductListResponse{
		Title:    q.Title(tax),
		Count:    len(result),
		Products: ToProductResponses(result),
		Applied:  newAppliedFilters(q),
		Facets:   catalog.DefaultFacets(),
	}, nil
}

// Get returns a product page with related products
func (s *ProductService) Get(ctx context.Context, id string) (*ProductDetailResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "catalog", "get",
		telemetry.SpanAttrProductID.String(id))
	defer span.End()

	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	related, err := s.Related(ctx, *product)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	tax, err := s.taxonomy.Taxonomy(ctx)
	if err != nil {
		return nil, err
	}

	return &ProductDetailResponse{
		Product:      ToProductResponse(*product),
		CategoryName: tax.DisplayName(product.CategorySlug()),
		Related:      ToProductResponses(related),
	}, nil
}

// Related returns the first products of the same category, excluding p
func (s *ProductService) Related(ctx context.Context, p catalog.Product) ([]catalog.Product, error) {
	all, err := s.products.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	related := make([]catalog.Product, 0, s.opts.RelatedLimit)
	for _, candidate := range all {
		if len(related) == s.opts.RelatedLimit {
			break
		}
		if candidate.ID != p.ID && candidate.CategorySlug() == p.CategorySlug() {
			related = append(related, candidate)
		}
	}
	return related, nil
}

// BestSellers returns the best sellers shelf in catalog order
func (s *ProductService) BestSellers(ctx context.Context) ([]ProductResponse, error) {
	products, err := s.bestSellers(ctx)
	if err != nil {
		return nil, err
	}
	return ToProductResponses(products), nil
}

func (s *ProductService) bestSellers(ctx context.Context) ([]catalog.Product, error) {
	all, err := s.products.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	shelf := make([]catalog.Product, 0, len(all))
	for _, p := range all {
		if p.IsBestSeller() {
			shelf = append(shelf, p)
		}
	}
	return shelf, nil
}

// TrendingShoes returns the first shoes of the catalog
func (s *ProductService) TrendingShoes(ctx context.Context) ([]ProductResponse, error) {
	all, err := s.products.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	shoes := make([]catalog.Product, 0, s.opts.TrendingLimit)
	for _, p := range all {
		if len(shoes) == s.opts.TrendingLimit {
			break
		}
		if p.CategorySlug() == trendingCategory {
			shoes = append(shoes, p)
		}
	}
	return ToProductResponses(shoes), nil
}

// Categories returns the department tiles with product counts
func (s *ProductService) Categories(ctx context.Context) ([]catalog.CategorySummary, error) {
	tax, err := s.taxonomy.Taxonomy(ctx)
	if err != nil {
		return nil, err
	}
	all, err := s.products.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int, len(tax.Departments))
	for _, p := range all {
		counts[p.CategorySlug()]++
	}

	summaries := make([]catalog.CategorySummary, 0, len(tax.Departments))
	for _, d := range tax.Departments {
		summaries = append(summaries, catalog.CategorySummary{
			Name:  d.Name,
			Slug:  d.ID,
			Image: d.Image,
			Count: counts[d.ID],
		})
	}
	return summaries, nil
}

// Navigation returns the menu groups built from the taxonomy
func (s *ProductService) Navigation(ctx context.Context) ([]NavigationGroup, error) {
	tax, err := s.taxonomy.Taxonomy(ctx)
	if err != nil {
		return nil, err
	}

	groups := make([]NavigationGroup, 0, len(tax.Departments))
	for _, d := range tax.Departments {
		links := make([]NavigationLink, 0, len(d.Subcategories))
		for _, sub := range d.Subcategories {
			links = append(links, NavigationLink{Name: sub.Name, Slug: sub.ID})
		}
		groups = append(groups, NavigationGroup{Name: d.Name, Slug: d.ID, Links: links})
	}
	return groups, nil
}

// Collections returns the collection tiles without their products
func (s *ProductService) Collections(ctx context.Context) ([]CollectionResponse, error) {
	collections, err := s.collections.FindAllCollections(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]CollectionResponse, len(collections))
	for i, c := range collections {
		out[i] = toCollectionResponse(c, false)
	}
	return out, nil
}

// Collection returns a collection page by exact id
func (s *ProductService) Collection(ctx context.Context, id string) (*CollectionResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "catalog", "collection")
	defer span.End()

	c, err := s.collections.FindCollectionByID(ctx, id)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	resp := toCollectionResponse(*c, true)
	return &resp, nil
}

// Home assembles the home page
func (s *ProductService) Home(ctx context.Context) (*HomeResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "catalog", "home")
	defer span.End()

	categories, err := s.Categories(ctx)
	if err != nil {
		return nil, fmt.Errorf("home categories: %w", err)
	}
	collections, err := s.Collections(ctx)
	if err != nil {
		return nil, fmt.Errorf("home collections: %w", err)
	}
	bestSellers, err := s.BestSellers(ctx)
	if err != nil {
		return nil, fmt.Errorf("home best sellers: %w", err)
	}
	trending, err := s.TrendingShoes(ctx)
	if err != nil {
		return nil, fmt.Errorf("home trending shoes: %w", err)
	}

	return &HomeResponse{
		Hero:          homeHero,
		Categories:    categories,
		Collections:   collections,
		BestSellers:   bestSellers,
		TrendingShoes: trending,
		Features:      homeFeatures,
	}, nil
}
