package catalog

import (
	"cmp"
	"slices"
	"strings"

	"github.com/satyaprakrati/cozico/internal/domain/shared/valueobject"
)

// SortKey orders a product listing
type SortKey string

const (
	SortFeatured  SortKey = "featured"
	SortPriceAsc  SortKey = "price-asc"
	SortPriceDesc SortKey = "price-desc"
	SortRating    SortKey = "rating"
	SortNewest    SortKey = "newest"
)

// ParseSortKey maps a raw value to a SortKey. Unknown values sort as featured.
func ParseSortKey(s string) SortKey {
	switch k := SortKey(strings.ToLower(strings.TrimSpace(s))); k {
	case SortPriceAsc, SortPriceDesc, SortRating, SortNewest:
		return k
	default:
		return SortFeatured
	}
}

// FilterTag is a named shelf filter
type FilterTag string

const (
	FilterNone        FilterTag = ""
	FilterBestSellers FilterTag = "bestsellers"
	FilterNew         FilterTag = "new"
)

// Price range bounds of the listing filter, in rupees
const (
	DefaultMinPrice = 0
	DefaultMaxPrice = 35000
	PriceStep       = 500
)

// Query describes a product listing: conjunctive filters plus a sort key.
// Empty Sizes or Colors means no restriction.
type Query struct {
	Category string
	Filter   FilterTag
	MinPrice valueobject.Money
	MaxPrice valueobject.Money
	Sizes    []string
	Colors   []string
	Sort     SortKey
}

// NewQuery returns the unfiltered listing with the default price range
func NewQuery() Query {
	return Query{
		MinPrice: valueobject.Rupees(DefaultMinPrice),
		MaxPrice: valueobject.Rupees(DefaultMaxPrice),
		Sort:     SortFeatured,
	}
}

// Matches reports whether p passes every filter of q
func (q Query) Matches(p Product) bool {
	if q.Category != "" && !MatchesCategory(p, q.Category) {
		return false
	}
	switch q.Filter {
	case FilterBestSellers:
		if !p.IsBestSeller() {
			return false
		}
	case FilterNew:
		if !p.IsNew() {
			return false
		}
	}
	if p.Price.LessThan(q.MinPrice) || q.MaxPrice.LessThan(p.Price) {
		return false
	}
	if len(q.Sizes) > 0 && !slices.ContainsFunc(p.Sizes, func(s string) bool { return slices.Contains(q.Sizes, s) }) {
		return false
	}
	if len(q.Colors) > 0 && !slices.ContainsFunc(p.Colors, func(c Color) bool { return slices.Contains(q.Colors, c.Name) }) {
		return false
	}
	return true
}

// Apply filters products and returns them in the requested order.
// The input slice is never reordered; ties keep catalog order.
func (q Query) Apply(products []Product) []Product {
	result := make([]Product, 0, len(products))
	for _, p := range products {
		if q.Matches(p) {
			result = append(result, p)
		}
	}

	switch q.Sort {
	case SortPriceAsc:
		slices.SortStableFunc(result, func(a, b Product) int { return a.Price.Cmp(b.Price) })
	case SortPriceDesc:
		slices.SortStableFunc(result, func(a, b Product) int { return b.Price.Cmp(a.Price) })
	case SortRating:
		slices.SortStableFunc(result, func(a, b Product) int { return cmp.Compare(b.Rating, a.Rating) })
	case SortNewest:
		slices.SortStableFunc(result, func(a, b Product) int {
			return cmp.Compare(newestRank(a), newestRank(b))
		})
	}
	return result
}

// Title is the heading of the listing page for q
func (q Query) Title(t Taxonomy) string {
	switch q.Filter {
	case FilterBestSellers:
		return "Best Sellers"
	case FilterNew:
		return "New Arrivals"
	}
	if q.Category != "" {
		return t.DisplayName(q.Category)
	}
	return "All Products"
}

// MatchesCategory applies the loose category match: the lower-cased parameter
// equals or is contained in the category, or in the slugged subcategory.
func MatchesCategory(p Product, param string) bool {
	param = strings.ToLower(param)
	cat := p.CategorySlug()
	if cat == param || strings.Contains(cat, param) {
		return true
	}
	if p.Subcategory == "" {
		return false
	}
	sub := p.SubcategorySlug()
	return sub == param || strings.Contains(sub, param)
}

// "newest" has no date to go by: New Arrival badges first, everything else after.
func newestRank(p Product) int {
	if p.Badge == BadgeNewArrival {
		return 0
	}
	return 1
}

// SortOption is a selectable listing order
type SortOption struct {
	ID   SortKey `json:"id"`
	Name string  `json:"name"`
}

// Facets are the filter controls offered on the listing page
type Facets struct {
	Sizes       []string     `json:"sizes"`
	Colors      []string     `json:"colors"`
	MinPrice    int64        `json:"min_price"`
	MaxPrice    int64        `json:"max_price"`
	PriceStep   int64        `json:"price_step"`
	SortOptions []SortOption `json:"sort_options"`
}

// DefaultFacets returns the storefront's filter controls
func DefaultFacets() Facets {
	return Facets{
		Sizes: []string{
			"S", "M", "L", "XL", "XXL",
			"28", "30", "32", "34", "36", "38", "40", "42", "44", "46",
			"7", "8", "9", "10", "11", "12",
		},
		Colors:    []string{"White", "Black", "Navy", "Olive", "Grey", "Brown", "Beige", "Blue"},
		MinPrice:  DefaultMinPrice,
		MaxPrice:  DefaultMaxPrice,
		PriceStep: PriceStep,
		SortOptions: []SortOption{
			{ID: SortFeatured, Name: "Featured"},
			{ID: SortPriceAsc, Name: "Price: Low to High"},
			{ID: SortPriceDesc, Name: "Price: High to Low"},
			{ID: SortRating, Name: "Top Rated"},
			{ID: SortNewest, Name: "Newest"},
		},
	}
}
