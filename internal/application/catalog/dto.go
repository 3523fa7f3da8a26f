package catalog

import (
	"strings"

	"github.com/satyaprakrati/cozico/internal/domain/catalog"
	"github.com/satyaprakrati/cozico/internal/domain/shared"
	"github.com/satyaprakrati/cozico/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// ListProductsRequest holds the listing query parameters
type ListProductsRequest struct {
	Category string `form:"category" binding:"max=100"`
	Filter   string `form:"filter" binding:"max=50"`
	MinPrice *int64 `form:"min_price" binding:"omitempty,min=0"`
	MaxPrice *int64 `form:"max_price" binding:"omitempty,min=0"`
	Sizes    string `form:"sizes" binding:"max=500"`
	Colors   string `form:"colors" binding:"max=500"`
	Sort     string `form:"sort" binding:"max=50"`
}

// ToQuery converts the request into a catalog query.
// Unknown filter tags are ignored and unknown sort keys fall back to featured.
func (r ListProductsRequest) ToQuery() (catalog.Query, error) {
	q := catalog.NewQuery()
	q.Category = strings.ToLower(strings.TrimSpace(r.Category))
	q.Sort = catalog.ParseSortKey(r.Sort)

	switch tag := catalog.FilterTag(strings.ToLower(strings.TrimSpace(r.Filter))); tag {
	case catalog.FilterBestSellers, catalog.FilterNew:
		q.Filter = tag
	}

	if r.MinPrice != nil {
		q.MinPrice = valueobject.Rupees(*r.MinPrice)
	}
	if r.MaxPrice != nil {
		q.MaxPrice = valueobject.Rupees(*r.MaxPrice)
	}
	if q.MaxPrice.LessThan(q.MinPrice) {
		return catalog.Query{}, shared.ErrInvalidInput.WithMessage("min_price cannot exceed max_price")
	}

	q.Sizes = splitList(r.Sizes)
	q.Colors = splitList(r.Colors)
	return q, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// PriceResponse is a money amount with its formatted form
type PriceResponse struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
	Display  string          `json:"display"`
}

// NewPriceResponse converts a Money
func NewPriceResponse(m valueobject.Money) PriceResponse {
	return PriceResponse{
		Amount:   m.Amount(),
		Currency: string(m.Currency()),
		Display:  m.Display(),
	}
}

// ProductResponse is a product card or detail record
type ProductResponse struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Category        string          `json:"category"`
	Subcategory     string          `json:"subcategory,omitempty"`
	Price           PriceResponse   `json:"price"`
	OriginalPrice   *PriceResponse  `json:"original_price,omitempty"`
	DiscountPercent int             `json:"discount_percent"`
	Image           string          `json:"image"`
	Images          []string        `json:"images"`
	Rating          float64         `json:"rating"`
	Reviews         int             `json:"reviews"`
	Sizes           []string        `json:"sizes"`
	Colors          []catalog.Color `json:"colors"`
	Description     string          `json:"description,omitempty"`
	InStock         bool            `json:"in_stock"`
	Badge           string          `json:"badge,omitempty"`
}

// ToProductResponse converts a domain product
func ToProductResponse(p catalog.Product) ProductResponse {
	resp := ProductResponse{
		ID:              p.ID,
		Name:            p.Name,
		Category:        p.Category,
		Subcategory:     p.Subcategory,
		Price:           NewPriceResponse(p.Price),
		DiscountPercent: p.DiscountPercent(),
		Image:           p.Image,
		Images:          p.Gallery(),
		Rating:          p.Rating,
		Reviews:         p.Reviews,
		Sizes:           nonNil(p.Sizes),
		Colors:          nonNil(p.Colors),
		Description:     p.Description,
		InStock:         p.InStock,
		Badge:           p.Badge,
	}
	if p.OriginalPrice != nil {
		orig := NewPriceResponse(*p.OriginalPrice)
		resp.OriginalPrice = &orig
	}
	return resp
}

// ToProductResponses converts a list of domain products
func ToProductResponses(products []catalog.Product) []ProductResponse {
	out := make([]ProductResponse, len(products))
	for i, p := range products {
		out[i] = ToProductResponse(p)
	}
	return out
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

// AppliedFilters echoes the normalized query back to the client
type AppliedFilters struct {
	Category string   `json:"category,omitempty"`
	Filter   string   `json:"filter,omitempty"`
	MinPrice int64    `json:"min_price"`
	MaxPrice int64    `json:"max_price"`
	Sizes    []string `json:"sizes"`
	Colors   []string `json:"colors"`
	Sort     string   `json:"sort"`
}

func newAppliedFilters(q catalog.Query) AppliedFilters {
	return AppliedFilters{
		Category: q.Category,
		Filter:   string(q.Filter),
		MinPrice: q.MinPrice.Amount().IntPart(),
		MaxPrice: q.MaxPrice.Amount().IntPart(),
		Sizes:    nonNil(q.Sizes),
		Colors:   nonNil(q.Colors),
		Sort:     string(q.Sort),
	}
}

// ProductListResponse is a listing page
type ProductListResponse struct {
	Title    string            `json:"title"`
	Count    int               `json:"count"`
	Products []ProductResponse `json:"products"`
	Applied  AppliedFilters    `json:"applied"`
	Facets   catalog.Facets    `json:"facets"`
}

// ProductDetailResponse is a product page
type ProductDetailResponse struct {
	Product      ProductResponse   `json:"product"`
	CategoryName string            `json:"category_name"`
	Related      []ProductResponse `json:"related"`
}

// CollectionResponse is a curated collection page or tile
type CollectionResponse struct {
	ID           string            `json:"id"`
	Name         string            `json:"name"`
	Description  string            `json:"description"`
	Image        string            `json:"image"`
	ProductCount int               `json:"product_count"`
	Products     []ProductResponse `json:"products,omitempty"`
}

func toCollectionResponse(c catalog.Collection, withProducts bool) CollectionResponse {
	resp := CollectionResponse{
		ID:           c.ID,
		Name:         c.Name,
		Description:  c.Description,
		Image:        c.Image,
		ProductCount: len(c.Products),
	}
	if withProducts {
		resp.Products = ToProductResponses(c.Products)
	}
	return resp
}

// NavigationLink is an entry of the navigation menu
type NavigationLink struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// NavigationGroup is a top-level menu with its subcategory links
type NavigationGroup struct {
	Name  string           `json:"name"`
	Slug  string           `json:"slug"`
	Links []NavigationLink `json:"links"`
}

// Feature is a selling point shown on the home page
type Feature struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Hero is the home page banner copy
type Hero struct {
	Eyebrow     string `json:"eyebrow"`
	Headline    string `json:"headline"`
	Tagline     string `json:"tagline"`
	Description string `json:"description"`
}

// HomeResponse is the home page payload
type HomeResponse struct {
	Hero          Hero                      `json:"hero"`
	Categories    []catalog.CategorySummary `json:"categories"`
	Collections   []CollectionResponse      `json:"collections"`
	BestSellers   []ProductResponse         `json:"best_sellers"`
	TrendingShoes []ProductResponse         `json:"trending_shoes"`
	Features      []Feature                 `json:"features"`
}
