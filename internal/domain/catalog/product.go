package catalog

import (
	"slices"
	"strings"

	"github.com/satyaprakrati/cozico/internal/domain/shared"
	"github.com/satyaprakrati/cozico/internal/domain/shared/valueobject"
)

// Badges carried by catalog products
const (
	BadgeBestSeller = "Best Seller"
	BadgeNewArrival = "New Arrival"
	BadgeTrending   = "Trending"
)

// BestSellerRating is the rating at which a product counts as a best seller
// regardless of its badge.
const BestSellerRating = 4.7

// Color is a named color option with its display swatch
type Color struct {
	Name string `json:"name"`
	Hex  string `json:"hex"`
}

// Product is a read-only catalog entry.
// Products are shared between requests; callers that keep a product inside
// mutable state must take a Clone.
type Product struct {
	ID            string             `json:"id"`
	Name          string             `json:"name"`
	Category      string             `json:"category"`
	Subcategory   string             `json:"subcategory,omitempty"`
	Price         valueobject.Money  `json:"price"`
	OriginalPrice *valueobject.Money `json:"original_price,omitempty"`
	Image         string             `json:"image"`
	Images        []string           `json:"images,omitempty"`
	Rating        float64            `json:"rating"`
	Reviews       int                `json:"reviews"`
	Sizes         []string           `json:"sizes"`
	Colors        []Color            `json:"colors"`
	Description   string             `json:"description,omitempty"`
	InStock       bool               `json:"in_stock"`
	Badge         string             `json:"badge,omitempty"`
}

// Validate checks the record invariants of a catalog entry
func (p Product) Validate() error {
	switch {
	case strings.TrimSpace(p.ID) == "":
		return shared.ErrInvalidProduct.WithMessage("Product ID cannot be empty")
	case strings.TrimSpace(p.Name) == "":
		return shared.ErrInvalidProduct.WithMessagef("Product name cannot be empty: %s", p.ID)
	case p.Price.Amount().IsNegative():
		return shared.ErrInvalidProduct.WithMessagef("Product price cannot be negative: %s", p.ID)
	case p.OriginalPrice != nil && p.OriginalPrice.LessThan(p.Price):
		return shared.ErrInvalidProduct.WithMessagef("Original price cannot be below price: %s", p.ID)
	case p.Rating < 0 || p.Rating > 5:
		return shared.ErrInvalidProduct.WithMessagef("Product rating must be between 0 and 5: %s", p.ID)
	case p.Reviews < 0:
		return shared.ErrInvalidProduct.WithMessagef("Review count cannot be negative: %s", p.ID)
	case len(p.Sizes) == 0:
		return shared.ErrInvalidProduct.WithMessagef("Product must offer at least one size: %s", p.ID)
	}
	return nil
}

// Gallery returns the ordered images to show on the detail page.
// Products without a gallery fall back to their primary image.
func (p Product) Gallery() []string {
	if len(p.Images) > 0 {
		return slices.Clone(p.Images)
	}
	return []string{p.Image}
}

// DiscountPercent returns the markdown against the original price, or 0
func (p Product) DiscountPercent() int {
	if p.OriginalPrice == nil {
		return 0
	}
	return p.Price.PercentOff(*p.OriginalPrice)
}

// ListPrice is the original price when the product is marked down, else the price
func (p Product) ListPrice() valueobject.Money {
	if p.OriginalPrice != nil {
		return *p.OriginalPrice
	}
	return p.Price
}

func (p Product) HasColors() bool {
	return len(p.Colors) > 0
}

// HasSize reports whether size is one of the offered sizes
func (p Product) HasSize(size string) bool {
	return slices.Contains(p.Sizes, size)
}

// HasColor reports whether a color with the given name is offered
func (p Product) HasColor(name string) bool {
	return slices.ContainsFunc(p.Colors, func(c Color) bool { return c.Name == name })
}

// IsBestSeller reports whether the product belongs on the best sellers shelf
func (p Product) IsBestSeller() bool {
	return p.Badge == BadgeBestSeller || p.Rating >= BestSellerRating
}

// IsNew reports whether the product belongs on the new arrivals shelf
func (p Product) IsNew() bool {
	return p.Badge == BadgeNewArrival || p.Badge == BadgeTrending
}

// CategorySlug is the lower-cased category name
func (p Product) CategorySlug() string {
	return strings.ToLower(p.Category)
}

// SubcategorySlug is the lower-cased subcategory with whitespace runs turned into "-"
func (p Product) SubcategorySlug() string {
	return Slugify(p.Subcategory)
}

// Clone returns a deep copy that shares no slices with p
func (p Product) Clone() Product {
	c := p
	c.Images = slices.Clone(p.Images)
	c.Sizes = slices.Clone(p.Sizes)
	c.Colors = slices.Clone(p.Colors)
	if p.OriginalPrice != nil {
		orig := *p.OriginalPrice
		c.OriginalPrice = &orig
	}
	return c
}

// Slugify lower-cases s and joins whitespace-separated words with "-"
func Slugify(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), "-")
}
