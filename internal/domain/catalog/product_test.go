package catalog

import (
	"testing"

	"github.com/satyaprakrati/cozico/internal/domain/shared"
	"github.com/satyaprakrati/cozico/internal/domain/shared/valueobject"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rupees(v int64) *valueobject.Money {
	m := valueobject.Rupees(v)
	return &m
}

func newTestProduct(id string, price int64) Product {
	return Product{
		ID:       id,
		Name:     "Product " + id,
		Category: "Clothing",
		Price:    valueobject.Rupees(price),
		Image:    "https://img.example/" + id + ".jpg",
		Rating:   4.2,
		Reviews:  10,
		Sizes:    []string{"M", "L"},
		Colors:   []Color{{Name: "Navy", Hex: "#1B2A4A"}},
		InStock:  true,
	}
}

func TestProduct_Validate(t *testing.T) {
	t.Run("accepts a well formed product", func(t *testing.T) {
		p := newTestProduct("p1", 1299)
		p.OriginalPrice = rupees(1999)
		assert.NoError(t, p.Validate())
	})

	tests := []struct {
		name   string
		mutate func(p *Product)
	}{
		{"empty id", func(p *Product) { p.ID = " " }},
		{"empty name", func(p *Product) { p.Name = "" }},
		{"negative price", func(p *Product) { p.Price = valueobject.Rupees(-1) }},
		{"original below price", func(p *Product) { p.OriginalPrice = rupees(10) }},
		{"rating above five", func(p *Product) { p.Rating = 5.1 }},
		{"negative reviews", func(p *Product) { p.Reviews = -1 }},
		{"no sizes", func(p *Product) { p.Sizes = nil }},
	}
	for _, tt := range tests {
		t.Run("rejects "+tt.name, func(t *testing.T) {
			p := newTestProduct("p1", 1299)
			tt.mutate(&p)
			err := p.Validate()
			require.Error(t, err)
			var domainErr *shared.DomainError
			require.ErrorAs(t, err, &domainErr)
			assert.Equal(t, "INVALID_PRODUCT", domainErr.Code)
		})
	}
}

func TestProduct_Gallery(t *testing.T) {
	p := newTestProduct("p1", 100)
	assert.Equal(t, []string{p.Image}, p.Gallery())

	p.Images = []string{"a.jpg", "b.jpg"}
	gallery := p.Gallery()
	assert.Equal(t, []string{"a.jpg", "b.jpg"}, gallery)

	gallery[0] = "changed"
	assert.Equal(t, "a.jpg", p.Images[0])
}

func TestProduct_DiscountPercent(t *testing.T) {
	p := newTestProduct("p1", 1499)
	assert.Equal(t, 0, p.DiscountPercent())
	assert.True(t, p.ListPrice().Equals(valueobject.Rupees(1499)))

	p.OriginalPrice = rupees(2499)
	assert.Equal(t, 40, p.DiscountPercent())
	assert.True(t, p.ListPrice().Equals(valueobject.Rupees(2499)))
}

func TestProduct_Shelves(t *testing.T) {
	p := newTestProduct("p1", 100)
	assert.False(t, p.IsBestSeller())
	assert.False(t, p.IsNew())

	p.Rating = 4.7
	assert.True(t, p.IsBestSeller())

	p.Rating = 3
	p.Badge = BadgeBestSeller
	assert.True(t, p.IsBestSeller())

	p.Badge = BadgeNewArrival
	assert.True(t, p.IsNew())
	p.Badge = BadgeTrending
	assert.True(t, p.IsNew())
}

func TestProduct_Clone(t *testing.T) {
	p := newTestProduct("p1", 100)
	p.OriginalPrice = rupees(200)
	c := p.Clone()

	c.Sizes[0] = "XXL"
	c.Colors[0].Name = "Red"
	*c.OriginalPrice = valueobject.Rupees(1)

	assert.Equal(t, "M", p.Sizes[0])
	assert.Equal(t, "Navy", p.Colors[0].Name)
	assert.True(t, p.OriginalPrice.Equals(valueobject.Rupees(200)))
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "wedding-suits", Slugify("Wedding Suits"))
	assert.Equal(t, "sports-shoes", Slugify("Sports   Shoes"))
	assert.Equal(t, "t-shirts", Slugify("T-Shirts"))
	assert.Equal(t, "", Slugify(""))
}

func TestTaxonomy_DisplayName(t *testing.T) {
	tax := Taxonomy{Departments: []Department{
		{ID: "suits", Name: "Suits", Subcategories: []Subcategory{
			{ID: "wedding-suits", Name: "Wedding Suits", Parent: "suits"},
		}},
	}}

	assert.Equal(t, "Wedding Suits", tax.DisplayName("wedding-suits"))
	assert.Equal(t, "Suits", tax.DisplayName("SUITS"))
	assert.Equal(t, "Casual", tax.DisplayName("casual"))
	assert.Equal(t, "", tax.DisplayName(""))

	_, ok := tax.Subcategory("nope")
	assert.False(t, ok)
}
