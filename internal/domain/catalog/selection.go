package catalog

import (
	"github.com/satyaprakrati/cozico/internal/domain/shared"
)

// DefaultColor is recorded on cart lines for products without color options
const DefaultColor = "Default"

// Shopper-facing messages for an incomplete selection
const (
	MsgSelectSize  = "Please select a size"
	MsgSelectColor = "Please select a color"
)

// Selection is the option state of a product detail view: gallery image,
// size, color and quantity. Quantity never drops below 1.
type Selection struct {
	product    Product
	imageIndex int
	size       string
	color      string
	quantity   int
}

// NewSelection starts an empty selection with quantity 1
func NewSelection(p Product) *Selection {
	return &Selection{product: p, quantity: 1}
}

// QuickSelection is the selection a product card commits on quick add:
// first size, first color and a single unit.
func QuickSelection(p Product) *Selection {
	s := NewSelection(p)
	if len(p.Sizes) > 0 {
		s.size = p.Sizes[0]
	}
	if len(p.Colors) > 0 {
		s.color = p.Colors[0].Name
	}
	return s
}

func (s *Selection) Product() Product { return s.product }
func (s *Selection) ImageIndex() int  { return s.imageIndex }
func (s *Selection) Size() string     { return s.size }
func (s *Selection) Quantity() int    { return s.quantity }

// Color returns the chosen color, the first offered color, or DefaultColor
func (s *Selection) Color() string {
	if s.color != "" {
		return s.color
	}
	if len(s.product.Colors) > 0 {
		return s.product.Colors[0].Name
	}
	return DefaultColor
}

// Image returns the currently selected gallery image
func (s *Selection) Image() string {
	return s.product.Gallery()[s.imageIndex]
}

// SelectImage picks a gallery image by position
func (s *Selection) SelectImage(index int) error {
	if index < 0 || index >= len(s.product.Gallery()) {
		return shared.ErrInvalidInput.WithMessagef("Image %d does not exist", index)
	}
	s.imageIndex = index
	return nil
}

// SelectSize picks one of the offered sizes. An empty size clears the choice.
func (s *Selection) SelectSize(size string) error {
	if size != "" && !s.product.HasSize(size) {
		return shared.ErrInvalidInput.WithMessagef("Size %s is not available", size)
	}
	s.size = size
	return nil
}

// SelectColor picks one of the offered colors. An empty name clears the choice.
func (s *Selection) SelectColor(name string) error {
	if name != "" && !s.product.HasColor(name) {
		return shared.ErrInvalidInput.WithMessagef("Color %s is not available", name)
	}
	s.color = name
	return nil
}

func (s *Selection) Increment() {
	s.quantity++
}

// Decrement lowers the quantity, stopping at 1
func (s *Selection) Decrement() {
	s.SetQuantity(s.quantity - 1)
}

// SetQuantity sets the quantity, clamped to at least 1
func (s *Selection) SetQuantity(q int) {
	s.quantity = max(1, q)
}

// Validate gates the add-to-cart commit: a size is always required, a color
// only when the product offers any.
func (s *Selection) Validate() error {
	if s.size == "" {
		return shared.ErrSelectionRequired.WithMessage(MsgSelectSize)
	}
	if s.product.HasColors() && s.color == "" {
		return shared.ErrSelectionRequired.WithMessage(MsgSelectColor)
	}
	return nil
}
