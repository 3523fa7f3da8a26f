package cart

import (
	"github.com/satyaprakrati/cozico/internal/domain/catalog"
	"github.com/satyaprakrati/cozico/internal/domain/shared/valueobject"
)

// MaxLineQuantity is the most units one cart line may hold
const MaxLineQuantity = 99

// LineKey is the identity of a cart line
type LineKey struct {
	ProductID string
	Size      string
	Color     string
}

// LineItem is a product snapshot with the chosen options and quantity
type LineItem struct {
	Product       catalog.Product `json:"product"`
	Quantity      int             `json:"quantity"`
	SelectedSize  string          `json:"selected_size"`
	SelectedColor string          `json:"selected_color"`
}

// NewLineItem snapshots p into a line. The product is cloned so the line
// never aliases catalog data.
func NewLineItem(p catalog.Product, size, color string, quantity int) LineItem {
	return LineItem{
		Product:       p.Clone(),
		Quantity:      quantity,
		SelectedSize:  size,
		SelectedColor: color,
	}
}

// Key returns the (product, size, color) identity of the line
func (l LineItem) Key() LineKey {
	return LineKey{ProductID: l.Product.ID, Size: l.SelectedSize, Color: l.SelectedColor}
}

// Subtotal is unit price times quantity
func (l LineItem) Subtotal() valueobject.Money {
	return l.Product.Price.Times(l.Quantity)
}

// ListSubtotal is the pre-markdown price times quantity
func (l LineItem) ListSubtotal() valueobject.Money {
	return l.Product.ListPrice().Times(l.Quantity)
}

// State is the cart and wishlist of one shopper.
// A State is a value: Reduce never modifies one in place, and holders of a
// State must not modify its slices either.
type State struct {
	Items    []LineItem        `json:"items"`
	Wishlist []catalog.Product `json:"wishlist"`
}

// Total is the sum of price x quantity over all lines
func (s State) Total() valueobject.Money {
	total := valueobject.ZeroINR()
	for _, item := range s.Items {
		total = total.MustAdd(item.Subtotal())
	}
	return total
}

// ListTotal is the sum of list price x quantity over all lines
func (s State) ListTotal() valueobject.Money {
	total := valueobject.ZeroINR()
	for _, item := range s.Items {
		total = total.MustAdd(item.ListSubtotal())
	}
	return total
}

// Count is the sum of quantities over all lines
func (s State) Count() int {
	n := 0
	for _, item := range s.Items {
		n += item.Quantity
	}
	return n
}

func (s State) IsInWishlist(productID string) bool {
	return indexOfProduct(s.Wishlist, productID) >= 0
}

// Line returns the line with the given identity
func (s State) Line(key LineKey) (LineItem, bool) {
	for _, item := range s.Items {
		if item.Key() == key {
			return item, true
		}
	}
	return LineItem{}, false
}

// LinesFor returns every line of a product, across sizes and colors
func (s State) LinesFor(productID string) []LineItem {
	var lines []LineItem
	for _, item := range s.Items {
		if item.Product.ID == productID {
			lines = append(lines, item)
		}
	}
	return lines
}

// IsEmpty reports whether both the cart and the wishlist are empty
func (s State) IsEmpty() bool {
	return len(s.Items) == 0 && len(s.Wishlist) == 0
}

func indexOfProduct(products []catalog.Product, id string) int {
	for i, p := range products {
		if p.ID == id {
			return i
		}
	}
	return -1
}
