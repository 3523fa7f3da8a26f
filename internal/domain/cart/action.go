package cart

import "github.com/satyaprakrati/cozico/internal/domain/catalog"

// Action is a cart or wishlist transition.
// The set is closed: only the six types in this file implement it.
type Action interface {
	// Name is a stable identifier used for logging and metrics
	Name() string
	isAction()
}

// AddToCart merges Item into the line with the same product, size and color,
// or appends it as a new line.
type AddToCart struct {
	Item LineItem
}

// RemoveFromCart drops every line of the product, whatever its size or color.
type RemoveFromCart struct {
	ProductID string
}

// UpdateQuantity sets the quantity of every line of the product. Negative
// quantities count as zero, and lines at zero are dropped.
type UpdateQuantity struct {
	ProductID string
	Quantity  int
}

// ClearCart empties the cart and leaves the wishlist alone.
type ClearCart struct{}

// AddToWishlist adds the product unless it is already listed.
type AddToWishlist struct {
	Product catalog.Product
}

// RemoveFromWishlist removes the product if it is listed.
type RemoveFromWishlist struct {
	ProductID string
}

func (AddToCart) Name() string          { return "add_to_cart" }
func (RemoveFromCart) Name() string     { return "remove_from_cart" }
func (UpdateQuantity) Name() string     { return "update_quantity" }
func (ClearCart) Name() string          { return "clear_cart" }
func (AddToWishlist) Name() string      { return "add_to_wishlist" }
func (RemoveFromWishlist) Name() string { return "remove_from_wishlist" }

func (AddToCart) isAction()          {}
func (RemoveFromCart) isAction()     {}
func (UpdateQuantity) isAction()     {}
func (ClearCart) isAction()          {}
func (AddToWishlist) isAction()      {}
func (RemoveFromWishlist) isAction() {}
