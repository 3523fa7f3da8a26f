package cart

import (
	appcatalog "github.com/satyaprakrati/cozico/internal/application/catalog"
	"github.com/satyaprakrati/cozico/internal/domain/cart"
	"github.com/satyaprakrati/cozico/internal/domain/shared/valueobject"
)

// FreeShippingDisplay is shown instead of a zero shipping fee
const FreeShippingDisplay = "FREE"

// Pricing holds the shipping rule applied to the cart summary
type Pricing struct {
	FreeShippingThreshold valueobject.Money
	ShippingFee           valueobject.Money
}

// DefaultPricing is free shipping from ₹2,999, ₹199 below it
func DefaultPricing() Pricing {
	return Pricing{
		FreeShippingThreshold: valueobject.Rupees(2999),
		ShippingFee:           valueobject.Rupees(199),
	}
}

// Summary is the order summary of a cart
type Summary struct {
	ItemCount             int                      `json:"item_count"`
	Subtotal              appcatalog.PriceResponse `json:"subtotal"`
	OriginalSubtotal      appcatalog.PriceResponse `json:"original_subtotal"`
	Savings               appcatalog.PriceResponse `json:"savings"`
	Shipping              appcatalog.PriceResponse `json:"shipping"`
	ShippingDisplay       string                   `json:"shipping_display"`
	FreeShipping          bool                     `json:"free_shipping"`
	FreeShippingRemaining appcatalog.PriceResponse `json:"free_shipping_remaining"`
	Total                 appcatalog.PriceResponse `json:"total"`
}

// Summarize computes the order summary of state under p.
// Shipping is free once the subtotal reaches the threshold; an empty cart
// is not charged shipping.
func (p Pricing) Summarize(state cart.State) Summary {
	subtotal := state.Total()
	list := state.ListTotal()

	savings := valueobject.ZeroINR()
	if subtotal.LessThan(list) {
		savings = list.MustSubtract(subtotal)
	}

	shipping := p.ShippingFee
	remaining := valueobject.ZeroINR()
	free := subtotal.GreaterThanOrEqual(p.FreeShippingThreshold)
	if !free {
		remaining = p.FreeShippingThreshold.MustSubtract(subtotal)
	}

	shippingDisplay := shipping.Display()
	switch {
	case free:
		shipping = valueobject.ZeroINR()
		shippingDisplay = FreeShippingDisplay
	case len(state.Items) == 0:
		shipping = valueobject.ZeroINR()
		shippingDisplay = shipping.Display()
	}

	return Summary{
		ItemCount:             state.Count(),
		Subtotal:              appcatalog.NewPriceResponse(subtotal),
		OriginalSubtotal:      appcatalog.NewPriceResponse(list),
		Savings:               appcatalog.NewPriceResponse(savings),
		Shipping:              appcatalog.NewPriceResponse(shipping),
		ShippingDisplay:       shippingDisplay,
		FreeShipping:          free,
		FreeShippingRemaining: appcatalog.NewPriceResponse(remaining),
		Total:                 appcatalog.NewPriceResponse(subtotal.MustAdd(shipping)),
	}
}

// LineResponse is one cart line
type LineResponse struct {
	Product       appcatalog.ProductResponse `json:"product"`
	SelectedSize  string                     `json:"selected_size"`
	SelectedColor string                     `json:"selected_color"`
	Quantity      int                        `json:"quantity"`
	LineTotal     appcatalog.PriceResponse   `json:"line_total"`
}

// CartResponse is the cart page payload
type CartResponse struct {
	SessionID string         `json:"session_id"`
	Items     []LineResponse `json:"items"`
	Summary   Summary        `json:"summary"`
}

// WishlistResponse is the wishlist page payload
type WishlistResponse struct {
	SessionID string                       `json:"session_id"`
	Count     int                          `json:"count"`
	Products  []appcatalog.ProductResponse `json:"products"`
}

// WishlistToggleResponse reports the membership after a toggle
type WishlistToggleResponse struct {
	ProductID  string           `json:"product_id"`
	InWishlist bool             `json:"in_wishlist"`
	Wishlist   WishlistResponse `json:"wishlist"`
}

// AddItemRequest adds a product with an explicit selection
type AddItemRequest struct {
	ProductID string `json:"product_id" binding:"required,max=100,slug"`
	Size      string `json:"size" binding:"max=20"`
	Color     string `json:"color" binding:"max=50"`
	Quantity  int    `json:"quantity" binding:"omitempty,min=1,max=99"`
}

// QuickAddRequest adds a product from a product card
type QuickAddRequest struct {
	ProductID string `json:"product_id" binding:"required,max=100,slug"`
}

// UpdateQuantityRequest sets the quantity of every line of a product.
// Zero or a negative quantity removes the product.
type UpdateQuantityRequest struct {
	Quantity *int `json:"quantity" binding:"required,max=99"`
}

// WishlistRequest names a wishlist product
type WishlistRequest struct {
	ProductID string `json:"product_id" binding:"required,max=100,slug"`
}

func (p Pricing) toCartResponse(sessionID string, state cart.State) *CartResponse {
	items := make([]LineResponse, len(state.Items))
	for i, item := range state.Items {
		items[i] = LineResponse{
			Product:       appcatalog.ToProductResponse(item.Product),
			SelectedSize:  item.SelectedSize,
			SelectedColor: item.SelectedColor,
			Quantity:      item.Quantity,
			LineTotal:     appcatalog.NewPriceResponse(item.Subtotal()),
		}
	}
	return &CartResponse{
		SessionID: sessionID,
		Items:     items,
		Summary:   p.Summarize(state),
	}
}

func toWishlistResponse(sessionID string, state cart.State) *WishlistResponse {
	return &WishlistResponse{
		SessionID: sessionID,
		Count:     len(state.Wishlist),
		Products:  appcatalog.ToProductResponses(state.Wishlist),
	}
}
