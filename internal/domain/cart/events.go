package cart

import (
	"github.com/google/uuid"
	"github.com/satyaprakrati/cozico/internal/domain/shared"
)

// SourceCart marks events raised by the cart and wishlist reducer
const SourceCart = "cart"

// Event types
const (
	EventTypeItemAdded           = "cart.item_added"
	EventTypeItemRemoved         = "cart.item_removed"
	EventTypeQuantityUpdated     = "cart.quantity_updated"
	EventTypeCartCleared         = "cart.cleared"
	EventTypeWishlistItemAdded   = "wishlist.item_added"
	EventTypeWishlistItemRemoved = "wishlist.item_removed"
)

// ItemAddedEvent is raised when units are added to a cart line
type ItemAddedEvent struct {
	shared.EventHeader
	ProductID    string `json:"product_id"`
	Size         string `json:"size"`
	Color        string `json:"color"`
	Quantity     int    `json:"quantity"`
	LineQuantity int    `json:"line_quantity"`
	NewLine      bool   `json:"new_line"`
}

// ItemRemovedEvent is raised when the lines of a product leave the cart
type ItemRemovedEvent struct {
	shared.EventHeader
	ProductID    string `json:"product_id"`
	LinesRemoved int    `json:"lines_removed"`
	UnitsRemoved int    `json:"units_removed"`
}

// QuantityUpdatedEvent is raised when the lines of a product get a new quantity
type QuantityUpdatedEvent struct {
	shared.EventHeader
	ProductID    string `json:"product_id"`
	Quantity     int    `json:"quantity"`
	LinesRemoved int    `json:"lines_removed"`
}

// CartClearedEvent is raised when a non-empty cart is emptied
type CartClearedEvent struct {
	shared.EventHeader
	LinesCleared int `json:"lines_cleared"`
	UnitsCleared int `json:"units_cleared"`
}

// WishlistItemAddedEvent is raised when a product joins the wishlist
type WishlistItemAddedEvent struct {
	shared.EventHeader
	ProductID string `json:"product_id"`
}

// WishlistItemRemovedEvent is raised when a product leaves the wishlist
type WishlistItemRemovedEvent struct {
	shared.EventHeader
	ProductID string `json:"product_id"`
}

// EventsFor derives the domain events of a transition.
// Transitions that change nothing (duplicate wishlist add, removing an
// absent id, clearing an empty cart) produce no events.
func EventsFor(sessionID uuid.UUID, t Transition) []shared.Event {
	base := func(eventType string) shared.EventHeader {
		return shared.NewEventHeader(eventType, SourceCart, sessionID)
	}

	switch a := t.Action.(type) {
	case AddToCart:
		line, _ := t.Next.Line(a.Item.Key())
		_, existed := t.Prev.Line(a.Item.Key())
		return []shared.Event{&ItemAddedEvent{
			EventHeader:  base(EventTypeItemAdded),
			ProductID:    a.Item.Product.ID,
			Size:         a.Item.SelectedSize,
			Color:        a.Item.SelectedColor,
			Quantity:     a.Item.Quantity,
			LineQuantity: line.Quantity,
			NewLine:      !existed,
		}}
	case RemoveFromCart:
		removed := t.Prev.LinesFor(a.ProductID)
		if len(removed) == 0 {
			return nil
		}
		return []shared.Event{&ItemRemovedEvent{
			EventHeader:  base(EventTypeItemRemoved),
			ProductID:    a.ProductID,
			LinesRemoved: len(removed),
			UnitsRemoved: State{Items: removed}.Count(),
		}}
	case UpdateQuantity:
		before := len(t.Prev.LinesFor(a.ProductID))
		if before == 0 {
			return nil
		}
		return []shared.Event{&QuantityUpdatedEvent{
			EventHeader:  base(EventTypeQuantityUpdated),
			ProductID:    a.ProductID,
			Quantity:     max(0, a.Quantity),
			LinesRemoved: before - len(t.Next.LinesFor(a.ProductID)),
		}}
	case ClearCart:
		if len(t.Prev.Items) == 0 {
			return nil
		}
		return []shared.Event{&CartClearedEvent{
			EventHeader:  base(EventTypeCartCleared),
			LinesCleared: len(t.Prev.Items),
			UnitsCleared: t.Prev.Count(),
		}}
	case AddToWishlist:
		if t.Prev.IsInWishlist(a.Product.ID) {
			return nil
		}
		return []shared.Event{&WishlistItemAddedEvent{
			EventHeader: base(EventTypeWishlistItemAdded),
			ProductID:   a.Product.ID,
		}}
	case RemoveFromWishlist:
		if !t.Prev.IsInWishlist(a.ProductID) {
			return nil
		}
		return []shared.Event{&WishlistItemRemovedEvent{
			EventHeader: base(EventTypeWishlistItemRemoved),
			ProductID:   a.ProductID,
		}}
	}
	return nil
}
