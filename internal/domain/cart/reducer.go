package cart

import (
	"fmt"
	"slices"
)

// Reduce applies a to s and returns the next state. It is total over every
// Action, never fails and never modifies s: changed collections are copied.
func Reduce(s State, a Action) State {
	switch a := a.(type) {
	case AddToCart:
		return addToCart(s, a.Item)
	case RemoveFromCart:
		s.Items = slices.DeleteFunc(slices.Clone(s.Items), func(l LineItem) bool {
			return l.Product.ID == a.ProductID
		})
		return s
	case UpdateQuantity:
		return updateQuantity(s, a.ProductID, a.Quantity)
	case ClearCart:
		s.Items = nil
		return s
	case AddToWishlist:
		if s.IsInWishlist(a.Product.ID) {
			return s
		}
		s.Wishlist = append(slices.Clip(s.Wishlist), a.Product.Clone())
		return s
	case RemoveFromWishlist:
		i := indexOfProduct(s.Wishlist, a.ProductID)
		if i < 0 {
			return s
		}
		s.Wishlist = slices.Delete(slices.Clone(s.Wishlist), i, i+1)
		return s
	default:
		panic(fmt.Sprintf("cart: unhandled action %T", a))
	}
}

func addToCart(s State, item LineItem) State {
	items := slices.Clone(s.Items)
	key := item.Key()
	for i := range items {
		if items[i].Key() == key {
			items[i].Quantity += item.Quantity
			s.Items = items
			return s
		}
	}
	s.Items = append(items, item)
	return s
}

func updateQuantity(s State, productID string, quantity int) State {
	quantity = max(0, quantity)
	items := make([]LineItem, 0, len(s.Items))
	for _, l := range s.Items {
		if l.Product.ID == productID {
			l.Quantity = quantity
		}
		if l.Quantity > 0 {
			items = append(items, l)
		}
	}
	s.Items = items
	return s
}
