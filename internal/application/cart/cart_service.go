package cart

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/satyaprakrati/cozico/internal/domain/cart"
	"github.com/satyaprakrati/cozico/internal/domain/catalog"
	"github.com/satyaprakrati/cozico/internal/domain/shared"
	"github.com/satyaprakrati/cozico/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// Rejection reasons reported to CartMetrics
const (
	RejectOutOfStock        = "out_of_stock"
	RejectSelectionRequired = "selection_required"
	RejectInvalidOption     = "invalid_option"
	RejectQuantityLimit     = "quantity_limit"
)

// CartMetrics records cart outcomes that do not surface as domain events
type CartMetrics interface {
	RecordAddRejected(ctx context.Context, reason string)
	RecordCartValue(ctx context.Context, rupees float64)
}

// CartServiceOptions holds the storefront rules applied by the service
type CartServiceOptions struct {
	Pricing      Pricing
	EnforceStock bool
}

// CartService handles cart and wishlist use cases for a shopper session
type CartService struct {
	products  catalog.ProductRepository
	sessions  *SessionManager
	publisher shared.EventPublisher
	logger    *zap.Logger
	opts      CartServiceOptions
	metrics   CartMetrics
}

// NewCartService creates a new CartService. publisher may be nil.
func NewCartService(
	products catalog.ProductRepository,
	sessions *SessionManager,
	publisher shared.EventPublisher,
	logger *zap.Logger,
	opts CartServiceOptions,
) *CartService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.Pricing == (Pricing{}) {
		opts.Pricing = DefaultPricing()
	}
	return &CartService{
		products:  products,
		sessions:  sessions,
		publisher: publisher,
		logger:    logger,
		opts:      opts,
	}
}

// WithMetrics sets the recorder for cart outcomes
func (s *CartService) WithMetrics(m CartMetrics) *CartService {
	s.metrics = m
	return s
}

// Get returns the cart of a session
func (s *CartService) Get(ctx context.Context, sessionID uuid.UUID) (*CartResponse, error) {
	state, err := s.sessions.Snapshot(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return s.opts.Pricing.toCartResponse(sessionID.String(), state), nil
}

// Add commits a product detail selection to the cart.
// The size must be chosen, and the color too when the product offers colors.
func (s *CartService) Add(ctx context.Context, sessionID uuid.UUID, req AddItemRequest) (*CartResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "cart", "add",
		telemetry.SpanAttrSessionID.String(sessionID.String()),
		telemetry.SpanAttrProductID.String(req.ProductID),
	)
	defer span.End()

	product, err := s.purchasable(ctx, req.ProductID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	sel := catalog.NewSelection(*product)
	if err := sel.SelectSize(req.Size); err != nil {
		s.reject(ctx, RejectInvalidOption)
		return nil, err
	}
	if err := sel.SelectColor(req.Color); err != nil {
		s.reject(ctx, RejectInvalidOption)
		return nil, err
	}
	if req.Quantity > 0 {
		sel.SetQuantity(req.Quantity)
	}
	if err := sel.Validate(); err != nil {
		s.reject(ctx, RejectSelectionRequired)
		return nil, err
	}

	span.SetAttributes(telemetry.SpanAttrQuantity.Int(sel.Quantity()))
	return s.addSelection(ctx, sessionID, sel)
}

// QuickAdd adds one unit of a product from a product card, using its first
// size and first color.
func (s *CartService) QuickAdd(ctx context.Context, sessionID uuid.UUID, productID string) (*CartResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "cart", "quick_add",
		telemetry.SpanAttrSessionID.String(sessionID.String()),
		telemetry.SpanAttrProductID.String(productID),
	)
	defer span.End()

	product, err := s.purchasable(ctx, productID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	return s.addSelection(ctx, sessionID, catalog.QuickSelection(*product))
}

// UpdateQuantity sets the quantity of every line of a product.
// A quantity of zero or less removes them. Unknown products are a no-op.
func (s *CartService) UpdateQuantity(ctx context.Context, sessionID uuid.UUID, productID string, quantity int) (*CartResponse, error) {
	if quantity > cart.MaxLineQuantity {
		return nil, quantityLimit()
	}
	return s.dispatchCart(ctx, sessionID, cart.UpdateQuantity{ProductID: productID, Quantity: quantity})
}

// Remove deletes every line of a product
func (s *CartService) Remove(ctx context.Context, sessionID uuid.UUID, productID string) (*CartResponse, error) {
	return s.dispatchCart(ctx, sessionID, cart.RemoveFromCart{ProductID: productID})
}

// Clear empties the cart and keeps the wishlist
func (s *CartService) Clear(ctx context.Context, sessionID uuid.UUID) (*CartResponse, error) {
	return s.dispatchCart(ctx, sessionID, cart.ClearCart{})
}

// Wishlist returns the wishlist of a session
func (s *CartService) Wishlist(ctx context.Context, sessionID uuid.UUID) (*WishlistResponse, error) {
	state, err := s.sessions.Snapshot(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return toWishlistResponse(sessionID.String(), state), nil
}

// AddToWishlist saves a product. Saving it twice keeps one entry.
func (s *CartService) AddToWishlist(ctx context.Context, sessionID uuid.UUID, productID string) (*WishlistResponse, error) {
	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	t, err := s.dispatch(ctx, sessionID, cart.AddToWishlist{Product: *product})
	if err != nil {
		return nil, err
	}
	return toWishlistResponse(sessionID.String(), t.Next), nil
}

// RemoveFromWishlist drops a product from the wishlist
func (s *CartService) RemoveFromWishlist(ctx context.Context, sessionID uuid.UUID, productID string) (*WishlistResponse, error) {
	t, err := s.dispatch(ctx, sessionID, cart.RemoveFromWishlist{ProductID: productID})
	if err != nil {
		return nil, err
	}
	return toWishlistResponse(sessionID.String(), t.Next), nil
}

// ToggleWishlist is the heart button: it removes a saved product and saves
// an unsaved one. Concurrent toggles of a session apply one after another.
func (s *CartService) ToggleWishlist(ctx context.Context, sessionID uuid.UUID, productID string) (*WishlistToggleResponse, error) {
	product, lookupErr := s.products.FindByID(ctx, productID)
	if lookupErr != nil && !errors.Is(lookupErr, shared.ErrNotFound) {
		return nil, lookupErr
	}

	t, err := s.update(ctx, sessionID, func(state cart.State) (cart.Action, error) {
		if state.IsInWishlist(productID) {
			return cart.RemoveFromWishlist{ProductID: productID}, nil
		}
		if lookupErr != nil {
			return nil, lookupErr
		}
		return cart.AddToWishlist{Product: *product}, nil
	})
	if err != nil {
		return nil, err
	}

	return &WishlistToggleResponse{
		ProductID:  productID,
		InWishlist: t.Next.IsInWishlist(productID),
		Wishlist:   *toWishlistResponse(sessionID.String(), t.Next),
	}, nil
}

// Watch streams the cart of a session after every change. The channel
// holds the latest cart only; a slow reader skips intermediate states.
// Call stop when done; the channel is never closed.
func (s *CartService) Watch(ctx context.Context, sessionID uuid.UUID) (updates <-chan *CartResponse, stop func(), err error) {
	store, err := s.sessions.Store(ctx, sessionID)
	if err != nil {
		return nil, nil, err
	}

	ch := make(chan *CartResponse, 1)
	stop = store.Subscribe(func(t cart.Transition) {
		resp := s.opts.Pricing.toCartResponse(sessionID.String(), t.Next)
		select {
		case ch <- resp:
		default:
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- resp:
			default:
			}
		}
	})
	return ch, stop, nil
}

func (s *CartService) purchasable(ctx context.Context, productID string) (*catalog.Product, error) {
	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if s.opts.EnforceStock && !product.InStock {
		s.reject(ctx, RejectOutOfStock)
		return nil, shared.ErrOutOfStock
	}
	return product, nil
}

// addSelection merges the selection into the cart unless the line would
// exceed cart.MaxLineQuantity.
func (s *CartService) addSelection(ctx context.Context, sessionID uuid.UUID, sel *catalog.Selection) (*CartResponse, error) {
	item := cart.NewLineItem(sel.Product(), sel.Size(), sel.Color(), sel.Quantity())
	t, err := s.update(ctx, sessionID, func(state cart.State) (cart.Action, error) {
		total := item.Quantity
		if line, ok := state.Line(item.Key()); ok {
			total += line.Quantity
		}
		if total > cart.MaxLineQuantity {
			s.reject(ctx, RejectQuantityLimit)
			return nil, quantityLimit()
		}
		return cart.AddToCart{Item: item}, nil
	})
	if err != nil {
		return nil, err
	}

	resp := s.opts.Pricing.toCartResponse(sessionID.String(), t.Next)
	if s.metrics != nil {
		total, _ := resp.Summary.Subtotal.Amount.Float64()
		s.metrics.RecordCartValue(ctx, total)
	}
	return resp, nil
}

func (s *CartService) dispatchCart(ctx context.Context, sessionID uuid.UUID, action cart.Action) (*CartResponse, error) {
	t, err := s.dispatch(ctx, sessionID, action)
	if err != nil {
		return nil, err
	}
	return s.opts.Pricing.toCartResponse(sessionID.String(), t.Next), nil
}

// dispatch applies an action and publishes the resulting domain events
func (s *CartService) dispatch(ctx context.Context, sessionID uuid.UUID, action cart.Action) (cart.Transition, error) {
	return s.update(ctx, sessionID, func(cart.State) (cart.Action, error) {
		return action, nil
	})
}

// update is dispatch with the action chosen from the session's current
// state; see SessionManager.DispatchWith.
func (s *CartService) update(ctx context.Context, sessionID uuid.UUID, decide func(cart.State) (cart.Action, error)) (cart.Transition, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "cart", "dispatch",
		telemetry.SpanAttrSessionID.String(sessionID.String()),
	)
	defer span.End()

	var action cart.Action
	t, err := s.sessions.DispatchWith(ctx, sessionID, func(state cart.State) (cart.Action, error) {
		a, err := decide(state)
		action = a
		return a, err
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return cart.Transition{}, err
	}
	span.SetAttributes(telemetry.SpanAttrAction.String(action.Name()))

	if s.publisher != nil {
		if events := cart.EventsFor(sessionID, t); len(events) > 0 {
			if err := s.publisher.Publish(ctx, events...); err != nil {
				s.logger.Warn("failed to publish cart events",
					zap.String("session_id", sessionID.String()),
					zap.String("action", action.Name()),
					zap.Error(err),
				)
			}
		}
	}
	return t, nil
}

func (s *CartService) reject(ctx context.Context, reason string) {
	if s.metrics != nil {
		s.metrics.RecordAddRejected(ctx, reason)
	}
}

func quantityLimit() error {
	return shared.ErrQuantityLimit.WithMessagef("At most %d of an item can be added to the cart", cart.MaxLineQuantity)
}
