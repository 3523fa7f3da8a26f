package cart

import (
	"context"
	"fmt"

	"github.com/satyaprakrati/cozico/internal/domain/cart"
	"github.com/satyaprakrati/cozico/internal/domain/catalog"
	"github.com/satyaprakrati/cozico/internal/domain/shared"
	"go.uber.org/zap"
)

// ActivityRecorder records shopper activity derived from cart events
type ActivityRecorder interface {
	RecordUnitsAdded(ctx context.Context, productID, category string, units int)
	RecordUnitsRemoved(ctx context.Context, action string, units int)
	RecordCartCleared(ctx context.Context)
	RecordWishlistChange(ctx context.Context, action string)
}

// CartActivityHandler logs cart and wishlist events and turns them into
// business metrics
type CartActivityHandler struct {
	logger   *zap.Logger
	products catalog.ProductRepository
	recorder ActivityRecorder
}

// NewCartActivityHandler creates a new handler for cart events.
// products resolves categories for the units-added metric and may be nil.
func NewCartActivityHandler(logger *zap.Logger, products catalog.ProductRepository) *CartActivityHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CartActivityHandler{logger: logger, products: products}
}

// WithRecorder sets the metrics recorder
func (h *CartActivityHandler) WithRecorder(r ActivityRecorder) *CartActivityHandler {
	h.recorder = r
	return h
}

// EventTypes returns the event types this handler is interested in
func (h *CartActivityHandler) EventTypes() []string {
	return []string{
		cart.EventTypeItemAdded,
		cart.EventTypeItemRemoved,
		cart.EventTypeQuantityUpdated,
		cart.EventTypeCartCleared,
		cart.EventTypeWishlistItemAdded,
		cart.EventTypeWishlistItemRemoved,
	}
}

// Handle processes a cart or wishlist event
func (h *CartActivityHandler) Handle(ctx context.Context, event shared.Event) error {
	log := h.logger.With(
		zap.String("event_type", event.EventType()),
		zap.String("event_id", event.EventID().String()),
		zap.String("session_id", event.ShopperSession().String()),
	)

	switch e := event.(type) {
	case *cart.ItemAddedEvent:
		log.Info("item added to cart",
			zap.String("product_id", e.ProductID),
			zap.String("size", e.Size),
			zap.String("color", e.Color),
			zap.Int("quantity", e.Quantity),
			zap.Int("line_quantity", e.LineQuantity),
			zap.Bool("new_line", e.NewLine),
		)
		if h.recorder != nil {
			h.recorder.RecordUnitsAdded(ctx, e.ProductID, h.category(ctx, e.ProductID), e.Quantity)
		}
	case *cart.ItemRemovedEvent:
		log.Info("item removed from cart",
			zap.String("product_id", e.ProductID),
			zap.Int("lines_removed", e.LinesRemoved),
			zap.Int("units_removed", e.UnitsRemoved),
		)
		if h.recorder != nil {
			h.recorder.RecordUnitsRemoved(ctx, "remove", e.UnitsRemoved)
		}
	case *cart.QuantityUpdatedEvent:
		log.Info("cart quantity updated",
			zap.String("product_id", e.ProductID),
			zap.Int("quantity", e.Quantity),
			zap.Int("lines_removed", e.LinesRemoved),
		)
	case *cart.CartClearedEvent:
		log.Info("cart cleared",
			zap.Int("lines_cleared", e.LinesCleared),
			zap.Int("units_cleared", e.UnitsCleared),
		)
		if h.recorder != nil {
			h.recorder.RecordUnitsRemoved(ctx, "clear", e.UnitsCleared)
			h.recorder.RecordCartCleared(ctx)
		}
	case *cart.WishlistItemAddedEvent:
		log.Info("product saved to wishlist", zap.String("product_id", e.ProductID))
		if h.recorder != nil {
			h.recorder.RecordWishlistChange(ctx, "add")
		}
	case *cart.WishlistItemRemovedEvent:
		log.Info("product removed from wishlist", zap.String("product_id", e.ProductID))
		if h.recorder != nil {
			h.recorder.RecordWishlistChange(ctx, "remove")
		}
	default:
		log.Error("unexpected event type")
		return fmt.Errorf("unexpected event type: %s", event.EventType())
	}
	return nil
}

func (h *CartActivityHandler) category(ctx context.Context, productID string) string {
	if h.products == nil {
		return "unknown"
	}
	p, err := h.products.FindByID(ctx, productID)
	if err != nil {
		return "unknown"
	}
	return p.CategorySlug()
}
