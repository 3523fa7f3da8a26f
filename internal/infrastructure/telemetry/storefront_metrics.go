package telemetry

import (
	"context"

	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// SessionCounter reports how many shopper sessions are held in memory
type SessionCounter interface {
	ActiveSessions() int
}

// StorefrontMetricsConfig configures NewStorefrontMetrics.
type StorefrontMetricsConfig struct {
	Meter    metric.Meter
	Logger   *zap.Logger
	Sessions SessionCounter // optional
}

// StorefrontMetrics records cart, wishlist and catalog activity.
type StorefrontMetrics struct {
	logger *zap.Logger

	cartUnitsAdded   *Counter
	cartUnitsRemoved *Counter
	cartCleared      *Counter
	wishlistChanges  *Counter
	rejectedAdds     *Counter
	catalogQueries   *Counter
	cartValue        *Histogram
	activeSessions   metric.Int64ObservableGauge
	registration     metric.Registration
}

// NewStorefrontMetrics creates the storefront instruments.
func NewStorefrontMetrics(cfg StorefrontMetricsConfig) (*StorefrontMetrics, error) {
	if cfg.Meter == nil {
		return nil, ErrMeterNil
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	m := &StorefrontMetrics{logger: logger}

	counters := []struct {
		target **Counter
		Instrument
	}{
		{&m.cartUnitsAdded, Instrument{Name: "cozico_cart_units_added_total", Description: "Units added to carts", Unit: "{units}"}},
		{&m.cartUnitsRemoved, Instrument{Name: "cozico_cart_units_removed_total", Description: "Units removed from carts", Unit: "{units}"}},
		{&m.cartCleared, Instrument{Name: "cozico_cart_cleared_total", Description: "Carts emptied by the shopper", Unit: "{carts}"}},
		{&m.wishlistChanges, Instrument{Name: "cozico_wishlist_changes_total", Description: "Wishlist additions and removals", Unit: "{changes}"}},
		{&m.rejectedAdds, Instrument{Name: "cozico_cart_add_rejected_total", Description: "Add-to-cart attempts rejected before dispatch", Unit: "{attempts}"}},
		{&m.catalogQueries, Instrument{Name: "cozico_catalog_queries_total", Description: "Product listing queries", Unit: "{queries}"}},
	}
	for _, c := range counters {
		counter, err := c.Counter(cfg.Meter)
		if err != nil {
			return nil, err
		}
		*c.target = counter
	}

	var err error
	m.cartValue, err = Instrument{
		Name:        "cozico_cart_value_rupees",
		Description: "Cart total after each cart change",
		Unit:        "INR",
		Buckets:     CartValueBuckets,
	}.Histogram(cfg.Meter)
	if err != nil {
		return nil, err
	}

	if cfg.Sessions != nil {
		m.activeSessions, err = cfg.Meter.Int64ObservableGauge(
			"cozico_active_sessions",
			metric.WithDescription("Shopper sessions held in memory"),
			metric.WithUnit("{sessions}"),
		)
		if err != nil {
			return nil, err
		}
		sessions := cfg.Sessions
		m.registration, err = cfg.Meter.RegisterCallback(func(_ context.Context, o metric.Observer) error {
			o.ObserveInt64(m.activeSessions, int64(sessions.ActiveSessions()))
			return nil
		}, m.activeSessions)
		if err != nil {
			return nil, err
		}
	}

	return m, nil
}

// RecordUnitsAdded records units added for a product
func (m *StorefrontMetrics) RecordUnitsAdded(ctx context.Context, productID, category string, units int) {
	m.cartUnitsAdded.Add(ctx, int64(units), AttrProductID.String(productID), AttrCategory.String(category))
}

// RecordUnitsRemoved records units leaving carts through remove or update
func (m *StorefrontMetrics) RecordUnitsRemoved(ctx context.Context, action string, units int) {
	if units <= 0 {
		return
	}
	m.cartUnitsRemoved.Add(ctx, int64(units), AttrCartAction.String(action))
}

// RecordCartCleared records an emptied cart
func (m *StorefrontMetrics) RecordCartCleared(ctx context.Context) {
	m.cartCleared.Inc(ctx)
}

// RecordWishlistChange records a wishlist add or remove
func (m *StorefrontMetrics) RecordWishlistChange(ctx context.Context, action string) {
	m.wishlistChanges.Inc(ctx, AttrCartAction.String(action))
}

// RecordAddRejected records an add refused for reason (selection, stock, ...)
func (m *StorefrontMetrics) RecordAddRejected(ctx context.Context, reason string) {
	m.rejectedAdds.Inc(ctx, AttrReason.String(reason))
}

// RecordCatalogQuery records a listing query by its sort key
func (m *StorefrontMetrics) RecordCatalogQuery(ctx context.Context, sort string) {
	m.catalogQueries.Inc(ctx, AttrSortKey.String(sort))
}

// RecordCartValue records the cart total in rupees
func (m *StorefrontMetrics) RecordCartValue(ctx context.Context, rupees float64) {
	m.cartValue.Record(ctx, rupees)
}

// Stop unregisters the session gauge callback
func (m *StorefrontMetrics) Stop() {
	if m.registration == nil {
		return
	}
	if err := m.registration.Unregister(); err != nil {
		m.logger.Warn("failed to unregister metrics callback", zap.Error(err))
	}
}
