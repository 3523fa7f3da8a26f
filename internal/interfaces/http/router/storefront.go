package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/satyaprakrati/cozico/internal/infrastructure/logger"
	"github.com/satyaprakrati/cozico/internal/interfaces/http/dto"
	"github.com/satyaprakrati/cozico/internal/interfaces/http/handler"
	"github.com/satyaprakrati/cozico/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

// Handlers are the storefront handlers mounted by NewEngine
type Handlers struct {
	Catalog  *handler.CatalogHandler
	Cart     *handler.CartHandler
	Wishlist *handler.WishlistHandler
	Stream   *handler.CartStreamHandler
	Pages    *handler.PageHandler
	System   *handler.SystemHandler
}

// Options configures the middleware chain
type Options struct {
	Logger         *zap.Logger
	CORS           middleware.CORSConfig
	MaxBodyBytes   int64
	Session        middleware.SessionConfig
	RateLimiter    *middleware.RateLimiter // nil disables rate limiting
	Tracing        middleware.TracingConfig
	Metrics        middleware.HTTPMetricsConfig
	Profiling      middleware.ProfilingConfig
	TrustedProxies []string
}

// NewEngine builds the gin engine with the full middleware chain and every
// storefront route. Health and readiness live outside /api and skip the
// session and rate limit middleware.
func NewEngine(h Handlers, opts Options) (*gin.Engine, error) {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	engine := gin.New()
	if err := engine.SetTrustedProxies(opts.TrustedProxies); err != nil {
		return nil, err
	}
	middleware.SetupValidator()

	engine.Use(
		middleware.RequestID(),
		logger.GinMiddleware(log),
		logger.Recovery(log),
		middleware.Tracing(opts.Tracing),
		middleware.SpanErrorMarker(),
		middleware.HTTPMetrics(opts.Metrics),
		middleware.Profiling(opts.Profiling),
		middleware.CORSWithConfig(opts.CORS),
		middleware.Secure(),
		middleware.BodyLimit(opts.MaxBodyBytes),
	)
	engine.NoRoute(func(c *gin.Context) {
		middleware.Abort(c, http.StatusNotFound, dto.ErrCodeNotFound, "Route not found")
	})

	engine.GET("/health", h.System.Health)
	engine.GET("/ready", h.System.Ready)

	apiMiddleware := []gin.HandlerFunc{middleware.Session(opts.Session)}
	if opts.RateLimiter != nil {
		apiMiddleware = append(apiMiddleware, middleware.RateLimit(opts.RateLimiter))
	}

	api := API{Middleware: apiMiddleware}
	areas := storefrontAreas(h)
	api.Mount(engine, areas...)

	if ce := log.Check(zap.DebugLevel, "storefront routes mounted"); ce != nil {
		var endpoints []string
		for _, a := range areas {
			endpoints = append(endpoints, a.Endpoints(api.Base())...)
		}
		ce.Write(zap.Strings("endpoints", endpoints))
	}
	return engine, nil
}

func storefrontAreas(h Handlers) []Area {
	return []Area{
		{Name: "home", Prefix: "/home", Routes: []Route{
			get("", h.Catalog.Home),
		}},
		{Name: "catalog", Prefix: "/catalog", Routes: []Route{
			get("/products", h.Catalog.ListProducts),
			get("/products/:id", h.Catalog.GetProduct),
			get("/best-sellers", h.Catalog.BestSellers),
			get("/trending-shoes", h.Catalog.TrendingShoes),
			get("/categories", h.Catalog.Categories),
			get("/navigation", h.Catalog.Navigation),
			get("/collections", h.Catalog.ListCollections),
			get("/collections/:id", h.Catalog.GetCollection),
		}},
		// Item routes are keyed by product id and act on every size and
		// color of the product.
		{Name: "cart", Prefix: "/cart", Routes: []Route{
			get("", h.Cart.Get),
			del("", h.Cart.Clear),
			get("/stream", h.Stream.Stream),
			post("/items", h.Cart.AddItem),
			post("/quick-add", h.Cart.QuickAdd),
			put("/items/:productId", h.Cart.UpdateQuantity),
			del("/items/:productId", h.Cart.RemoveItem),
		}},
		{Name: "wishlist", Prefix: "/wishlist", Routes: []Route{
			get("", h.Wishlist.Get),
			post("/items", h.Wishlist.Add),
			post("/toggle", h.Wishlist.Toggle),
			del("/items/:productId", h.Wishlist.Remove),
		}},
		{Name: "pages", Prefix: "/pages", Routes: []Route{
			get("/:slug", h.Pages.Get),
		}},
		{Name: "system", Prefix: "/system", Routes: []Route{
			get("/info", h.System.Info),
		}},
	}
}
