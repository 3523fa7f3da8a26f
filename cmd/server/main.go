package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	cartapp "github.com/satyaprakrati/cozico/internal/application/cart"
	catalogapp "github.com/satyaprakrati/cozico/internal/application/catalog"
	"github.com/satyaprakrati/cozico/internal/domain/shared/valueobject"
	"github.com/satyaprakrati/cozico/internal/infrastructure/cache"
	"github.com/satyaprakrati/cozico/internal/infrastructure/config"
	"github.com/satyaprakrati/cozico/internal/infrastructure/event"
	"github.com/satyaprakrati/cozico/internal/infrastructure/logger"
	"github.com/satyaprakrati/cozico/internal/infrastructure/persistence"
	"github.com/satyaprakrati/cozico/internal/infrastructure/telemetry"
	"github.com/satyaprakrati/cozico/internal/interfaces/http/handler"
	"github.com/satyaprakrati/cozico/internal/interfaces/http/middleware"
	"github.com/satyaprakrati/cozico/internal/interfaces/http/router"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	logCfg := &logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	}
	bootLog, err := logger.New(logCfg)
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Telemetry providers log through the boot logger; the final logger also
	// ships entries to the collector when OTEL logs are on.
	tel, err := telemetry.Setup(ctx, telemetryOptions(cfg), bootLog)
	if err != nil {
		bootLog.Fatal("Failed to initialize telemetry", zap.Error(err))
	}
	log, err := logger.New(logCfg, tel.Logs.ZapCore(logger.ParseLevel(cfg.Log.Level)))
	if err != nil {
		bootLog.Fatal("Failed to initialize logger", zap.Error(err))
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting Cozico storefront",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("version", version),
	)

	err = run(ctx, cfg, log, tel)
	if err != nil {
		log.Error("Server stopped with error", zap.Error(err))
	}
	flushCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	if serr := tel.Shutdown(flushCtx); serr != nil {
		log.Warn("Telemetry shutdown incomplete", zap.Error(serr))
	}
	cancel()
	if err != nil {
		os.Exit(1)
	}
	log.Info("Server exited gracefully")
}

func telemetryOptions(cfg *config.Config) telemetry.Options {
	t := cfg.Telemetry
	base := telemetry.Signal{
		Enabled:     t.Enabled,
		Endpoint:    t.CollectorEndpoint,
		Insecure:    t.Insecure,
		ServiceName: t.ServiceName,
		Version:     version,
		Environment: cfg.App.Env,
	}
	metrics, logs := base, base
	metrics.Enabled = t.Enabled && t.MetricsEnabled
	logs.Enabled = t.Enabled && t.LogsEnabled

	return telemetry.Options{
		Traces:  telemetry.TracesConfig{Signal: base, SamplingRatio: t.SamplingRatio},
		Metrics: telemetry.MetricsConfig{Signal: metrics, ExportInterval: t.MetricsInterval},
		Logs:    telemetry.LogsConfig{Signal: logs},
		Profiler: telemetry.ProfilerConfig{
			Enabled:           cfg.Profiling.Enabled,
			ServerAddress:     cfg.Profiling.ServerAddress,
			ApplicationName:   t.ServiceName,
			Environment:       cfg.App.Env,
			BasicAuthUser:     cfg.Profiling.BasicAuthUser,
			BasicAuthPassword: cfg.Profiling.BasicAuthPassword,
		},
		SpanProfiles: cfg.Profiling.SpanProfiles,
	}
}

func run(ctx context.Context, cfg *config.Config, log *zap.Logger, tel *telemetry.Providers) error {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Catalog
	catalogRepo, err := persistence.NewStaticCatalogRepository()
	if err != nil {
		return err
	}

	// Cart snapshots; Redis when configured, memory otherwise
	snapshots, err := cache.NewSnapshotStoreFactory(cfg.Redis, cfg.Session.SnapshotTTL,
		cache.WithLogger(log),
		cache.WithInMemoryFallback(!cfg.IsProduction()),
	).CreateStore()
	if err != nil {
		return err
	}
	defer func() {
		if err := snapshots.Close(); err != nil {
			log.Error("Error closing snapshot store", zap.Error(err))
		}
	}()

	sessions := cartapp.NewSessionManager(snapshots, log, cartapp.SessionOptions{
		IdleTTL:         cfg.Session.IdleTTL,
		JanitorInterval: cfg.Session.JanitorInterval,
	})

	metrics, err := telemetry.NewStorefrontMetrics(telemetry.StorefrontMetricsConfig{
		Meter:    tel.Meter.Meter("cozico.storefront"),
		Logger:   log,
		Sessions: sessions,
	})
	if err != nil {
		return err
	}
	defer metrics.Stop()

	// Event bus; cart activity feeds the storefront metrics
	eventBus := event.NewBus(log, event.WithAsyncDelivery(1024, 2))
	eventBus.Subscribe(cartapp.NewCartActivityHandler(log, catalogRepo).WithRecorder(metrics))
	if err := eventBus.Start(ctx); err != nil {
		return err
	}
	defer func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := eventBus.Stop(stopCtx); err != nil {
			log.Warn("Event bus did not drain", zap.Error(err))
		}
	}()

	// Application services
	productService := catalogapp.NewProductService(catalogRepo, catalogRepo, catalogRepo, catalogapp.ProductServiceOptions{
		RelatedLimit:  cfg.Catalog.RelatedLimit,
		TrendingLimit: cfg.Catalog.TrendingLimit,
	}).WithQueryRecorder(metrics)
	cartService := cartapp.NewCartService(catalogRepo, sessions, eventBus, log, cartapp.CartServiceOptions{
		Pricing: cartapp.Pricing{
			FreeShippingThreshold: valueobject.Rupees(cfg.Catalog.FreeShippingThreshold),
			ShippingFee:           valueobject.Rupees(cfg.Catalog.ShippingFee),
		},
		EnforceStock: cfg.Catalog.EnforceStock,
	}).WithMetrics(metrics)

	// Handlers
	stream := handler.NewCartStreamHandler(cartService, handler.WithStreamLogger(log))
	handlers := router.Handlers{
		Catalog:  handler.NewCatalogHandler(productService),
		Cart:     handler.NewCartHandler(cartService),
		Wishlist: handler.NewWishlistHandler(cartService),
		Stream:   stream,
		Pages:    handler.NewPageHandler(),
		System: handler.NewSystemHandler(cfg.App.Name, version, map[string]handler.Pinger{
			"snapshots": snapshots,
		}),
	}

	var limiter *middleware.RateLimiter
	if cfg.HTTP.RateLimitEnabled {
		limiter = middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow, cfg.HTTP.RateLimitBurst)
	}

	engine, err := router.NewEngine(handlers, engineOptions(cfg, log, tel, limiter))
	if err != nil {
		return err
	}

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		return sessions.Run(gctx)
	})
	if limiter != nil {
		g.Go(func() error {
			return limiter.Run(gctx)
		})
	}
	g.Go(func() error {
		<-gctx.Done()
		log.Info("Shutting down server...")

		// Open cart streams never finish on their own
		stream.Stop()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func engineOptions(cfg *config.Config, log *zap.Logger, tel *telemetry.Providers, limiter *middleware.RateLimiter) router.Options {
	cors := middleware.DefaultCORSConfig()
	cors.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		cors.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		cors.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}

	profiling := middleware.DefaultProfilingConfig()
	profiling.Enabled = tel.Profiler.IsEnabled()

	return router.Options{
		Logger:       log,
		CORS:         cors,
		MaxBodyBytes: cfg.HTTP.MaxBodySize,
		Session: middleware.SessionConfig{
			HeaderName:   cfg.Session.HeaderName,
			CookieName:   cfg.Session.CookieName,
			CookieMaxAge: cfg.Session.CookieMaxAge,
			CookieSecure: cfg.Session.CookieSecure,
		},
		RateLimiter: limiter,
		Tracing: middleware.TracingConfig{
			ServiceName: cfg.Telemetry.ServiceName,
			Enabled:     tel.Tracer.IsEnabled(),
		},
		Metrics: middleware.HTTPMetricsConfig{
			MeterProvider: tel.Meter,
			Enabled:       tel.Meter.IsEnabled(),
			Logger:        log,
		},
		Profiling:      profiling,
		TrustedProxies: cfg.HTTP.TrustedProxies,
	}
}
