package middleware

import (
	"net/http"
	"net/http/httptest"
	"runtime/pprof"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturedLabels struct {
	handler, route, method string
	labelled               bool
}

func newProfilingRouter(cfg ProfilingConfig, got *capturedLabels) *gin.Engine {
	capture := func(c *gin.Context) {
		ctx := c.Request.Context()
		got.handler, got.labelled = pprof.Label(ctx, "area")
		got.route, _ = pprof.Label(ctx, "route")
		got.method, _ = pprof.Label(ctx, "method")
		c.Status(http.StatusOK)
	}

	router := gin.New()
	router.Use(Profiling(cfg))
	router.GET("/api/v1/catalog/products/:id", capture)
	router.POST("/api/v1/cart/items", capture)
	router.DELETE("/api/v1/cart/items/:productId", capture)
	router.GET("/api/v1/cart/stream", capture)
	router.GET("/health", capture)
	return router
}

func TestProfilingAddsLabels(t *testing.T) {
	tests := []struct {
		method, path, handler, route string
	}{
		{http.MethodGet, "/api/v1/catalog/products/leather-derby-shoes", "catalog", "/api/v1/catalog/products/:id"},
		{http.MethodPost, "/api/v1/cart/items", "cart", "/api/v1/cart/items"},
		{http.MethodDelete, "/api/v1/cart/items/linen-casual-suit", "cart", "/api/v1/cart/items/:productId"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			var got capturedLabels
			router := newProfilingRouter(DefaultProfilingConfig(), &got)

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(tt.method, tt.path, nil))

			require.Equal(t, http.StatusOK, w.Code)
			require.True(t, got.labelled)
			assert.Equal(t, tt.handler, got.handler)
			assert.Equal(t, tt.route, got.route)
			assert.Equal(t, tt.method, got.method)
		})
	}
}

func TestProfilingSkips(t *testing.T) {
	for _, path := range []string{"/health", "/api/v1/cart/stream"} {
		t.Run(path, func(t *testing.T) {
			var got capturedLabels
			router := newProfilingRouter(DefaultProfilingConfig(), &got)

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))

			assert.Equal(t, http.StatusOK, w.Code)
			assert.False(t, got.labelled)
		})
	}
}

func TestProfilingDisabled(t *testing.T) {
	var got capturedLabels
	router := newProfilingRouter(ProfilingConfig{Enabled: false}, &got)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/catalog/products/x", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.False(t, got.labelled)
}

func TestAreaOf(t *testing.T) {
	tests := map[string]string{
		"/api/v1/catalog/products":      "catalog",
		"/api/v1/catalog/products/:id":  "catalog",
		"/api/v1/cart/items/:productId": "cart",
		"/api/v2/wishlist/toggle":       "wishlist",
		"/api/V3/home":                  "home",
		"/health":                       "health",
		"/api/v1/:category":             "",
		"/api/v1/pages/*slug":           "pages",
		"/api/version/products":         "api",
		"":                              "",
	}
	for route, want := range tests {
		assert.Equal(t, want, areaOf(route), "route %q", route)
	}
}

func TestSkipped(t *testing.T) {
	patterns := []string{"/health", "/api/v1/cart/stream*"}

	assert.True(t, skipped("/health", patterns))
	assert.False(t, skipped("/health/deep", patterns))
	assert.True(t, skipped("/api/v1/cart/stream", patterns))
	assert.True(t, skipped("/api/v1/cart/stream/x", patterns))
	assert.False(t, skipped("/api/v1/cart", patterns))
}
