package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func okHandler(body string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.String(http.StatusOK, body)
	}
}

func serve(engine *gin.Engine, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(method, path, nil))
	return w
}

func TestAPIBase(t *testing.T) {
	assert.Equal(t, "/api/v1", API{}.Base())
	assert.Equal(t, "/api/v2", API{Version: "v2"}.Base())
}

func TestAPIMountVersion(t *testing.T) {
	engine := gin.New()
	API{Version: "v2"}.Mount(engine, Area{Prefix: "/catalog", Routes: []Route{
		get("/products", okHandler("v2")),
	}})

	assert.Equal(t, http.StatusOK, serve(engine, http.MethodGet, "/api/v2/catalog/products").Code)
	assert.Equal(t, http.StatusNotFound, serve(engine, http.MethodGet, "/api/v1/catalog/products").Code)
}

func TestAPIMiddlewareStaysUnderPrefix(t *testing.T) {
	engine := gin.New()
	engine.GET("/health", okHandler("ok"))

	tag := func(c *gin.Context) {
		c.Header("X-Api", "1")
		c.Next()
	}
	API{Middleware: []gin.HandlerFunc{tag}}.Mount(engine, Area{Prefix: "/cart", Routes: []Route{
		get("", okHandler("cart")),
	}})

	assert.Equal(t, "1", serve(engine, http.MethodGet, "/api/v1/cart").Header().Get("X-Api"))
	assert.Empty(t, serve(engine, http.MethodGet, "/health").Header().Get("X-Api"))
}

func TestAreaMethods(t *testing.T) {
	engine := gin.New()
	API{}.Mount(engine, Area{Name: "cart", Prefix: "/cart", Routes: []Route{
		get("", okHandler("get")),
		post("/items", okHandler("post")),
		put("/items/:productId", okHandler("put")),
		del("/items/:productId", okHandler("delete")),
	}})

	cases := []struct {
		method string
		path   string
		body   string
	}{
		{http.MethodGet, "/api/v1/cart", "get"},
		{http.MethodPost, "/api/v1/cart/items", "post"},
		{http.MethodPut, "/api/v1/cart/items/p1", "put"},
		{http.MethodDelete, "/api/v1/cart/items/p1", "delete"},
	}
	for _, tc := range cases {
		t.Run(tc.method, func(t *testing.T) {
			w := serve(engine, tc.method, tc.path)
			require.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, tc.body, w.Body.String())
		})
	}
}

func TestAreaChildrenInheritMiddleware(t *testing.T) {
	engine := gin.New()
	catalog := Area{
		Prefix: "/catalog",
		Middleware: []gin.HandlerFunc{func(c *gin.Context) {
			c.Header("X-Area", "catalog")
			c.Next()
		}},
		Routes: []Route{get("/products", okHandler("products"))},
		Children: []Area{{Prefix: "/collections", Routes: []Route{
			get("/:id", okHandler("collection")),
		}}},
	}
	API{}.Mount(engine, catalog)

	w := serve(engine, http.MethodGet, "/api/v1/catalog/collections/summer")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "collection", w.Body.String())
	assert.Equal(t, "catalog", w.Header().Get("X-Area"))
}

func TestAreaEndpoints(t *testing.T) {
	area := Area{
		Prefix: "/catalog",
		Routes: []Route{get("/products"), get("/products/:id")},
		Children: []Area{{Prefix: "/collections", Routes: []Route{
			get(""),
		}}},
	}

	assert.Equal(t, []string{
		"GET /api/v1/catalog/products",
		"GET /api/v1/catalog/products/:id",
		"GET /api/v1/catalog/collections",
	}, area.Endpoints("/api/v1"))
}

func TestStorefrontAreasHaveUniqueEndpoints(t *testing.T) {
	seen := map[string]bool{}
	for _, a := range storefrontAreas(Handlers{}) {
		for _, e := range a.Endpoints("/api/v1") {
			assert.False(t, seen[e], "duplicate endpoint %s", e)
			seen[e] = true
		}
	}
	assert.True(t, seen["POST /api/v1/cart/quick-add"])
	assert.True(t, seen["GET /api/v1/home"])
}
