package handler

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	appcart "github.com/satyaprakrati/cozico/internal/application/cart"
	appcatalog "github.com/satyaprakrati/cozico/internal/application/catalog"
	"github.com/satyaprakrati/cozico/internal/infrastructure/persistence"
	"github.com/satyaprakrati/cozico/internal/interfaces/http/middleware"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
	middleware.SetupValidator()
}

// envelope mirrors dto.Response with a raw payload
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code      string `json:"code"`
		Message   string `json:"message"`
		RequestID string `json:"request_id"`
		Details   []struct {
			Field   string `json:"field"`
			Message string `json:"message"`
		} `json:"details"`
	} `json:"error"`
	Meta *struct {
		Total int `json:"total"`
	} `json:"meta"`
}

type testAPI struct {
	t       *testing.T
	router  *gin.Engine
	carts   *appcart.CartService
	stream  *CartStreamHandler
	session string
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()

	repo, err := persistence.NewStaticCatalogRepository()
	require.NoError(t, err)

	products := appcatalog.NewProductService(repo, repo, repo, appcatalog.ProductServiceOptions{})
	sessions := appcart.NewSessionManager(nil, zap.NewNop(), appcart.SessionOptions{})
	carts := appcart.NewCartService(repo, sessions, nil, zap.NewNop(), appcart.CartServiceOptions{
		Pricing:      appcart.DefaultPricing(),
		EnforceStock: true,
	})

	catalogHandler := NewCatalogHandler(products)
	cartHandler := NewCartHandler(carts)
	wishlistHandler := NewWishlistHandler(carts)
	stream := NewCartStreamHandler(carts)
	t.Cleanup(stream.Stop)

	router := gin.New()
	router.Use(middleware.RequestID(), middleware.Session(middleware.DefaultSessionConfig()))

	v1 := router.Group("/api/v1")
	v1.GET("/home", catalogHandler.Home)
	v1.GET("/catalog/products", catalogHandler.ListProducts)
	v1.GET("/catalog/products/:id", catalogHandler.GetProduct)
	v1.GET("/catalog/best-sellers", catalogHandler.BestSellers)
	v1.GET("/catalog/trending-shoes", catalogHandler.TrendingShoes)
	v1.GET("/catalog/categories", catalogHandler.Categories)
	v1.GET("/catalog/navigation", catalogHandler.Navigation)
	v1.GET("/catalog/collections", catalogHandler.ListCollections)
	v1.GET("/catalog/collections/:id", catalogHandler.GetCollection)
	v1.GET("/cart", cartHandler.Get)
	v1.DELETE("/cart", cartHandler.Clear)
	v1.GET("/cart/stream", stream.Stream)
	v1.POST("/cart/items", cartHandler.AddItem)
	v1.POST("/cart/quick-add", cartHandler.QuickAdd)
	v1.PUT("/cart/items/:productId", cartHandler.UpdateQuantity)
	v1.DELETE("/cart/items/:productId", cartHandler.RemoveItem)
	v1.GET("/wishlist", wishlistHandler.Get)
	v1.POST("/wishlist/items", wishlistHandler.Add)
	v1.POST("/wishlist/toggle", wishlistHandler.Toggle)
	v1.DELETE("/wishlist/items/:productId", wishlistHandler.Remove)
	v1.GET("/pages/:slug", NewPageHandler().Get)

	return &testAPI{t: t, router: router, carts: carts, stream: stream, session: uuid.NewString()}
}

func (a *testAPI) do(method, path string, body any) (*httptest.ResponseRecorder, envelope) {
	a.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			require.NoError(a.t, json.NewEncoder(&buf).Encode(b))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("X-Session-ID", a.session)

	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)

	var env envelope
	if w.Header().Get("Content-Type") == "application/json; charset=utf-8" {
		require.NoError(a.t, json.Unmarshal(w.Body.Bytes(), &env))
	}
	return w, env
}

func decodeData[T any](t *testing.T, env envelope) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(env.Data, &out))
	return out
}
