package handler

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	appcart "github.com/satyaprakrati/cozico/internal/application/cart"
	"github.com/satyaprakrati/cozico/internal/domain/catalog"
	"github.com/satyaprakrati/cozico/internal/interfaces/http/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartHandler_AddItem(t *testing.T) {
	t.Run("adds the selected variant", func(t *testing.T) {
		api := newTestAPI(t)

		w, env := api.do(http.MethodPost, "/api/v1/cart/items", appcart.AddItemRequest{
			ProductID: "classic-oxford-shirt", Size: "M", Color: "White", Quantity: 2,
		})

		require.Equal(t, http.StatusOK, w.Code)
		resp := decodeData[appcart.CartResponse](t, env)
		assert.Equal(t, api.session, resp.SessionID)
		require.Len(t, resp.Items, 1)
		assert.Equal(t, 2, resp.Items[0].Quantity)
		assert.Equal(t, 2, resp.Summary.ItemCount)
		assert.Equal(t, "₹3,798", resp.Summary.Total.Display)
		assert.Equal(t, appcart.FreeShippingDisplay, resp.Summary.ShippingDisplay)
	})

	t.Run("missing size is 422 with shopper message", func(t *testing.T) {
		api := newTestAPI(t)

		w, env := api.do(http.MethodPost, "/api/v1/cart/items", appcart.AddItemRequest{
			ProductID: "classic-oxford-shirt", Color: "White",
		})

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		require.NotNil(t, env.Error)
		assert.Equal(t, dto.ErrCodeSelectionRequired, env.Error.Code)
		assert.Equal(t, catalog.MsgSelectSize, env.Error.Message)

		_, env = api.do(http.MethodGet, "/api/v1/cart", nil)
		assert.Empty(t, decodeData[appcart.CartResponse](t, env).Items)
	})

	t.Run("missing color is 422", func(t *testing.T) {
		api := newTestAPI(t)

		w, env := api.do(http.MethodPost, "/api/v1/cart/items", appcart.AddItemRequest{
			ProductID: "classic-oxford-shirt", Size: "M",
		})

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		require.NotNil(t, env.Error)
		assert.Equal(t, catalog.MsgSelectColor, env.Error.Message)
	})

	t.Run("out of stock is 422", func(t *testing.T) {
		api := newTestAPI(t)

		w, env := api.do(http.MethodPost, "/api/v1/cart/items", appcart.AddItemRequest{
			ProductID: "denim-shorts", Size: "32", Color: "Blue",
		})

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		require.NotNil(t, env.Error)
		assert.Equal(t, dto.ErrCodeOutOfStock, env.Error.Code)
	})

	t.Run("unknown product is 404", func(t *testing.T) {
		api := newTestAPI(t)

		w, _ := api.do(http.MethodPost, "/api/v1/cart/items", appcart.AddItemRequest{
			ProductID: "ghost", Size: "M", Color: "White",
		})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("missing product id is a validation error", func(t *testing.T) {
		api := newTestAPI(t)

		w, env := api.do(http.MethodPost, "/api/v1/cart/items", map[string]any{"size": "M"})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		require.NotNil(t, env.Error)
		assert.Equal(t, dto.ErrCodeValidation, env.Error.Code)
		require.Len(t, env.Error.Details, 1)
		assert.Equal(t, "product_id", env.Error.Details[0].Field)
	})

	t.Run("malformed json", func(t *testing.T) {
		api := newTestAPI(t)

		w, env := api.do(http.MethodPost, "/api/v1/cart/items", `{"product_id":`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		require.NotNil(t, env.Error)
		assert.Equal(t, dto.ErrCodeInvalidJSON, env.Error.Code)
	})
}

func TestCartHandler_QuickAdd(t *testing.T) {
	api := newTestAPI(t)

	w, env := api.do(http.MethodPost, "/api/v1/cart/quick-add", appcart.QuickAddRequest{ProductID: "retro-runner-sneakers"})

	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeData[appcart.CartResponse](t, env)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "7", resp.Items[0].SelectedSize)
	assert.Equal(t, "Grey", resp.Items[0].SelectedColor)
	assert.Equal(t, 1, resp.Items[0].Quantity)
}

func TestCartHandler_UpdateRemoveClear(t *testing.T) {
	api := newTestAPI(t)

	for _, size := range []string{"M", "L"} {
		w, _ := api.do(http.MethodPost, "/api/v1/cart/items", appcart.AddItemRequest{
			ProductID: "essential-crew-tee", Size: size, Color: "White",
		})
		require.Equal(t, http.StatusOK, w.Code)
	}
	w, _ := api.do(http.MethodPost, "/api/v1/cart/quick-add", appcart.QuickAddRequest{ProductID: "retro-runner-sneakers"})
	require.Equal(t, http.StatusOK, w.Code)

	t.Run("update sets every line of the product", func(t *testing.T) {
		w, env := api.do(http.MethodPut, "/api/v1/cart/items/essential-crew-tee", map[string]int{"quantity": 3})

		require.Equal(t, http.StatusOK, w.Code)
		resp := decodeData[appcart.CartResponse](t, env)
		for _, line := range resp.Items {
			if line.Product.ID == "essential-crew-tee" {
				assert.Equal(t, 3, line.Quantity)
			}
		}
		assert.Equal(t, 7, resp.Summary.ItemCount)
	})

	t.Run("quantity is required", func(t *testing.T) {
		w, env := api.do(http.MethodPut, "/api/v1/cart/items/essential-crew-tee", map[string]any{})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		require.NotNil(t, env.Error)
		assert.Equal(t, dto.ErrCodeValidation, env.Error.Code)
	})

	t.Run("quantity above the line cap is a validation error", func(t *testing.T) {
		w, env := api.do(http.MethodPut, "/api/v1/cart/items/essential-crew-tee", map[string]int{"quantity": 1 << 62})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		require.NotNil(t, env.Error)
		assert.Equal(t, dto.ErrCodeValidation, env.Error.Code)

		_, env = api.do(http.MethodGet, "/api/v1/cart", nil)
		resp := decodeData[appcart.CartResponse](t, env)
		assert.Equal(t, 7, resp.Summary.ItemCount)
	})

	t.Run("remove drops all variants", func(t *testing.T) {
		w, env := api.do(http.MethodDelete, "/api/v1/cart/items/essential-crew-tee", nil)

		require.Equal(t, http.StatusOK, w.Code)
		resp := decodeData[appcart.CartResponse](t, env)
		require.Len(t, resp.Items, 1)
		assert.Equal(t, "retro-runner-sneakers", resp.Items[0].Product.ID)
	})

	t.Run("removing an absent product is a no-op", func(t *testing.T) {
		w, env := api.do(http.MethodDelete, "/api/v1/cart/items/ghost", nil)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Len(t, decodeData[appcart.CartResponse](t, env).Items, 1)
	})

	t.Run("clear empties the cart", func(t *testing.T) {
		w, env := api.do(http.MethodDelete, "/api/v1/cart", nil)

		require.Equal(t, http.StatusOK, w.Code)
		resp := decodeData[appcart.CartResponse](t, env)
		assert.Empty(t, resp.Items)
		assert.Equal(t, "₹0", resp.Summary.Total.Display)
	})
}

func TestCartHandler_LineQuantityIsCapped(t *testing.T) {
	api := newTestAPI(t)
	req := appcart.AddItemRequest{ProductID: "retro-runner-sneakers", Size: "7", Color: "Grey", Quantity: 99}

	w, _ := api.do(http.MethodPost, "/api/v1/cart/items", req)
	require.Equal(t, http.StatusOK, w.Code)

	for range 3 {
		w, env := api.do(http.MethodPost, "/api/v1/cart/items", req)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		require.NotNil(t, env.Error)
		assert.Equal(t, dto.ErrCodeQuantityLimit, env.Error.Code)
	}

	_, env := api.do(http.MethodGet, "/api/v1/cart", nil)
	resp := decodeData[appcart.CartResponse](t, env)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, 99, resp.Items[0].Quantity)
	assert.NotContains(t, resp.Summary.Total.Display, "-")
}

func TestCartHandler_SessionsAreIsolated(t *testing.T) {
	api := newTestAPI(t)

	w, _ := api.do(http.MethodPost, "/api/v1/cart/quick-add", appcart.QuickAddRequest{ProductID: "retro-runner-sneakers"})
	require.Equal(t, http.StatusOK, w.Code)

	api.session = uuid.NewString()
	_, env := api.do(http.MethodGet, "/api/v1/cart", nil)
	assert.Empty(t, decodeData[appcart.CartResponse](t, env).Items)
}

func TestCartHandler_IssuesSessionWhenMissing(t *testing.T) {
	api := newTestAPI(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	w := httptest.NewRecorder()
	api.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	issued := w.Header().Get("X-Session-ID")
	require.NotEmpty(t, issued)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.Equal(t, issued, decodeData[appcart.CartResponse](t, env).SessionID)
}

func TestCartStreamHandler_Stream(t *testing.T) {
	api := newTestAPI(t)
	server := httptest.NewServer(api.router)
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, server.URL+"/api/v1/cart/stream", nil)
	require.NoError(t, err)
	req.Header.Set("X-Session-ID", api.session)

	resp, err := server.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	events := make(chan appcart.CartResponse, 4)
	go func() {
		scanner := bufio.NewScanner(resp.Body)
		var event string
		for scanner.Scan() {
			line := scanner.Text()
			switch {
			case strings.HasPrefix(line, "event: "):
				event = strings.TrimPrefix(line, "event: ")
			case strings.HasPrefix(line, "data: ") && event == "cart":
				var c appcart.CartResponse
				if json.Unmarshal([]byte(strings.TrimPrefix(line, "data: ")), &c) == nil {
					events <- c
				}
			}
		}
	}()

	initial := <-events
	assert.Empty(t, initial.Items)

	w, _ := api.do(http.MethodPost, "/api/v1/cart/quick-add", appcart.QuickAddRequest{ProductID: "retro-runner-sneakers"})
	require.Equal(t, http.StatusOK, w.Code)

	select {
	case update := <-events:
		require.Len(t, update.Items, 1)
		assert.Equal(t, "retro-runner-sneakers", update.Items[0].Product.ID)
	case <-ctx.Done():
		t.Fatal("no cart event after quick add")
	}

	assert.Equal(t, 1, api.stream.ClientCount())
	cancel()
}

func TestCartStreamHandler_MaxClients(t *testing.T) {
	api := newTestAPI(t)
	limited := NewCartStreamHandler(api.carts, WithStreamMaxClients(1))
	t.Cleanup(limited.Stop)
	limited.clients.Store(1)

	api.router.GET("/limited/stream", limited.Stream)
	w, env := api.do(http.MethodGet, "/limited/stream", nil)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, dto.ErrCodeServiceUnavailable, env.Error.Code)
	assert.Equal(t, 1, limited.ClientCount())
}
