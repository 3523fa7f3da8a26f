package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	appcart "github.com/satyaprakrati/cozico/internal/application/cart"
)

// CartHandler serves the shopper's cart. Every route acts on the session
// set by the session middleware.
type CartHandler struct {
	BaseHandler
	carts *appcart.CartService
}

// NewCartHandler creates a new CartHandler
func NewCartHandler(carts *appcart.CartService) *CartHandler {
	return &CartHandler{carts: carts}
}

// Get returns the cart lines and the order summary.
// GET /api/v1/cart
func (h *CartHandler) Get(c *gin.Context) {
	h.respond(c, func(sid uuid.UUID) (*appcart.CartResponse, error) {
		return h.carts.Get(c.Request.Context(), sid)
	})
}

// AddItem adds a product with the chosen size and color. A missing choice
// is a 422 ERR_SELECTION_REQUIRED and nothing is added.
// POST /api/v1/cart/items
func (h *CartHandler) AddItem(c *gin.Context) {
	var req appcart.AddItemRequest
	if !h.BindJSON(c, &req) {
		return
	}
	h.respond(c, func(sid uuid.UUID) (*appcart.CartResponse, error) {
		return h.carts.Add(c.Request.Context(), sid, req)
	})
}

// QuickAdd adds one unit with the first size and color.
// POST /api/v1/cart/quick-add
func (h *CartHandler) QuickAdd(c *gin.Context) {
	var req appcart.QuickAddRequest
	if !h.BindJSON(c, &req) {
		return
	}
	h.respond(c, func(sid uuid.UUID) (*appcart.CartResponse, error) {
		return h.carts.QuickAdd(c.Request.Context(), sid, req.ProductID)
	})
}

// UpdateQuantity sets the quantity of every line of the product; zero or
// less removes it.
// PUT /api/v1/cart/items/:productId
func (h *CartHandler) UpdateQuantity(c *gin.Context) {
	var req appcart.UpdateQuantityRequest
	if !h.BindJSON(c, &req) {
		return
	}
	h.respond(c, func(sid uuid.UUID) (*appcart.CartResponse, error) {
		return h.carts.UpdateQuantity(c.Request.Context(), sid, c.Param("productId"), *req.Quantity)
	})
}

// RemoveItem removes every line of the product, whatever its size and color.
// DELETE /api/v1/cart/items/:productId
func (h *CartHandler) RemoveItem(c *gin.Context) {
	h.respond(c, func(sid uuid.UUID) (*appcart.CartResponse, error) {
		return h.carts.Remove(c.Request.Context(), sid, c.Param("productId"))
	})
}

// Clear empties the cart and keeps the wishlist.
// DELETE /api/v1/cart
func (h *CartHandler) Clear(c *gin.Context) {
	h.respond(c, func(sid uuid.UUID) (*appcart.CartResponse, error) {
		return h.carts.Clear(c.Request.Context(), sid)
	})
}

func (h *CartHandler) respond(c *gin.Context, fn func(uuid.UUID) (*appcart.CartResponse, error)) {
	sid, err := sessionID(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	resp, err := fn(sid)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, resp)
}
