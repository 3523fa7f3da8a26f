package handler

import (
	"github.com/gin-gonic/gin"
	appcart "github.com/satyaprakrati/cozico/internal/application/cart"
)

// WishlistHandler serves the shopper's wishlist
type WishlistHandler struct {
	BaseHandler
	carts *appcart.CartService
}

// NewWishlistHandler creates a new WishlistHandler
func NewWishlistHandler(carts *appcart.CartService) *WishlistHandler {
	return &WishlistHandler{carts: carts}
}

// Get GET /api/v1/wishlist
func (h *WishlistHandler) Get(c *gin.Context) {
	sid, err := sessionID(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	resp, err := h.carts.Wishlist(c.Request.Context(), sid)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, resp)
}

// Add saves a product; saving it twice keeps one entry.
// POST /api/v1/wishlist/items
func (h *WishlistHandler) Add(c *gin.Context) {
	var req appcart.WishlistRequest
	if !h.BindJSON(c, &req) {
		return
	}
	sid, err := sessionID(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	resp, err := h.carts.AddToWishlist(c.Request.Context(), sid, req.ProductID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, resp)
}

// Toggle saves the product, or removes it when already saved (the heart icon).
// POST /api/v1/wishlist/toggle
func (h *WishlistHandler) Toggle(c *gin.Context) {
	var req appcart.WishlistRequest
	if !h.BindJSON(c, &req) {
		return
	}
	sid, err := sessionID(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	resp, err := h.carts.ToggleWishlist(c.Request.Context(), sid, req.ProductID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, resp)
}

// Remove DELETE /api/v1/wishlist/items/:productId
func (h *WishlistHandler) Remove(c *gin.Context) {
	sid, err := sessionID(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	resp, err := h.carts.RemoveFromWishlist(c.Request.Context(), sid, c.Param("productId"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, resp)
}
