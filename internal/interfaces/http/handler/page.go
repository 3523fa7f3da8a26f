package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/satyaprakrati/cozico/internal/interfaces/http/dto"
)

// PageHandler answers the informational pages the storefront links to
// (account, order tracking, returns, ...). None of them is served yet.
type PageHandler struct {
	BaseHandler
}

// NewPageHandler creates a new PageHandler
func NewPageHandler() *PageHandler {
	return &PageHandler{}
}

// Get GET /api/v1/pages/:slug
func (h *PageHandler) Get(c *gin.Context) {
	slug := strings.ToLower(strings.TrimSpace(c.Param("slug")))
	h.Fail(c, http.StatusNotImplemented, dto.ErrCodeNotImplemented, "Page "+slug+" is not available yet")
}
