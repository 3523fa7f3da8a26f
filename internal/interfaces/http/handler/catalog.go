package handler

import (
	"github.com/gin-gonic/gin"
	appcatalog "github.com/satyaprakrati/cozico/internal/application/catalog"
)

// CatalogHandler serves the product listing, product pages and collections
type CatalogHandler struct {
	BaseHandler
	products *appcatalog.ProductService
}

// NewCatalogHandler creates a new CatalogHandler
func NewCatalogHandler(products *appcatalog.ProductService) *CatalogHandler {
	return &CatalogHandler{products: products}
}

// ListProducts returns the filtered, sorted listing with its title and facets.
// GET /api/v1/catalog/products?category=&filter=&min_price=&max_price=&sizes=&colors=&sort=
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	var req appcatalog.ListProductsRequest
	if !h.BindQuery(c, &req) {
		return
	}

	list, err := h.products.List(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.List(c, list, list.Count)
}

// GetProduct returns a product page with related products.
// GET /api/v1/catalog/products/:id
func (h *CatalogHandler) GetProduct(c *gin.Context) {
	detail, err := h.products.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, detail)
}

// BestSellers GET /api/v1/catalog/best-sellers
func (h *CatalogHandler) BestSellers(c *gin.Context) {
	products, err := h.products.BestSellers(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.List(c, products, len(products))
}

// TrendingShoes GET /api/v1/catalog/trending-shoes
func (h *CatalogHandler) TrendingShoes(c *gin.Context) {
	products, err := h.products.TrendingShoes(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.List(c, products, len(products))
}

// Categories GET /api/v1/catalog/categories
func (h *CatalogHandler) Categories(c *gin.Context) {
	categories, err := h.products.Categories(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.List(c, categories, len(categories))
}

// Navigation GET /api/v1/catalog/navigation
func (h *CatalogHandler) Navigation(c *gin.Context) {
	groups, err := h.products.Navigation(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, groups)
}

// ListCollections GET /api/v1/catalog/collections
func (h *CatalogHandler) ListCollections(c *gin.Context) {
	collections, err := h.products.Collections(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.List(c, collections, len(collections))
}

// GetCollection looks a collection up by exact id.
// GET /api/v1/catalog/collections/:id
func (h *CatalogHandler) GetCollection(c *gin.Context) {
	collection, err := h.products.Collection(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, collection)
}

// Home GET /api/v1/home
func (h *CatalogHandler) Home(c *gin.Context) {
	home, err := h.products.Home(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, home)
}
