// Package router assembles the storefront HTTP surface.
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Route is one endpoint of an Area. Path is relative to the area prefix
// and may be empty for the area root.
type Route struct {
	Method   string
	Path     string
	Handlers []gin.HandlerFunc
}

func get(path string, h ...gin.HandlerFunc) Route  { return Route{http.MethodGet, path, h} }
func post(path string, h ...gin.HandlerFunc) Route { return Route{http.MethodPost, path, h} }
func put(path string, h ...gin.HandlerFunc) Route  { return Route{http.MethodPut, path, h} }
func del(path string, h ...gin.HandlerFunc) Route  { return Route{http.MethodDelete, path, h} }

// Area is a section of the API (catalog, cart, wishlist...) sharing a
// prefix and, optionally, middleware. Children nest under the prefix.
type Area struct {
	Name       string
	Prefix     string
	Middleware []gin.HandlerFunc
	Routes     []Route
	Children   []Area
}

func (a Area) mount(rg gin.IRouter) {
	g := rg.Group(a.Prefix, a.Middleware...)
	for _, r := range a.Routes {
		g.Handle(r.Method, r.Path, r.Handlers...)
	}
	for _, child := range a.Children {
		child.mount(g)
	}
}

// Endpoints lists the area's routes as "METHOD path", prefixed with base.
func (a Area) Endpoints(base string) []string {
	base += a.Prefix
	out := make([]string, 0, len(a.Routes))
	for _, r := range a.Routes {
		out = append(out, r.Method+" "+base+r.Path)
	}
	for _, child := range a.Children {
		out = append(out, child.Endpoints(base)...)
	}
	return out
}

// API is the versioned prefix every Area is mounted under.
type API struct {
	Version    string // defaults to "v1"
	Middleware []gin.HandlerFunc
}

// Base returns the prefix, e.g. "/api/v1".
func (api API) Base() string {
	if api.Version == "" {
		return "/api/v1"
	}
	return "/api/" + api.Version
}

// Mount registers areas on engine under Base. The API middleware does not
// reach routes registered on engine directly, such as the probes.
func (api API) Mount(engine *gin.Engine, areas ...Area) *gin.RouterGroup {
	group := engine.Group(api.Base(), api.Middleware...)
	for _, a := range areas {
		a.mount(group)
	}
	return group
}
