// Package router assembles the versioned API from per-resource route groups.
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Router mounts resource groups under /api/<version>. Every group runs the
// API middleware; groups that are not public also run the business scope
// first, so later middleware can rely on the business being resolved.
type Router struct {
	engine     *gin.Engine
	version    string
	scope      gin.HandlerFunc
	middleware []gin.HandlerFunc
	groups     []*ResourceGroup
}

type Option func(*Router)

// WithVersion sets the path version, "v1" by default
func WithVersion(version string) Option {
	return func(r *Router) {
		r.version = version
	}
}

// WithMiddleware adds middleware run by every API route
func WithMiddleware(mw ...gin.HandlerFunc) Option {
	return func(r *Router) {
		r.middleware = append(r.middleware, mw...)
	}
}

// WithBusinessScope sets the middleware that resolves the calling business
func WithBusinessScope(scope gin.HandlerFunc) Option {
	return func(r *Router) {
		r.scope = scope
	}
}

func NewRouter(engine *gin.Engine, opts ...Option) *Router {
	r := &Router{engine: engine, version: "v1"}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Router) Register(groups ...*ResourceGroup) *Router {
	r.groups = append(r.groups, groups...)
	return r
}

// Setup mounts every registered group
func (r *Router) Setup() {
	base := "/api/" + r.version
	public := r.engine.Group(base, r.middleware...)
	scoped := public
	if r.scope != nil {
		chain := append([]gin.HandlerFunc{r.scope}, r.middleware...)
		scoped = r.engine.Group(base, chain...)
	}
	for _, g := range r.groups {
		if g.public {
			g.mount(public)
			continue
		}
		g.mount(scoped)
	}
}

// ResourceGroup collects the routes of one resource under a prefix
type ResourceGroup struct {
	prefix string
	public bool
	routes []route
}

type route struct {
	method   string
	path     string
	handlers []gin.HandlerFunc
}

func NewResourceGroup(prefix string) *ResourceGroup {
	return &ResourceGroup{prefix: prefix}
}

// Public serves the group without a business
func (g *ResourceGroup) Public() *ResourceGroup {
	g.public = true
	return g
}

func (g *ResourceGroup) handle(method, path string, handlers ...gin.HandlerFunc) *ResourceGroup {
	g.routes = append(g.routes, route{method: method, path: path, handlers: handlers})
	return g
}

func (g *ResourceGroup) GET(path string, h ...gin.HandlerFunc) *ResourceGroup {
	return g.handle(http.MethodGet, path, h...)
}

func (g *ResourceGroup) POST(path string, h ...gin.HandlerFunc) *ResourceGroup {
	return g.handle(http.MethodPost, path, h...)
}

func (g *ResourceGroup) PUT(path string, h ...gin.HandlerFunc) *ResourceGroup {
	return g.handle(http.MethodPut, path, h...)
}

func (g *ResourceGroup) PATCH(path string, h ...gin.HandlerFunc) *ResourceGroup {
	return g.handle(http.MethodPatch, path, h...)
}

func (g *ResourceGroup) DELETE(path string, h ...gin.HandlerFunc) *ResourceGroup {
	return g.handle(http.MethodDelete, path, h...)
}

func (g *ResourceGroup) mount(rg *gin.RouterGroup) {
	group := rg.Group(g.prefix)
	for _, rt := range g.routes {
		group.Handle(rt.method, rt.path, rt.handlers...)
	}
}
