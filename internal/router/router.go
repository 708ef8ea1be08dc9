package router

import (
	"strings"

	"github.com/Brownie44l1/tinyhttp/internal/request"
	"github.com/Brownie44l1/tinyhttp/internal/response"
)

// Handler builds the response for one request
type Handler func(ctx *Context) *response.Response

// Middleware wraps a handler
type Middleware func(next Handler) Handler

// AnyMethod registers a route for every method not matched earlier
const AnyMethod request.Method = "*"

// Route represents a single route
type Route struct {
	Method  request.Method
	Path    string
	Handler Handler
	Params  []string // Parameter names (e.g., ["name"])
}

// Router is a flat, ordered list of routes. The first route whose method and
// segments match wins; there is no precedence beyond registration order.
type Router struct {
	routes      []*Route
	middlewares []Middleware
	notFound    Handler
}

// New creates a new router
func New() *Router {
	return &Router{
		routes:   make([]*Route, 0),
		notFound: NotFound,
	}
}

// Use appends middleware applied to every dispatched request, including
// requests that fall through to the not-found handler.
func (r *Router) Use(mw ...Middleware) {
	r.middlewares = append(r.middlewares, mw...)
}

// Handle registers a new route
func (r *Router) Handle(method request.Method, path string, handler Handler) {
	r.routes = append(r.routes, &Route{
		Method:  method,
		Path:    path,
		Handler: handler,
		Params:  extractParams(path),
	})
}

// GET is a shortcut for Handle(GET, ...)
func (r *Router) GET(path string, handler Handler) {
	r.Handle(request.MethodGet, path, handler)
}

// POST is a shortcut for Handle(POST, ...)
func (r *Router) POST(path string, handler Handler) {
	r.Handle(request.MethodPost, path, handler)
}

// Any registers a handler for every method
func (r *Router) Any(path string, handler Handler) {
	r.Handle(AnyMethod, path, handler)
}

// Routes returns the registered routes in match order
func (r *Router) Routes() []*Route {
	return r.routes
}

// Match finds a route that matches the given method and path
func (r *Router) Match(method request.Method, path string) (*Route, map[string]string) {
	for _, route := range r.routes {
		if route.Method != AnyMethod && route.Method != method {
			continue
		}

		if params := matchPath(route.Path, path); params != nil {
			return route, params
		}
	}

	return nil, nil
}

// Dispatch routes a parsed request and returns the handler's response
func (r *Router) Dispatch(req *request.Request) *response.Response {
	ctx := NewContext(req)

	handler := r.notFound
	if route, params := r.Match(req.Method, req.Path); route != nil {
		handler = route.Handler
		ctx.Params = params
		ctx.Route = route.Path
	}

	for i := len(r.middlewares) - 1; i >= 0; i-- {
		handler = r.middlewares[i](handler)
	}

	return handler(ctx)
}

// NotFound answers 404 with no body
func NotFound(ctx *Context) *response.Response {
	return response.New(ctx.Version(), response.StatusNotFound)
}

// extractParams extracts parameter names from a path pattern
// Example: "/files/:name" -> ["name"]
func extractParams(path string) []string {
	parts := strings.Split(path, "/")
	params := make([]string, 0)

	for _, part := range parts {
		if strings.HasPrefix(part, ":") {
			params = append(params, part[1:])
		}
	}

	return params
}

// matchPath checks if a request path matches a route pattern segment by
// segment. Returns parameter values if match, nil otherwise. A parameter
// matches any single segment, including an empty one.
func matchPath(pattern, path string) map[string]string {
	patternParts := strings.Split(pattern, "/")
	pathParts := strings.Split(path, "/")

	// Must have same number of parts
	if len(patternParts) != len(pathParts) {
		return nil
	}

	params := make(map[string]string)

	for i := 0; i < len(patternParts); i++ {
		patternPart := patternParts[i]
		pathPart := pathParts[i]

		if strings.HasPrefix(patternPart, ":") {
			params[patternPart[1:]] = pathPart
		} else if patternPart != pathPart {
			return nil
		}
	}

	return params
}
