package router

import (
	"strings"

	"github.com/Brownie44l1/tinyhttp/internal/request"
)

// Context carries one request through the handler chain
type Context struct {
	Request     *request.Request
	Params      map[string]string // Path parameters (e.g., /files/:name)
	Route       string            // matched pattern, "" when nothing matched
	AcceptsGzip bool
}

// NewContext creates a new context. Gzip support is read from the
// accept-encoding header before any handler runs.
func NewContext(req *request.Request) *Context {
	return &Context{
		Request:     req,
		Params:      make(map[string]string),
		AcceptsGzip: acceptsGzip(req.Header("accept-encoding")),
	}
}

// Method returns the HTTP method
func (c *Context) Method() request.Method {
	return c.Request.Method
}

// Path returns the request path
func (c *Context) Path() string {
	return c.Request.Path
}

// Version returns the request version, used to answer in kind
func (c *Context) Version() request.Version {
	return c.Request.Version
}

// Header gets a request header value
func (c *Context) Header(key string) string {
	return c.Request.Header(key)
}

// Param gets a path parameter by name
func (c *Context) Param(name string) string {
	return c.Params[name]
}

// Body returns the request body, nil when there was none
func (c *Context) Body() []byte {
	return c.Request.Body
}

func acceptsGzip(acceptEncoding string) bool {
	return strings.Contains(strings.ToLower(acceptEncoding), "gzip")
}
