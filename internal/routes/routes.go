// Package routes holds the server's fixed route table.
package routes

import (
	"github.com/Brownie44l1/tinyhttp/internal/files"
	"github.com/Brownie44l1/tinyhttp/internal/response"
	"github.com/Brownie44l1/tinyhttp/internal/router"
)

type handlers struct {
	store *files.Store
}

// New registers every route on a fresh router. Only echo and file downloads
// are gzip-eligible.
func New(store *files.Store) *router.Router {
	h := &handlers{store: store}

	r := router.New()
	r.Any("/", h.root)
	r.Any("/user-agent", h.userAgent)
	r.Any("/echo/:text", h.echo)
	r.GET("/files/:name", h.getFile)
	r.POST("/files/:name", h.postFile)
	r.Any("/files/:name", h.otherFile)
	return r
}

func (h *handlers) root(ctx *router.Context) *response.Response {
	return response.New(ctx.Version(), response.StatusOK)
}

func (h *handlers) userAgent(ctx *router.Context) *response.Response {
	return response.Text(ctx.Version(), response.StatusOK, ctx.Header("user-agent"))
}

func (h *handlers) echo(ctx *router.Context) *response.Response {
	resp := response.Text(ctx.Version(), response.StatusOK, ctx.Param("text"))
	resp.ShouldCompress = ctx.AcceptsGzip
	return resp
}

func (h *handlers) getFile(ctx *router.Context) *response.Response {
	if !h.store.Configured() {
		return router.NotFound(ctx)
	}

	data, err := h.store.Read(ctx.Param("name"))
	if err != nil {
		return router.NotFound(ctx)
	}

	resp := response.Bytes(ctx.Version(), response.StatusOK, "application/octet-stream", data)
	resp.ShouldCompress = ctx.AcceptsGzip
	return resp
}

func (h *handlers) postFile(ctx *router.Context) *response.Response {
	if !h.store.Configured() {
		return router.NotFound(ctx)
	}

	body := ctx.Body()
	if body == nil {
		return serverError(ctx)
	}

	if err := h.store.Write(ctx.Param("name"), body); err != nil {
		return serverError(ctx)
	}

	return response.New(ctx.Version(), response.StatusCreated)
}

// otherFile answers methods other than GET and POST on /files
func (h *handlers) otherFile(ctx *router.Context) *response.Response {
	if !h.store.Configured() {
		return router.NotFound(ctx)
	}
	return serverError(ctx)
}

func serverError(ctx *router.Context) *response.Response {
	return response.New(ctx.Version(), response.StatusInternalServerError)
}
