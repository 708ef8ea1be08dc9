package response

import (
	"bytes"
	"io"
	"strconv"

	"github.com/Brownie44l1/tinyhttp/internal/headers"
	"github.com/Brownie44l1/tinyhttp/internal/request"
)

// Response is built once by a handler and serialized once by the connection.
type Response struct {
	StatusCode     StatusCode
	Version        request.Version
	Headers        *headers.Headers
	Body           []byte // nil means no body
	ShouldCompress bool
}

// New creates a response with no headers and no body
func New(version request.Version, code StatusCode) *Response {
	return &Response{
		StatusCode: code,
		Version:    version,
		Headers:    headers.NewHeaders(),
	}
}

// Text creates a text/plain response
func Text(version request.Version, code StatusCode, body string) *Response {
	r := New(version, code)
	r.Headers.Set("Content-Type", "text/plain")
	r.Body = []byte(body)
	return r
}

// Bytes creates a response with arbitrary byte content
func Bytes(version request.Version, code StatusCode, contentType string, data []byte) *Response {
	r := New(version, code)
	if contentType != "" {
		r.Headers.Set("Content-Type", contentType)
	}
	if data == nil {
		data = []byte{}
	}
	r.Body = data
	return r
}

// Serialize renders the response as wire bytes. The response itself is not
// modified, so repeated calls give identical output.
func (r *Response) Serialize() []byte {
	body, h := r.encode()

	var buf bytes.Buffer
	w := NewWriter(&buf)

	// Writes to a bytes.Buffer do not fail.
	_ = w.WriteStatusLine(r.Version, r.StatusCode)
	_ = w.WriteHeaders(h)
	_ = w.WriteBody(body)

	return buf.Bytes()
}

// WriteTo writes the serialized response to w
func (r *Response) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(r.Serialize())
	return int64(n), err
}

// encode applies the gzip step and fixes Content-Length on a copy of the
// headers. When compression fails the plain body is sent.
func (r *Response) encode() ([]byte, *headers.Headers) {
	var h *headers.Headers
	if r.Headers == nil {
		h = headers.NewHeaders()
	} else {
		h = r.Headers.Clone()
	}

	body := r.Body
	if body == nil {
		return nil, h
	}

	if r.ShouldCompress {
		if compressed, err := gzipEncode(body); err == nil {
			body = compressed
			h.Set("Content-Encoding", "gzip")
		}
	}

	h.Set("Content-Length", strconv.Itoa(len(body)))
	return body, h
}
