package request

import (
	"strings"

	"github.com/Brownie44l1/tinyhttp/internal/headers"
)

type Method string

const (
	MethodGet    Method = "GET"
	MethodPost   Method = "POST"
	MethodPut    Method = "PUT"
	MethodDelete Method = "DELETE"
	MethodPatch  Method = "PATCH"
)

// ParseMethod matches the token case-sensitively.
func ParseMethod(token string) (Method, bool) {
	switch m := Method(token); m {
	case MethodGet, MethodPost, MethodPut, MethodDelete, MethodPatch:
		return m, true
	default:
		return "", false
	}
}

// Version is the protocol label from the request line. Only the label is
// recognized; request handling is the same for every version.
type Version string

const (
	HTTP10 Version = "HTTP/1.0"
	HTTP11 Version = "HTTP/1.1"
	HTTP20 Version = "HTTP/2.0"
)

func ParseVersion(token string) (Version, bool) {
	switch v := Version(token); v {
	case HTTP10, HTTP11, HTTP20:
		return v, true
	default:
		return "", false
	}
}

type Request struct {
	Method  Method
	Path    string
	Version Version
	Headers *headers.Headers
	Body    []byte // nil unless bytes followed the header block
}

// Header returns the value of a header or "" when absent
func (r *Request) Header(key string) string {
	val, _ := r.Headers.Get(key)
	return val
}

func (r *Request) HasBody() bool {
	return r.Body != nil
}

// RequestLine rebuilds "METHOD PATH VERSION" from the parsed fields
func (r *Request) RequestLine() string {
	return string(r.Method) + " " + r.Path + " " + string(r.Version)
}

// Segments splits the raw path on '/'. "/" yields ["", ""].
func (r *Request) Segments() []string {
	return strings.Split(r.Path, "/")
}
