package headers

import (
	"sort"
	"strings"
)

type field struct {
	name  string
	value string
}

// Headers is a case-insensitive header set. Keys are stored lower-cased and a
// later Set for the same key replaces the earlier value.
type Headers struct {
	headers map[string]field
}

func NewHeaders() *Headers {
	return &Headers{
		headers: make(map[string]field),
	}
}

// Get returns the value for a header
func (h *Headers) Get(key string) (string, bool) {
	f, ok := h.headers[strings.ToLower(key)]
	if !ok {
		return "", false
	}
	return f.value, true
}

// Set replaces the value for a header. The name is kept as given for output.
func (h *Headers) Set(key, value string) {
	h.headers[strings.ToLower(key)] = field{name: key, value: value}
}

// Del removes a header
func (h *Headers) Del(key string) {
	delete(h.headers, strings.ToLower(key))
}

// Len returns the number of distinct headers
func (h *Headers) Len() int {
	return len(h.headers)
}

// Keys returns the lower-cased keys in sorted order
func (h *Headers) Keys() []string {
	keys := make([]string, 0, len(h.headers))
	for k := range h.headers {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Each calls fn for every header in key order, passing the display name.
func (h *Headers) Each(fn func(name, value string)) {
	for _, k := range h.Keys() {
		f := h.headers[k]
		fn(f.name, f.value)
	}
}

// Clone returns an independent copy
func (h *Headers) Clone() *Headers {
	c := NewHeaders()
	for k, f := range h.headers {
		c.headers[k] = f
	}
	return c
}

// separator between a header name and its value on the wire
const separator = ": "

// SplitLine splits a raw header line on the first ": ". The returned key is
// lower-cased. ok is false when the line has no separator.
func SplitLine(line string) (key, value string, ok bool) {
	key, value, ok = strings.Cut(line, separator)
	if !ok {
		return "", "", false
	}
	return strings.ToLower(key), value, true
}

// ParseLine stores one "Key: Value" line. Lines without a separator are
// reported with false and leave the set unchanged.
func (h *Headers) ParseLine(line string) bool {
	key, value, ok := SplitLine(line)
	if !ok {
		return false
	}
	h.Set(key, value)
	return true
}
