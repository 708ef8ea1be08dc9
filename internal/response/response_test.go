package response

import (
	"bytes"
	stdgzip "compress/gzip"
	"errors"
	"io"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Brownie44l1/tinyhttp/internal/headers"
	"github.com/Brownie44l1/tinyhttp/internal/request"
)

// splitMessage separates the head from the body at the first blank line
func splitMessage(t *testing.T, raw []byte) (string, []byte) {
	t.Helper()
	idx := bytes.Index(raw, []byte("\r\n\r\n"))
	require.NotEqual(t, -1, idx, "no blank line in %q", raw)
	return string(raw[:idx]), raw[idx+4:]
}

func gunzip(t *testing.T, data []byte) string {
	t.Helper()
	zr, err := stdgzip.NewReader(bytes.NewReader(data))
	require.NoError(t, err)
	out, err := io.ReadAll(zr)
	require.NoError(t, err)
	return string(out)
}

func TestStatusText(t *testing.T) {
	assert.Equal(t, "OK", StatusText(StatusOK))
	assert.Equal(t, "Created", StatusText(StatusCreated))
	assert.Equal(t, "Not Found", StatusText(StatusNotFound))
	assert.Equal(t, "Internal Server Error", StatusText(StatusInternalServerError))
	assert.Equal(t, "Unknown Status", StatusText(400))
	assert.Equal(t, "Unknown Status", StatusText(StatusCode(999)))
}

func TestWriterStatusLine(t *testing.T) {
	buf := &bytes.Buffer{}
	w := NewWriter(buf)
	require.NoError(t, w.WriteStatusLine(request.HTTP11, StatusOK))
	assert.Equal(t, "HTTP/1.1 200 OK\r\n", buf.String())

	buf = &bytes.Buffer{}
	w = NewWriter(buf)
	require.NoError(t, w.WriteStatusLine(request.HTTP10, StatusNotFound))
	assert.Equal(t, "HTTP/1.0 404 Not Found\r\n", buf.String())

	buf = &bytes.Buffer{}
	w = NewWriter(buf)
	require.NoError(t, w.WriteStatusLine("", StatusCode(418)))
	assert.Equal(t, "HTTP/1.1 418 Unknown Status\r\n", buf.String())
}

func TestWriterOrdering(t *testing.T) {
	w := NewWriter(&bytes.Buffer{})

	assert.Error(t, w.WriteHeaders(headers.NewHeaders()))
	assert.Error(t, w.WriteBody([]byte("x")))

	require.NoError(t, w.WriteStatusLine(request.HTTP11, StatusOK))
	assert.Error(t, w.WriteStatusLine(request.HTTP11, StatusOK))
	assert.Error(t, w.WriteBody([]byte("x")))

	require.NoError(t, w.WriteHeaders(headers.NewHeaders()))
	require.NoError(t, w.WriteBody(nil))
	assert.False(t, w.HadError())
}

type failingWriter struct{}

func (failingWriter) Write(p []byte) (int, error) {
	return 0, errors.New("broken pipe")
}

func TestWriterRecordsError(t *testing.T) {
	w := NewWriter(failingWriter{})
	require.Error(t, w.WriteStatusLine(request.HTTP11, StatusOK))
	assert.True(t, w.HadError())
}

func TestSerializeZeroHeaders(t *testing.T) {
	r := New(request.HTTP11, StatusOK)
	assert.Equal(t, "HTTP/1.1 200 OK\r\n\r\n", string(r.Serialize()))
}

func TestSerializeBlankLineRegardlessOfHeaderCount(t *testing.T) {
	for n := 0; n < 5; n++ {
		r := Text(request.HTTP11, StatusOK, "body")
		for i := 0; i < n; i++ {
			r.Headers.Set("X-H"+strings.Repeat("i", i), "v")
		}

		raw := r.Serialize()
		head, body := splitMessage(t, raw)
		assert.NotContains(t, head, "\r\n\r\n")
		assert.Equal(t, "body", string(body))
		assert.Equal(t, 1, bytes.Count(raw, []byte("\r\n\r\n")))
	}
}

func TestSerializeText(t *testing.T) {
	r := Text(request.HTTP11, StatusOK, "abc")
	raw := r.Serialize()

	head, body := splitMessage(t, raw)
	lines := strings.Split(head, "\r\n")
	assert.Equal(t, "HTTP/1.1 200 OK", lines[0])
	assert.ElementsMatch(t, []string{"Content-Type: text/plain", "Content-Length: 3"}, lines[1:])
	assert.Equal(t, "abc", string(body))
	assert.NotContains(t, head, "Content-Encoding")
}

func TestSerializeEchoesVersion(t *testing.T) {
	r := New(request.HTTP20, StatusNotFound)
	assert.Equal(t, "HTTP/2.0 404 Not Found\r\n\r\n", string(r.Serialize()))
}

func TestSerializeIsIdempotent(t *testing.T) {
	r := Bytes(request.HTTP11, StatusOK, "application/octet-stream", []byte("some file contents"))
	r.Headers.Set("X-A", "1")
	r.Headers.Set("X-B", "2")
	r.ShouldCompress = true

	first := r.Serialize()
	second := r.Serialize()
	assert.Equal(t, first, second)

	// Serializing does not touch the response headers
	_, ok := r.Headers.Get("content-length")
	assert.False(t, ok)
	assert.Equal(t, []byte("some file contents"), r.Body)
}

func TestSerializeGzip(t *testing.T) {
	r := Text(request.HTTP11, StatusOK, "abc")
	r.ShouldCompress = true

	raw := r.Serialize()
	head, body := splitMessage(t, raw)

	assert.Contains(t, head, "Content-Encoding: gzip")
	assert.Contains(t, head, "Content-Length: "+strconv.Itoa(len(body)))
	assert.Equal(t, "abc", gunzip(t, body))
}

func TestSerializeGzipWithoutBody(t *testing.T) {
	r := New(request.HTTP11, StatusOK)
	r.ShouldCompress = true

	assert.Equal(t, "HTTP/1.1 200 OK\r\n\r\n", string(r.Serialize()))
}

func TestSerializeGzipFallback(t *testing.T) {
	orig := gzipEncode
	gzipEncode = func([]byte) ([]byte, error) {
		return nil, errors.New("encoder exploded")
	}
	defer func() { gzipEncode = orig }()

	r := Text(request.HTTP11, StatusOK, "plain")
	r.ShouldCompress = true

	head, body := splitMessage(t, r.Serialize())
	assert.NotContains(t, head, "Content-Encoding")
	assert.Contains(t, head, "Content-Length: 5")
	assert.Equal(t, "plain", string(body))
}

func TestEncodeGzipReusesPooledWriters(t *testing.T) {
	for _, s := range []string{"first", "", strings.Repeat("z", 1<<16)} {
		out, err := encodeGzip([]byte(s))
		require.NoError(t, err)
		assert.Equal(t, s, gunzip(t, out))
	}
}

func TestBytesNilBodyIsEmpty(t *testing.T) {
	r := Bytes(request.HTTP11, StatusOK, "text/plain", nil)
	head, body := splitMessage(t, r.Serialize())
	assert.Contains(t, head, "Content-Length: 0")
	assert.Empty(t, body)
}

func TestWriteTo(t *testing.T) {
	r := Text(request.HTTP11, StatusCreated, "")
	buf := &bytes.Buffer{}

	n, err := r.WriteTo(buf)
	require.NoError(t, err)
	assert.Equal(t, int64(buf.Len()), n)
	assert.True(t, strings.HasPrefix(buf.String(), "HTTP/1.1 201 Created\r\n"))
}

