package response

import (
	"bytes"
	"io"
	"sync"

	"github.com/klauspost/compress/gzip"
)

var gzipWriters = sync.Pool{
	New: func() interface{} {
		return gzip.NewWriter(io.Discard)
	},
}

// gzipEncode is swapped in tests to exercise the fallback path
var gzipEncode = encodeGzip

func encodeGzip(data []byte) ([]byte, error) {
	var buf bytes.Buffer

	zw := gzipWriters.Get().(*gzip.Writer)
	defer func() {
		zw.Reset(io.Discard)
		gzipWriters.Put(zw)
	}()
	zw.Reset(&buf)

	if _, err := zw.Write(data); err != nil {
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
