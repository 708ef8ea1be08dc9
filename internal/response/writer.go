package response

import (
	"fmt"
	"io"

	"github.com/Brownie44l1/tinyhttp/internal/headers"
	"github.com/Brownie44l1/tinyhttp/internal/request"
)

// writerState tracks what's been written so far
type writerState int

const (
	stateStart writerState = iota
	stateStatusWritten
	stateHeadersWritten
	stateBodyWritten
)

// Writer writes the parts of one response in order: status line, headers,
// body. Writing out of order is an error.
type Writer struct {
	w        io.Writer
	state    writerState
	hadError bool
}

// NewWriter creates a new response writer
func NewWriter(w io.Writer) *Writer {
	return &Writer{
		w:     w,
		state: stateStart,
	}
}

// WriteStatusLine writes "<version> <code> <reason>\r\n"
func (w *Writer) WriteStatusLine(version request.Version, code StatusCode) error {
	if w.state != stateStart {
		return fmt.Errorf("status line already written")
	}

	if version == "" {
		version = request.HTTP11
	}

	statusLine := fmt.Sprintf("%s %d %s\r\n", version, code, StatusText(code))
	if _, err := io.WriteString(w.w, statusLine); err != nil {
		w.hadError = true
		return err
	}

	w.state = stateStatusWritten
	return nil
}

// WriteHeaders writes every header followed by the blank line
func (w *Writer) WriteHeaders(h *headers.Headers) error {
	if w.state != stateStatusWritten {
		return fmt.Errorf("must write status line before headers")
	}

	var err error
	h.Each(func(name, value string) {
		if err != nil {
			return
		}
		_, err = fmt.Fprintf(w.w, "%s: %s\r\n", name, value)
	})
	if err != nil {
		w.hadError = true
		return err
	}

	// Write empty line to end headers
	if _, err := io.WriteString(w.w, "\r\n"); err != nil {
		w.hadError = true
		return err
	}

	w.state = stateHeadersWritten
	return nil
}

// WriteBody writes the complete response body
func (w *Writer) WriteBody(data []byte) error {
	if w.state != stateHeadersWritten {
		return fmt.Errorf("must write headers before body")
	}

	if len(data) > 0 {
		if _, err := w.w.Write(data); err != nil {
			w.hadError = true
			return err
		}
	}

	w.state = stateBodyWritten
	return nil
}

func (w *Writer) HadError() bool {
	return w.hadError
}
