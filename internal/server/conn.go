package server

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"net"
	"runtime/debug"
	"time"

	"github.com/Brownie44l1/tinyhttp/internal/headers"
	"github.com/Brownie44l1/tinyhttp/internal/request"
	"github.com/Brownie44l1/tinyhttp/internal/response"
)

// ErrIncompleteBody means the peer stopped sending before Content-Length
// bytes of body arrived.
var ErrIncompleteBody = errors.New("incomplete request body")

// connState is the position of a connection in its single pass:
// Accepted, ReadingHeaders, ReadingBody (optional), Dispatching,
// WritingResponse, Closed. It never moves backwards.
type connState int

const (
	stateAccepted connState = iota
	stateReadingHeaders
	stateReadingBody
	stateDispatching
	stateWritingResponse
	stateClosed
)

func (s connState) String() string {
	switch s {
	case stateAccepted:
		return "accepted"
	case stateReadingHeaders:
		return "reading-headers"
	case stateReadingBody:
		return "reading-body"
	case stateDispatching:
		return "dispatching"
	case stateWritingResponse:
		return "writing-response"
	case stateClosed:
		return "closed"
	default:
		return fmt.Sprintf("connState(%d)", int(s))
	}
}

// conn serves exactly one request on an accepted socket
type conn struct {
	srv   *Server
	rwc   net.Conn
	br    *bufio.Reader
	state connState
	start time.Time

	head          bytes.Buffer // request line and headers as received
	contentLength int
	body          []byte
}

// serveConn handles the single request on a connection, then closes it
func (s *Server) serveConn(rwc net.Conn) {
	c := &conn{
		srv:   s,
		rwc:   rwc,
		br:    bufio.NewReader(rwc),
		state: stateAccepted,
		start: time.Now(),
	}

	s.Metrics.ConnOpened()
	defer func() {
		rwc.Close()
		s.Metrics.ConnClosed()
		c.setState(stateClosed)
	}()

	c.serve()
}

func (c *conn) serve() {
	c.setState(stateReadingHeaders)
	if err := c.readHeaders(); err != nil {
		c.fail(err)
		return
	}

	if c.contentLength > 0 {
		c.setState(stateReadingBody)
		if err := c.readBody(); err != nil {
			c.fail(err)
			return
		}
	}

	c.setState(stateDispatching)
	resp := c.dispatch()

	c.setState(stateWritingResponse)
	c.write(resp)
}

func (c *conn) setState(next connState) {
	c.srv.Logger.Debug("connection state",
		Field{"remote", c.rwc.RemoteAddr().String()},
		Field{"from", c.state.String()},
		Field{"to", next.String()},
	)
	c.state = next
}

// readHeaders reads lines until an empty line, remembering Content-Length.
// EOF after some data ends the head as if a blank line had been sent.
func (c *conn) readHeaders() error {
	for lineNo := 0; ; lineNo++ {
		line, err := c.br.ReadBytes('\n')
		c.head.Write(line)
		if err != nil {
			if errors.Is(err, io.EOF) && c.head.Len() > 0 {
				return nil
			}
			return err
		}

		trimmed := bytes.TrimRight(line, "\r\n")
		if len(trimmed) == 0 {
			return nil
		}
		if lineNo == 0 {
			continue
		}

		key, value, ok := headers.SplitLine(string(trimmed))
		if !ok || key != "content-length" {
			continue
		}
		n, err := request.ContentLength(value)
		if err != nil {
			return err
		}
		c.contentLength = n
	}
}

// readBody reads exactly contentLength bytes. The buffer grows with the data
// that actually arrives.
func (c *conn) readBody() error {
	var buf bytes.Buffer
	n, err := io.CopyN(&buf, c.br, int64(c.contentLength))
	if err != nil {
		return fmt.Errorf("%w: got %d of %d bytes: %w", ErrIncompleteBody, n, c.contentLength, err)
	}
	c.body = buf.Bytes()
	return nil
}

// dispatch parses the head and asks the dispatcher for a response. Parse
// failures skip dispatch and answer 404. A panicking handler answers 500.
func (c *conn) dispatch() (resp *response.Response) {
	req, err := request.Parse(c.head.Bytes())
	if err != nil {
		c.srv.Metrics.RecordParseError()
		c.srv.Logger.Warn("failed to parse request",
			Field{"remote", c.rwc.RemoteAddr().String()},
			Field{"error", err},
		)
		return response.New(nominalVersion(err), response.StatusNotFound)
	}
	req.Body = c.body

	defer func() {
		if r := recover(); r != nil {
			c.srv.Logger.Error("handler panic",
				Field{"error", r},
				Field{"stack", string(debug.Stack())},
				Field{"path", req.Path},
			)
			resp = response.New(req.Version, response.StatusInternalServerError)
		}
	}()

	resp = c.srv.dispatcher.Dispatch(req)
	if resp == nil {
		resp = response.New(req.Version, response.StatusInternalServerError)
	}
	return resp
}

func (c *conn) write(resp *response.Response) {
	if _, err := resp.WriteTo(c.rwc); err != nil {
		c.srv.Logger.Warn("failed to write response",
			Field{"remote", c.rwc.RemoteAddr().String()},
			Field{"error", err},
		)
	}
	c.srv.Metrics.RecordRequest(resp.StatusCode, time.Since(c.start))
}

// fail ends a connection whose request could not be framed
func (c *conn) fail(err error) {
	remote := Field{"remote", c.rwc.RemoteAddr().String()}

	switch {
	case errors.Is(err, request.ErrMalformedContentLength):
		c.srv.Metrics.RecordFramingError()
		c.srv.Logger.Warn("malformed content-length", remote, Field{"error", err})

		// best effort; the body cannot be framed so nothing else is read
		c.setState(stateWritingResponse)
		c.write(response.New(c.headVersion(), response.StatusInternalServerError))

	case errors.Is(err, ErrIncompleteBody):
		c.srv.Metrics.RecordFramingError()
		c.srv.Logger.Warn("connection closed mid-body", remote, Field{"error", err})

	case errors.Is(err, io.EOF):
		c.srv.Logger.Debug("connection closed before a request was sent", remote)

	default:
		c.srv.Logger.Warn("failed to read request", remote, Field{"error", err})
	}
}

// headVersion is the version of whatever head has been read so far
func (c *conn) headVersion() request.Version {
	req, err := request.Parse(c.head.Bytes())
	if err != nil {
		return nominalVersion(err)
	}
	return req.Version
}

// nominalVersion picks the version to answer a failed request with
func nominalVersion(err error) request.Version {
	var perr *request.ParseError
	if errors.As(err, &perr) {
		return perr.Version
	}
	return request.HTTP11
}
