package request

import (
	"bytes"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/Brownie44l1/tinyhttp/internal/headers"
)

// parserState represents the current state of the request parser
type parserState int

const (
	stateRequestLine parserState = iota
	stateHeaders
	stateBody
	stateDone
)

type parser struct {
	state parserState
	data  []byte
	pos   int
}

// Parse turns the raw bytes of one request into a Request. Lines end in
// "\r\n"; a bare "\n" is accepted too. Header lines without ": " are skipped.
// Everything after the first empty line is the body, byte for byte.
func Parse(raw []byte) (*Request, error) {
	p := &parser{state: stateRequestLine, data: raw}
	req := &Request{Headers: headers.NewHeaders()}

	for p.state != stateDone {
		switch p.state {
		case stateRequestLine:
			line, ok := p.nextLine()
			if !ok {
				return nil, newParseError(ErrInvalidRequest, HTTP11, "")
			}
			if !utf8.Valid(line) {
				return nil, newParseError(ErrEncoding, HTTP11, "")
			}
			if err := parseRequestLine(string(line), req); err != nil {
				return nil, err
			}
			p.state = stateHeaders

		case stateHeaders:
			line, ok := p.nextLine()
			if !ok {
				p.state = stateDone
				continue
			}
			if len(line) == 0 {
				p.state = stateBody
				continue
			}
			if !utf8.Valid(line) {
				return nil, newParseError(ErrEncoding, req.Version, "")
			}
			req.Headers.ParseLine(string(line))

		case stateBody:
			if p.pos < len(p.data) {
				req.Body = bytes.Clone(p.data[p.pos:])
			}
			p.state = stateDone
		}
	}

	return req, nil
}

// nextLine returns the next line without its terminator
func (p *parser) nextLine() ([]byte, bool) {
	if p.pos >= len(p.data) {
		return nil, false
	}

	rest := p.data[p.pos:]
	idx := bytes.IndexByte(rest, '\n')
	if idx == -1 {
		p.pos = len(p.data)
		return bytes.TrimSuffix(rest, []byte("\r")), true
	}

	p.pos += idx + 1
	return bytes.TrimSuffix(rest[:idx], []byte("\r")), true
}

// ContentLength converts a Content-Length header value. Anything that is not
// a non-negative decimal integer is ErrMalformedContentLength.
func ContentLength(value string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || n < 0 {
		return 0, newParseError(ErrMalformedContentLength, HTTP11, value)
	}
	return n, nil
}
