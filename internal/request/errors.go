package request

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidRequest         = errors.New("invalid request")
	ErrInvalidMethod          = errors.New("invalid method")
	ErrInvalidVersion         = errors.New("invalid version")
	ErrMalformedContentLength = errors.New("malformed content-length")
	ErrEncoding               = errors.New("request head is not valid UTF-8")
)

// ParseError is returned for every request that cannot be parsed. Kind is one
// of the sentinel errors above; Version is the version to answer with.
type ParseError struct {
	Kind    error
	Version Version
	Detail  string
}

func (e *ParseError) Error() string {
	if e.Detail == "" {
		return e.Kind.Error()
	}
	return fmt.Sprintf("%s: %q", e.Kind, e.Detail)
}

func (e *ParseError) Unwrap() error {
	return e.Kind
}

func newParseError(kind error, version Version, detail string) *ParseError {
	if version == "" {
		version = HTTP11
	}
	return &ParseError{Kind: kind, Version: version, Detail: detail}
}
