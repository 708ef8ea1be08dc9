package request

import (
	"strings"
)

// parseRequestLine parses: METHOD PATH VERSION
func parseRequestLine(line string, req *Request) error {
	parts := strings.Fields(line)
	if len(parts) != 3 {
		return newParseError(ErrInvalidRequest, HTTP11, line)
	}

	// A recognized version is echoed even when the method is rejected.
	version, versionOK := ParseVersion(parts[2])

	method, ok := ParseMethod(parts[0])
	if !ok {
		return newParseError(ErrInvalidMethod, version, parts[0])
	}

	if !versionOK {
		return newParseError(ErrInvalidVersion, HTTP11, parts[2])
	}

	req.Method = method
	req.Path = parts[1]
	req.Version = version
	return nil
}
