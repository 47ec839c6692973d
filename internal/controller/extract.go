package controller

import (
	"net/url"
	"strings"
)

// ExtractCode returns the short code a user means by input.
// An absolute URL yields its last non-empty path segment, so a bare host yields "".
// Anything that is not an absolute URL is taken as the code itself.
func ExtractCode(input string) string {
	value := strings.TrimSpace(input)
	if value == "" {
		return ""
	}

	u, err := url.Parse(value)
	if err != nil || !u.IsAbs() {
		return value
	}

	path := u.Path
	if path == "" {
		// host:port/code parses as an opaque URL with scheme "host".
		path = u.Opaque
	}

	segments := strings.FieldsFunc(path, func(r rune) bool { return r == '/' })
	if len(segments) == 0 {
		return ""
	}
	return segments[len(segments)-1]
}
