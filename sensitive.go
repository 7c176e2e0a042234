package authflow

import (
	"context"
	"fmt"
	"net/http"
	"slices"

	"golang.org/x/net/http/httpguts"
)

type sensitiveKey struct{}

// sensitiveSet accumulates sensitive header names on a request context.
// The pointer is installed once so later marks need no context rebuild.
type sensitiveSet struct {
	names []string
}

func (s *sensitiveSet) add(name string) {
	name = http.CanonicalHeaderKey(name)
	if !slices.Contains(s.names, name) {
		s.names = append(s.names, name)
	}
}

// MarkSensitive records name as carrying secret material on req,
// returning the request to use from then on. Transports that log
// requests must redact headers reported by SensitiveHeaders.
func MarkSensitive(req *http.Request, name string) *http.Request {
	if set, ok := req.Context().Value(sensitiveKey{}).(*sensitiveSet); ok {
		set.add(name)
		return req
	}
	set := &sensitiveSet{}
	set.add(name)
	return req.WithContext(context.WithValue(req.Context(), sensitiveKey{}, set))
}

// SensitiveHeaders reports the canonical names of headers on req that
// carry secret material.
func SensitiveHeaders(req *http.Request) []string {
	if set, ok := req.Context().Value(sensitiveKey{}).(*sensitiveSet); ok {
		return slices.Clone(set.names)
	}
	return nil
}

// setSensitiveHeader validates, sets and marks an authentication header.
// Invalid names or values fail before any network I/O happens.
func setSensitiveHeader(req *http.Request, name, value string) (*http.Request, error) {
	if !httpguts.ValidHeaderFieldName(name) {
		return nil, fmt.Errorf("%w: header name %q", ErrHeaderValue, name)
	}
	if !httpguts.ValidHeaderFieldValue(value) {
		return nil, fmt.Errorf("%w: header %s", ErrHeaderValue, name)
	}
	req.Header.Set(name, value)
	return MarkSensitive(req, name), nil
}
