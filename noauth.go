package authflow

import "net/http"

// NoAuth sends the request unauthenticated. It behaves identically to
// not using this module at all, but lets call sites keep the same retry
// loop when switching between schemes.
type NoAuth struct{}

func NewNoAuth() *NoAuth { return &NoAuth{} }

func (*NoAuth) Step() (Step, error) { return nil, nil }

func (*NoAuth) Configure(req *http.Request) (*http.Request, error) { return req, nil }

func (*NoAuth) HasCompleted(resp *http.Response) (bool, error) { return true, nil }

func (*NoAuth) Respond(resp *http.Response, err error) {
	panic("authflow: unexpected auth response")
}
