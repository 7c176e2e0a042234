package authflow

import (
	"net/http"

	"github.com/authflow-go/authflow/credential"
)

// HeaderAuth authenticates by placing a token in an arbitrarily named
// header, the common shape of API-key authentication. The header is
// marked sensitive so logging transports never emit it in clear.
type HeaderAuth struct {
	name string
	cred credential.TokenCredential
}

// NewHeaderAuth builds a protocol that sets header name to the
// credential's token on every request.
func NewHeaderAuth(name string, cred credential.TokenCredential) *HeaderAuth {
	return &HeaderAuth{name: name, cred: cred}
}

func (h *HeaderAuth) Step() (Step, error) {
	return credentialStep(h.cred)
}

func (h *HeaderAuth) Configure(req *http.Request) (*http.Request, error) {
	fetched, err := h.cred.FetchToken()
	if err != nil {
		return nil, err
	}
	return setSensitiveHeader(req, h.name, string(fetched.Token()))
}

func (h *HeaderAuth) HasCompleted(resp *http.Response) (bool, error) {
	return true, nil
}

func (h *HeaderAuth) Respond(resp *http.Response, err error) {
	credentialRespond(h.cred, resp, err)
}
