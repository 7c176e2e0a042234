package authflow

import (
	"encoding/base64"
	"net/http"

	"github.com/authflow-go/authflow/credential"
)

// BasicAuth authenticates with HTTP Basic credentials on the initial
// request, without waiting for a challenge.
type BasicAuth struct {
	cred credential.UserPassCredential
}

// NewBasicAuth builds a protocol that sets
// "Authorization: Basic <base64(username:password)>" on every request.
func NewBasicAuth(cred credential.UserPassCredential) *BasicAuth {
	return &BasicAuth{cred: cred}
}

func (b *BasicAuth) Step() (Step, error) {
	return credentialStep(b.cred)
}

func (b *BasicAuth) Configure(req *http.Request) (*http.Request, error) {
	fetched, err := b.cred.FetchUserPass()
	if err != nil {
		return nil, err
	}
	encoded := base64.StdEncoding.EncodeToString([]byte(fetched.Username() + ":" + fetched.Password()))
	return setSensitiveHeader(req, "Authorization", "Basic "+encoded)
}

func (b *BasicAuth) HasCompleted(resp *http.Response) (bool, error) {
	return true, nil
}

func (b *BasicAuth) Respond(resp *http.Response, err error) {
	credentialRespond(b.cred, resp, err)
}
