package authflow

import (
	"net/http"

	"github.com/authflow-go/authflow/credential"
)

// BearerAuth authenticates with a bearer token in the Authorization
// header.
type BearerAuth struct {
	scheme string
	cred   credential.TokenCredential
}

// NewBearerAuth builds a protocol that sets
// "Authorization: Bearer <token>" on every request.
func NewBearerAuth(cred credential.TokenCredential) *BearerAuth {
	return &BearerAuth{scheme: "Bearer", cred: cred}
}

// WithScheme changes the default "Bearer" scheme name. Some systems use
// a bearer token under a different scheme name.
func (b *BearerAuth) WithScheme(scheme string) *BearerAuth {
	b.scheme = scheme
	return b
}

func (b *BearerAuth) Step() (Step, error) {
	return credentialStep(b.cred)
}

func (b *BearerAuth) Configure(req *http.Request) (*http.Request, error) {
	fetched, err := b.cred.FetchToken()
	if err != nil {
		return nil, err
	}
	return setSensitiveHeader(req, "Authorization", b.scheme+" "+string(fetched.Token()))
}

func (b *BearerAuth) HasCompleted(resp *http.Response) (bool, error) {
	return true, nil
}

func (b *BearerAuth) Respond(resp *http.Response, err error) {
	credentialRespond(b.cred, resp, err)
}
