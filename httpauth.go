package authflow

import (
	"net/http"

	"github.com/authflow-go/authflow/credential"
	"github.com/authflow-go/authflow/internal/wwwauth"
)

// HTTPAuth authenticates in response to a server challenge. The first
// request is sent unauthenticated; on a 401 carrying a Basic challenge
// whose realm resolves in the realm map, the protocol commits to Basic
// authentication with the matching credential and asks the caller to
// retry. Once committed, the scheme never switches again.
//
// Only Basic challenges are currently supported.
type HTTPAuth struct {
	realms *credential.Realms
	// basic is nil until the protocol commits to a scheme.
	basic *BasicAuth
}

// NewHTTPAuth builds a challenge-response protocol over a realm
// credential map.
func NewHTTPAuth(realms *credential.Realms) *HTTPAuth {
	return &HTTPAuth{realms: realms}
}

func (h *HTTPAuth) Step() (Step, error) {
	if h.basic != nil {
		return h.basic.Step()
	}
	return nil, nil
}

func (h *HTTPAuth) Configure(req *http.Request) (*http.Request, error) {
	if h.basic != nil {
		return h.basic.Configure(req)
	}
	// Initial state: send unauthenticated to provoke the challenge.
	return req, nil
}

func (h *HTTPAuth) HasCompleted(resp *http.Response) (bool, error) {
	if h.basic != nil {
		return h.basic.HasCompleted(resp)
	}
	if resp.StatusCode != http.StatusUnauthorized {
		// This protocol only intercepts the challenge it understands;
		// anything else, success or not, belongs to the caller.
		return true, nil
	}
	challenges := wwwauth.Parse(resp.Header.Values("Www-Authenticate"))
	for _, ch := range challenges {
		if ch.Scheme != wwwauth.SchemeBasic {
			continue
		}
		cred, ok := h.realms.Credential(ch.Realm)
		if !ok {
			return false, &UnknownRealmError{Realm: ch.Realm}
		}
		h.basic = NewBasicAuth(cred)
		return false, nil
	}
	if len(challenges) > 0 {
		return false, &UnsupportedChallengeError{Scheme: string(challenges[0].Scheme)}
	}
	return false, ErrMalformedChallenge
}

func (h *HTTPAuth) Respond(resp *http.Response, err error) {
	if h.basic != nil {
		h.basic.Respond(resp, err)
		return
	}
	panic("authflow: unexpected auth response")
}
