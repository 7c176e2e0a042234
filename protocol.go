package authflow

import (
	"net/http"
	"time"

	"github.com/authflow-go/authflow/credential"
)

// Step is a pre-flight instruction issued by a Protocol before the
// caller builds its request. The closed set of implementations is
// RequestStep and WaitStep.
type Step interface {
	isStep()
}

// RequestStep asks the caller to execute Request out of band and feed
// the outcome back through the protocol's Respond method.
type RequestStep struct {
	Request *http.Request
}

// WaitStep asks the caller to sleep for Duration and call Step again.
type WaitStep struct {
	Duration time.Duration
}

func (RequestStep) isStep() {}
func (WaitStep) isStep()    {}

// Protocol turns a credential into concrete headers on an outgoing
// request and reacts to the server's response. A caller drives one
// protocol instance per logical operation:
//
//  1. call Step until it returns nil, executing RequestStep exchanges
//     (reporting outcomes via Respond) and honoring WaitStep delays;
//  2. call Configure on the outgoing request;
//  3. send the request through its own HTTP client;
//  4. call HasCompleted with the response; false means retry the loop
//     with the same protocol instance, which may now be configured for
//     a different scheme.
type Protocol interface {
	// Step returns the next pre-flight instruction, or nil when the
	// protocol is ready to configure a request.
	Step() (Step, error)

	// Configure adds the authentication material for the currently
	// committed scheme to req, returning the request to send. The
	// returned request may differ from req when headers are marked
	// sensitive.
	Configure(req *http.Request) (*http.Request, error)

	// HasCompleted inspects the response of the main exchange. A false
	// return instructs the caller to retry the operation.
	HasCompleted(resp *http.Response) (bool, error)

	// Respond feeds the outcome of a RequestStep exchange back into the
	// protocol. Calling it when no exchange was requested is a
	// programming error and panics.
	Respond(resp *http.Response, err error)
}

// credentialStep derives a Step from a credential. Credentials that
// renew through caller-executed exchanges surface them here.
func credentialStep(cred credential.Credential) (Step, error) {
	if rs, ok := cred.(credential.RequestStepper); ok {
		req, err := rs.StepRequest()
		if err != nil {
			return nil, err
		}
		if req != nil {
			return RequestStep{Request: req}, nil
		}
	}
	d, err := cred.AuthStep()
	if err != nil {
		return nil, err
	}
	if d > 0 {
		return WaitStep{Duration: d}, nil
	}
	return nil, nil
}

// credentialRespond forwards an exchange outcome to the credential that
// asked for it.
func credentialRespond(cred credential.Credential, resp *http.Response, err error) {
	if rs, ok := cred.(credential.RequestStepper); ok {
		rs.HandleResponse(resp, err)
		return
	}
	panic("authflow: unexpected auth response")
}
