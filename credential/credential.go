package credential

import (
	"errors"
	"net/http"
	"time"
)

// ErrNotRenewed indicates a renewing credential was fetched before its
// first successful renewal. Callers must drive AuthStep to completion at
// least once before fetching.
var ErrNotRenewed = errors.New("credential: not renewed yet")

// ErrRenewalPoisoned indicates a previous renewal failed while holding the
// renewal lock, leaving the credential permanently unusable.
var ErrRenewalPoisoned = errors.New("credential: renewal poisoned")

// ErrSigning indicates the token signing operation failed.
var ErrSigning = errors.New("credential: token signing failed")

// ErrClock indicates the system clock moved outside the range renewal math
// can represent.
var ErrClock = errors.New("credential: clock error")

// FetchedToken is an immutable snapshot of token material, consistent for
// the lifetime of one operation. Renewal never mutates a snapshot; it
// publishes a new one.
type FetchedToken interface {
	Token() []byte
}

// FetchedUserPass is an immutable snapshot of a username and password.
type FetchedUserPass interface {
	Username() string
	Password() string
}

// Credential is the base contract shared by all credential kinds.
//
// AuthStep performs whatever processing the credential needs before its
// material can be used. A zero duration means the credential is ready; a
// positive duration asks the caller to wait that long and call AuthStep
// again. Static credentials return zero unconditionally.
type Credential interface {
	AuthStep() (time.Duration, error)
}

// TokenCredential is a credential whose snapshots carry token bytes.
type TokenCredential interface {
	Credential
	// FetchToken returns the current snapshot. Rotating credentials may
	// return a different snapshot on each call; each snapshot stays
	// internally consistent for the duration of one operation.
	FetchToken() (FetchedToken, error)
}

// UserPassCredential is a credential whose snapshots carry a username and
// password pair.
type UserPassCredential interface {
	Credential
	FetchUserPass() (FetchedUserPass, error)
}

// RequestStepper is implemented by credentials that renew through an
// out-of-band HTTP exchange executed by the caller. Protocols detect the
// capability by type assertion and surface the request as a step
// instruction.
type RequestStepper interface {
	// StepRequest returns the next exchange to execute, or nil when no
	// exchange is needed right now. After executing the request the caller
	// must feed the outcome into HandleResponse before calling StepRequest
	// again.
	StepRequest() (*http.Request, error)

	// HandleResponse records the outcome of an exchange returned by
	// StepRequest. Exactly one of resp and err is meaningful.
	HandleResponse(resp *http.Response, err error)
}
