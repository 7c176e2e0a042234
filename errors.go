package authflow

import (
	"errors"
	"fmt"
)

// ErrHeaderValue indicates authentication material could not be encoded
// as an HTTP header. It is surfaced by Configure before any network I/O.
var ErrHeaderValue = errors.New("authflow: invalid header value")

// ErrMalformedChallenge indicates a 401 response carried no parseable
// WWW-Authenticate challenge.
var ErrMalformedChallenge = errors.New("authflow: malformed WWW-Authenticate challenge")

// UnknownRealmError indicates a challenge named a realm with no
// configured credential. The operation aborts permanently.
type UnknownRealmError struct {
	Realm string
}

func (e *UnknownRealmError) Error() string {
	return fmt.Sprintf("authflow: no credentials found for realm %q", e.Realm)
}

// UnsupportedChallengeError indicates the server challenged with a
// scheme this module does not implement, such as Digest.
type UnsupportedChallengeError struct {
	Scheme string
}

func (e *UnsupportedChallengeError) Error() string {
	return fmt.Sprintf("authflow: unsupported challenge scheme %q", e.Scheme)
}
