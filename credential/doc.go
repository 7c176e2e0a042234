// Package credential owns authentication secret material and produces
// immutable snapshots of it for use during a single operation.
//
// A credential is created once by the application and shared across any
// number of concurrent operations. Fetching returns a snapshot whose
// fields never change; credentials that rotate publish a new snapshot
// instead of mutating an old one, so an operation holding a snapshot is
// unaffected by concurrent renewal.
//
// # Static credentials
//
// NewToken, NewUserPass and NewRealms wrap fixed material. Their AuthStep
// is a no-op and their snapshots never fail.
//
// # Renewing credentials
//
// NewJWT self-issues short-lived signed tokens with golang-jwt and rotates
// them at half of the expiration period. Renewal is non-blocking and
// single-writer: the first caller past the renew time signs a replacement
// under an advisory try-lock while other callers continue on the published
// snapshot, or are asked to poll again after a short wait once the old
// token passes hard expiry. NewJWTFromJWK derives the signing method and
// key from a JSON Web Key.
//
// NewClientCredentials renews a bearer token through the OAuth2
// client-credentials grant without performing network I/O itself: the
// exchange request is handed to the caller via StepRequest and its result
// fed back through HandleResponse.
//
// NewFile serves a token from a file rewritten out of band, republishing
// a snapshot whenever the file changes.
//
// # Errors
//
// ErrNotRenewed signals a fetch before the first renewal. ErrSigning,
// ErrRenewalPoisoned and ErrClock are permanent renewal failures; after
// the first signing failure the credential refuses further use.
package credential
