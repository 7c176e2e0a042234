package credential

import "time"

// Realms maps authentication realms to username/password sub-credentials.
//
// For HTTP challenge-response authentication, this selects the credential
// matching the realm named in the server's WWW-Authenticate header. The
// map is immutable after construction; realm comparison is exact and
// case-sensitive. A missing realm is a defined lookup miss, not an error
// at this layer.
type Realms struct {
	creds map[string]UserPassCredential
}

// NewRealms builds a realm credential map. The map is copied.
func NewRealms(creds map[string]UserPassCredential) *Realms {
	m := make(map[string]UserPassCredential, len(creds))
	for realm, cred := range creds {
		m[realm] = cred
	}
	return &Realms{creds: m}
}

func (r *Realms) AuthStep() (time.Duration, error) { return 0, nil }

// Credential returns the sub-credential configured for realm.
func (r *Realms) Credential(realm string) (UserPassCredential, bool) {
	cred, ok := r.creds[realm]
	return cred, ok
}
