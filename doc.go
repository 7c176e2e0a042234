// Package authflow attaches authentication material to outgoing HTTP
// requests across multiple schemes (header token, bearer, basic and
// realm-based challenge-response) without call sites knowing which
// scheme is active.
//
// The package never performs network I/O. Callers own the HTTP client
// and drive a Protocol through a fixed loop: pre-flight steps, request
// configuration, and response inspection that may ask for a retry after
// the protocol switches schemes in response to a challenge.
//
//	cred := credential.NewRealms(map[string]credential.UserPassCredential{
//	    "Fake Realm": credential.NewUserPass("username", "password"),
//	})
//	proto := authflow.NewHTTPAuth(cred)
//
//	for {
//	    for {
//	        step, err := proto.Step()
//	        if err != nil { return err }
//	        if step == nil { break }
//	        switch s := step.(type) {
//	        case authflow.RequestStep:
//	            resp, err := client.Do(s.Request)
//	            proto.Respond(resp, err)
//	        case authflow.WaitStep:
//	            time.Sleep(s.Duration)
//	        }
//	    }
//
//	    req, err := http.NewRequest("GET", url, nil)
//	    if err != nil { return err }
//	    req, err = proto.Configure(req)
//	    if err != nil { return err }
//
//	    resp, err := client.Do(req)
//	    if err != nil { return err }
//
//	    done, err := proto.HasCompleted(resp)
//	    if err != nil { return err }
//	    if done { break }
//	}
//
// Credentials live in the credential subpackage and may be shared by
// any number of protocol instances; rotating credentials renew without
// blocking readers.
//
// # Sensitive headers
//
// Headers set by Configure are recorded on the request context via
// MarkSensitive. Transports that log outgoing requests must redact the
// headers reported by SensitiveHeaders.
//
// # Errors
//
// Terminal failures are a closed set: UnknownRealmError and
// UnsupportedChallengeError from challenge handling, ErrHeaderValue and
// ErrMalformedChallenge from this package, and the renewal errors
// exported by the credential package. A failed operation surfaces
// exactly one terminal error.
package authflow
