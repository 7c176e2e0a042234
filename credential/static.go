package credential

import "time"

// fetchedToken is the snapshot type shared by the static token credentials.
type fetchedToken struct {
	token []byte
}

func (f *fetchedToken) Token() []byte { return f.token }

// Token is a credential wrapping a fixed token, used as an API key header
// or for Bearer authentication. It never rotates and never fails.
type Token struct {
	current *fetchedToken
}

// NewToken builds a static token credential. The token bytes are copied.
func NewToken(token []byte) *Token {
	return &Token{current: &fetchedToken{token: append([]byte(nil), token...)}}
}

// NewTokenString builds a static token credential from a string.
func NewTokenString(token string) *Token {
	return &Token{current: &fetchedToken{token: []byte(token)}}
}

func (c *Token) AuthStep() (time.Duration, error) { return 0, nil }

func (c *Token) FetchToken() (FetchedToken, error) { return c.current, nil }

type fetchedUserPass struct {
	username string
	password string
}

func (f *fetchedUserPass) Username() string { return f.username }
func (f *fetchedUserPass) Password() string { return f.password }

// UserPass is a credential wrapping a fixed username and password.
type UserPass struct {
	current *fetchedUserPass
}

// NewUserPass builds a static username/password credential.
func NewUserPass(username, password string) *UserPass {
	return &UserPass{current: &fetchedUserPass{username: username, password: password}}
}

func (c *UserPass) AuthStep() (time.Duration, error) { return 0, nil }

func (c *UserPass) FetchUserPass() (FetchedUserPass, error) { return c.current, nil }
