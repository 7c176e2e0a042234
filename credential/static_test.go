package credential

import "testing"

func TestTokenSnapshotIsStable(t *testing.T) {
	raw := []byte("secret-token")
	c := NewToken(raw)
	raw[0] = 'X' // callers must not be able to mutate the snapshot

	if d, err := c.AuthStep(); err != nil || d != 0 {
		t.Fatalf("auth step = (%v, %v), want (0, nil)", d, err)
	}
	fetched, err := c.FetchToken()
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if got := string(fetched.Token()); got != "secret-token" {
		t.Fatalf("token = %q, want %q", got, "secret-token")
	}
}

func TestUserPass(t *testing.T) {
	c := NewUserPass("username", "password")
	if d, err := c.AuthStep(); err != nil || d != 0 {
		t.Fatalf("auth step = (%v, %v), want (0, nil)", d, err)
	}
	fetched, err := c.FetchUserPass()
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if fetched.Username() != "username" || fetched.Password() != "password" {
		t.Fatalf("fetched = (%q, %q)", fetched.Username(), fetched.Password())
	}
}

func TestRealmsLookup(t *testing.T) {
	r := NewRealms(map[string]UserPassCredential{
		"Fake Realm": NewUserPass("username", "password"),
	})

	cred, ok := r.Credential("Fake Realm")
	if !ok || cred == nil {
		t.Fatal("expected a credential for the configured realm")
	}
	if _, ok := r.Credential("fake realm"); ok {
		t.Fatal("realm lookup must be case-sensitive")
	}
	if _, ok := r.Credential("Other Realm"); ok {
		t.Fatal("expected a lookup miss for an unconfigured realm")
	}
}
