package tests

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/authflow-go/authflow"
	"github.com/authflow-go/authflow/credential"
	"github.com/golang-jwt/jwt/v5"
)

var jwtSecret = []byte("0123456789abcdef0123456789abcdef")

// newJWTServer verifies bearer JWTs signed with jwtSecret.
func newJWTServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		if _, err := jwt.Parse(raw, func(tok *jwt.Token) (any, error) {
			return jwtSecret, nil
		}, jwt.WithValidMethods([]string{"HS256"}), jwt.WithExpirationRequired()); err != nil {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		fmt.Fprintln(w, "ok")
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestJWTBearer(t *testing.T) {
	srv := newJWTServer(t)
	client := srv.Client()

	cred := credential.NewJWT(jwt.SigningMethodHS256, jwtSecret, time.Hour,
		credential.WithIssuer("issuer.test"))

	proto := authflow.NewBearerAuth(cred)
	resp, statuses := do(t, client, proto, http.MethodGet, srv.URL)
	resp.Body.Close()

	if len(statuses) != 1 || statuses[0] != http.StatusOK {
		t.Fatalf("statuses = %v, want [200]", statuses)
	}
}

// A shared renewing credential serves the same token to successive
// operations until half of its expiration period passes, then rotates.
func TestJWTBearerRotation(t *testing.T) {
	srv := newJWTServer(t)
	client := srv.Client()

	// Claim timestamps have one second resolution, so the period must be
	// at least that long for a rotated token to differ.
	const period = time.Second
	cred := credential.NewJWT(jwt.SigningMethodHS256, jwtSecret, period)

	header := func() string {
		proto := authflow.NewBearerAuth(cred)
		resp, _ := do(t, client, proto, http.MethodGet, srv.URL)
		resp.Body.Close()

		req, err := http.NewRequest(http.MethodGet, srv.URL, nil)
		if err != nil {
			t.Fatal(err)
		}
		req, err = proto.Configure(req)
		if err != nil {
			t.Fatal(err)
		}
		return req.Header.Get("Authorization")
	}

	first := header()
	second := header()
	if first != second {
		t.Fatal("token rotated before half of the expiration period")
	}

	time.Sleep(period + 100*time.Millisecond)

	third := header()
	if third == first {
		t.Fatal("token not rotated after the expiration period")
	}
}
