package tests

import (
	"net/http"
	"reflect"
	"testing"

	"github.com/authflow-go/authflow"
	"github.com/authflow-go/authflow/credential"
	"github.com/authflow-go/authflow/flowtest"
)

// Direct basic authentication: credentials go out on the first request.
func TestBasicDirect(t *testing.T) {
	srv := flowtest.NewBasicServer(t, "Fake Realm", "username", "password")
	client := srv.Client()

	proto := authflow.NewBasicAuth(credential.NewUserPass("username", "password"))
	resp, statuses := do(t, client, proto, http.MethodGet, srv.URL)
	resp.Body.Close()

	if !reflect.DeepEqual(statuses, []int{http.StatusOK}) {
		t.Fatalf("statuses = %v, want [200]", statuses)
	}
	if served := srv.Statuses(); len(served) != 1 {
		t.Fatalf("requests served = %d, want exactly 1", len(served))
	}
}

// Challenge-response: the first request is unauthenticated, the 401
// challenge selects the realm credential, and the retry succeeds.
func TestBasicChallengeResponse(t *testing.T) {
	srv := flowtest.NewBasicServer(t, "Fake Realm", "username", "password")
	client := srv.Client()

	realms := credential.NewRealms(map[string]credential.UserPassCredential{
		"Fake Realm": credential.NewUserPass("username", "password"),
	})
	proto := authflow.NewHTTPAuth(realms)
	resp, statuses := do(t, client, proto, http.MethodGet, srv.URL)
	resp.Body.Close()

	want := []int{http.StatusUnauthorized, http.StatusOK}
	if !reflect.DeepEqual(statuses, want) {
		t.Fatalf("statuses = %v, want %v", statuses, want)
	}
	if served := srv.Statuses(); !reflect.DeepEqual(served, want) {
		t.Fatalf("server saw %v, want %v", served, want)
	}
}
