// Package flowtest provides httptest-backed fake endpoints for
// exercising authentication flows end to end: a basic-auth server that
// issues realm challenges and an OAuth2 token endpoint with a protected
// resource.
package flowtest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"
)

// BasicServer requires HTTP Basic authentication and answers
// unauthenticated requests with a 401 challenge naming its realm.
type BasicServer struct {
	*httptest.Server

	mu       sync.Mutex
	statuses []int
}

// NewBasicServer starts a BasicServer accepting the given credentials.
// The server is closed automatically when the test finishes.
func NewBasicServer(t *testing.T, realm, username, password string) *BasicServer {
	t.Helper()
	s := &BasicServer{}
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		status := http.StatusOK
		if !ok || user != username || pass != password {
			status = http.StatusUnauthorized
			w.Header().Set("WWW-Authenticate", fmt.Sprintf("Basic realm=%q", realm))
		}
		s.mu.Lock()
		s.statuses = append(s.statuses, status)
		s.mu.Unlock()
		w.WriteHeader(status)
		if status == http.StatusOK {
			fmt.Fprintln(w, "ok")
		}
	}))
	t.Cleanup(s.Close)
	return s
}

// Statuses returns the status codes served so far, in order.
func (s *BasicServer) Statuses() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]int(nil), s.statuses...)
}

// TokenServer is a fake OAuth2 authorization server with a token
// endpoint for the client_credentials grant and a protected resource
// that accepts only tokens it issued.
type TokenServer struct {
	*httptest.Server

	clientID     string
	clientSecret string
	ttl          time.Duration

	mu        sync.Mutex
	exchanges int
	issued    map[string]bool
}

// NewTokenServer starts a TokenServer issuing tokens with the given
// lifetime to the given client. The server is closed automatically when
// the test finishes.
func NewTokenServer(t *testing.T, clientID, clientSecret string, ttl time.Duration) *TokenServer {
	t.Helper()
	s := &TokenServer{
		clientID:     clientID,
		clientSecret: clientSecret,
		ttl:          ttl,
		issued:       map[string]bool{},
	}
	mux := http.NewServeMux()
	mux.HandleFunc("POST /token", s.handleToken)
	mux.HandleFunc("GET /resource", s.handleResource)
	s.Server = httptest.NewServer(mux)
	t.Cleanup(s.Close)
	return s
}

func (s *TokenServer) handleToken(w http.ResponseWriter, r *http.Request) {
	user, pass, ok := r.BasicAuth()
	if !ok || user != s.clientID || pass != s.clientSecret {
		http.Error(w, "invalid_client", http.StatusUnauthorized)
		return
	}
	if err := r.ParseForm(); err != nil || r.PostForm.Get("grant_type") != "client_credentials" {
		http.Error(w, "unsupported_grant_type", http.StatusBadRequest)
		return
	}
	s.mu.Lock()
	s.exchanges++
	token := fmt.Sprintf("flowtest-token-%d", s.exchanges)
	s.issued[token] = true
	s.mu.Unlock()
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"access_token": token,
		"token_type":   "Bearer",
		"expires_in":   int64(s.ttl / time.Second),
	})
}

func (s *TokenServer) handleResource(w http.ResponseWriter, r *http.Request) {
	token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	s.mu.Lock()
	valid := ok && s.issued[token]
	s.mu.Unlock()
	if !valid {
		w.Header().Set("WWW-Authenticate", "Bearer")
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	fmt.Fprintln(w, "ok")
}

// TokenURL returns the token endpoint URL.
func (s *TokenServer) TokenURL() string { return s.URL + "/token" }

// ResourceURL returns the protected resource URL.
func (s *TokenServer) ResourceURL() string { return s.URL + "/resource" }

// Exchanges reports how many token exchanges the server has performed.
func (s *TokenServer) Exchanges() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.exchanges
}
