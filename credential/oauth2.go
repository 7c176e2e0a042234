package credential

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/joeshaw/envdecode"
)

// ClientCredentialsConfig configures an OAuth2 client-credentials token
// source. Defaults can be loaded via envdecode.
type ClientCredentialsConfig struct {
	// TokenURL is the authorization server's token endpoint. ENV: AUTHFLOW_TOKEN_URL
	TokenURL string `env:"AUTHFLOW_TOKEN_URL,required"`
	// ClientID for the client_credentials grant. ENV: AUTHFLOW_CLIENT_ID
	ClientID string `env:"AUTHFLOW_CLIENT_ID,required"`
	// ClientSecret for the client_credentials grant. ENV: AUTHFLOW_CLIENT_SECRET
	ClientSecret string `env:"AUTHFLOW_CLIENT_SECRET,required"`
	// Scope is the space-delimited scope parameter, optional. ENV: AUTHFLOW_SCOPE
	Scope string `env:"AUTHFLOW_SCOPE"`
	// FallbackTTL is assumed when the endpoint omits expires_in. ENV: AUTHFLOW_TOKEN_TTL
	FallbackTTL time.Duration `env:"AUTHFLOW_TOKEN_TTL,default=5m"`
	// Logger for exchange events. If nil, logs are discarded.
	Logger *slog.Logger
}

// oauthSnapshot is an immutable view of one issued access token.
type oauthSnapshot struct {
	token     []byte
	issuedAt  time.Time
	renewAt   time.Time
	expiresAt time.Time
}

func (s *oauthSnapshot) Token() []byte { return s.token }

// ClientCredentials renews a bearer token through the OAuth2
// client-credentials grant. The credential itself performs no network
// I/O: StepRequest hands the token-endpoint exchange to the caller and
// HandleResponse consumes the outcome. Tokens are rotated at half their
// reported lifetime, with the same single-writer discipline as the JWT
// credential: while one caller's exchange is in flight, others keep using
// the published token until hard expiry.
type ClientCredentials struct {
	cfg ClientCredentialsConfig
	log *slog.Logger
	now func() time.Time

	current atomic.Pointer[oauthSnapshot]

	mu      sync.Mutex
	pending bool
	renewAt time.Time
	lastErr error
}

// NewClientCredentials builds a client-credentials token source.
func NewClientCredentials(cfg ClientCredentialsConfig) (*ClientCredentials, error) {
	if cfg.TokenURL == "" {
		return nil, errors.New("credential: token url is required")
	}
	if cfg.ClientID == "" {
		return nil, errors.New("credential: client id is required")
	}
	if cfg.FallbackTTL <= 0 {
		cfg.FallbackTTL = 5 * time.Minute
	}
	log := cfg.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &ClientCredentials{cfg: cfg, log: log, now: time.Now}, nil
}

// NewClientCredentialsFromEnv builds a client-credentials token source
// using envdecode to populate ClientCredentialsConfig.
func NewClientCredentialsFromEnv() (*ClientCredentials, error) {
	var cfg ClientCredentialsConfig
	if err := envdecode.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("credential: decode env: %w", err)
	}
	return NewClientCredentials(cfg)
}

// AuthStep reports whether callers must wait for an in-flight exchange.
// It only asks for a poll when the published token is past hard expiry
// while another caller's exchange is outstanding.
func (c *ClientCredentials) AuthStep() (time.Duration, error) {
	now := c.now()
	if cur := c.current.Load(); cur != nil && now.Before(cur.expiresAt) {
		return 0, nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.pending {
		return renewPollInterval, nil
	}
	return 0, nil
}

// StepRequest returns the token-endpoint exchange to execute when the
// published token needs renewal, or nil when no exchange is needed. At
// most one exchange is outstanding at a time.
func (c *ClientCredentials) StepRequest() (*http.Request, error) {
	now := c.now()
	cur := c.current.Load()
	if cur != nil && now.Before(cur.renewAt) {
		return nil, nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.lastErr != nil {
		err := c.lastErr
		c.lastErr = nil
		return nil, err
	}
	if c.pending {
		// Another caller owns the exchange; AuthStep decides whether this
		// one can proceed on the published token or has to wait.
		return nil, nil
	}
	if now.Before(c.renewAt) {
		return nil, nil
	}
	req, err := c.buildRequest()
	if err != nil {
		return nil, err
	}
	c.pending = true
	return req, nil
}

func (c *ClientCredentials) buildRequest() (*http.Request, error) {
	form := url.Values{"grant_type": {"client_credentials"}}
	if c.cfg.Scope != "" {
		form.Set("scope", c.cfg.Scope)
	}
	req, err := http.NewRequest(http.MethodPost, c.cfg.TokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("credential: build token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")
	req.SetBasicAuth(c.cfg.ClientID, c.cfg.ClientSecret)
	return req, nil
}

// HandleResponse records the outcome of an exchange handed out by
// StepRequest. Calling it without an outstanding exchange is a
// programming error.
func (c *ClientCredentials) HandleResponse(resp *http.Response, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.pending {
		panic("credential: unexpected token endpoint response")
	}
	c.pending = false
	if err != nil {
		c.lastErr = fmt.Errorf("credential: token exchange failed: %w", err)
		c.log.Warn("oauth2.exchange.fail", slog.String("err", err.Error()))
		return
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		c.lastErr = fmt.Errorf("credential: token endpoint returned %s", resp.Status)
		c.log.Warn("oauth2.exchange.fail", slog.Int("status", resp.StatusCode))
		return
	}
	var body struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
		ExpiresIn   int64  `json:"expires_in"`
	}
	if derr := json.NewDecoder(resp.Body).Decode(&body); derr != nil {
		c.lastErr = fmt.Errorf("credential: decode token response: %w", derr)
		return
	}
	if body.AccessToken == "" {
		c.lastErr = errors.New("credential: token response missing access_token")
		return
	}
	ttl := c.cfg.FallbackTTL
	if body.ExpiresIn > 0 {
		ttl = time.Duration(body.ExpiresIn) * time.Second
	}
	now := c.now()
	snap := &oauthSnapshot{
		token:     []byte(body.AccessToken),
		issuedAt:  now,
		renewAt:   now.Add(ttl / 2),
		expiresAt: now.Add(ttl),
	}
	c.current.Store(snap)
	c.renewAt = snap.renewAt
	c.log.Debug("oauth2.token.ok",
		slog.Time("renew_at", snap.renewAt),
		slog.Time("expires_at", snap.expiresAt),
	)
}

// FetchToken returns the currently published access token snapshot. It
// fails with ErrNotRenewed until the first exchange completes.
func (c *ClientCredentials) FetchToken() (FetchedToken, error) {
	if snap := c.current.Load(); snap != nil {
		return snap, nil
	}
	return nil, ErrNotRenewed
}
