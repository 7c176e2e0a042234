package credential

import (
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// renewPollInterval is how long a caller is asked to wait when another
// caller is renewing and the published token is already past hard expiry.
const renewPollInterval = 10 * time.Millisecond

// jwtSnapshot is an immutable, published-once view of a signed token.
type jwtSnapshot struct {
	token     []byte
	issuedAt  time.Time
	renewAt   time.Time
	expiresAt time.Time
}

func (s *jwtSnapshot) Token() []byte { return s.token }

// JWT is a credential that self-issues short-lived signed tokens.
//
// The credential can be shared indefinitely across concurrent operations;
// the underlying token is rotated at half of its expiration period so it
// always has a reasonable remaining lifetime when used. Renewal is
// single-writer: the first caller past the renew time signs a new token
// while other callers keep using the previously published snapshot, which
// stays valid until hard expiry.
type JWT struct {
	method     jwt.SigningMethod
	key        any
	keyID      string
	expiration time.Duration
	issuer     string
	subject    string
	audience   []string
	randomJTI  bool
	log        *slog.Logger
	now        func() time.Time

	current atomic.Pointer[jwtSnapshot]

	// mu serializes renewal. renewAt and poisoned are guarded by it; the
	// renewAt copy prevents a caller that read a stale snapshot from
	// renewing again right after another caller finished.
	mu       sync.Mutex
	renewAt  time.Time
	poisoned error
}

// JWTOption configures optional claims and behavior of a JWT credential.
type JWTOption func(*JWT)

// WithIssuer sets the "iss" claim on issued tokens.
func WithIssuer(issuer string) JWTOption {
	return func(c *JWT) { c.issuer = issuer }
}

// WithSubject sets the "sub" claim on issued tokens.
func WithSubject(subject string) JWTOption {
	return func(c *JWT) { c.subject = subject }
}

// WithAudience sets the "aud" claim on issued tokens.
func WithAudience(audience ...string) JWTOption {
	return func(c *JWT) { c.audience = append([]string(nil), audience...) }
}

// WithKeyID sets the "kid" header on issued tokens.
func WithKeyID(kid string) JWTOption {
	return func(c *JWT) { c.keyID = kid }
}

// WithRandomJTI mints a fresh random "jti" claim on every renewal.
func WithRandomJTI() JWTOption {
	return func(c *JWT) { c.randomJTI = true }
}

// WithLogger sets the slog logger used for renewal events. If not
// provided, logs are discarded.
func WithLogger(log *slog.Logger) JWTOption {
	return func(c *JWT) { c.log = log }
}

// NewJWT builds a self-renewing JWT credential.
//
// The method and key are passed to golang-jwt as-is. The expiration
// parameter controls how long each issued token is valid; endpoints may
// restrict tokens to a maximum lifetime. Tokens are rotated after half the
// expiration period.
func NewJWT(method jwt.SigningMethod, key any, expiration time.Duration, opts ...JWTOption) *JWT {
	c := &JWT{
		method:     method,
		key:        key,
		expiration: expiration,
		log:        slog.New(slog.DiscardHandler),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// AuthStep advances token renewal without blocking.
//
// The fast path is a lock-free read of the current snapshot: if it exists
// and its renew time has not passed, there is nothing to do. Past the
// renew time, exactly one caller acquires the renewal lock and signs a
// replacement; concurrent callers keep using the published snapshot while
// it remains within hard expiry, or are asked to poll again shortly when
// it does not.
func (c *JWT) AuthStep() (time.Duration, error) {
	now := c.now()
	cur := c.current.Load()
	if cur != nil && now.Before(cur.renewAt) {
		return 0, nil
	}
	if !c.mu.TryLock() {
		if cur != nil && now.Before(cur.expiresAt) {
			// Slightly stale but still valid while the lock holder renews.
			return 0, nil
		}
		return renewPollInterval, nil
	}
	defer c.mu.Unlock()
	if c.poisoned != nil {
		return 0, fmt.Errorf("%w: %v", ErrRenewalPoisoned, c.poisoned)
	}
	if now.Before(c.renewAt) {
		// A concurrent renewal finished between the snapshot read and the
		// lock acquisition; the token this caller saw was already replaced.
		return 0, nil
	}
	if now.Unix() < 0 {
		return 0, fmt.Errorf("%w: current time %s precedes the unix epoch", ErrClock, now)
	}
	snap, err := c.sign(now)
	if err != nil {
		c.poisoned = err
		return 0, fmt.Errorf("%w: %v", ErrSigning, err)
	}
	c.current.Store(snap)
	c.renewAt = snap.renewAt
	c.log.Debug("jwt.renew.ok",
		slog.Time("issued_at", snap.issuedAt),
		slog.Time("renew_at", snap.renewAt),
		slog.Time("expires_at", snap.expiresAt),
	)
	return 0, nil
}

func (c *JWT) sign(now time.Time) (*jwtSnapshot, error) {
	expiry := now.Add(c.expiration)
	claims := jwt.RegisteredClaims{
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiry),
	}
	if c.issuer != "" {
		claims.Issuer = c.issuer
	}
	if c.subject != "" {
		claims.Subject = c.subject
	}
	if len(c.audience) > 0 {
		claims.Audience = jwt.ClaimStrings(c.audience)
	}
	if c.randomJTI {
		claims.ID = uuid.NewString()
	}
	tok := jwt.NewWithClaims(c.method, claims)
	if c.keyID != "" {
		tok.Header["kid"] = c.keyID
	}
	signed, err := tok.SignedString(c.key)
	if err != nil {
		return nil, err
	}
	return &jwtSnapshot{
		token:     []byte(signed),
		issuedAt:  now,
		renewAt:   now.Add(c.expiration / 2),
		expiresAt: expiry,
	}, nil
}

// FetchToken returns the currently published snapshot. It fails with
// ErrNotRenewed until AuthStep has produced the first token.
func (c *JWT) FetchToken() (FetchedToken, error) {
	if snap := c.current.Load(); snap != nil {
		return snap, nil
	}
	return nil, ErrNotRenewed
}
