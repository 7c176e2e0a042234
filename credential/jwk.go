package credential

import (
	"errors"
	"fmt"
	"time"

	jose "github.com/go-jose/go-jose/v4"
	"github.com/golang-jwt/jwt/v5"
)

// NewJWTFromJWK builds a self-renewing JWT credential from a JSON Web Key.
//
// The key must be a private or symmetric key and must carry an "alg"
// member naming the signing algorithm. A "kid" member, when present, is
// propagated into the header of issued tokens.
func NewJWTFromJWK(jwkJSON []byte, expiration time.Duration, opts ...JWTOption) (*JWT, error) {
	var key jose.JSONWebKey
	if err := key.UnmarshalJSON(jwkJSON); err != nil {
		return nil, fmt.Errorf("credential: parse jwk: %w", err)
	}
	if !key.Valid() {
		return nil, errors.New("credential: jwk is not valid")
	}
	if key.IsPublic() {
		return nil, errors.New("credential: jwk must contain a private or symmetric key")
	}
	if key.Algorithm == "" {
		return nil, errors.New("credential: jwk is missing the alg member")
	}
	method := jwt.GetSigningMethod(key.Algorithm)
	if method == nil {
		return nil, fmt.Errorf("credential: unsupported jwk algorithm %q", key.Algorithm)
	}
	if key.KeyID != "" {
		opts = append(opts, WithKeyID(key.KeyID))
	}
	return NewJWT(method, key.Key, expiration, opts...), nil
}
