package credential

import (
	"fmt"

	"github.com/joeshaw/envdecode"
)

type tokenEnv struct {
	Token string `env:"AUTHFLOW_TOKEN,required"`
}

// NewTokenFromEnv builds a static token credential from AUTHFLOW_TOKEN.
func NewTokenFromEnv() (*Token, error) {
	var cfg tokenEnv
	if err := envdecode.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("credential: decode env: %w", err)
	}
	return NewTokenString(cfg.Token), nil
}

type userPassEnv struct {
	Username string `env:"AUTHFLOW_USERNAME,required"`
	Password string `env:"AUTHFLOW_PASSWORD,required"`
}

// NewUserPassFromEnv builds a static username/password credential from
// AUTHFLOW_USERNAME and AUTHFLOW_PASSWORD.
func NewUserPassFromEnv() (*UserPass, error) {
	var cfg userPassEnv
	if err := envdecode.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("credential: decode env: %w", err)
	}
	return NewUserPass(cfg.Username, cfg.Password), nil
}
