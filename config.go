package auth

import (
	"fmt"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
)

// Config carries every knob the authenticator needs. It is built once at
// startup and injected; nothing in this package reads the environment.
type Config struct {
	// AccessSigningKey signs short-lived access tokens
	AccessSigningKey string
	// RefreshSigningKey signs refresh tokens. Must differ from the
	// access key or the two token kinds become interchangeable.
	RefreshSigningKey string
	// AccessTokenTTL is the access token validity window
	AccessTokenTTL time.Duration
	// RefreshTokenTTL is the refresh token validity window
	RefreshTokenTTL time.Duration
	// MaxRefreshTokens bounds the per-user refresh token ledger. Zero or
	// negative disables eviction; the ledger then grows without bound.
	MaxRefreshTokens int
	Issuer           string
	Audience         []string
}

// Validate fails fast on a configuration that would otherwise surface as
// per-request auth failures.
func (c Config) Validate() error {
	err := validation.ValidateStruct(&c,
		validation.Field(&c.AccessSigningKey, validation.Required),
		validation.Field(&c.RefreshSigningKey, validation.Required),
		validation.Field(&c.AccessTokenTTL, validation.Required, validation.Min(time.Second)),
		validation.Field(&c.RefreshTokenTTL, validation.Required, validation.Min(time.Second)),
	)
	if err != nil {
		return err
	}

	if c.AccessSigningKey == c.RefreshSigningKey {
		return fmt.Errorf("access and refresh signing keys must differ")
	}

	if c.RefreshTokenTTL <= c.AccessTokenTTL {
		return fmt.Errorf("refresh token TTL must exceed access token TTL")
	}

	return nil
}
