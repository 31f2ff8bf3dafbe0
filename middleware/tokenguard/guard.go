// Package tokenguard is a fiber middleware that authenticates bearer
// credentials and optionally enforces a role requirement. It speaks to
// the auth package through small local interfaces so the two packages
// can depend on each other in one direction only.
package tokenguard

import (
	"context"

	"github.com/gofiber/fiber/v2"
)

// Principal mirrors the auth package's Identity interface
type Principal interface {
	ID() string
	Name() string
	Email() string
	Role() string
}

// Config holds the middleware wiring. Authenticate is required.
type Config struct {
	// Filter skips the middleware when it returns true
	Filter func(*fiber.Ctx) bool

	// Authenticate resolves the raw Authorization header value into a
	// principal. It owns the bearer-shape check, token validation, and
	// the principal lookup.
	Authenticate func(ctx context.Context, bearerHeader string) (Principal, error)

	// Authorize runs after authentication, typically a role gate
	Authorize func(principal Principal) error

	// ContextKey is the fiber locals key the principal is stored under
	ContextKey string

	// HeaderKey is the request header carrying the bearer credential
	HeaderKey string

	// ErrorHandler maps authentication and authorization failures to a
	// response. The default answers 401 for everything.
	ErrorHandler func(c *fiber.Ctx, err error) error

	// ContextEnricher propagates the principal into the request's
	// standard context for handlers that run outside fiber.
	ContextEnricher func(ctx context.Context, principal Principal) context.Context
}

// New returns the guard handler
func New(config ...Config) fiber.Handler {
	cfg := GetDefaultConfig(config...)

	return func(c *fiber.Ctx) error {
		if cfg.Filter != nil && cfg.Filter(c) {
			return c.Next()
		}

		principal, err := cfg.Authenticate(c.UserContext(), c.Get(cfg.HeaderKey))
		if err != nil {
			return cfg.ErrorHandler(c, err)
		}

		if cfg.Authorize != nil {
			if err := cfg.Authorize(principal); err != nil {
				return cfg.ErrorHandler(c, err)
			}
		}

		c.Locals(cfg.ContextKey, principal)

		if cfg.ContextEnricher != nil {
			c.SetUserContext(cfg.ContextEnricher(c.UserContext(), principal))
		}

		return c.Next()
	}
}

// GetDefaultConfig fills in the optional fields
func GetDefaultConfig(config ...Config) (cfg Config) {
	if len(config) > 0 {
		cfg = config[0]
	}

	if cfg.Authenticate == nil {
		panic("AUTH: tokenguard middleware configuration: Authenticate is required.")
	}

	if cfg.ContextKey == "" {
		cfg.ContextKey = "principal"
	}

	if cfg.HeaderKey == "" {
		cfg.HeaderKey = fiber.HeaderAuthorization
	}

	if cfg.ErrorHandler == nil {
		cfg.ErrorHandler = func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Unauthorized",
			})
		}
	}

	return cfg
}

// PrincipalFromCtx extracts the authenticated principal stored by the guard
func PrincipalFromCtx(c *fiber.Ctx, key ...string) (Principal, bool) {
	k := "principal"
	if len(key) > 0 && key[0] != "" {
		k = key[0]
	}

	principal, ok := c.Locals(k).(Principal)
	return principal, ok
}
