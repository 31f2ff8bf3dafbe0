package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
)

const bearerScheme = "Bearer"

// ExtractBearerToken pulls the raw token out of an Authorization header
// value. The header must match the "Bearer <token>" shape.
func ExtractBearerToken(header string) (string, error) {
	l := len(bearerScheme)
	if len(header) <= l+1 || !strings.EqualFold(header[:l], bearerScheme) {
		return "", ErrUnauthenticated
	}

	token := strings.TrimSpace(header[l:])
	if token == "" {
		return "", ErrUnauthenticated
	}

	return token, nil
}

// Authenticate resolves a bearer credential into the principal it was
// issued for. A missing or malformed header, a forged or expired token,
// and a principal that no longer exists all collapse into
// ErrUnauthenticated. The returned identity carries no password digest
// and no refresh ledger.
func (s *Auther) Authenticate(ctx context.Context, bearerHeader string) (Identity, error) {
	raw, err := ExtractBearerToken(bearerHeader)
	if err != nil {
		return nil, ErrUnauthenticated
	}

	claims, err := s.accessTokens.Validate(raw)
	if err != nil {
		s.logger.Debug("Authenticate token validation failed", "error", err)
		return nil, ErrUnauthenticated
	}

	id, err := uuid.Parse(claims.UserID())
	if err != nil {
		return nil, ErrUnauthenticated
	}

	// An access token can outlive its account. Look the principal up so
	// deleted accounts stop authenticating before the token expires.
	user, err := s.store.FindByID(ctx, id)
	if err != nil {
		if !errors.Is(err, ErrIdentityNotFound) {
			s.logger.Error("Authenticate store lookup error", "error", err)
		}
		return nil, ErrUnauthenticated
	}

	return user.Identity(), nil
}

// Authorize gates an authenticated identity on a minimum role
func (s *Auther) Authorize(identity Identity, minRole UserRole) error {
	if identity == nil {
		return ErrUnauthenticated
	}

	if !RoleIsAtLeast(identity.Role(), minRole) {
		return ErrForbidden
	}

	return nil
}
