package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Auther orchestrates registration, login, and refresh-token exchange.
// Access and refresh tokens come from two token services with distinct
// signing keys; the refresh ledger lives on the user record and every
// mutation is persisted through the store.
type Auther struct {
	store            UserStore
	accessTokens     TokenService
	refreshTokens    TokenService
	hasher           PasswordAuthenticator
	maxRefreshTokens int
	logger           Logger
}

// NewAuthenticator returns a new Auther. An invalid Config (empty or
// shared secrets, zero TTLs) is a startup failure, never a per-request one.
func NewAuthenticator(store UserStore, cfg Config) (*Auther, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("auth config: %w", err)
	}

	logger := defLogger{}
	audience := jwt.ClaimStrings(cfg.Audience)

	return &Auther{
		store:            store,
		accessTokens:     NewTokenService([]byte(cfg.AccessSigningKey), cfg.AccessTokenTTL, cfg.Issuer, audience, logger),
		refreshTokens:    NewTokenService([]byte(cfg.RefreshSigningKey), cfg.RefreshTokenTTL, cfg.Issuer, audience, logger),
		hasher:           bcryptAuthenticator{},
		maxRefreshTokens: cfg.MaxRefreshTokens,
		logger:           logger,
	}, nil
}

func (s *Auther) WithLogger(logger Logger) *Auther {
	if logger != nil {
		s.logger = logger
	}
	return s
}

// WithPasswordAuthenticator swaps the password hashing capability
func (s *Auther) WithPasswordAuthenticator(hasher PasswordAuthenticator) *Auther {
	if hasher != nil {
		s.hasher = hasher
	}
	return s
}

// WithTokenServices overrides both token services. Meant for tests and
// for callers that need custom claim handling.
func (s *Auther) WithTokenServices(access, refresh TokenService) *Auther {
	if access != nil {
		s.accessTokens = access
	}
	if refresh != nil {
		s.refreshTokens = refresh
	}
	return s
}

// AccessTokens returns the access token service, e.g. to hand its
// Validate to HTTP middleware.
func (s *Auther) AccessTokens() TokenService {
	return s.accessTokens
}

// RefreshTokens returns the refresh token service
func (s *Auther) RefreshTokens() TokenService {
	return s.refreshTokens
}

// Register creates an account with an empty refresh ledger. It does not
// issue tokens; a new user logs in as a separate step.
func (s *Auther) Register(ctx context.Context, name, email, password string, role UserRole) (*User, error) {
	if role == "" {
		role = RoleUser
	}

	if !IsValidRole(role) {
		return nil, fmt.Errorf("unknown role %q", role)
	}

	if _, err := s.store.GetByEmail(ctx, email); err == nil {
		return nil, ErrDuplicateEmail
	} else if !errors.Is(err, ErrIdentityNotFound) {
		s.logger.Error("Register store lookup error", "error", err)
		return nil, err
	}

	hash, err := s.hasher.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user, err := s.store.Register(ctx, &User{
		Name:          name,
		Email:         email,
		Role:          role,
		PasswordHash:  hash,
		RefreshTokens: []string{},
	})
	if err != nil {
		s.logger.Error("Register store create error", "error", err)
		return nil, err
	}

	return user.Public(), nil
}

// Login verifies credentials and issues one access and one refresh
// token, rotating the refresh token into the ledger. Unknown emails and
// wrong passwords are indistinguishable to the caller.
func (s *Auther) Login(ctx context.Context, email, password string) (*TokenPair, error) {
	user, err := s.store.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrIdentityNotFound) {
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("Login store lookup error", "error", err)
		return nil, err
	}

	if err := s.hasher.ComparePasswordAndHash(password, user.PasswordHash); err != nil {
		return nil, ErrInvalidCredentials
	}

	accessToken, err := s.accessTokens.Generate(user.Identity())
	if err != nil {
		s.logger.Error("Login access token error", "error", err)
		return nil, err
	}

	refreshToken, err := s.refreshTokens.SignClaims(s.refreshTokens.NewClaims(user.ID.String()))
	if err != nil {
		s.logger.Error("Login refresh token error", "error", err)
		return nil, err
	}

	ledger := AppendRefreshToken(user.RefreshTokens, refreshToken, s.maxRefreshTokens)
	if err := s.store.UpdateRefreshTokens(ctx, user.ID, ledger); err != nil {
		s.logger.Error("Login ledger update error", "error", err)
		return nil, err
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// Refresh exchanges a refresh token for a new access token. The refresh
// token must carry a valid signature, be unexpired, and still sit in the
// subject's ledger; every failure collapses into ErrInvalidToken so a
// caller learns nothing about which gate rejected it. The presented
// token stays in the ledger, so concurrent holders keep working.
func (s *Auther) Refresh(ctx context.Context, refreshToken string) (string, error) {
	claims, err := s.refreshTokens.Validate(refreshToken)
	if err != nil {
		s.logger.Debug("Refresh token validation failed", "error", err)
		return "", ErrInvalidToken
	}

	id, err := uuid.Parse(claims.UserID())
	if err != nil {
		return "", ErrInvalidToken
	}

	user, err := s.store.FindByID(ctx, id)
	if err != nil {
		if !errors.Is(err, ErrIdentityNotFound) {
			s.logger.Error("Refresh store lookup error", "error", err)
		}
		return "", ErrInvalidToken
	}

	if !ContainsRefreshToken(user.RefreshTokens, refreshToken) {
		return "", ErrInvalidToken
	}

	accessToken, err := s.accessTokens.Generate(user.Identity())
	if err != nil {
		s.logger.Error("Refresh access token error", "error", err)
		return "", ErrInvalidToken
	}

	return accessToken, nil
}

// RevokeRefreshToken removes one entry from a user's ledger. The token
// keeps a valid signature afterwards but Refresh will reject it.
func (s *Auther) RevokeRefreshToken(ctx context.Context, userID uuid.UUID, refreshToken string) error {
	user, err := s.store.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	if !ContainsRefreshToken(user.RefreshTokens, refreshToken) {
		return nil
	}

	ledger := RemoveRefreshToken(user.RefreshTokens, refreshToken)
	return s.store.UpdateRefreshTokens(ctx, user.ID, ledger)
}

type bcryptAuthenticator struct{}

func (bcryptAuthenticator) HashPassword(password string) (string, error) {
	return HashPassword(password)
}

func (bcryptAuthenticator) ComparePasswordAndHash(password, hash string) error {
	return ComparePasswordAndHash(password, hash)
}
