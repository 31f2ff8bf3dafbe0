package auth_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"

	auth "github.com/aegeanlabs/go-userauth"
)

func TestJWTClaimsUserID(t *testing.T) {
	t.Run("prefers the uid claim", func(t *testing.T) {
		claims := &auth.JWTClaims{
			RegisteredClaims: jwt.RegisteredClaims{Subject: "subject-id"},
			UID:              "uid-claim",
		}
		assert.Equal(t, "uid-claim", claims.UserID())
	})

	t.Run("falls back to the subject", func(t *testing.T) {
		claims := &auth.JWTClaims{
			RegisteredClaims: jwt.RegisteredClaims{Subject: "subject-id"},
		}
		assert.Equal(t, "subject-id", claims.UserID())
	})
}

func TestJWTClaimsIsAtLeast(t *testing.T) {
	tests := []struct {
		name    string
		role    string
		minRole auth.UserRole
		want    bool
	}{
		{name: "user meets user", role: auth.RoleUser, minRole: auth.RoleUser, want: true},
		{name: "user below admin", role: auth.RoleUser, minRole: auth.RoleAdmin, want: false},
		{name: "admin meets user", role: auth.RoleAdmin, minRole: auth.RoleUser, want: true},
		{name: "admin meets admin", role: auth.RoleAdmin, minRole: auth.RoleAdmin, want: true},
		{name: "empty role fails", role: "", minRole: auth.RoleUser, want: false},
		{name: "unknown role fails", role: "ghost", minRole: auth.RoleUser, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims := &auth.JWTClaims{UserRole: tt.role}
			assert.Equal(t, tt.want, claims.IsAtLeast(tt.minRole))
		})
	}
}

func TestJWTClaimsTimes(t *testing.T) {
	t.Run("set claims round-trip", func(t *testing.T) {
		issued := time.Now().Truncate(time.Second)
		expires := issued.Add(15 * time.Minute)

		claims := &auth.JWTClaims{
			RegisteredClaims: jwt.RegisteredClaims{
				IssuedAt:  jwt.NewNumericDate(issued),
				ExpiresAt: jwt.NewNumericDate(expires),
			},
		}

		assert.Equal(t, issued, claims.IssuedAt())
		assert.Equal(t, expires, claims.Expires())
	})

	t.Run("unset claims are zero times", func(t *testing.T) {
		claims := &auth.JWTClaims{}

		assert.True(t, claims.IssuedAt().IsZero())
		assert.True(t, claims.Expires().IsZero())
	})
}
