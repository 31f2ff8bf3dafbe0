package auth_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	auth "github.com/aegeanlabs/go-userauth"
)

func TestIsTokenExpiredError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "sentinel", err: auth.ErrTokenExpired, want: true},
		{name: "wrapped", err: fmt.Errorf("%w: exp check failed", auth.ErrTokenExpired), want: true},
		{name: "malformed", err: auth.ErrTokenMalformed, want: false},
		{name: "unrelated", err: errors.New("boom"), want: false},
		{name: "nil", err: nil, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, auth.IsTokenExpiredError(tt.err))
		})
	}
}

func TestIsMalformedError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "sentinel", err: auth.ErrTokenMalformed, want: true},
		{name: "wrapped", err: fmt.Errorf("%w: bad segment count", auth.ErrTokenMalformed), want: true},
		{name: "expired", err: auth.ErrTokenExpired, want: false},
		{name: "nil", err: nil, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, auth.IsMalformedError(tt.err))
		})
	}
}
