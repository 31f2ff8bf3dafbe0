package auth

import "errors"

// ErrDuplicateEmail is returned by Register when the email is taken
var ErrDuplicateEmail = errors.New("email already registered")

// ErrInvalidCredentials covers both unknown emails and wrong passwords,
// so a caller can not probe which accounts exist
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrInvalidToken is the uniform refresh-exchange failure. Expired,
// forged, and revoked refresh tokens are deliberately indistinguishable.
var ErrInvalidToken = errors.New("invalid refresh token provided")

// ErrUnauthenticated is the uniform access-guard failure
var ErrUnauthenticated = errors.New("unauthenticated")

// ErrForbidden means the principal authenticated fine but lacks the role
var ErrForbidden = errors.New("forbidden")

// ErrTokenExpired is the codec-level expiry error
var ErrTokenExpired = errors.New("token is expired")

// ErrTokenMalformed is the codec-level error for forged or garbled tokens
var ErrTokenMalformed = errors.New("token is malformed")

// ErrIdentityNotFound is the error we return for non found identities
var ErrIdentityNotFound = errors.New("identity not found")

// ErrMismatchedHashAndPassword wraps the bcrypt comparison failure
var ErrMismatchedHashAndPassword = errors.New("mismatched hash and password")

// ErrNoEmptyString rejects empty secrets before they reach bcrypt
var ErrNoEmptyString = errors.New("value should not be an empty string")

// IsTokenExpiredError will check for expired tokens
func IsTokenExpiredError(err error) bool {
	return errors.Is(err, ErrTokenExpired)
}

// IsMalformedError will check for malformed or forged tokens
func IsMalformedError(err error) bool {
	return errors.Is(err, ErrTokenMalformed)
}
