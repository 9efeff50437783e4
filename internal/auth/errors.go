package auth

import "errors"

// Sentinel errors for the authentication core. Token validation failures
// are distinguished here for internal diagnostics only; HTTP callers see
// a single unauthenticated outcome regardless of which check failed.
var (
	ErrInvalidArgument  = errors.New("invalid argument")
	ErrTokenMalformed   = errors.New("token malformed")
	ErrInvalidSignature = errors.New("token signature invalid")
	ErrTokenExpired     = errors.New("token expired")
	ErrInvalidIssuer    = errors.New("token issuer invalid")
	ErrInvalidAudience  = errors.New("token audience invalid")

	ErrUnauthenticated  = errors.New("authentication required")
	ErrInsufficientRole = errors.New("insufficient role")
)
