package auth

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	apperrors "github.com/spec-kit/employee-service/pkg/util"
)

const principalKey = "auth_principal"

// bearerPrefix is matched literally: case-sensitive scheme, single space.
const bearerPrefix = "Bearer "

// Middleware authenticates requests from bearer tokens. It never rejects
// a request itself: on any failure the anonymous principal is attached
// and the authorization layer decides what that means for the route.
type Middleware struct {
	tokens *TokenManager
	logger *zap.Logger
}

// NewMiddleware constructs the authentication middleware.
func NewMiddleware(tokens *TokenManager, logger *zap.Logger) *Middleware {
	return &Middleware{tokens: tokens, logger: logger}
}

// Authenticate extracts and validates the bearer token, attaching the
// resulting principal to the request for its duration. Validation
// failures are logged internally with their precise reason; the caller
// only ever observes an unauthenticated principal.
func (m *Middleware) Authenticate(c *fiber.Ctx) error {
	header := c.Get(fiber.HeaderAuthorization)
	if !strings.HasPrefix(header, bearerPrefix) {
		c.Locals(principalKey, Anonymous())
		return c.Next()
	}

	tokenStr := strings.TrimSpace(header[len(bearerPrefix):])
	claims, err := m.tokens.Validate(tokenStr)
	if err != nil {
		m.logger.Debug("token rejected",
			zap.String("path", c.Path()),
			zap.String("reason", rejectionReason(err)),
		)
		c.Locals(principalKey, Anonymous())
		return c.Next()
	}

	c.Locals(principalKey, FromClaims(claims))
	return c.Next()
}

// RequireRoles enforces the route's authorization requirement. It must
// run after Authenticate and short-circuits before any business logic:
// 401 for an anonymous principal, 403 for an authenticated one whose
// roles do not satisfy the requirement.
func RequireRoles(req Requirement) fiber.Handler {
	return func(c *fiber.Ctx) error {
		switch err := Check(PrincipalFromContext(c), req); {
		case errors.Is(err, ErrUnauthenticated):
			return apperrors.NewUnauthorized("authentication required")
		case errors.Is(err, ErrInsufficientRole):
			return apperrors.NewForbidden("insufficient role")
		case err != nil:
			return apperrors.MapError(err)
		}
		return c.Next()
	}
}

// PrincipalFromContext returns the request principal, anonymous when the
// authentication middleware did not run.
func PrincipalFromContext(c *fiber.Ctx) Principal {
	if p, ok := c.Locals(principalKey).(Principal); ok {
		return p
	}
	return Anonymous()
}

func rejectionReason(err error) string {
	switch {
	case errors.Is(err, ErrInvalidSignature):
		return "invalid_signature"
	case errors.Is(err, ErrTokenExpired):
		return "expired"
	case errors.Is(err, ErrInvalidIssuer):
		return "invalid_issuer"
	case errors.Is(err, ErrInvalidAudience):
		return "invalid_audience"
	case errors.Is(err, ErrTokenMalformed):
		return "malformed"
	default:
		return "invalid"
	}
}
