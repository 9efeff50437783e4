package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	apperrors "github.com/spec-kit/employee-service/pkg/util"
)

// newTestApp wires the authentication pipeline in front of one admin-only
// route and one route open to any authenticated caller.
func newTestApp(t *testing.T, tm *TokenManager) *fiber.App {
	t.Helper()

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			de := apperrors.ToDomainError(err)
			return c.Status(de.HTTPStatus).JSON(fiber.Map{"message": de.Message})
		},
	})

	mw := NewMiddleware(tm, zap.NewNop())
	app.Use(mw.Authenticate)
	app.Get("/admin", RequireRoles(AllOf("Admin")), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	app.Get("/shared", RequireRoles(AnyOf("Admin", "User")), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"username": PrincipalFromContext(c).Username})
	})
	return app
}

func request(t *testing.T, app *fiber.App, path, authorization string) *http.Response {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestAuthenticate_NoHeader(t *testing.T) {
	t.Parallel()

	tm := newTestTokenManager(t, testAuthConfig())
	app := newTestApp(t, tm)

	resp := request(t, app, "/admin", "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthenticate_SchemeIsCaseSensitive(t *testing.T) {
	t.Parallel()

	tm := newTestTokenManager(t, testAuthConfig())
	app := newTestApp(t, tm)

	token, _, err := tm.Issue(1001, "root", "Admin")
	require.NoError(t, err)

	// "bearer" and "BEARER" are not the literal "Bearer " prefix; the
	// request stays anonymous.
	for _, header := range []string{"bearer " + token, "BEARER " + token, "Token " + token, token} {
		resp := request(t, app, "/admin", header)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, "header %q", header)
	}
}

func TestAuthenticate_ValidToken(t *testing.T) {
	t.Parallel()

	tm := newTestTokenManager(t, testAuthConfig())
	app := newTestApp(t, tm)

	token, _, err := tm.Issue(1001, "root", "Admin")
	require.NoError(t, err)

	resp := request(t, app, "/admin", "Bearer "+token)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAuthenticate_TokenWithSurroundingWhitespace(t *testing.T) {
	t.Parallel()

	tm := newTestTokenManager(t, testAuthConfig())
	app := newTestApp(t, tm)

	token, _, err := tm.Issue(1001, "root", "Admin")
	require.NoError(t, err)

	resp := request(t, app, "/admin", "Bearer  "+token+" ")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAuthenticate_InsufficientRoleIsForbidden(t *testing.T) {
	t.Parallel()

	tm := newTestTokenManager(t, testAuthConfig())
	app := newTestApp(t, tm)

	token, _, err := tm.Issue(1002, "jdoe", "User")
	require.NoError(t, err)

	// Authenticated but lacking the role: 403, not 401.
	resp := request(t, app, "/admin", "Bearer "+token)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = request(t, app, "/shared", "Bearer "+token)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAuthenticate_ExpiredToken(t *testing.T) {
	t.Parallel()

	expiredCfg := testAuthConfig()
	expiredCfg.TokenTTLMinutes = -1
	expired := newTestTokenManager(t, expiredCfg)

	tm := newTestTokenManager(t, testAuthConfig())
	app := newTestApp(t, tm)

	token, _, err := expired.Issue(1001, "root", "Admin")
	require.NoError(t, err)

	resp := request(t, app, "/admin", "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthenticate_GarbageToken(t *testing.T) {
	t.Parallel()

	tm := newTestTokenManager(t, testAuthConfig())
	app := newTestApp(t, tm)

	resp := request(t, app, "/admin", "Bearer not.a.token")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestPrincipalFromContext_DefaultsToAnonymous(t *testing.T) {
	t.Parallel()

	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		p := PrincipalFromContext(c)
		assert.False(t, p.Authenticated)
		return c.SendString("ok")
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
