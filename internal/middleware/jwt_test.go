package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kostyrin/theatre-booking/internal/utils"
)

const testSecret = "unit-test-secret"

func runJWT(t *testing.T, authHeader string) (*httptest.ResponseRecorder, echo.Context, bool) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/me", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	reached := false
	handler := JWTAuth(testSecret)(func(c echo.Context) error {
		reached = true
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, handler(c))
	return rec, c, reached
}

func TestJWTAuthAcceptsValidToken(t *testing.T) {
	at, err := utils.NewAccessToken(testSecret, 42, "CUSTOMER", 5)
	require.NoError(t, err)

	rec, c, reached := runJWT(t, "Bearer "+at.Token)
	assert.True(t, reached)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 42, c.Get("user_id"))
	assert.Equal(t, "CUSTOMER", c.Get("role"))
}

func TestJWTAuthRejectsMissingHeader(t *testing.T) {
	rec, _, reached := runJWT(t, "")
	assert.False(t, reached)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuthRejectsWrongSecret(t *testing.T) {
	at, err := utils.NewAccessToken("other-secret", 42, "CUSTOMER", 5)
	require.NoError(t, err)

	rec, _, reached := runJWT(t, "Bearer "+at.Token)
	assert.False(t, reached)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuthRejectsGarbage(t *testing.T) {
	rec, _, reached := runJWT(t, "Bearer not.a.jwt")
	assert.False(t, reached)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireRole(t *testing.T) {
	run := func(role any, allowed ...string) (int, bool) {
		e := echo.New()
		req := httptest.NewRequest(http.MethodPost, "/v1/plays", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		if role != nil {
			c.Set("role", role)
		}
		reached := false
		h := RequireRole(allowed...)(func(c echo.Context) error {
			reached = true
			return c.NoContent(http.StatusOK)
		})
		require.NoError(t, h(c))
		return rec.Code, reached
	}

	code, reached := run("ADMIN", "ADMIN")
	assert.True(t, reached)
	assert.Equal(t, http.StatusOK, code)

	code, reached = run("CUSTOMER", "ADMIN")
	assert.False(t, reached)
	assert.Equal(t, http.StatusForbidden, code)

	code, reached = run(nil, "ADMIN")
	assert.False(t, reached)
	assert.Equal(t, http.StatusForbidden, code)

	code, reached = run("CUSTOMER", "ADMIN", "CUSTOMER")
	assert.True(t, reached)
	assert.Equal(t, http.StatusOK, code)
}

func TestUserIDRendering(t *testing.T) {
	e := echo.New()
	ctx := func(v any) echo.Context {
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
		if v != nil {
			c.Set("user_id", v)
		}
		return c
	}

	assert.Equal(t, "guest", userID(ctx(nil)))
	assert.Equal(t, "guest", userID(ctx("")))
	assert.Equal(t, "42", userID(ctx("42")))
	assert.Equal(t, "42", userID(ctx(float64(42))))
	assert.Equal(t, "42", userID(ctx(uint64(42))))
	assert.Equal(t, "42", userID(ctx(int64(42))))
}
