package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"github.com/devcamper/api/internal/utils"
)

const testSecret = "test-secret"

func doProtected(t *testing.T, authHeader string) (*httptest.ResponseRecorder, echo.Context) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := Protect(testSecret)(func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	assert.NoError(t, h(c))
	return rec, c
}

func TestProtectAcceptsValidToken(t *testing.T) {
	tok, err := utils.NewAccessToken(testSecret, "64f1b2c3d4e5f60718293a4b", "publisher", time.Hour)
	assert.NoError(t, err)

	rec, c := doProtected(t, "Bearer "+tok.Token)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "64f1b2c3d4e5f60718293a4b", c.Get("user_id"))
	assert.Equal(t, "publisher", c.Get("role"))
}

func TestProtectRejectsMissingHeader(t *testing.T) {
	rec, _ := doProtected(t, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Not authorized to access this route")
}

func TestProtectRejectsGarbageToken(t *testing.T) {
	rec, _ := doProtected(t, "Bearer not.a.jwt")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestProtectRejectsWrongSecret(t *testing.T) {
	tok, err := utils.NewAccessToken("another-secret", "u1", "user", time.Hour)
	assert.NoError(t, err)

	rec, _ := doProtected(t, "Bearer "+tok.Token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestProtectRejectsExpiredToken(t *testing.T) {
	tok, err := utils.NewAccessToken(testSecret, "u1", "user", -time.Minute)
	assert.NoError(t, err)

	rec, _ := doProtected(t, "Bearer "+tok.Token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func doAuthorized(t *testing.T, role interface{}, allowed ...string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if role != nil {
		c.Set("role", role)
	}

	h := Authorize(allowed...)(func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	assert.NoError(t, h(c))
	return rec
}

func TestAuthorize(t *testing.T) {
	assert.Equal(t, http.StatusOK, doAuthorized(t, "publisher", "publisher", "admin").Code)
	assert.Equal(t, http.StatusOK, doAuthorized(t, "admin", "publisher", "admin").Code)

	rec := doAuthorized(t, "user", "publisher", "admin")
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "User role user is not authorized to access this route")

	// No role in context at all.
	assert.Equal(t, http.StatusForbidden, doAuthorized(t, nil, "admin").Code)
}
