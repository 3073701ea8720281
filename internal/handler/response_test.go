package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func newTestContext(t *testing.T) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestEnvelopes(t *testing.T) {
	c, rec := newTestContext(t)
	assert.NoError(t, ok(c, http.StatusOK, echo.Map{"name": "Devworks"}))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true,"data":{"name":"Devworks"}}`, rec.Body.String())

	c, rec = newTestContext(t)
	assert.NoError(t, fail(c, http.StatusBadRequest, "boom"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"success":false,"error":"boom"}`, rec.Body.String())
}

func TestNotFoundMessage(t *testing.T) {
	c, rec := newTestContext(t)
	assert.NoError(t, notFound(c, "Bootcamp", "5d713995b721c3bb38c1f5d0"))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Bootcamp not found with id of 5d713995b721c3bb38c1f5d0")
}

func TestCurrentUserID(t *testing.T) {
	c, _ := newTestContext(t)
	c.Set("user_id", "5d7a514b5d2c12c7449be042")
	id, err := currentUserID(c)
	assert.NoError(t, err)
	assert.Equal(t, "5d7a514b5d2c12c7449be042", id.Hex())

	c, _ = newTestContext(t)
	_, err = currentUserID(c)
	assert.Error(t, err)
}

func TestValidatorTags(t *testing.T) {
	v := NewValidator()

	assert.Error(t, v.Validate(&registerReq{Name: "x", Email: "not-an-email", Password: "123456"}))
	assert.Error(t, v.Validate(&registerReq{Name: "x", Email: "a@b.com", Password: "123"}))
	assert.Error(t, v.Validate(&registerReq{Name: "x", Email: "a@b.com", Password: "123456", Role: "admin"}))
	assert.NoError(t, v.Validate(&registerReq{Name: "x", Email: "a@b.com", Password: "123456", Role: "publisher"}))

	assert.Error(t, v.Validate(&courseCreateReq{Title: "t", Description: "d", Weeks: "8", Tuition: 100, MinimumSkill: "expert"}))
	assert.NoError(t, v.Validate(&courseCreateReq{Title: "t", Description: "d", Weeks: "8", Tuition: 100, MinimumSkill: "beginner"}))
}
