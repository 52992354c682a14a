package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/filmreel/video-rental/internal/utils"
)

const testSecret = "test-secret"

func runAuth(t *testing.T, token string, mw ...echo.MiddlewareFunc) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if token != "" {
		req.Header.Set("x-auth-token", token)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := func(c echo.Context) error { return c.NoContent(http.StatusOK) }
	for i := len(mw) - 1; i >= 0; i-- {
		h = mw[i](h)
	}
	require.NoError(t, h(c))
	return rec
}

func TestAuth_MissingToken(t *testing.T) {
	rec := runAuth(t, "", Auth(testSecret))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuth_MalformedToken(t *testing.T) {
	rec := runAuth(t, "garbage", Auth(testSecret))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAuth_WrongSecret(t *testing.T) {
	tok, err := utils.NewAuthToken("other-secret", 1, false, 60)
	require.NoError(t, err)

	rec := runAuth(t, tok, Auth(testSecret))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAuth_ValidToken(t *testing.T) {
	tok, err := utils.NewAuthToken(testSecret, 5, false, 60)
	require.NoError(t, err)

	rec := runAuth(t, tok, Auth(testSecret))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuth_InjectsIdentity(t *testing.T) {
	tok, err := utils.NewAuthToken(testSecret, 9, true, 60)
	require.NoError(t, err)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("x-auth-token", tok)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var got utils.Identity
	h := Auth(testSecret)(func(c echo.Context) error {
		id, ok := IdentityFrom(c)
		require.True(t, ok)
		got = id
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, h(c))
	assert.Equal(t, uint64(9), got.UserID)
	assert.True(t, got.IsAdmin)
}

func TestRequireAdmin_Forbidden(t *testing.T) {
	tok, err := utils.NewAuthToken(testSecret, 5, false, 60)
	require.NoError(t, err)

	rec := runAuth(t, tok, Auth(testSecret), RequireAdmin())
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireAdmin_Allowed(t *testing.T) {
	tok, err := utils.NewAuthToken(testSecret, 5, true, 60)
	require.NoError(t, err)

	rec := runAuth(t, tok, Auth(testSecret), RequireAdmin())
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireAdmin_NoIdentity(t *testing.T) {
	rec := runAuth(t, "", RequireAdmin())
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
