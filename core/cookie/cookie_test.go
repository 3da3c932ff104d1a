package cookie_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/polljoy/core/cookie"
)

const (
	secretA = "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"
	secretB = "bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb"
)

func roundTrip(t *testing.T, w *httptest.ResponseRecorder) *http.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/polljoy", nil)
	for _, c := range w.Result().Cookies() {
		req.AddCookie(c)
	}
	return req
}

func TestNewValidatesSecrets(t *testing.T) {
	t.Parallel()

	_, err := cookie.New(nil)
	assert.ErrorIs(t, err, cookie.ErrNoSecret)

	_, err = cookie.New([]string{"", ""})
	assert.ErrorIs(t, err, cookie.ErrNoSecret)

	_, err = cookie.New([]string{"short"})
	assert.ErrorIs(t, err, cookie.ErrSecretTooShort)
}

func TestSignedRoundTrip(t *testing.T) {
	t.Parallel()

	mgr, err := cookie.New([]string{secretA})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	require.NoError(t, mgr.SetSigned(w, "sid", "token-value", cookie.WithMaxAge(60)))

	set := w.Result().Cookies()
	require.Len(t, set, 1)
	assert.True(t, set[0].HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, set[0].SameSite)
	assert.Equal(t, 60, set[0].MaxAge)

	got, err := mgr.GetSigned(roundTrip(t, w), "sid")
	require.NoError(t, err)
	assert.Equal(t, "token-value", got)
}

func TestSignedRejectsTampering(t *testing.T) {
	t.Parallel()

	mgr, err := cookie.New([]string{secretA})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.AddCookie(&http.Cookie{Name: "sid", Value: "dG9rZW4=|forged"})
	_, err = mgr.GetSigned(req, "sid")
	assert.ErrorIs(t, err, cookie.ErrInvalidSignature)

	req = httptest.NewRequest(http.MethodPost, "/", nil)
	req.AddCookie(&http.Cookie{Name: "sid", Value: "no-separator"})
	_, err = mgr.GetSigned(req, "sid")
	assert.ErrorIs(t, err, cookie.ErrInvalidFormat)

	_, err = mgr.GetSigned(httptest.NewRequest(http.MethodPost, "/", nil), "sid")
	assert.ErrorIs(t, err, cookie.ErrCookieNotFound)
}

func TestSecretRotation(t *testing.T) {
	t.Parallel()

	old, err := cookie.New([]string{secretA})
	require.NoError(t, err)
	rotated, err := cookie.New([]string{secretB, secretA})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	require.NoError(t, old.SetSigned(w, "sid", "v"))

	got, err := rotated.GetSigned(roundTrip(t, w), "sid")
	require.NoError(t, err)
	assert.Equal(t, "v", got)
}

func TestCookieTooLarge(t *testing.T) {
	t.Parallel()

	mgr, err := cookie.New([]string{secretA})
	require.NoError(t, err)

	err = mgr.Set(httptest.NewRecorder(), "big", strings.Repeat("x", cookie.MaxCookieSize))
	var tooLarge cookie.ErrCookieTooLarge
	require.ErrorAs(t, err, &tooLarge)
	assert.Equal(t, "big", tooLarge.Name)
}

func TestDeleteAndConfig(t *testing.T) {
	t.Parallel()

	mgr, err := cookie.NewFromConfig(cookie.Config{
		Secrets: " " + secretA + " , ," + secretB,
		Path:    "/polljoy",
		Secure:  true,
	})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	mgr.Delete(w, "sid")
	set := w.Result().Cookies()
	require.Len(t, set, 1)
	assert.Equal(t, -1, set[0].MaxAge)
	assert.Equal(t, "/polljoy", set[0].Path)
	assert.True(t, set[0].Secure)

	assert.Equal(t, []string{secretA, secretB}, cookie.Config{Secrets: secretA + "," + secretB}.SecretList())
}
