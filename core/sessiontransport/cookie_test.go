package sessiontransport_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/polljoy/core/cookie"
	"github.com/dmitrymomot/polljoy/core/router"
	"github.com/dmitrymomot/polljoy/core/sessiontransport"
)

func newTransport(t *testing.T) *sessiontransport.Cookie {
	t.Helper()
	mgr, err := cookie.New([]string{"0123456789abcdef0123456789abcdef"})
	require.NoError(t, err)
	return sessiontransport.NewCookieFromConfig(sessiontransport.DefaultCookieConfig(), mgr)
}

func TestCookieTokenIssuesOnce(t *testing.T) {
	t.Parallel()

	transport := newTransport(t)
	w := httptest.NewRecorder()
	ctx := router.NewContext(w, httptest.NewRequest(http.MethodPost, "/polljoy", nil), nil)

	first, err := transport.Token(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, first)

	second, err := transport.Token(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "polljoy_sid", cookies[0].Name)
	assert.Equal(t, 86400, cookies[0].MaxAge)
}

func TestCookieTokenReusesClientCookie(t *testing.T) {
	t.Parallel()

	transport := newTransport(t)

	w := httptest.NewRecorder()
	issued, err := transport.Token(router.NewContext(w, httptest.NewRequest(http.MethodPost, "/", nil), nil))
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	for _, c := range w.Result().Cookies() {
		req.AddCookie(c)
	}
	w2 := httptest.NewRecorder()
	got, err := transport.Token(router.NewContext(w2, req, nil))
	require.NoError(t, err)

	assert.Equal(t, issued, got)
	assert.Empty(t, w2.Result().Cookies())
}

func TestCookieTokenReplacesForgedCookie(t *testing.T) {
	t.Parallel()

	transport := newTransport(t)
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.AddCookie(&http.Cookie{Name: "polljoy_sid", Value: "Zm9yZ2Vk|bad"})
	w := httptest.NewRecorder()

	got, err := transport.Token(router.NewContext(w, req, nil))
	require.NoError(t, err)
	assert.NotEqual(t, "forged", got)
	assert.Len(t, w.Result().Cookies(), 1)
}

func TestCookieClear(t *testing.T) {
	t.Parallel()

	transport := newTransport(t)
	w := httptest.NewRecorder()
	transport.Clear(router.NewContext(w, httptest.NewRequest(http.MethodPost, "/", nil), nil))

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, -1, cookies[0].MaxAge)
}
