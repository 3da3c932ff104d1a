package polljoy_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/polljoy/integration/polljoy"
	"github.com/dmitrymomot/polljoy/pkg/fingerprint"
)

func TestNewClientContext(t *testing.T) {
	t.Parallel()

	t.Run("desktop with forwarded ip", func(t *testing.T) {
		t.Parallel()

		r := httptest.NewRequest(http.MethodPost, "/polljoy", nil)
		r.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0)")
		r.Header.Set("X-Appengine-User-Ip", "198.51.100.4")

		cc := polljoy.NewClientContext(r)
		assert.Equal(t, "198.51.100.4", cc.IP)
		assert.True(t, cc.HasIP)
		assert.Equal(t, "Windows NT 10.0", cc.OS)
		assert.True(t, cc.HasOS)
		assert.Equal(t, "desktop", cc.DeviceClass)
		assert.Equal(t, "Mozilla/5.0 (Windows NT 10.0)"+fingerprint.HashIP("198.51.100.4"), cc.Fingerprint)
	})

	t.Run("mobile without os token", func(t *testing.T) {
		t.Parallel()

		r := httptest.NewRequest(http.MethodPost, "/polljoy", nil)
		r.Header.Set("User-Agent", "Android-app")

		cc := polljoy.NewClientContext(r)
		assert.Equal(t, "mobile", cc.DeviceClass)
		assert.False(t, cc.HasOS)
		assert.Empty(t, cc.OS)
	})

	t.Run("deterministic", func(t *testing.T) {
		t.Parallel()

		newReq := func() *http.Request {
			r := httptest.NewRequest(http.MethodPost, "/polljoy", nil)
			r.RemoteAddr = "192.0.2.1:4312"
			r.Header.Set("User-Agent", "Mozilla/5.0 (X11; Linux x86_64)")
			return r
		}
		first := polljoy.NewClientContext(newReq())
		second := polljoy.NewClientContext(newReq())
		assert.Equal(t, first.Fingerprint, second.Fingerprint)
		assert.Equal(t, "192.0.2.1", first.IP)
	})

	t.Run("no ip hashes empty string", func(t *testing.T) {
		t.Parallel()

		r := httptest.NewRequest(http.MethodPost, "/polljoy", nil)
		r.RemoteAddr = ""
		r.Header.Set("User-Agent", "ua")

		cc := polljoy.NewClientContext(r)
		assert.False(t, cc.HasIP)
		assert.Equal(t, "uada39a3ee5e6b4b0d3255bfef95601890afd80709", cc.Fingerprint)
	})
}
