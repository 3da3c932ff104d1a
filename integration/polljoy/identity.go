package polljoy

import (
	"net/http"

	"github.com/dmitrymomot/polljoy/pkg/clientip"
	"github.com/dmitrymomot/polljoy/pkg/fingerprint"
	"github.com/dmitrymomot/polljoy/pkg/useragent"
)

// ClientContext is the per-request view of the calling device.
type ClientContext struct {
	IP    string
	HasIP bool

	UserAgent string

	// OS is the first parenthesized user-agent group. HasOS is false when
	// the user-agent has none, in which case osVersion is not sent.
	OS    string
	HasOS bool

	// DeviceClass is "mobile" or "desktop".
	DeviceClass string

	// Fingerprint is the user-agent followed by the SHA-1 of IP.
	Fingerprint string
}

// NewClientContext derives the device identity of r.
func NewClientContext(r *http.Request) ClientContext {
	ip, hasIP := clientip.Lookup(r)
	ua := r.Header.Get("User-Agent")
	osToken, hasOS := useragent.OSToken(ua)

	return ClientContext{
		IP:          ip,
		HasIP:       hasIP,
		UserAgent:   ua,
		OS:          osToken,
		HasOS:       hasOS,
		DeviceClass: useragent.DeviceClass(ua),
		Fingerprint: fingerprint.FromParts(ua, ip),
	}
}
