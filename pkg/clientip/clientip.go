package clientip

import (
	"net"
	"net/http"
	"strings"
)

// HeaderAppEngineUserIP is set by Google App Engine to the originating client address.
const HeaderAppEngineUserIP = "X-Appengine-User-Ip"

// Lookup returns the client IP and whether one was found.
func Lookup(r *http.Request) (string, bool) {
	if r == nil {
		return "", false
	}

	// Header.Get canonicalizes the key, which makes the lookup case-insensitive.
	if ip := strings.TrimSpace(r.Header.Get(HeaderAppEngineUserIP)); ip != "" {
		return ip, true
	}

	if ip := remoteHost(r.RemoteAddr); ip != "" {
		return ip, true
	}
	return "", false
}

// GetIP returns the client IP, or "" when it cannot be determined.
func GetIP(r *http.Request) string {
	ip, _ := Lookup(r)
	return ip
}

// RemoteIP returns the host part of the connection's RemoteAddr and ignores
// client-supplied headers.
func RemoteIP(r *http.Request) string {
	if r == nil {
		return ""
	}
	return remoteHost(r.RemoteAddr)
}

// remoteHost strips the port from addr. Addresses without a port are returned as is.
func remoteHost(addr string) string {
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return ""
	}
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		return strings.Trim(addr, "[]")
	}
	return host
}
