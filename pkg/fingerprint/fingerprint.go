package fingerprint

import (
	"crypto/sha1"
	"encoding/hex"
	"net/http"

	"github.com/dmitrymomot/polljoy/pkg/clientip"
)

// Generate returns the fingerprint of r.
func Generate(r *http.Request) string {
	return FromParts(r.UserAgent(), clientip.GetIP(r))
}

// FromParts returns ua followed by the hex SHA-1 of ip.
func FromParts(ua, ip string) string {
	return ua + HashIP(ip)
}

// HashIP returns the lowercase hex SHA-1 of ip.
func HashIP(ip string) string {
	sum := sha1.Sum([]byte(ip))
	return hex.EncodeToString(sum[:])
}
