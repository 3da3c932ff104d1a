// Package fingerprint derives a device identifier from a request.
//
// The fingerprint is the raw User-Agent followed by the hex SHA-1 of the
// client IP (see pkg/clientip). It is deterministic: the same user-agent and
// IP always give the same string. When no IP can be resolved the empty string
// is hashed, so the result is still stable:
//
//	fingerprint.FromParts("curl/8.4.0", "")
//	// "curl/8.4.0da39a3ee5e6b4b0d3255bfef95601890afd80709"
//
// The value is used as a fallback device id by the polljoy backend, which
// expects exactly this shape, so it is neither versioned nor truncated.
package fingerprint
