package useragent

import "strings"

const (
	DeviceTypeMobile  = "mobile"
	DeviceTypeDesktop = "desktop"
)

// mobileMarkers are matched as case-sensitive substrings.
var mobileMarkers = []string{"iPad", "iPhone", "Android"}

// DeviceClass returns DeviceTypeMobile when ua contains a mobile marker,
// DeviceTypeDesktop otherwise (including an empty ua).
func DeviceClass(ua string) string {
	if IsMobile(ua) {
		return DeviceTypeMobile
	}
	return DeviceTypeDesktop
}

func IsMobile(ua string) bool {
	for _, marker := range mobileMarkers {
		if strings.Contains(ua, marker) {
			return true
		}
	}
	return false
}

// OSToken returns the text inside the first non-empty parenthesized group
// of ua. It reports false when ua has no such group.
func OSToken(ua string) (string, bool) {
	rest := ua
	for {
		_, after, ok := strings.Cut(rest, "(")
		if !ok {
			return "", false
		}
		token, tail, ok := strings.Cut(after, ")")
		if !ok {
			return "", false
		}
		if token != "" {
			return token, true
		}
		rest = tail
	}
}
