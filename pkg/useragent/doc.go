// Package useragent extracts the coarse device facts the polling backend
// segments on: a mobile/desktop device class and the operating-system token.
//
//	class := useragent.DeviceClass(r.UserAgent()) // "mobile" or "desktop"
//	if os, ok := useragent.OSToken(r.UserAgent()); ok {
//		params.Set("osVersion", os) // "Windows NT 10.0", "iPhone; CPU iPhone OS 17_0 like Mac OS X", ...
//	}
//
// Matching is literal and case-sensitive. Tablets count as mobile.
package useragent
