// Package clientip resolves the client IP address of an HTTP request.
//
// Resolution order:
//  1. X-Appengine-User-Ip header (header names are case-insensitive)
//  2. host part of Request.RemoteAddr
//
// When neither yields a value the IP is reported absent. Absence is not an
// error; callers decide how to degrade.
//
//	ip, ok := clientip.Lookup(r)
//	if !ok {
//		// no client signal, e.g. a request built without RemoteAddr
//	}
package clientip
