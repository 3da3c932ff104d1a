// Package sessiontransport moves session tokens between server and client.
//
// Cookie keeps the token in an HMAC-signed cookie. The token is the key that
// core/session stores are addressed by; nothing else about the session leaves
// the server.
//
//	transport := sessiontransport.NewCookieFromConfig(cfg, cookieManager)
//	token, err := transport.Token(ctx) // issues a cookie on first contact
package sessiontransport
