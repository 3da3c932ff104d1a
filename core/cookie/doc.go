// Package cookie sets and reads HTTP cookies with optional HMAC-SHA256
// signatures and secret rotation.
//
//	mgr, err := cookie.New([]string{currentSecret, previousSecret}, cookie.WithSecure(true))
//	if err != nil {
//		return err
//	}
//	_ = mgr.SetSigned(w, "polljoy_sid", token, cookie.WithMaxAge(86400))
//	token, err := mgr.GetSigned(r, "polljoy_sid") // ErrInvalidSignature when tampered
//
// Secrets must be at least 32 characters. Cookies default to Path "/",
// HttpOnly and SameSite=Lax.
package cookie
