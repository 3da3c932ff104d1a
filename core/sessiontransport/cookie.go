package sessiontransport

import (
	"errors"

	"github.com/dmitrymomot/polljoy/core/cookie"
	"github.com/dmitrymomot/polljoy/core/handler"
	"github.com/dmitrymomot/polljoy/core/session"
)

type tokenKey struct{}

// Cookie carries the session token in a signed cookie.
type Cookie struct {
	cookies *cookie.Manager
	name    string
	maxAge  int
}

// NewCookie creates a cookie transport. maxAgeSeconds <= 0 issues a browser-session cookie.
func NewCookie(cookies *cookie.Manager, name string, maxAgeSeconds int) *Cookie {
	return &Cookie{cookies: cookies, name: name, maxAge: maxAgeSeconds}
}

// NewCookieFromConfig creates a cookie transport from configuration.
func NewCookieFromConfig(cfg CookieConfig, cookies *cookie.Manager) *Cookie {
	return NewCookie(cookies, cfg.CookieName, int(cfg.MaxAge.Seconds()))
}

// Token returns the caller's session token. Missing or tampered cookies are
// replaced by a freshly issued token, which is set on the response and
// remembered for the rest of the request.
func (c *Cookie) Token(ctx handler.Context) (string, error) {
	if token, ok := ctx.Value(tokenKey{}).(string); ok && token != "" {
		return token, nil
	}

	token, err := c.cookies.GetSigned(ctx.Request(), c.name)
	if err == nil && token != "" {
		ctx.SetValue(tokenKey{}, token)
		return token, nil
	}

	token, err = session.GenerateToken()
	if err != nil {
		return "", errors.Join(ErrNoToken, err)
	}

	var opts []cookie.Option
	if c.maxAge > 0 {
		opts = append(opts, cookie.WithMaxAge(c.maxAge))
	}
	if err := c.cookies.SetSigned(ctx.ResponseWriter(), c.name, token, opts...); err != nil {
		return "", errors.Join(ErrNoToken, err)
	}

	ctx.SetValue(tokenKey{}, token)
	return token, nil
}

// Clear removes the session cookie from the client.
func (c *Cookie) Clear(ctx handler.Context) {
	c.cookies.Delete(ctx.ResponseWriter(), c.name)
}
