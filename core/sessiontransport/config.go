package sessiontransport

import "time"

// CookieConfig provides environment-based configuration for the session cookie.
type CookieConfig struct {
	CookieName string        `env:"SESSION_COOKIE_NAME" envDefault:"polljoy_sid"`
	MaxAge     time.Duration `env:"SESSION_COOKIE_MAX_AGE" envDefault:"24h"`
}

// DefaultCookieConfig returns the same values as the envDefault tags.
func DefaultCookieConfig() CookieConfig {
	return CookieConfig{
		CookieName: "polljoy_sid",
		MaxAge:     24 * time.Hour,
	}
}
