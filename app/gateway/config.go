package gateway

import (
	"github.com/dmitrymomot/polljoy/core/cookie"
	"github.com/dmitrymomot/polljoy/core/server"
	"github.com/dmitrymomot/polljoy/core/session"
	"github.com/dmitrymomot/polljoy/core/sessiontransport"
	"github.com/dmitrymomot/polljoy/integration/database/redis"
	"github.com/dmitrymomot/polljoy/integration/polljoy"
	"github.com/dmitrymomot/polljoy/pkg/ratelimiter"
)

type Config struct {
	Polljoy       polljoy.Config
	Redis         redis.Config
	Cookie        cookie.Config
	SessionCookie sessiontransport.CookieConfig
	Session       session.Config
	Server        server.Config
	RateLimit     ratelimiter.Config

	// RateLimitEnabled limits connector requests per remote address.
	RateLimitEnabled bool `env:"RATE_LIMIT_ENABLED" envDefault:"true"`
	// RateLimitTrustAppEngine keys the limit on X-Appengine-User-Ip.
	// Enable only behind App Engine, which overwrites the header.
	RateLimitTrustAppEngine bool `env:"RATE_LIMIT_TRUST_APPENGINE" envDefault:"false"`

	AppName  string `env:"APP_NAME" envDefault:"polljoyd"`
	Env      string `env:"APP_ENV" envDefault:"development"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}
