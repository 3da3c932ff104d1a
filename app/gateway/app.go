package gateway

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/polljoy/core/config"
	"github.com/dmitrymomot/polljoy/core/cookie"
	"github.com/dmitrymomot/polljoy/core/handler"
	"github.com/dmitrymomot/polljoy/core/health"
	"github.com/dmitrymomot/polljoy/core/logger"
	"github.com/dmitrymomot/polljoy/core/response"
	"github.com/dmitrymomot/polljoy/core/router"
	"github.com/dmitrymomot/polljoy/core/server"
	"github.com/dmitrymomot/polljoy/core/session"
	"github.com/dmitrymomot/polljoy/core/sessiontransport"
	"github.com/dmitrymomot/polljoy/integration/database/redis"
	"github.com/dmitrymomot/polljoy/integration/polljoy"
	"github.com/dmitrymomot/polljoy/middleware"
	"github.com/dmitrymomot/polljoy/pkg/clientip"
	"github.com/dmitrymomot/polljoy/pkg/ratelimiter"
)

// App is the polljoy gateway: the connector mounted on a router, with its
// session storage, health endpoints and HTTP server.
type App struct {
	config     Config
	configured bool

	router    router.Router[*router.Context]
	server    *server.Server
	cookie    *cookie.Manager
	session   *session.Manager[polljoy.SessionRecord]
	connector *polljoy.Connector
	redis     *goredis.Client
	limits    *ratelimiter.MemoryStore
	limiter   *ratelimiter.Bucket
	checks    []health.Check
	logger    *slog.Logger
}

type AppOption func(*App) error

// NewApp builds the gateway. Configuration comes from the environment
// unless WithConfig is given. Redis is used for sessions when REDIS_URL is
// set; otherwise sessions live in process memory.
func NewApp(ctx context.Context, opts ...AppOption) (*App, error) {
	app := &App{}
	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	if !app.configured {
		if err := config.Load(&app.config); err != nil {
			return nil, err
		}
	}
	cfg := app.config

	if app.logger == nil {
		app.logger = newLogger(cfg)
	}

	if app.cookie == nil {
		cm, err := newCookieManager(cfg.Cookie, app.logger)
		if err != nil {
			return nil, err
		}
		app.cookie = cm
	}

	if app.session == nil {
		store, err := app.sessionStore(ctx)
		if err != nil {
			return nil, err
		}
		app.session = session.NewManagerFromConfig(store, cfg.Session)
	}

	conn, err := polljoy.New(cfg.Polljoy,
		polljoy.WithSessionStore(polljoy.NewSessionStore(app.session)),
		polljoy.WithHandleSource(sessiontransport.NewCookieFromConfig(cfg.SessionCookie, app.cookie)),
		polljoy.WithLogger(app.logger.With(logger.Component("polljoy"))),
	)
	if err != nil {
		app.close()
		return nil, err
	}
	app.connector = conn

	if cfg.RateLimitEnabled {
		app.limits = ratelimiter.NewMemoryStore(ratelimiter.WithMemoryStoreLogger(app.logger))
		limiter, err := ratelimiter.NewBucket(app.limits, cfg.RateLimit)
		if err != nil {
			app.close()
			return nil, err
		}
		app.limiter = limiter
	}

	if app.server == nil {
		s, err := server.NewFromConfig(cfg.Server, server.WithLogger(app.logger))
		if err != nil {
			app.close()
			return nil, err
		}
		app.server = s
	}

	app.router = app.routes()
	return app, nil
}

func WithConfig(cfg Config) AppOption {
	return func(app *App) error {
		app.config = cfg
		app.configured = true
		return nil
	}
}

func WithLogger(logger *slog.Logger) AppOption {
	return func(app *App) error {
		if logger == nil {
			return errors.New("logger cannot be nil")
		}
		app.logger = logger
		return nil
	}
}

func WithServer(server *server.Server) AppOption {
	return func(app *App) error {
		if server == nil {
			return errors.New("server cannot be nil")
		}
		app.server = server
		return nil
	}
}

func WithCookieManager(cookie *cookie.Manager) AppOption {
	return func(app *App) error {
		if cookie == nil {
			return errors.New("cookie manager cannot be nil")
		}
		app.cookie = cookie
		return nil
	}
}

func WithSessionManager(session *session.Manager[polljoy.SessionRecord]) AppOption {
	return func(app *App) error {
		if session == nil {
			return errors.New("session manager cannot be nil")
		}
		app.session = session
		return nil
	}
}

// Handler returns the gateway's HTTP handler.
func (app *App) Handler() http.Handler {
	return app.router
}

// Run serves HTTP and sweeps expired sessions until ctx is cancelled.
func (app *App) Run(ctx context.Context) error {
	defer app.close()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(app.server.Run(ctx, app.router))
	if app.limits != nil {
		g.Go(app.limits.Run(ctx))
	}
	if interval := app.config.Session.CleanupInterval; interval > 0 {
		g.Go(func() error {
			app.cleanupSessions(ctx, interval)
			return nil
		})
	}

	app.logger.Info("polljoy gateway started",
		slog.String("addr", app.config.Server.Addr),
		slog.String("base_path", app.config.Polljoy.BasePath),
	)
	return g.Wait()
}

func (app *App) routes() router.Router[*router.Context] {
	r := router.New[*router.Context](
		router.WithErrorHandler(response.JSONErrorHandler[*router.Context]),
		router.WithLogger[*router.Context](app.logger),
	)
	r.Use(
		middleware.RequestID[*router.Context](),
		middleware.LoggingWithConfig[*router.Context](middleware.LoggingConfig{
			Logger: app.logger,
			Skip: func(ctx handler.Context) bool {
				return ctx.Request().URL.Path == "/health/live"
			},
		}),
	)

	r.Get("/health/live", health.Liveness[*router.Context])
	r.Get("/health/ready", health.Readiness[*router.Context](app.logger, app.checks...))

	api := r
	if app.limiter != nil {
		cfg := middleware.RateLimitConfig{Limiter: app.limiter, FailOpen: true}
		if app.config.RateLimitTrustAppEngine {
			cfg.KeyFunc = func(ctx handler.Context) string {
				return clientip.GetIP(ctx.Request())
			}
		}
		api = r.With(middleware.RateLimitWithConfig[*router.Context](cfg))
	}
	polljoy.Mount[*router.Context](api, app.config.Polljoy.BasePath, app.connector)
	return r
}

func (app *App) sessionStore(ctx context.Context) (session.Store[polljoy.SessionRecord], error) {
	if app.config.Redis.ConnectionURL == "" {
		app.logger.Warn("REDIS_URL not set, sessions are kept in memory")
		return session.NewMemoryStore[polljoy.SessionRecord](), nil
	}

	client, err := redis.Connect(ctx, app.config.Redis)
	if err != nil {
		return nil, err
	}
	app.redis = client
	app.checks = append(app.checks, redis.Healthcheck(client))
	return redis.NewSessionStore[polljoy.SessionRecord](client, app.config.Redis.KeyPrefix), nil
}

func (app *App) cleanupSessions(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := app.session.CleanupExpired(ctx)
			if err != nil {
				app.logger.ErrorContext(ctx, "session cleanup failed", logger.Error(err))
				continue
			}
			if n > 0 {
				app.logger.DebugContext(ctx, "expired sessions removed", logger.Count("removed", int(n)))
			}
		}
	}
}

func (app *App) close() {
	if app.redis == nil {
		return
	}
	if err := app.redis.Close(); err != nil {
		app.logger.Error("failed to close redis client", logger.Error(err))
	}
	app.redis = nil
}

func newLogger(cfg Config) *slog.Logger {
	opts := []logger.Option{
		logger.WithContextValue("request_id", middleware.RequestIDKey()),
	}
	if cfg.Env == "production" {
		opts = append(opts, logger.WithProduction(cfg.AppName))
	} else {
		opts = append(opts, logger.WithDevelopment(cfg.AppName))
	}
	if cfg.LogLevel != "" {
		opts = append(opts, logger.WithLevel(logger.ParseLevel(cfg.LogLevel)))
	}
	return logger.New(opts...)
}

// newCookieManager signs session cookies with COOKIE_SECRETS. Without one a
// random secret is generated, so sessions do not survive a restart.
func newCookieManager(cfg cookie.Config, log *slog.Logger) (*cookie.Manager, error) {
	if len(cfg.SecretList()) == 0 {
		secret, err := session.GenerateToken()
		if err != nil {
			return nil, err
		}
		cfg.Secrets = secret
		log.Warn("COOKIE_SECRETS not set, using an ephemeral signing secret")
	}
	return cookie.NewFromConfig(cfg)
}
