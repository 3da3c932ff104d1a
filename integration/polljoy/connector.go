package polljoy

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/dmitrymomot/polljoy/core/handler"
	"github.com/dmitrymomot/polljoy/core/logger"
	"github.com/dmitrymomot/polljoy/core/session"
)

const (
	endpointRegister = "registerSession.json"
	endpointSmartGet = "smartget.json"
)

// HandleSource yields the opaque session handle of the calling browser.
// sessiontransport.Cookie implements it.
type HandleSource interface {
	Token(ctx handler.Context) (string, error)
}

// Connector proxies the three polljoy operations to the backend.
type Connector struct {
	cfg     Config
	client  *Client
	store   SessionStore
	handles HandleSource
	logger  *slog.Logger
}

// Option configures a Connector.
type Option func(*Connector)

// WithSessionStore sets where session records are kept.
// Defaults to an in-memory store with a 24h TTL.
func WithSessionStore(store SessionStore) Option {
	return func(c *Connector) {
		c.store = store
	}
}

// WithHandleSource sets how mounted routes find the session handle.
// Without one, every register request reaches the backend.
func WithHandleSource(src HandleSource) Option {
	return func(c *Connector) {
		c.handles = src
	}
}

// WithHTTPClient replaces the backend HTTP client. Config.Timeout is ignored.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Connector) {
		c.client.http = client
	}
}

// WithLogger sets the logger for operation records. A nil logger is ignored.
func WithLogger(log *slog.Logger) Option {
	return func(c *Connector) {
		if log != nil {
			c.logger = log
		}
	}
}

// New creates a Connector for cfg.
func New(cfg Config, opts ...Option) (*Connector, error) {
	if cfg.BackendURL == "" {
		cfg.BackendURL = DefaultBackendURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}

	client, err := NewClient(cfg.BackendURL, cfg.Timeout, nil)
	if err != nil {
		return nil, err
	}

	c := &Connector{
		cfg:    cfg,
		client: client,
		logger: logger.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.store == nil {
		c.store = NewSessionStore(session.NewManager[SessionRecord](
			session.NewMemoryStore[SessionRecord](), 24*time.Hour, 5*time.Minute,
		))
	}
	return c, nil
}

// MustNew is New that panics on invalid configuration.
func MustNew(cfg Config, opts ...Option) *Connector {
	c, err := New(cfg, opts...)
	if err != nil {
		panic(err)
	}
	return c
}

// Request carries everything one operation needs.
type Request struct {
	// AppID overrides Config.AppID for this request only.
	AppID string
	// Handle keys the caller's session record. Empty disables session reuse.
	Handle string
	Client ClientContext
	Body   Params
	// Token routes a response submission.
	Token string
}

// Dispatch runs op and returns the JSON payload to send back. OpNone
// returns a nil payload without contacting the backend.
func (c *Connector) Dispatch(ctx context.Context, op Operation, req Request) ([]byte, error) {
	switch op {
	case OpRegister:
		return c.Register(ctx, req)
	case OpSmartGet:
		return c.SmartGet(ctx, req)
	case OpResponse:
		return c.Respond(ctx, req)
	default:
		return nil, nil
	}
}

// Register returns the caller's backend session, registering one when no
// cached session exists or the caller presents a different device id.
func (c *Connector) Register(ctx context.Context, req Request) ([]byte, error) {
	appID, err := c.appID(req)
	if err != nil {
		return nil, err
	}

	record, err := c.store.Load(ctx, req.Handle)
	if err != nil {
		return nil, err
	}

	if explicit := req.Body["deviceId"]; explicit != "" && explicit != record.DeviceID && record.Active() {
		if err := c.store.Invalidate(ctx, req.Handle); err != nil {
			return nil, err
		}
		record.CurrentSession = ""
		c.logger.InfoContext(ctx, "polljoy session invalidated",
			logger.Operation(string(OpRegister)),
			logger.Event("device_changed"),
		)
	}

	if record.Active() {
		c.logger.DebugContext(ctx, "polljoy session reused", logger.Operation(string(OpRegister)))
		return []byte(record.CurrentSession), nil
	}

	params := registerParams(appID, req.Client, req.Body)
	payload, err := c.call(ctx, OpRegister, endpointRegister, params, sanitizeRegister)
	if err != nil {
		return nil, err
	}

	next := SessionRecord{DeviceID: params["deviceId"], CurrentSession: string(payload)}
	if err := c.store.Save(ctx, req.Handle, next); err != nil {
		c.logger.ErrorContext(ctx, "failed to save polljoy session",
			logger.Operation(string(OpRegister)),
			logger.Error(err),
		)
	}
	return payload, nil
}

// SmartGet fetches the polls matching the caller's profile.
func (c *Connector) SmartGet(ctx context.Context, req Request) ([]byte, error) {
	appID, err := c.appID(req)
	if err != nil {
		return nil, err
	}
	record, err := c.store.Load(ctx, req.Handle)
	if err != nil {
		return nil, err
	}

	params := smartGetParams(appID, req.Client, req.Body, record.DeviceID)
	return c.call(ctx, OpSmartGet, endpointSmartGet, params, sanitizeSmartGet)
}

// Respond submits the caller's answer to the poll addressed by req.Token.
func (c *Connector) Respond(ctx context.Context, req Request) ([]byte, error) {
	endpoint, err := responseEndpoint(req.Token)
	if err != nil {
		return nil, err
	}
	appID, err := c.appID(req)
	if err != nil {
		return nil, err
	}
	record, err := c.store.Load(ctx, req.Handle)
	if err != nil {
		return nil, err
	}

	params := responseParams(appID, req.Client, req.Body, record.DeviceID)
	return c.call(ctx, OpResponse, endpoint, params, sanitizeResponse)
}

func (c *Connector) call(ctx context.Context, op Operation, endpoint string, params Params, sanitize func([]byte) ([]byte, error)) ([]byte, error) {
	start := time.Now()
	raw, err := c.client.Post(ctx, endpoint, params)
	if err == nil {
		raw, err = sanitize(raw)
	}

	if err != nil {
		level := slog.LevelError
		if errors.Is(err, context.Canceled) {
			level = slog.LevelWarn
		}
		c.logger.Log(ctx, level, "polljoy backend call failed",
			logger.Operation(string(op)),
			logger.Duration(time.Since(start)),
			logger.Error(err),
		)
		return nil, err
	}

	c.logger.DebugContext(ctx, "polljoy backend call",
		logger.Operation(string(op)),
		logger.Duration(time.Since(start)),
	)
	return raw, nil
}

func (c *Connector) appID(req Request) (string, error) {
	if req.AppID != "" {
		return req.AppID, nil
	}
	if c.cfg.AppID != "" {
		return c.cfg.AppID, nil
	}
	return "", ErrMissingAppID
}
