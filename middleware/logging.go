package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"slices"
	"time"

	"github.com/dmitrymomot/polljoy/core/handler"
	"github.com/dmitrymomot/polljoy/core/logger"
)

// LoggingConfig configures the access logging middleware.
type LoggingConfig struct {
	Skip func(ctx handler.Context) bool

	// Logger defaults to slog.Default().
	Logger *slog.Logger

	// LogLevel for successful requests (default: info). 4xx log at warn, 5xx at error.
	LogLevel slog.Level

	// LogHeaders adds request headers, with SensitiveHeaders redacted.
	LogHeaders       bool
	SensitiveHeaders []string

	// SlowRequestThreshold logs slower requests at warn (default: 5s).
	SlowRequestThreshold time.Duration

	Component string
}

// Logging logs one line per completed request.
func Logging[C handler.Context]() handler.Middleware[C] {
	return LoggingWithConfig[C](LoggingConfig{})
}

func LoggingWithLogger[C handler.Context](log *slog.Logger) handler.Middleware[C] {
	return LoggingWithConfig[C](LoggingConfig{Logger: log})
}

// LoggingWithConfig logs method, path, status, size and duration once the
// response has been written, with the error for 4xx and 5xx responses.
// Records are logged with the request context, so a logger built with
// logger.WithContextValue("request_id", RequestIDKey()) tags them.
func LoggingWithConfig[C handler.Context](cfg LoggingConfig) handler.Middleware[C] {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.SensitiveHeaders == nil {
		cfg.SensitiveHeaders = []string{"Authorization", "Cookie", "Set-Cookie", "X-Api-Key"}
	}
	if cfg.SlowRequestThreshold <= 0 {
		cfg.SlowRequestThreshold = 5 * time.Second
	}
	if cfg.Component == "" {
		cfg.Component = "http"
	}

	return func(next handler.HandlerFunc[C]) handler.HandlerFunc[C] {
		return func(ctx C) handler.Response {
			if cfg.Skip != nil && cfg.Skip(ctx) {
				return next(ctx)
			}

			start := time.Now()
			req := ctx.Request()
			attrs := []slog.Attr{
				logger.Component(cfg.Component),
				logger.Method(req.Method),
				logger.Path(req.URL.Path),
				logger.Query(req.URL.RawQuery),
				logger.RemoteAddr(req.RemoteAddr),
			}
			if cfg.LogHeaders {
				attrs = append(attrs, slog.Any("request_headers", redactHeaders(req.Header, cfg.SensitiveHeaders)))
			}

			resp := next(ctx)
			if resp == nil {
				return nil
			}

			return func(w http.ResponseWriter, r *http.Request) error {
				wrapped := &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK}
				err := resp(wrapped, r)
				duration := time.Since(start)

				// A render error with nothing written is rendered later by the
				// router's error handler, so the status comes from the error.
				status := wrapped.statusCode
				if err != nil && !wrapped.headerWritten {
					status = http.StatusInternalServerError
					var sc interface{ StatusCode() int }
					if errors.As(err, &sc) {
						status = sc.StatusCode()
					}
				}

				attrs := append(attrs,
					logger.StatusCode(status),
					logger.BytesOut(int64(wrapped.size)),
					logger.Duration(duration),
				)

				level := cfg.LogLevel
				switch {
				case status >= http.StatusInternalServerError:
					level = slog.LevelError
					attrs = append(attrs, logger.Error(err))
				case status >= http.StatusBadRequest:
					level = slog.LevelWarn
					attrs = append(attrs, logger.Error(err))
				case duration > cfg.SlowRequestThreshold:
					level = slog.LevelWarn
					attrs = append(attrs, slog.Bool("slow_request", true))
				}

				cfg.Logger.LogAttrs(r.Context(), level, "HTTP request completed", attrs...)
				return err
			}
		}
	}
}

func redactHeaders(h http.Header, sensitive []string) map[string]any {
	headers := make(map[string]any, len(h))
	for key, values := range h {
		switch {
		case slices.Contains(sensitive, key):
			headers[key] = "[REDACTED]"
		case len(values) == 1:
			headers[key] = values[0]
		default:
			headers[key] = values
		}
	}
	return headers
}

// statusRecorder captures the status code and body size.
type statusRecorder struct {
	http.ResponseWriter
	statusCode    int
	size          int
	headerWritten bool
}

func (rw *statusRecorder) WriteHeader(statusCode int) {
	if rw.headerWritten {
		return
	}
	rw.statusCode = statusCode
	rw.headerWritten = true
	rw.ResponseWriter.WriteHeader(statusCode)
}

func (rw *statusRecorder) Write(b []byte) (int, error) {
	if !rw.headerWritten {
		rw.WriteHeader(http.StatusOK)
	}
	n, err := rw.ResponseWriter.Write(b)
	rw.size += n
	return n, err
}

func (rw *statusRecorder) Unwrap() http.ResponseWriter {
	return rw.ResponseWriter
}
