package middleware

import (
	"fmt"
	"io"
	"mime"

	"github.com/dmitrymomot/polljoy/core/handler"
	"github.com/dmitrymomot/polljoy/core/response"
)

const (
	KB int64 = 1024
	MB       = 1024 * KB
)

// BodyLimitConfig configures the request body limit middleware.
type BodyLimitConfig struct {
	Skip func(ctx handler.Context) bool

	// MaxSize in bytes (default: 4MB).
	MaxSize int64

	// ContentTypeLimit overrides MaxSize per media type.
	ContentTypeLimit map[string]int64
}

// BodyLimit limits request bodies to 4MB.
func BodyLimit[C handler.Context]() handler.Middleware[C] {
	return BodyLimitWithConfig[C](BodyLimitConfig{})
}

func BodyLimitWithSize[C handler.Context](maxSize int64) handler.Middleware[C] {
	return BodyLimitWithConfig[C](BodyLimitConfig{MaxSize: maxSize})
}

// BodyLimitWithConfig rejects requests whose Content-Length exceeds the limit
// with 413, and caps the body reader for requests without one. Reading past the
// cap yields a response.HTTPError with status 413.
func BodyLimitWithConfig[C handler.Context](cfg BodyLimitConfig) handler.Middleware[C] {
	if cfg.MaxSize <= 0 {
		cfg.MaxSize = 4 * MB
	}

	return func(next handler.HandlerFunc[C]) handler.HandlerFunc[C] {
		return func(ctx C) handler.Response {
			if cfg.Skip != nil && cfg.Skip(ctx) {
				return next(ctx)
			}

			req := ctx.Request()

			maxSize := cfg.MaxSize
			if cfg.ContentTypeLimit != nil {
				if mediaType, _, err := mime.ParseMediaType(req.Header.Get("Content-Type")); err == nil {
					if limit, ok := cfg.ContentTypeLimit[mediaType]; ok {
						maxSize = limit
					}
				}
			}

			if req.ContentLength > maxSize {
				return response.Error(tooLarge(maxSize).WithDetails(map[string]any{
					"limit": maxSize,
					"size":  req.ContentLength,
				}))
			}

			if req.Body != nil {
				req.Body = &limitedReader{reader: req.Body, limit: maxSize}
			}

			return next(ctx)
		}
	}
}

func tooLarge(limit int64) response.HTTPError {
	return response.ErrRequestEntityTooLarge.WithMessage(
		fmt.Sprintf("request body exceeds %d bytes", limit))
}

type limitedReader struct {
	reader io.ReadCloser
	limit  int64
	read   int64
}

func (lr *limitedReader) Read(p []byte) (int, error) {
	if lr.read > lr.limit {
		return 0, tooLarge(lr.limit)
	}

	// Allow one byte past the limit so an exact-size body still reaches EOF.
	if remaining := lr.limit - lr.read + 1; int64(len(p)) > remaining {
		p = p[:remaining]
	}

	n, err := lr.reader.Read(p)
	lr.read += int64(n)
	if lr.read > lr.limit {
		return n, tooLarge(lr.limit)
	}
	return n, err
}

func (lr *limitedReader) Close() error {
	return lr.reader.Close()
}
