package logger

import (
	"log/slog"
	"strconv"
	"time"
)

// Helpers return an empty Attr for nil input, which slog drops, so
// log.Info("msg", logger.Error(err)) needs no nil check.

// Group creates a group of attributes under a single key.
func Group(name string, attrs ...slog.Attr) slog.Attr {
	return slog.Attr{Key: name, Value: slog.GroupValue(attrs...)}
}

// Errors groups the non-nil errors under "errors", keyed by argument index.
func Errors(errs ...error) slog.Attr {
	as := make([]slog.Attr, 0, len(errs))
	for i, err := range errs {
		if err != nil {
			as = append(as, slog.Any(strconv.Itoa(i), err))
		}
	}
	if len(as) == 0 {
		return slog.Attr{}
	}
	return slog.Attr{Key: "errors", Value: slog.GroupValue(as...)}
}

// Error creates an "error" attribute. Nil errors yield an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

func Duration(d time.Duration) slog.Attr {
	return slog.Duration("duration", d)
}

func Latency(d time.Duration) slog.Attr {
	return slog.Duration("latency", d)
}

// ID creates an identifier attribute under a custom key. Empty values are dropped.
func ID(key, value string) slog.Attr {
	if value == "" {
		return slog.Attr{}
	}
	return slog.String(key, value)
}

func RequestID(id string) slog.Attr {
	return ID("request_id", id)
}

func Method(method string) slog.Attr {
	return slog.String("method", method)
}

func Path(path string) slog.Attr {
	return slog.String("path", path)
}

func Query(query string) slog.Attr {
	if query == "" {
		return slog.Attr{}
	}
	return slog.String("query", query)
}

func StatusCode(code int) slog.Attr {
	return slog.Int("status", code)
}

func ClientIP(ip string) slog.Attr {
	return slog.String("client_ip", ip)
}

func RemoteAddr(addr string) slog.Attr {
	return slog.String("remote_addr", addr)
}

func UserAgent(ua string) slog.Attr {
	return slog.String("user_agent", ua)
}

func BytesOut(n int64) slog.Attr {
	return slog.Int64("bytes_out", n)
}

// Component names the subsystem emitting the record.
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Operation names the dispatched operation (register, smartget, response).
func Operation(name string) slog.Attr {
	return slog.String("operation", name)
}

func Event(name string) slog.Attr {
	return slog.String("event", name)
}

func Count(key string, n int) slog.Attr {
	return slog.Int(key, n)
}

func RetryCount(count int) slog.Attr {
	return slog.Int("retry_count", count)
}
