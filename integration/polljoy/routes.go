package polljoy

import (
	"errors"
	"strings"

	"github.com/dmitrymomot/polljoy/core/handler"
	"github.com/dmitrymomot/polljoy/core/response"
	"github.com/dmitrymomot/polljoy/middleware"
)

// Routable is any router that can register POST handlers.
// core/router.Router satisfies it.
type Routable[C handler.Context] interface {
	Post(pattern string, h handler.HandlerFunc[C])
}

// Mount installs the connector on basePath and basePath/{appId}.
// Request bodies are capped at Config.MaxBodyBytes when it is positive.
func Mount[C handler.Context](r Routable[C], basePath string, c *Connector) {
	basePath = "/" + strings.Trim(basePath, "/")

	h := Handler[C](c)
	if c.cfg.MaxBodyBytes > 0 {
		h = handler.Chain(h, middleware.BodyLimitWithSize[C](c.cfg.MaxBodyBytes))
	}

	r.Post(basePath, h)
	r.Post(strings.TrimSuffix(basePath, "/")+"/{appId}", h)
}

// Handler serves a single connector endpoint. Requests without an
// operation marker are acknowledged with 204 No Content.
func Handler[C handler.Context](c *Connector) handler.HandlerFunc[C] {
	return func(ctx C) handler.Response {
		req := ctx.Request()
		query := req.URL.Query()

		op := SelectOperation(query)
		if op == OpNone {
			return response.NoContent()
		}

		body, err := ParseBody(req)
		if err != nil {
			return response.Error(toHTTPError(err))
		}

		var handle string
		if c.handles != nil {
			if handle, err = c.handles.Token(ctx); err != nil {
				return response.Error(toHTTPError(errors.Join(ErrSessionStore, err)))
			}
		}

		payload, err := c.Dispatch(ctx, op, Request{
			AppID:  ctx.Param("appId"),
			Handle: handle,
			Client: NewClientContext(req),
			Body:   body,
			Token:  query.Get("token"),
		})
		if err != nil {
			return response.Error(toHTTPError(err))
		}
		return response.RawJSON(payload)
	}
}
