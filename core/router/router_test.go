package router_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/polljoy/core/handler"
	"github.com/dmitrymomot/polljoy/core/router"
)

func text(s string) handler.Response {
	return func(w http.ResponseWriter, r *http.Request) error {
		_, err := w.Write([]byte(s))
		return err
	}
}

func serve(r http.Handler, method, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRouterPathParams(t *testing.T) {
	t.Parallel()

	r := router.New[*router.Context]()
	r.Post("/polljoy", func(ctx *router.Context) handler.Response {
		return text("bare:" + ctx.Param("appId"))
	})
	r.Post("/polljoy/{appId}", func(ctx *router.Context) handler.Response {
		return text("app:" + ctx.Param("appId"))
	})

	w := serve(r, http.MethodPost, "/polljoy")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "bare:", w.Body.String())

	w = serve(r, http.MethodPost, "/polljoy/app-42")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "app:app-42", w.Body.String())
}

func TestRouterMiddlewareOrder(t *testing.T) {
	t.Parallel()

	var order []string
	mw := func(name string) handler.Middleware[*router.Context] {
		return func(next handler.HandlerFunc[*router.Context]) handler.HandlerFunc[*router.Context] {
			return func(ctx *router.Context) handler.Response {
				order = append(order, name)
				return next(ctx)
			}
		}
	}

	r := router.New[*router.Context](router.WithMiddleware(mw("option")))
	r.Use(mw("use"))
	r.With(mw("inline")).Get("/x", func(ctx *router.Context) handler.Response {
		order = append(order, "handler")
		return text("ok")
	})

	w := serve(r, http.MethodGet, "/x")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"option", "use", "inline", "handler"}, order)
}

func TestRouterUseAfterRoutesPanics(t *testing.T) {
	t.Parallel()

	r := router.New[*router.Context]()
	r.Get("/", func(ctx *router.Context) handler.Response { return text("ok") })

	assert.Panics(t, func() {
		r.Use(func(next handler.HandlerFunc[*router.Context]) handler.HandlerFunc[*router.Context] { return next })
	})
}

func TestRouterErrors(t *testing.T) {
	t.Parallel()

	var captured error
	r := router.New[*router.Context](router.WithErrorHandler(func(ctx *router.Context, err error) {
		captured = err
		ctx.ResponseWriter().WriteHeader(http.StatusTeapot)
	}))
	r.Post("/only-post", func(ctx *router.Context) handler.Response { return text("ok") })
	r.Get("/nil", func(ctx *router.Context) handler.Response { return nil })
	r.Get("/fail", func(ctx *router.Context) handler.Response {
		return func(w http.ResponseWriter, r *http.Request) error { return errors.New("render failed") }
	})

	tests := []struct {
		name   string
		method string
		path   string
		want   error
	}{
		{"not found", http.MethodGet, "/missing", router.ErrNotFound},
		{"method not allowed", http.MethodGet, "/only-post", router.ErrMethodNotAllowed},
		{"nil response", http.MethodGet, "/nil", router.ErrNilResponse},
	}
	for _, tt := range tests {
		captured = nil
		w := serve(r, tt.method, tt.path)
		assert.Equal(t, http.StatusTeapot, w.Code, tt.name)
		assert.ErrorIs(t, captured, tt.want, tt.name)
	}

	captured = nil
	serve(r, http.MethodGet, "/fail")
	require.Error(t, captured)
	assert.Equal(t, "render failed", captured.Error())
}

func TestRouterDefaultErrorStatus(t *testing.T) {
	t.Parallel()

	r := router.New[*router.Context]()
	r.Post("/only-post", func(ctx *router.Context) handler.Response { return text("ok") })

	assert.Equal(t, http.StatusNotFound, serve(r, http.MethodGet, "/missing").Code)
	assert.Equal(t, http.StatusMethodNotAllowed, serve(r, http.MethodGet, "/only-post").Code)
}

func TestRouterPanicRecovery(t *testing.T) {
	t.Parallel()

	var panicErr router.PanicError
	r := router.New[*router.Context](router.WithErrorHandler(func(ctx *router.Context, err error) {
		errors.As(err, &panicErr)
		ctx.ResponseWriter().WriteHeader(http.StatusInternalServerError)
	}))
	r.Get("/boom", func(ctx *router.Context) handler.Response { panic("boom") })

	w := serve(r, http.MethodGet, "/boom")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	require.NotNil(t, panicErr)
	assert.Equal(t, "boom", panicErr.Value())
	assert.NotEmpty(t, panicErr.Stack())
}

func TestRouterSubRouterAndRoutes(t *testing.T) {
	t.Parallel()

	r := router.New[*router.Context]()
	r.Get("/health", func(ctx *router.Context) handler.Response { return text("ALIVE") })
	r.Route("/api", func(sub router.Router[*router.Context]) {
		sub.Post("/items/{id}", func(ctx *router.Context) handler.Response {
			return text("item " + ctx.Param("id"))
		})
	})

	w := serve(r, http.MethodPost, "/api/items/7")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "item 7", w.Body.String())

	var patterns []string
	for _, route := range r.Routes() {
		patterns = append(patterns, route.Method+" "+route.Pattern)
	}
	assert.Contains(t, patterns, "GET /health")
	assert.True(t, containsPrefix(patterns, "POST /api"), "mounted route missing: %v", patterns)
}

func TestContextSetValue(t *testing.T) {
	t.Parallel()

	type key struct{}
	r := router.New[*router.Context]()
	r.Get("/v", func(ctx *router.Context) handler.Response {
		ctx.SetValue(key{}, "stored")
		return func(w http.ResponseWriter, req *http.Request) error {
			v, _ := req.Context().Value(key{}).(string)
			_, err := w.Write([]byte(v + "," + ctx.Value(key{}).(string)))
			return err
		}
	})

	w := serve(r, http.MethodGet, "/v")
	assert.Equal(t, "stored,stored", w.Body.String())
}

func TestMethodRegistration(t *testing.T) {
	t.Parallel()

	r := router.New[*router.Context]()
	r.Method("/m", func(ctx *router.Context) handler.Response { return text("ok") }, "get", "PUT", "GET")

	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/m").Code)
	assert.Equal(t, http.StatusOK, serve(r, http.MethodPut, "/m").Code)
	assert.Equal(t, http.StatusMethodNotAllowed, serve(r, http.MethodPost, "/m").Code)

	assert.Panics(t, func() {
		r.Method("/bad", func(ctx *router.Context) handler.Response { return text("ok") }, "BREW")
	})
	assert.Panics(t, func() {
		r.Get("no-slash", func(ctx *router.Context) handler.Response { return text("ok") })
	})
}

func containsPrefix(items []string, prefix string) bool {
	for _, item := range items {
		if strings.HasPrefix(item, prefix) {
			return true
		}
	}
	return false
}
