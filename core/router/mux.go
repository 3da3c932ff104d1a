package router

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
	"slices"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/polljoy/core/handler"
	"github.com/dmitrymomot/polljoy/core/logger"
)

// mux adapts a chi routing tree to typed handlers.
type mux[C handler.Context] struct {
	tree         chi.Router
	root         chi.Routes
	middlewares  []handler.Middleware[C]
	errorHandler handler.ErrorHandler[C]
	newContext   func(http.ResponseWriter, *http.Request, map[string]string) C
	logger       *slog.Logger
	inline       bool
	hasRoutes    *bool
}

var supportedMethods = []string{
	http.MethodGet, http.MethodHead, http.MethodPost, http.MethodPut,
	http.MethodPatch, http.MethodDelete, http.MethodOptions,
	http.MethodConnect, http.MethodTrace,
}

func newMux[C handler.Context](opts ...Option[C]) *mux[C] {
	tree := chi.NewRouter()
	m := &mux[C]{
		tree:         tree,
		root:         tree,
		errorHandler: defaultErrorHandler[C],
		logger:       logger.Discard(),
		hasRoutes:    new(bool),
	}

	for _, opt := range opts {
		opt(m)
	}

	if m.newContext == nil {
		m.newContext = func(w http.ResponseWriter, r *http.Request, params map[string]string) C {
			var zero C
			if _, ok := any(zero).(*Context); ok {
				return any(NewContext(w, r, params)).(C)
			}
			panic(ErrNoContextFactory)
		}
	}

	m.installFallbacks(tree)
	return m
}

// installFallbacks routes chi's 404/405 responses through the error handler.
func (m *mux[C]) installFallbacks(tree chi.Router) {
	tree.NotFound(func(w http.ResponseWriter, r *http.Request) {
		m.errorHandler(m.newContext(newResponseWriter(w), r, nil), ErrNotFound)
	})
	tree.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		m.errorHandler(m.newContext(newResponseWriter(w), r, nil), ErrMethodNotAllowed)
	})
}

// ServeHTTP implements http.Handler.
func (m *mux[C]) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	m.tree.ServeHTTP(w, r)
}

func (m *mux[C]) Get(pattern string, h handler.HandlerFunc[C]) {
	m.handle(pattern, h, http.MethodGet)
}

func (m *mux[C]) Post(pattern string, h handler.HandlerFunc[C]) {
	m.handle(pattern, h, http.MethodPost)
}

func (m *mux[C]) Put(pattern string, h handler.HandlerFunc[C]) {
	m.handle(pattern, h, http.MethodPut)
}

func (m *mux[C]) Delete(pattern string, h handler.HandlerFunc[C]) {
	m.handle(pattern, h, http.MethodDelete)
}

func (m *mux[C]) Patch(pattern string, h handler.HandlerFunc[C]) {
	m.handle(pattern, h, http.MethodPatch)
}

func (m *mux[C]) Options(pattern string, h handler.HandlerFunc[C]) {
	m.handle(pattern, h, http.MethodOptions)
}

func (m *mux[C]) Handle(pattern string, h handler.HandlerFunc[C]) {
	m.handle(pattern, h, supportedMethods...)
}

func (m *mux[C]) Method(pattern string, h handler.HandlerFunc[C], methods ...string) {
	if len(methods) == 0 {
		panic(fmt.Errorf("%w: no methods provided", ErrInvalidMethod))
	}
	normalized := make([]string, 0, len(methods))
	for _, method := range methods {
		method = strings.ToUpper(method)
		if !slices.Contains(supportedMethods, method) {
			panic(fmt.Errorf("%w: %s", ErrInvalidMethod, method))
		}
		if !slices.Contains(normalized, method) {
			normalized = append(normalized, method)
		}
	}
	m.handle(pattern, h, normalized...)
}

func (m *mux[C]) Use(middlewares ...handler.Middleware[C]) {
	if !m.inline && *m.hasRoutes {
		panic("router: all middlewares must be defined before routes on a mux")
	}
	m.middlewares = append(m.middlewares, middlewares...)
}

func (m *mux[C]) With(middlewares ...handler.Middleware[C]) Router[C] {
	im := *m
	im.inline = true
	im.middlewares = append(slices.Clone(m.middlewares), middlewares...)
	return &im
}

func (m *mux[C]) Group(fn func(r Router[C])) Router[C] {
	im := m.With()
	if fn != nil {
		fn(im)
	}
	return im
}

func (m *mux[C]) Route(pattern string, fn func(r Router[C])) Router[C] {
	if fn == nil {
		panic(fmt.Errorf("%w on '%s'", ErrNilSubrouter, pattern))
	}

	tree := chi.NewRouter()
	sub := &mux[C]{
		tree:         tree,
		root:         m.root,
		middlewares:  slices.Clone(m.middlewares),
		errorHandler: m.errorHandler,
		newContext:   m.newContext,
		logger:       m.logger,
		hasRoutes:    new(bool),
	}
	sub.installFallbacks(tree)

	fn(sub)
	*m.hasRoutes = true
	m.tree.Mount(pattern, tree)
	return sub
}

// Routes returns every registered route, sub-routers included.
func (m *mux[C]) Routes() []Route {
	var routes []Route
	_ = chi.Walk(m.root, func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		routes = append(routes, Route{Method: method, Pattern: route})
		return nil
	})
	return routes
}

func (m *mux[C]) handle(pattern string, h handler.HandlerFunc[C], methods ...string) {
	if len(pattern) == 0 || pattern[0] != '/' {
		panic(fmt.Errorf("%w: '%s'", ErrInvalidPattern, pattern))
	}
	*m.hasRoutes = true

	fn := handler.Chain(h, m.middlewares...)
	endpoint := func(w http.ResponseWriter, r *http.Request) {
		m.serve(w, r, fn)
	}
	for _, method := range methods {
		m.tree.MethodFunc(method, pattern, endpoint)
	}
}

func (m *mux[C]) serve(w http.ResponseWriter, r *http.Request, fn handler.HandlerFunc[C]) {
	ww := newResponseWriter(w)
	ctx := m.newContext(ww, r, urlParams(r))

	defer func() {
		if p := recover(); p != nil {
			panicErr := &panicError{value: p, stack: debug.Stack()}
			if ww.Written() {
				m.logger.Error("panic after response written",
					"value", panicErr.value,
					"stack", string(panicErr.stack),
					"path", r.URL.Path,
					"method", r.Method,
					"status", ww.Status(),
				)
				return
			}
			m.errorHandler(ctx, panicErr)
		}
	}()

	resp := fn(ctx)
	if resp == nil {
		m.errorHandler(ctx, ErrNilResponse)
		return
	}

	// Handlers may replace the request (SetValue), so render against ctx's request.
	if err := resp(ww, ctx.Request()); err != nil {
		m.errorHandler(ctx, err)
	}
}

func urlParams(r *http.Request) map[string]string {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil || len(rctx.URLParams.Keys) == 0 {
		return nil
	}
	params := make(map[string]string, len(rctx.URLParams.Keys))
	for i, key := range rctx.URLParams.Keys {
		if i < len(rctx.URLParams.Values) && key != "*" {
			params[key] = rctx.URLParams.Values[i]
		}
	}
	return params
}
