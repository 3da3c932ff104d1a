package middleware_test

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/polljoy/core/handler"
	"github.com/dmitrymomot/polljoy/core/response"
	"github.com/dmitrymomot/polljoy/core/router"
	"github.com/dmitrymomot/polljoy/middleware"
)

func readAll(ctx *router.Context) handler.Response {
	body, err := io.ReadAll(ctx.Request().Body)
	if err != nil {
		return response.Error(err)
	}
	return response.String(string(body))
}

func TestBodyLimit(t *testing.T) {
	t.Parallel()

	newRouter := func(cfg middleware.BodyLimitConfig) router.Router[*router.Context] {
		r := router.New[*router.Context](router.WithErrorHandler(response.JSONErrorHandler[*router.Context]))
		r.Use(middleware.BodyLimitWithConfig[*router.Context](cfg))
		r.Post("/", readAll)
		return r
	}

	t.Run("within limit", func(t *testing.T) {
		t.Parallel()

		r := newRouter(middleware.BodyLimitConfig{MaxSize: 10})
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/", strings.NewReader("0123456789")))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "0123456789", w.Body.String())
	})

	t.Run("content length too large", func(t *testing.T) {
		t.Parallel()

		r := newRouter(middleware.BodyLimitConfig{MaxSize: 4})
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/", strings.NewReader("too long")))

		assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	})

	t.Run("streamed body too large", func(t *testing.T) {
		t.Parallel()

		r := newRouter(middleware.BodyLimitConfig{MaxSize: 4})
		req := httptest.NewRequest(http.MethodPost, "/", io.NopCloser(strings.NewReader("too long")))
		req.ContentLength = -1
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	})

	t.Run("content type override", func(t *testing.T) {
		t.Parallel()

		r := newRouter(middleware.BodyLimitConfig{
			MaxSize:          4,
			ContentTypeLimit: map[string]int64{"application/json": 64},
		})
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"appId":"a"}`))
		req.Header.Set("Content-Type", "application/json; charset=utf-8")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestBodyLimitReaderError(t *testing.T) {
	t.Parallel()

	var readErr error
	mw := middleware.BodyLimitWithSize[*router.Context](2)
	h := mw(func(ctx *router.Context) handler.Response {
		_, readErr = io.ReadAll(ctx.Request().Body)
		return response.NoContent()
	})

	req := httptest.NewRequest(http.MethodPost, "/", io.NopCloser(strings.NewReader("abc")))
	req.ContentLength = -1
	h(router.NewContext(httptest.NewRecorder(), req, nil))

	require.Error(t, readErr)
	var httpErr response.HTTPError
	require.True(t, errors.As(readErr, &httpErr))
	assert.Equal(t, http.StatusRequestEntityTooLarge, httpErr.StatusCode())
}
