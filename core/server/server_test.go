package server_test

import (
	"context"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/polljoy/core/server"
)

func waitForListener(t *testing.T, srv *server.Server, configured string) string {
	t.Helper()
	require.Eventually(t, func() bool {
		return srv.Addr() != configured
	}, 2*time.Second, 10*time.Millisecond)
	return srv.Addr()
}

func TestServerRunServesAndShutsDown(t *testing.T) {
	t.Parallel()

	srv := server.New("127.0.0.1:0", server.WithShutdownTimeout(time.Second))
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ALIVE"))
	})

	ctx, cancel := context.WithCancel(context.Background())
	g, gctx := errgroup.WithContext(ctx)
	g.Go(srv.Run(gctx, handler))

	addr := waitForListener(t, srv, "127.0.0.1:0")

	resp, err := http.Get("http://" + addr + "/health/live")
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	assert.Equal(t, "ALIVE", string(body))

	cancel()
	require.NoError(t, g.Wait())

	_, err = http.Get("http://" + addr + "/health/live")
	assert.Error(t, err)
}

func TestServerStartTwice(t *testing.T) {
	t.Parallel()

	srv := server.New("127.0.0.1:0")
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() { _ = srv.Start(ctx, http.NotFoundHandler()) }()
	waitForListener(t, srv, "127.0.0.1:0")

	assert.ErrorIs(t, srv.Start(ctx, http.NotFoundHandler()), server.ErrServerAlreadyRunning)
	require.NoError(t, srv.Stop())
	require.NoError(t, srv.Stop())
}

func TestServerListenError(t *testing.T) {
	t.Parallel()

	srv := server.New("invalid-address")
	err := srv.Run(context.Background(), http.NotFoundHandler())()
	assert.Error(t, err)
}

func TestNewFromConfig(t *testing.T) {
	t.Parallel()

	_, err := server.NewFromConfig(server.Config{})
	assert.ErrorIs(t, err, server.ErrMissingAddress)

	srv, err := server.NewFromConfig(server.DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, ":8080", srv.Addr())

	cfg := server.DefaultConfig()
	assert.Equal(t, server.DefaultWriteTimeout, cfg.WriteTimeout)
	assert.Greater(t, cfg.WriteTimeout, 30*time.Second)
}
