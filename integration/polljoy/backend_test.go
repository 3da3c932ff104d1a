package polljoy_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/polljoy/integration/polljoy"
)

type backendCall struct {
	Endpoint string
	Form     url.Values
}

// fakeBackend stands in for the polljoy API and records every call.
type fakeBackend struct {
	srv *httptest.Server

	mu      sync.Mutex
	calls   []backendCall
	replies map[string]string
	status  int
}

func newFakeBackend(t *testing.T) *fakeBackend {
	t.Helper()

	b := &fakeBackend{
		status: http.StatusOK,
		replies: map[string]string{
			"registerSession.json": `{"status":0,"session":{"appId":"app-1","token":"T1"}}`,
			"smartget.json":        `{"status":0,"session":{"appId":"app-1"},"polls":{"p1":{"PollRequest":{"appId":"app-1","id":1}}}}`,
		},
	}
	b.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		endpoint := strings.TrimPrefix(r.URL.EscapedPath(), "/poll/")

		b.mu.Lock()
		b.calls = append(b.calls, backendCall{Endpoint: endpoint, Form: r.PostForm})
		reply, ok := b.replies[endpoint]
		status := b.status
		b.mu.Unlock()

		if !ok {
			reply = `{"status":0}`
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(reply))
	}))
	t.Cleanup(b.srv.Close)
	return b
}

func (b *fakeBackend) URL() string {
	return b.srv.URL + "/poll/"
}

func (b *fakeBackend) Calls() []backendCall {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]backendCall(nil), b.calls...)
}

func (b *fakeBackend) Reply(endpoint, body string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.replies[endpoint] = body
}

func (b *fakeBackend) Status(status int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.status = status
}

func newConnector(t *testing.T, b *fakeBackend, opts ...polljoy.Option) *polljoy.Connector {
	t.Helper()

	cfg := polljoy.DefaultConfig()
	cfg.AppID = "app-1"
	cfg.BackendURL = b.URL()

	c, err := polljoy.New(cfg, opts...)
	require.NoError(t, err)
	return c
}
