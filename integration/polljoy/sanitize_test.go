package polljoy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeRegister(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"session app id removed", `{"session":{"appId":"X","token":"T"}}`, `{"session":{"token":"T"}}`},
		{"no app id", `{"session":{"token":"T"}}`, `{"session":{"token":"T"}}`},
		{"session not an object", `{"session":"abc","appId":"X"}`, `{"session":"abc","appId":"X"}`},
		{"no session", `{"status":1}`, `{"status":1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			out, err := sanitizeRegister([]byte(tt.in))
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(out))
		})
	}
}

func TestSanitizeSmartGet(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			"poll request app id removed",
			`{"polls":{"p1":{"PollRequest":{"appId":"X","id":1}}}}`,
			`{"polls":{"p1":{"PollRequest":{"id":1}}}}`,
		},
		{
			"every poll and the session",
			`{"session":{"appId":"X","s":1},"polls":{"p1":{"PollRequest":{"appId":"X","id":1}},"p2":{"PollRequest":{"appId":"X","id":2}}}}`,
			`{"session":{"s":1},"polls":{"p1":{"PollRequest":{"id":1}},"p2":{"PollRequest":{"id":2}}}}`,
		},
		{
			"keys with path syntax",
			`{"polls":{"a.b":{"PollRequest":{"appId":"X","id":1}},"c*":{"PollRequest":{"appId":"X"}}}}`,
			`{"polls":{"a.b":{"PollRequest":{"id":1}},"c*":{"PollRequest":{}}}}`,
		},
		{
			"polls as array",
			`{"polls":[{"PollRequest":{"appId":"X","id":1}},{"PollRequest":{"appId":"X","id":2}}]}`,
			`{"polls":[{"PollRequest":{"id":1}},{"PollRequest":{"id":2}}]}`,
		},
		{
			"entries without poll request",
			`{"polls":{"p1":{"other":true},"p2":5}}`,
			`{"polls":{"p1":{"other":true},"p2":5}}`,
		},
		{
			"no polls",
			`{"polls":null,"status":0}`,
			`{"polls":null,"status":0}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			out, err := sanitizeSmartGet([]byte(tt.in))
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(out))
		})
	}
}

func TestSanitizeMalformed(t *testing.T) {
	t.Parallel()

	for name, fn := range map[string]func([]byte) ([]byte, error){
		"register": sanitizeRegister,
		"smartget": sanitizeSmartGet,
		"response": sanitizeResponse,
	} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			_, err := fn([]byte(`<html>bad gateway</html>`))
			require.ErrorIs(t, err, ErrMalformedResponse)
		})
	}
}

func TestSanitizeResponsePassThrough(t *testing.T) {
	t.Parallel()

	in := []byte(`{"status":0,"appId":"X"}`)
	out, err := sanitizeResponse(in)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}
