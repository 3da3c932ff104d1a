package polljoy_test

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/polljoy/integration/polljoy"
)

func TestParseBodyJSON(t *testing.T) {
	t.Parallel()

	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(
		`{"deviceId":"abc","level":3,"paid":true,"tags":null,"meta":{"a":1},"list":[1,2]}`))
	r.Header.Set("Content-Type", "application/json; charset=utf-8")

	params, err := polljoy.ParseBody(r)
	require.NoError(t, err)
	assert.Equal(t, polljoy.Params{
		"deviceId": "abc",
		"level":    "3",
		"paid":     "true",
		"tags":     "",
		"meta":     `{"a":1}`,
		"list":     "[1,2]",
	}, params)
}

func TestParseBodyJSONInvalid(t *testing.T) {
	t.Parallel()

	for _, body := range []string{`{"deviceId":`, `[1,2]`, `"text"`} {
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
		r.Header.Set("Content-Type", "application/json")

		_, err := polljoy.ParseBody(r)
		assert.ErrorIs(t, err, polljoy.ErrInvalidBody, body)
	}
}

func TestParseBodyEmpty(t *testing.T) {
	t.Parallel()

	r := httptest.NewRequest(http.MethodPost, "/", nil)
	r.Header.Set("Content-Type", "application/json")
	params, err := polljoy.ParseBody(r)
	require.NoError(t, err)
	assert.Empty(t, params)

	r = httptest.NewRequest(http.MethodPost, "/", nil)
	params, err = polljoy.ParseBody(r)
	require.NoError(t, err)
	assert.Empty(t, params)
}

func TestParseBodyForm(t *testing.T) {
	t.Parallel()

	r := httptest.NewRequest(http.MethodPost, "/?register=1", strings.NewReader("deviceId=abc&tags=a&tags=b"))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	params, err := polljoy.ParseBody(r)
	require.NoError(t, err)
	assert.Equal(t, polljoy.Params{"deviceId": "abc", "tags": "a"}, params)
}

func TestParseBodyMultipart(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("deviceId", "abc"))
	require.NoError(t, mw.WriteField("userType", "Pay"))
	require.NoError(t, mw.Close())

	r := httptest.NewRequest(http.MethodPost, "/", &buf)
	r.Header.Set("Content-Type", mw.FormDataContentType())

	params, err := polljoy.ParseBody(r)
	require.NoError(t, err)
	assert.Equal(t, polljoy.Params{"deviceId": "abc", "userType": "Pay"}, params)
}
