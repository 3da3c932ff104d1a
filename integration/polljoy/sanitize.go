package polljoy

import (
	"errors"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// sanitizeRegister removes the app id from the issued session.
func sanitizeRegister(raw []byte) ([]byte, error) {
	if !gjson.ValidBytes(raw) {
		return nil, ErrMalformedResponse
	}
	return deleteSessionAppID(raw)
}

// sanitizeSmartGet removes the app id from the session and from every poll request.
func sanitizeSmartGet(raw []byte) ([]byte, error) {
	if !gjson.ValidBytes(raw) {
		return nil, ErrMalformedResponse
	}

	out, err := deleteSessionAppID(raw)
	if err != nil {
		return nil, err
	}

	polls := gjson.GetBytes(out, "polls")
	if !polls.IsObject() && !polls.IsArray() {
		return out, nil
	}

	// Collect keys before mutating the document.
	var keys []string
	index := 0
	polls.ForEach(func(key, _ gjson.Result) bool {
		if polls.IsArray() {
			keys = append(keys, strconv.Itoa(index))
			index++
		} else {
			keys = append(keys, escapePathKey(key.String()))
		}
		return true
	})

	for _, key := range keys {
		path := "polls." + key + ".PollRequest.appId"
		if !gjson.GetBytes(out, path).Exists() {
			continue
		}
		if out, err = sjson.DeleteBytes(out, path); err != nil {
			return nil, errors.Join(ErrMalformedResponse, err)
		}
	}
	return out, nil
}

// sanitizeResponse only checks that the backend replied with JSON.
func sanitizeResponse(raw []byte) ([]byte, error) {
	if !gjson.ValidBytes(raw) {
		return nil, ErrMalformedResponse
	}
	return raw, nil
}

func deleteSessionAppID(raw []byte) ([]byte, error) {
	if !gjson.GetBytes(raw, "session").IsObject() || !gjson.GetBytes(raw, "session.appId").Exists() {
		return raw, nil
	}
	out, err := sjson.DeleteBytes(raw, "session.appId")
	if err != nil {
		return nil, errors.Join(ErrMalformedResponse, err)
	}
	return out, nil
}

// escapePathKey escapes gjson path syntax inside a single object key.
func escapePathKey(key string) string {
	var b strings.Builder
	for _, r := range key {
		switch r {
		case '.', '*', '?', '|', '#', '@', '\\', '!', '=', '<', '>', '%', ':', '[', ']', '{', '}', '(', ')', ',', '"':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
