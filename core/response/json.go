package response

import (
	"encoding/json"
	"net/http"

	"github.com/dmitrymomot/polljoy/core/handler"
)

const contentTypeJSON = "application/json; charset=utf-8"

// JSON creates an application/json response with 200 OK status.
func JSON(v any) handler.Response {
	return JSONWithStatus(v, http.StatusOK)
}

// JSONWithStatus creates an application/json response with a custom status code.
// A zero status means 204 for nil data and 200 otherwise.
func JSONWithStatus(v any, status int) handler.Response {
	return func(w http.ResponseWriter, r *http.Request) error {
		w.Header().Set("Content-Type", contentTypeJSON)

		if status == 0 {
			if v == nil {
				status = http.StatusNoContent
			} else {
				status = http.StatusOK
			}
		}
		w.WriteHeader(status)

		switch status {
		case http.StatusNoContent, http.StatusNotModified:
			return nil
		}
		return json.NewEncoder(w).Encode(v)
	}
}

// RawJSON writes an already encoded JSON document as is.
// The payload is not re-encoded, so key order and number formatting survive.
func RawJSON(payload []byte) handler.Response {
	return BytesWithStatus(payload, contentTypeJSON, http.StatusOK)
}
