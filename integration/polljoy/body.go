package polljoy

import (
	"errors"
	"io"
	"mime"
	"net/http"

	"github.com/tidwall/gjson"
)

const maxMultipartMemory = 1 << 20

// ParseBody reads the inbound fields of r as flat string parameters.
// JSON objects are flattened one level: strings keep their value, null
// becomes "" and other values keep their JSON text. Form bodies use the
// first value of each field. Other content types yield no fields.
func ParseBody(r *http.Request) (Params, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))

	switch mediaType {
	case "application/json":
		return parseJSONBody(r)
	case "multipart/form-data":
		if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
			return nil, errors.Join(ErrInvalidBody, err)
		}
		return firstValues(r.PostForm), nil
	default:
		if err := r.ParseForm(); err != nil {
			return nil, errors.Join(ErrInvalidBody, err)
		}
		return firstValues(r.PostForm), nil
	}
}

func parseJSONBody(r *http.Request) (Params, error) {
	params := Params{}
	if r.Body == nil {
		return params, nil
	}

	raw, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, errors.Join(ErrInvalidBody, err)
	}
	if len(raw) == 0 {
		return params, nil
	}
	if !gjson.ValidBytes(raw) {
		return nil, ErrInvalidBody
	}

	doc := gjson.ParseBytes(raw)
	if !doc.IsObject() {
		return nil, ErrInvalidBody
	}

	doc.ForEach(func(key, value gjson.Result) bool {
		switch value.Type {
		case gjson.String:
			params[key.String()] = value.Str
		case gjson.Null:
			params[key.String()] = ""
		default:
			params[key.String()] = value.Raw
		}
		return true
	})
	return params, nil
}

func firstValues(values map[string][]string) Params {
	params := make(Params, len(values))
	for k, v := range values {
		if len(v) > 0 {
			params[k] = v[0]
		}
	}
	return params
}
