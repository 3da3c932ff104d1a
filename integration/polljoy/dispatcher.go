package polljoy

import (
	"net/url"
	"strings"
)

// Operation is one of the proxied backend operations.
type Operation string

const (
	OpNone     Operation = ""
	OpRegister Operation = "register"
	OpSmartGet Operation = "sg"
	OpResponse Operation = "response"
)

// String returns the query marker of op, or "none".
func (op Operation) String() string {
	if op == OpNone {
		return "none"
	}
	return string(op)
}

// SelectOperation picks the operation named by the query markers.
// register wins over sg, which wins over response.
func SelectOperation(query url.Values) Operation {
	for _, op := range []Operation{OpRegister, OpSmartGet, OpResponse} {
		if markerSet(query, string(op)) {
			return op
		}
	}
	return OpNone
}

// markerSet reports whether key carries a non-empty value that is not an
// explicit off switch. A bare "?register" or "?register=" does not count.
func markerSet(query url.Values, key string) bool {
	values, ok := query[key]
	if !ok {
		return false
	}
	value := ""
	if len(values) > 0 {
		value = values[0]
	}
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "0", "false", "no", "off":
		return false
	}
	return true
}
