package polljoy

import (
	"maps"
	"net/url"
	"strings"
)

// Params is a flat set of form fields sent to the backend.
type Params map[string]string

// Encode form-encodes p in key order.
func (p Params) Encode() string {
	values := make(url.Values, len(p))
	for k, v := range p {
		values.Set(k, v)
	}
	return values.Encode()
}

// Clone returns a copy of p. A nil p yields an empty map.
func (p Params) Clone() Params {
	out := make(Params, len(p))
	maps.Copy(out, p)
	return out
}

const (
	deviceModelWeb = "web"
	platformWeb    = "web"
)

// smartGetDefaults fill fields that are missing or empty.
var smartGetDefaults = Params{
	"userType":         "Non-Pay",
	"appVersion":       "",
	"deviceId":         "",
	"level":            "",
	"sessionCount":     "",
	"timeSinceInstall": "",
	"tags":             "",
}

// smartGetOptional are dropped when they hold only whitespace.
var smartGetOptional = []string{"appVersion", "level", "sessionCount", "timeSinceInstall", "tags"}

// registerParams builds the registerSession payload.
func registerParams(appID string, client ClientContext, body Params) Params {
	p := Params{
		"appId":       appID,
		"deviceId":    client.Fingerprint,
		"deviceModel": deviceModelWeb,
	}
	if client.HasOS {
		p["osVersion"] = client.OS
	}
	if id := body["deviceId"]; id != "" {
		p["deviceId"] = id
	}
	return p
}

// smartGetParams builds the smartget payload from the client's fields.
func smartGetParams(appID string, client ClientContext, body Params, storedDeviceID string) Params {
	p := body.Clone()
	for key, def := range smartGetDefaults {
		if p[key] == "" {
			p[key] = def
		}
	}

	p["appId"] = appID
	p["deviceModel"] = client.DeviceClass
	p["platform"] = platformWeb
	if client.HasOS {
		p["osVersion"] = client.OS
	} else {
		delete(p, "osVersion")
	}

	for _, key := range smartGetOptional {
		if v := p[key]; v != "" && strings.TrimSpace(v) == "" {
			delete(p, key)
		}
	}

	p["deviceId"] = resolveDeviceID(p["deviceId"], storedDeviceID, client.Fingerprint)
	return p
}

// responseParams builds the payload of a poll-response submission.
func responseParams(appID string, client ClientContext, body Params, storedDeviceID string) Params {
	p := body.Clone()
	p["appId"] = appID
	p["deviceId"] = resolveDeviceID(p["deviceId"], storedDeviceID, client.Fingerprint)
	return p
}

// responseEndpoint returns the backend path for a response submission.
func responseEndpoint(token string) (string, error) {
	if token == "" {
		return "", ErrMissingToken
	}
	return "response/" + url.PathEscape(token) + ".json", nil
}

func resolveDeviceID(explicit, stored, fingerprint string) string {
	switch {
	case explicit != "":
		return explicit
	case stored != "":
		return stored
	default:
		return fingerprint
	}
}
