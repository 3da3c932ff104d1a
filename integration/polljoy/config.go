package polljoy

import "time"

// DefaultBackendURL is the hosted polljoy poll API.
const DefaultBackendURL = "https://api.polljoy.com/3.0/poll/"

// Config holds connector configuration with environment variable support.
type Config struct {
	// AppID is the default application id. A {appId} path segment overrides it per request.
	AppID string `env:"POLLJOY_APP_ID"`
	// BackendURL is the base every backend endpoint is resolved against.
	BackendURL string `env:"POLLJOY_BACKEND_URL" envDefault:"https://api.polljoy.com/3.0/poll/"`
	// Timeout bounds each backend call.
	Timeout time.Duration `env:"POLLJOY_TIMEOUT" envDefault:"30s"`
	// MaxBodyBytes caps inbound request bodies on mounted routes. Zero disables the cap.
	MaxBodyBytes int64 `env:"POLLJOY_MAX_BODY_BYTES" envDefault:"1048576"`
	// BasePath is where cmd/polljoyd mounts the endpoints.
	BasePath string `env:"POLLJOY_BASE_PATH" envDefault:"/polljoy"`
}

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig() Config {
	return Config{
		BackendURL:   DefaultBackendURL,
		Timeout:      30 * time.Second,
		MaxBodyBytes: 1 << 20,
		BasePath:     "/polljoy",
	}
}
