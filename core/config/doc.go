// Package config provides type-safe environment variable loading with caching
// using Go generics. Each configuration type is loaded once and cached for
// subsequent calls.
//
// The package automatically loads .env files on first use and uses the
// caarlos0/env library for parsing environment variables into struct fields.
//
// Basic usage:
//
//	import "github.com/dmitrymomot/polljoy/core/config"
//
//	type PolljoyConfig struct {
//		AppID      string        `env:"POLLJOY_APP_ID"`
//		BackendURL string        `env:"POLLJOY_BACKEND_URL" envDefault:"https://api.polljoy.com/3.0/poll/"`
//		Timeout    time.Duration `env:"POLLJOY_TIMEOUT" envDefault:"30s"`
//	}
//
//	func main() {
//		var cfg PolljoyConfig
//		if err := config.Load(&cfg); err != nil {
//			log.Fatal(err)
//		}
//
//		// Or panic on failure at startup.
//		config.MustLoad(&cfg)
//	}
//
// # Caching Behavior
//
// Each configuration type is loaded only once per application lifetime:
//
//	var cfg1 PolljoyConfig
//	config.Load(&cfg1) // Loads from environment
//
//	var cfg2 PolljoyConfig
//	config.Load(&cfg2) // Returns cached value, cfg1 == cfg2
//
// Different types are cached independently:
//
//	type ServerConfig struct {
//		Port int `env:"PORT" envDefault:"8080"`
//	}
//
//	type RedisConfig struct {
//		URL string `env:"REDIS_URL,required"`
//	}
//
//	// Each type has its own cache entry
//	config.MustLoad(&ServerConfig{})
//	config.MustLoad(&RedisConfig{})
package config
