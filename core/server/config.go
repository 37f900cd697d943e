package server

import "time"

// Config holds configuration for the HTTP server.
type Config struct {
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8080"`
	// ApiKey is the secret key required to access the API. Empty disables auth.
	ApiKey string `mapstructure:"api_key" default:""`
	// BodyLimitMB caps request bodies, which carry uploaded tables.
	BodyLimitMB int `mapstructure:"body_limit_mb" default:"32"`
	// ReadTimeoutSeconds bounds reading a full request.
	ReadTimeoutSeconds int `mapstructure:"read_timeout_seconds" default:"60"`
}

const (
	defaultBodyLimitMB = 32
	defaultReadTimeout = 60
)

// BodyLimit returns the request body limit in bytes.
func (c Config) BodyLimit() int {
	if c.BodyLimitMB <= 0 {
		return defaultBodyLimitMB * 1024 * 1024
	}
	return c.BodyLimitMB * 1024 * 1024
}

// ReadTimeout returns the request read timeout.
func (c Config) ReadTimeout() time.Duration {
	if c.ReadTimeoutSeconds <= 0 {
		return defaultReadTimeout * time.Second
	}
	return time.Duration(c.ReadTimeoutSeconds) * time.Second
}

// AuthEnabled reports whether requests must present the API key.
func (c Config) AuthEnabled() bool {
	return c.ApiKey != ""
}
