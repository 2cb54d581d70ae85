package config

import "time"

// HTTPConfig is the configuration for the HTTP server.
type HTTPConfig struct {
	// Addr is the TCP address to listen on, in the form "host:port".
	// An empty host listens on all interfaces.
	Addr string `yaml:"addr"`
	// ReadHeaderTimeout is the amount of time allowed to read request
	// headers.
	ReadHeaderTimeout time.Duration `yaml:"read_header_timeout,omitempty"`
	// ShutdownTimeout is the amount of time in-flight requests are given
	// to complete during graceful shutdown.
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout,omitempty"`
}

var DefaultHTTP = HTTPConfig{
	Addr:              ":8000",
	ReadHeaderTimeout: 5 * time.Second,
	ShutdownTimeout:   10 * time.Second,
}

// IsZero indicates whether cfg is the default value.
func (cfg HTTPConfig) IsZero() bool {
	return cfg == DefaultHTTP
}
