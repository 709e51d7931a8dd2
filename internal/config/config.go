package config

import "time"

// Config holds server configuration values.
type Config struct {
	Addr              string        `mapstructure:"addr" yaml:"addr"`
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout" yaml:"read_header_timeout"`
	ShutdownTimeout   time.Duration `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout"`
	DatabasePath      string        `mapstructure:"database_path" yaml:"database_path"`
	LogLevel          string        `mapstructure:"log_level" yaml:"log_level"`

	// WebSocket limits. WSMessagesPerMinute <= 0 disables the per-connection
	// rate limit.
	MaxMessageBytes     int64 `mapstructure:"max_message_bytes" yaml:"max_message_bytes"`
	WSMessagesPerMinute int   `mapstructure:"ws_messages_per_minute" yaml:"ws_messages_per_minute"`

	JWTSecret   string `mapstructure:"jwt_secret" yaml:"jwt_secret"`
	JWTIssuer   string `mapstructure:"jwt_issuer" yaml:"jwt_issuer"`
	JWTAudience string `mapstructure:"jwt_audience" yaml:"jwt_audience"`
}

// Default returns configuration with reasonable starter defaults.
func Default() Config {
	return Config{
		Addr:                ":8080",
		ReadHeaderTimeout:   5 * time.Second,
		ShutdownTimeout:     5 * time.Second,
		DatabasePath:        "gridspace.db",
		LogLevel:            "info",
		MaxMessageBytes:     1 << 16,
		WSMessagesPerMinute: 0,
		JWTSecret:           "change-me",
		JWTIssuer:           "gridspace",
		JWTAudience:         "gridspace-clients",
	}
}
