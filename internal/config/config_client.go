package config

import (
	"fmt"
	"time"
)

// Defaults of the command-line client.
const (
	DefaultClientServerAddress  = "http://localhost:5000"
	DefaultClientRequestTimeout = 10 * time.Second
)

// ClientAdapter holds network settings used by the client transport layer.
type ClientAdapter struct {
	// HTTPAddress is the base URL of the account server.
	// Env: CLIENT_SERVER_ADDRESS
	HTTPAddress string `env:"SERVER_ADDRESS"`

	// RequestTimeout is the timeout of every outbound request.
	// Env: CLIENT_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// ClientConfig is the top-level configuration of the command-line client.
type ClientConfig struct {
	Adapter ClientAdapter `envPrefix:"CLIENT_"`

	// Token is a session token printed by a previous "login". It lets the
	// authenticated subcommands run without logging in again.
	// Env: CLIENT_TOKEN
	Token string `env:"CLIENT_TOKEN"`
}

// GetClientConfig reads the client configuration from the environment,
// applies defaults and validates the result.
//
// Flags are owned by the client's subcommands, so only env is consulted.
func GetClientConfig() (*ClientConfig, error) {
	cfg := new(ClientConfig)
	if err := parseEnv(cfg); err != nil {
		return nil, err
	}

	if cfg.Adapter.HTTPAddress == "" {
		cfg.Adapter.HTTPAddress = DefaultClientServerAddress
	}
	if cfg.Adapter.RequestTimeout == 0 {
		cfg.Adapter.RequestTimeout = DefaultClientRequestTimeout
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid client configuration: %w", err)
	}

	return cfg, nil
}
