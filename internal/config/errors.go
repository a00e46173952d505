package config

import "errors"

// Validation errors returned by validate when a configuration group is
// incomplete or invalid.
var (
	// ErrInvalidAppConfigs indicates missing or invalid security settings
	// (empty token sign key, non-positive token duration, bcrypt cost out of range).
	ErrInvalidAppConfigs = errors.New("invalid app configuration")
	// ErrInvalidStorageConfigs indicates an empty DSN, an unsupported driver
	// or no usable picture store.
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidServerConfigs indicates an empty listen address or
	// non-positive limits.
	ErrInvalidServerConfigs = errors.New("invalid server configuration")
	// ErrInvalidAdapterConfigs indicates invalid client adapter settings.
	ErrInvalidAdapterConfigs = errors.New("invalid adapter configuration")
)
