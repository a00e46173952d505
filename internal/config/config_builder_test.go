// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *StructuredConfig {
	cfg := defaultConfig()
	cfg.App.TokenSignKey = "secret"
	cfg.Storage.DB.DSN = "postgres://localhost/accounts"
	cfg.Storage.Blob.Bucket = "pictures"
	cfg.Storage.Blob.Region = "us-east-1"
	return cfg
}

func TestConfigBuilder_DefaultsFillEmptyFields(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{App: App{TokenSignKey: "secret"}})

	cfg, err := b.withDefaults().build()

	require.NoError(t, err)
	assert.Equal(t, "secret", cfg.App.TokenSignKey)
	assert.Equal(t, DefaultTokenDuration, cfg.App.TokenDuration)
	assert.Equal(t, DefaultPasswordHashCost, cfg.App.PasswordHashCost)
	assert.Equal(t, DefaultDBDriver, cfg.Storage.DB.Driver)
	assert.Equal(t, DefaultHTTPAddress, cfg.Server.HTTPAddress)
	assert.Equal(t, DefaultRequestTimeout, cfg.Server.RequestTimeout)
	assert.Equal(t, int64(DefaultMaxUploadSize), cfg.Server.MaxUploadSize)
	assert.Equal(t, []string{"*"}, cfg.Server.AllowedOrigins)
}

func TestConfigBuilder_LaterSourceOverrides(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs,
		&StructuredConfig{App: App{TokenSignKey: "env", TokenIssuer: "env-issuer"}},
		&StructuredConfig{App: App{TokenSignKey: "flag"}},
	)

	cfg, err := b.build()

	require.NoError(t, err)
	assert.Equal(t, "flag", cfg.App.TokenSignKey)
	assert.Equal(t, "env-issuer", cfg.App.TokenIssuer)
}

func TestConfigBuilder_DefaultsDoNotOverride(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{Server: Server{HTTPAddress: ":9999"}})

	cfg, err := b.withDefaults().build()

	require.NoError(t, err)
	assert.Equal(t, ":9999", cfg.Server.HTTPAddress)
}

func TestConfigBuilder_JSONHasLowestPriority(t *testing.T) {
	path := writeJSONFile(t, `{"app": {"token_sign_key": "from-json", "token_issuer": "json-issuer"}}`)
	t.Setenv("APP_TOKEN_SIGN_KEY", "from-env")
	t.Setenv("CONFIG", path)

	cfg, err := newConfigBuilder().
		withEnv().
		withFlags([]string{"-token-duration", "5m"}).
		withJSON().
		build()

	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.App.TokenSignKey)
	assert.Equal(t, "json-issuer", cfg.App.TokenIssuer)
	assert.Equal(t, 5*time.Minute, cfg.App.TokenDuration)
}

func TestConfigBuilder_FlagsOverrideEnv(t *testing.T) {
	t.Setenv("SERVER_ADDRESS", "localhost:1111")

	cfg, err := newConfigBuilder().
		withEnv().
		withFlags([]string{"-a", "localhost:2222"}).
		build()

	require.NoError(t, err)
	assert.Equal(t, "localhost:2222", cfg.Server.HTTPAddress)
}

func TestConfigBuilder_CollectsErrors(t *testing.T) {
	t.Setenv("APP_TOKEN_DURATION", "nope")

	_, err := newConfigBuilder().
		withEnv().
		withFlags([]string{"-unknown"}).
		build()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "error getting env configs")
	assert.Contains(t, err.Error(), "error parsing flags")
}

func TestConfigBuilder_MissingJSONFile(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{JSONFilePath: "/does/not/exist.json"})

	_, err := b.withJSON().build()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading a json file")
}

func TestStructuredConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(cfg *StructuredConfig)
		wantErr error
	}{
		{name: "valid", mutate: func(cfg *StructuredConfig) {}},
		{
			name: "local pictures instead of bucket",
			mutate: func(cfg *StructuredConfig) {
				cfg.Storage.Blob = Blob{}
				cfg.Storage.Files.PicturesDir = "/tmp/pictures"
			},
		},
		{
			name:    "empty sign key",
			mutate:  func(cfg *StructuredConfig) { cfg.App.TokenSignKey = "" },
			wantErr: ErrInvalidAppConfigs,
		},
		{
			name:    "zero token duration",
			mutate:  func(cfg *StructuredConfig) { cfg.App.TokenDuration = 0 },
			wantErr: ErrInvalidAppConfigs,
		},
		{
			name:    "cost too low",
			mutate:  func(cfg *StructuredConfig) { cfg.App.PasswordHashCost = 1 },
			wantErr: ErrInvalidAppConfigs,
		},
		{
			name:    "cost too high",
			mutate:  func(cfg *StructuredConfig) { cfg.App.PasswordHashCost = 40 },
			wantErr: ErrInvalidAppConfigs,
		},
		{
			name:    "empty dsn",
			mutate:  func(cfg *StructuredConfig) { cfg.Storage.DB.DSN = "" },
			wantErr: ErrInvalidStorageConfigs,
		},
		{
			name:    "unknown driver",
			mutate:  func(cfg *StructuredConfig) { cfg.Storage.DB.Driver = "mysql" },
			wantErr: ErrInvalidStorageConfigs,
		},
		{
			name:    "no picture store",
			mutate:  func(cfg *StructuredConfig) { cfg.Storage.Blob = Blob{} },
			wantErr: ErrInvalidStorageConfigs,
		},
		{
			name:    "bucket without region",
			mutate:  func(cfg *StructuredConfig) { cfg.Storage.Blob.Region = "" },
			wantErr: ErrInvalidStorageConfigs,
		},
		{
			name:    "access key without secret",
			mutate:  func(cfg *StructuredConfig) { cfg.Storage.Blob.AccessKeyID = "AKIA" },
			wantErr: ErrInvalidStorageConfigs,
		},
		{
			name:    "empty address",
			mutate:  func(cfg *StructuredConfig) { cfg.Server.HTTPAddress = "" },
			wantErr: ErrInvalidServerConfigs,
		},
		{
			name:    "zero upload size",
			mutate:  func(cfg *StructuredConfig) { cfg.Server.MaxUploadSize = 0 },
			wantErr: ErrInvalidServerConfigs,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.validate()

			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
		})
	}
}

func TestClientConfig_Validate(t *testing.T) {
	assert.NoError(t, (&ClientConfig{Adapter: ClientAdapter{HTTPAddress: "http://x", RequestTimeout: time.Second}}).validate())
	assert.ErrorIs(t, (&ClientConfig{Adapter: ClientAdapter{RequestTimeout: time.Second}}).validate(), ErrInvalidAdapterConfigs)
	assert.ErrorIs(t, (&ClientConfig{Adapter: ClientAdapter{HTTPAddress: "http://x"}}).validate(), ErrInvalidAdapterConfigs)
}
