package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeJSONFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestParseJSON_AllFields(t *testing.T) {
	path := writeJSONFile(t, `{
		"app": {
			"token_sign_key": "secret",
			"token_issuer": "accounts",
			"token_duration": "2h",
			"password_hash_cost": 11,
			"version": "0.1.0",
			"log_level": "error"
		},
		"storage": {
			"db": {"driver": "sqlite3", "dsn": "file:test.db"},
			"blob": {
				"bucket": "pictures",
				"region": "eu-west-1",
				"access_key_id": "AKIA",
				"secret_access_key": "s3cr3t",
				"endpoint": "http://minio:9000",
				"public_url": "https://cdn.example"
			},
			"files": {"pictures_dir": "/data/pictures", "public_url": "http://localhost:5000"}
		},
		"server": {
			"http_address": "localhost:9090",
			"request_timeout": 1000000000,
			"max_upload_size": 4096,
			"allowed_origins": ["https://app.example"]
		}
	}`)

	cfg, err := parseJSON(path)

	require.NoError(t, err)
	assert.Equal(t, "secret", cfg.App.TokenSignKey)
	assert.Equal(t, "accounts", cfg.App.TokenIssuer)
	assert.Equal(t, 2*time.Hour, cfg.App.TokenDuration)
	assert.Equal(t, 11, cfg.App.PasswordHashCost)
	assert.Equal(t, "0.1.0", cfg.App.Version)
	assert.Equal(t, "error", cfg.App.LogLevel)
	assert.Equal(t, "sqlite3", cfg.Storage.DB.Driver)
	assert.Equal(t, "file:test.db", cfg.Storage.DB.DSN)
	assert.Equal(t, "pictures", cfg.Storage.Blob.Bucket)
	assert.Equal(t, "eu-west-1", cfg.Storage.Blob.Region)
	assert.Equal(t, "AKIA", cfg.Storage.Blob.AccessKeyID)
	assert.Equal(t, "s3cr3t", cfg.Storage.Blob.SecretAccessKey)
	assert.Equal(t, "http://minio:9000", cfg.Storage.Blob.Endpoint)
	assert.Equal(t, "https://cdn.example", cfg.Storage.Blob.PublicURL)
	assert.Equal(t, "/data/pictures", cfg.Storage.Files.PicturesDir)
	assert.Equal(t, "http://localhost:5000", cfg.Storage.Files.PublicURL)
	assert.Equal(t, "localhost:9090", cfg.Server.HTTPAddress)
	assert.Equal(t, time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, int64(4096), cfg.Server.MaxUploadSize)
	assert.Equal(t, []string{"https://app.example"}, cfg.Server.AllowedOrigins)
}

func TestParseJSON_MissingFile(t *testing.T) {
	_, err := parseJSON(filepath.Join(t.TempDir(), "absent.json"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading a json file")
}

func TestParseJSON_Malformed(t *testing.T) {
	path := writeJSONFile(t, `{"app": `)

	_, err := parseJSON(path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "error decoding json configs")
}

func TestParseJSON_InvalidDuration(t *testing.T) {
	path := writeJSONFile(t, `{"app": {"token_duration": true}}`)

	_, err := parseJSON(path)

	assert.Error(t, err)
}

func TestDuration_JSON(t *testing.T) {
	var d Duration
	require.NoError(t, json.Unmarshal([]byte(`"45s"`), &d))
	assert.Equal(t, Duration(45*time.Second), d)

	require.NoError(t, json.Unmarshal([]byte(`60000000000`), &d))
	assert.Equal(t, Duration(time.Minute), d)

	assert.Error(t, json.Unmarshal([]byte(`"later"`), &d))

	out, err := json.Marshal(Duration(90 * time.Second))
	require.NoError(t, err)
	assert.JSONEq(t, `"1m30s"`, string(out))
}
