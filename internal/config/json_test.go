package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJSON_Success(t *testing.T) {
	content := `{
		"app": {"access_token": "json-token", "log_file": "json.log"},
		"storage": {"driver": "file", "data_dir": "/data"},
		"adapter": {"address": "https://api.example.com", "request_timeout": "30s"},
		"workers": {
			"max_retries": 7,
			"retry_delay": "5s",
			"min_interval": 1010000000,
			"max_file_size": 4096,
			"excluded_extensions": [".mov"],
			"record_skipped": true,
			"sync_interval": "15m"
		},
		"catalog": {"path": "catalog.json"}
	}`
	path := writeTempFile(t, content)

	cfg, err := parseJSON(path)
	require.NoError(t, err)

	assert.Equal(t, "json-token", cfg.App.AccessToken)
	assert.Equal(t, "json.log", cfg.App.LogFile)
	assert.Equal(t, DriverFile, cfg.Storage.Driver)
	assert.Equal(t, "/data", cfg.Storage.DataDir)
	assert.Equal(t, "https://api.example.com", cfg.Adapter.HTTPAddress)
	assert.Equal(t, 30*time.Second, cfg.Adapter.RequestTimeout)
	assert.Equal(t, 7, cfg.Workers.MaxRetries)
	assert.Equal(t, 5*time.Second, cfg.Workers.RetryDelay)
	assert.Equal(t, 1010*time.Millisecond, cfg.Workers.MinInterval)
	assert.Equal(t, int64(4096), cfg.Workers.MaxFileSize)
	assert.Equal(t, []string{".mov"}, cfg.Workers.ExcludedExtensions)
	assert.True(t, cfg.Workers.RecordSkipped)
	assert.Equal(t, 15*time.Minute, cfg.Workers.SyncInterval)
	assert.Equal(t, "catalog.json", cfg.Catalog.Path)
	assert.Empty(t, cfg.JSONFilePath, "JSON file must not point to another JSON file")
}

func TestParseJSON_FileNotFound(t *testing.T) {
	_, err := parseJSON(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading a json file")
}

func TestParseJSON_InvalidJSON(t *testing.T) {
	path := writeTempFile(t, `{"app": `)

	_, err := parseJSON(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error decoding json configs")
}

func TestParseJSON_InvalidDuration(t *testing.T) {
	path := writeTempFile(t, `{"workers": {"retry_delay": "whenever"}}`)

	_, err := parseJSON(path)
	require.Error(t, err)
}

func TestParseJSON_EmptyObject(t *testing.T) {
	path := writeTempFile(t, `{}`)

	cfg, err := parseJSON(path)
	require.NoError(t, err)
	assert.Equal(t, &StructuredConfig{}, cfg)
}

func TestDuration_MarshalJSON(t *testing.T) {
	b, err := Duration(90 * time.Second).MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `"1m30s"`, string(b))
}

func writeTempFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}
