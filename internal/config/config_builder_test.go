package config

import (
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── helpers ───────────────────────────────────────────────────────────────────

func writeTempJSONConfig(t *testing.T, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	f, err := os.CreateTemp(t.TempDir(), "config-*.json")
	require.NoError(t, err)
	_, err = f.Write(data)
	require.NoError(t, err)
	require.NoError(t, f.Close())
	return f.Name()
}

func validConfig() *StructuredConfig {
	return &StructuredConfig{
		App:     App{AccessToken: "token"},
		Storage: Storage{DataDir: "/tmp/photosync"},
		Adapter: Adapter{HTTPAddress: "https://api.example.com"},
		Catalog: Catalog{Path: "catalog.json"},
	}
}

// ── newConfigBuilder ──────────────────────────────────────────────────────────

func TestNewConfigBuilder_InitialState(t *testing.T) {
	b := newConfigBuilder()
	require.NotNil(t, b)
	assert.NoError(t, b.err)
	assert.Empty(t, b.configs)
}

// ── build ─────────────────────────────────────────────────────────────────────

// TestBuild_EmptyBuilder verifies that defaults alone do not pass validation:
// an access token is mandatory.
func TestBuild_EmptyBuilder(t *testing.T) {
	_, err := newConfigBuilder().build()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidAppConfigs)
}

func TestBuild_PropagatesBuilderError(t *testing.T) {
	b := newConfigBuilder()
	b.err = assert.AnError

	cfg, err := b.build()
	require.Error(t, err)
	assert.Nil(t, cfg)
	assert.ErrorIs(t, err, assert.AnError)
}

// TestBuild_AppliesDefaults verifies that zero fields are filled from the
// built-in defaults.
func TestBuild_AppliesDefaults(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, validConfig())

	cfg, err := b.build()
	require.NoError(t, err)

	assert.Equal(t, DriverFile, cfg.Storage.Driver)
	assert.Equal(t, DefaultRequestTimeout, cfg.Adapter.RequestTimeout)
	assert.Equal(t, DefaultMaxRetries, cfg.Workers.MaxRetries)
	assert.Equal(t, DefaultRetryDelay, cfg.Workers.RetryDelay)
	assert.Equal(t, DefaultMinInterval, cfg.Workers.MinInterval)
	assert.Equal(t, DefaultMaxFileSize, cfg.Workers.MaxFileSize)
	assert.Equal(t, DefaultExcludedExtensions, cfg.Workers.ExcludedExtensions)
	assert.Zero(t, cfg.Workers.SyncInterval)
}

// TestBuild_EarlierSourceWins verifies the merge priority: a value set by an
// earlier source is not overwritten by a later one.
func TestBuild_EarlierSourceWins(t *testing.T) {
	first := validConfig()
	first.Workers.MaxRetries = 3

	second := &StructuredConfig{
		Workers: Workers{MaxRetries: 9, RetryDelay: time.Second},
	}

	b := newConfigBuilder()
	b.configs = append(b.configs, first, second)

	cfg, err := b.build()
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Workers.MaxRetries)
	assert.Equal(t, time.Second, cfg.Workers.RetryDelay)
}

// ── withEnv / withFlags / withJSON ───────────────────────────────────────────

func TestWithEnv_ReadsEnvVars(t *testing.T) {
	setEnvVars(t, map[string]string{"APP_ACCESS_TOKEN": "env-token"})

	b := newConfigBuilder().withEnv()
	require.NoError(t, b.err)
	require.Len(t, b.configs, 1)
	assert.Equal(t, "env-token", b.configs[0].App.AccessToken)
}

func TestWithFlags_AppendsConfig(t *testing.T) {
	b := newConfigBuilder().withFlags([]string{"-token", "flag-token"})
	require.NoError(t, b.err)
	require.Len(t, b.configs, 1)
	assert.Equal(t, "flag-token", b.configs[0].App.AccessToken)
}

func TestWithFlags_SetsError_OnBadFlag(t *testing.T) {
	b := newConfigBuilder().withFlags([]string{"-bogus"})
	require.Error(t, b.err)
	assert.Empty(t, b.configs)
}

func TestWithJSON_NoOp_WhenNoPathSet(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{})

	b.withJSON()
	assert.NoError(t, b.err)
	assert.Len(t, b.configs, 1)
}

func TestWithJSON_AppendsConfig_WhenValidFile(t *testing.T) {
	path := writeTempJSONConfig(t, map[string]any{
		"app": map[string]any{"access_token": "json-token"},
	})

	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{JSONFilePath: path})

	b.withJSON()
	require.NoError(t, b.err)
	require.Len(t, b.configs, 2)
	assert.Equal(t, "json-token", b.configs[1].App.AccessToken)
}

func TestWithJSON_SetsError_WhenFileNotFound(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{JSONFilePath: "/definitely/missing.json"})

	b.withJSON()
	require.Error(t, b.err)
	assert.Len(t, b.configs, 1)
}

// TestGetStructuredConfig_FromFlags exercises the whole pipeline: env, flags,
// JSON and defaults.
func TestGetStructuredConfig_FromFlags(t *testing.T) {
	clearEnvVars(t)
	path := writeTempJSONConfig(t, map[string]any{
		"catalog": map[string]any{"path": "from-json.json"},
		"workers": map[string]any{"max_retries": 4},
	})

	cfg, err := GetStructuredConfig([]string{
		"-token", "flag-token",
		"-a", "https://api.example.com",
		"-d", t.TempDir(),
		"-c", path,
	})
	require.NoError(t, err)

	assert.Equal(t, "flag-token", cfg.App.AccessToken)
	assert.Equal(t, "from-json.json", cfg.Catalog.Path)
	assert.Equal(t, 4, cfg.Workers.MaxRetries)
	assert.Equal(t, DefaultMinInterval, cfg.Workers.MinInterval)
}
