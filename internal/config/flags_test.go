package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected *StructuredConfig
	}{
		{
			name:     "no flags",
			args:     nil,
			expected: &StructuredConfig{},
		},
		{
			name: "remote and storage",
			args: []string{"-a", "https://photos.example.com", "-token", "t0k", "-d", "/tmp/state", "-storage-driver", "sqlite"},
			expected: &StructuredConfig{
				App:     App{AccessToken: "t0k"},
				Storage: Storage{Driver: DriverSQLite, DataDir: "/tmp/state"},
				Adapter: Adapter{HTTPAddress: "https://photos.example.com"},
			},
		},
		{
			name: "engine tuning",
			args: []string{
				"-max-retries", "3", "-retry-delay", "1s", "-min-interval", "500ms",
				"-max-file-size", "1024", "-exclude", ".mov, .mp4,,", "-record-skipped",
				"-sync-interval", "30m",
			},
			expected: &StructuredConfig{
				Workers: Workers{
					MaxRetries:         3,
					RetryDelay:         time.Second,
					MinInterval:        500 * time.Millisecond,
					MaxFileSize:        1024,
					ExcludedExtensions: []string{".mov", ".mp4"},
					RecordSkipped:      true,
					SyncInterval:       30 * time.Minute,
				},
			},
		},
		{
			name: "config alias and catalog",
			args: []string{"-config", "/etc/photosync.json", "-catalog", "lib.json", "-log-file", "sync.log", "-request-timeout", "15s"},
			expected: &StructuredConfig{
				App:          App{LogFile: "sync.log"},
				Adapter:      Adapter{RequestTimeout: 15 * time.Second},
				Catalog:      Catalog{Path: "lib.json"},
				JSONFilePath: "/etc/photosync.json",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := ParseFlags(tt.args)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, cfg)
		})
	}
}

func TestParseFlags_UnknownFlag(t *testing.T) {
	_, err := ParseFlags([]string{"-no-such-flag"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error parsing flags")
}

func TestParseFlags_InvalidDuration(t *testing.T) {
	_, err := ParseFlags([]string{"-retry-delay", "later"})
	require.Error(t, err)
}

func TestSplitList(t *testing.T) {
	assert.Nil(t, splitList(""))
	assert.Nil(t, splitList("   "))
	assert.Equal(t, []string{".mov"}, splitList(".mov"))
	assert.Equal(t, []string{".mov", ".mp4"}, splitList(" .mov ,.mp4 "))
}
