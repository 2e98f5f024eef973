package config

import (
	"fmt"
	"os"
	"time"

	"github.com/goccy/go-json"
)

// StructuredJSONConfig mirrors [StructuredConfig] for JSON config files.
type StructuredJSONConfig struct {
	App struct {
		AccessToken string `json:"access_token"`
		LogFile     string `json:"log_file"`
	} `json:"app,omitempty"`

	Storage struct {
		Driver  string `json:"driver"`
		DataDir string `json:"data_dir"`
	} `json:"storage,omitempty"`

	Adapter struct {
		HTTPAddress    string   `json:"address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"adapter,omitempty"`

	Workers struct {
		MaxRetries         int      `json:"max_retries"`
		RetryDelay         Duration `json:"retry_delay"`
		MinInterval        Duration `json:"min_interval"`
		MaxFileSize        int64    `json:"max_file_size"`
		ExcludedExtensions []string `json:"excluded_extensions"`
		RecordSkipped      bool     `json:"record_skipped"`
		SyncInterval       Duration `json:"sync_interval"`
	} `json:"workers,omitempty"`

	Catalog struct {
		Path string `json:"path"`
	} `json:"catalog,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			AccessToken: jsonCfg.App.AccessToken,
			LogFile:     jsonCfg.App.LogFile,
		},
		Storage: Storage{
			Driver:  jsonCfg.Storage.Driver,
			DataDir: jsonCfg.Storage.DataDir,
		},
		Adapter: Adapter{
			HTTPAddress:    jsonCfg.Adapter.HTTPAddress,
			RequestTimeout: time.Duration(jsonCfg.Adapter.RequestTimeout),
		},
		Workers: Workers{
			MaxRetries:         jsonCfg.Workers.MaxRetries,
			RetryDelay:         time.Duration(jsonCfg.Workers.RetryDelay),
			MinInterval:        time.Duration(jsonCfg.Workers.MinInterval),
			MaxFileSize:        jsonCfg.Workers.MaxFileSize,
			ExcludedExtensions: jsonCfg.Workers.ExcludedExtensions,
			RecordSkipped:      jsonCfg.Workers.RecordSkipped,
			SyncInterval:       time.Duration(jsonCfg.Workers.SyncInterval),
		},
		Catalog: Catalog{
			Path: jsonCfg.Catalog.Path,
		},
		JSONFilePath: "",
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
