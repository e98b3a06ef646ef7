package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// fileConfig is the on-disk shape of the configuration file. The same tags
// serve JSON and YAML.
type fileConfig struct {
	App struct {
		ApplicationCode  string `json:"application_code" yaml:"application_code"`
		PushServiceType  string `json:"push_service_type" yaml:"push_service_type"`
		ReportSystemInfo *bool  `json:"report_system_info" yaml:"report_system_info"`
		SaveUserData     *bool  `json:"save_user_data" yaml:"save_user_data"`
		Version          string `json:"version" yaml:"version"`
	} `json:"app" yaml:"app"`

	Adapter struct {
		BaseURL        string   `json:"base_url" yaml:"base_url"`
		RequestTimeout Duration `json:"request_timeout" yaml:"request_timeout"`
	} `json:"adapter" yaml:"adapter"`

	Storage struct {
		Driver string `json:"driver" yaml:"driver"`
		DSN    string `json:"dsn" yaml:"dsn"`
	} `json:"storage" yaml:"storage"`

	Retry struct {
		MaxRetries        *int     `json:"max_retries" yaml:"max_retries"`
		BackoffMultiplier float64  `json:"backoff_multiplier" yaml:"backoff_multiplier"`
		MinBackoff        Duration `json:"min_backoff" yaml:"min_backoff"`
		MaxBackoff        Duration `json:"max_backoff" yaml:"max_backoff"`
	} `json:"retry" yaml:"retry"`

	Workers struct {
		PoolSize             int      `json:"pool_size" yaml:"pool_size"`
		SyncInterval         Duration `json:"sync_interval" yaml:"sync_interval"`
		MessagesSyncThrottle Duration `json:"messages_sync_throttle" yaml:"messages_sync_throttle"`
	} `json:"workers" yaml:"workers"`

	Log struct {
		Level string `json:"level" yaml:"level"`
		File  string `json:"file" yaml:"file"`
	} `json:"log" yaml:"log"`
}

func parseFile(path string) (*StructuredConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	var fc fileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err = yaml.Unmarshal(data, &fc); err != nil {
			return nil, fmt.Errorf("error decoding yaml configs: %w", err)
		}
	case ".json", "":
		if err = json.Unmarshal(data, &fc); err != nil {
			return nil, fmt.Errorf("error decoding json configs: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedConfigFile, path)
	}

	return &StructuredConfig{
		App: App{
			ApplicationCode:  fc.App.ApplicationCode,
			PushServiceType:  fc.App.PushServiceType,
			ReportSystemInfo: fc.App.ReportSystemInfo,
			SaveUserData:     fc.App.SaveUserData,
			Version:          fc.App.Version,
		},
		Adapter: Adapter{
			BaseURL:        fc.Adapter.BaseURL,
			RequestTimeout: time.Duration(fc.Adapter.RequestTimeout),
		},
		Storage: Storage{
			Driver: fc.Storage.Driver,
			DSN:    fc.Storage.DSN,
		},
		Retry: Retry{
			MaxRetries:        fc.Retry.MaxRetries,
			BackoffMultiplier: fc.Retry.BackoffMultiplier,
			MinBackoff:        time.Duration(fc.Retry.MinBackoff),
			MaxBackoff:        time.Duration(fc.Retry.MaxBackoff),
		},
		Workers: Workers{
			PoolSize:             fc.Workers.PoolSize,
			SyncInterval:         time.Duration(fc.Workers.SyncInterval),
			MessagesSyncThrottle: time.Duration(fc.Workers.MessagesSyncThrottle),
		},
		Log: Log{
			Level: fc.Log.Level,
			File:  fc.Log.File,
		},
	}, nil
}

// Duration is a wrapper around time.Duration that decodes from strings like
// "1h" or "30s" as well as from integer nanoseconds, in JSON and YAML.
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	return d.set(v)
}

func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var v any
	if err := node.Decode(&v); err != nil {
		return err
	}
	return d.set(v)
}

func (d *Duration) set(v any) error {
	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
	case int:
		*d = Duration(time.Duration(value))
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
	case nil:
		*d = 0
	default:
		return fmt.Errorf("invalid duration %v", v)
	}
	return nil
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
