package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/warrantyreminder/internal/flagx"
	"github.com/dmitrijs2005/warrantyreminder/internal/timex"
)

// JSONConfig is a DTO used exclusively for JSON unmarshalling. Durations use
// timex.Duration so they can be written as "15s" or integer nanoseconds.
type JSONConfig struct {
	ServerBaseURL      string          `json:"server_base_url"`
	DataDir            string          `json:"data_dir"`
	RequestTimeout     *timex.Duration `json:"request_timeout"`
	LogFormat          string          `json:"log_format"`
	LogLevel           string          `json:"log_level"`
	GoogleClientID     string          `json:"google_client_id"`
	GoogleClientSecret string          `json:"google_client_secret"`
	S3Region           string          `json:"s3_region"`
	S3Endpoint         string          `json:"s3_endpoint"`
	S3AccessKey        string          `json:"s3_access_key"`
	S3SecretKey        string          `json:"s3_secret_key"`
}

// parseJSON overlays cfg with the file named by -c/-config. Keys absent
// from the file leave cfg untouched.
func parseJSON(cfg *Config, args []string) error {
	path := flagx.JSONConfigPath(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	var jc JSONConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	overlay(&cfg.ServerBaseURL, jc.ServerBaseURL)
	overlay(&cfg.DataDir, jc.DataDir)
	overlay(&cfg.LogFormat, jc.LogFormat)
	overlay(&cfg.LogLevel, jc.LogLevel)
	overlay(&cfg.GoogleClientID, jc.GoogleClientID)
	overlay(&cfg.GoogleClientSecret, jc.GoogleClientSecret)
	overlay(&cfg.S3Region, jc.S3Region)
	overlay(&cfg.S3Endpoint, jc.S3Endpoint)
	overlay(&cfg.S3AccessKey, jc.S3AccessKey)
	overlay(&cfg.S3SecretKey, jc.S3SecretKey)
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	return nil
}

func overlay(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
