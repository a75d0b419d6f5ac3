package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/dmitrijs2005/warrantyreminder/internal/flagx"
)

const (
	EnvServerURL          = "WR_SERVER_URL"
	EnvDataDir            = "WR_DATA_DIR"
	EnvRequestTimeout     = "WR_REQUEST_TIMEOUT"
	EnvLogFormat          = "WR_LOG_FORMAT"
	EnvLogLevel           = "WR_LOG_LEVEL"
	EnvGoogleClientID     = "WR_GOOGLE_CLIENT_ID"
	EnvGoogleClientSecret = "WR_GOOGLE_CLIENT_SECRET"
	EnvS3Region           = "WR_S3_REGION"
	EnvS3Endpoint         = "WR_S3_ENDPOINT"
	EnvS3AccessKey        = "WR_S3_ACCESS_KEY"
	EnvS3SecretKey        = "WR_S3_SECRET_KEY"
)

// parseEnv overlays cfg with WR_* variables. A .env file is loaded first:
// the one named by -e/-env (which must exist), else ./.env when present.
// Variables already set in the process environment win over the file.
func parseEnv(cfg *Config, args []string) error {
	if path := flagx.EnvFilePath(args); path != "" {
		if err := godotenv.Load(path); err != nil {
			return fmt.Errorf("load env file %s: %w", path, err)
		}
	} else if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}

	strVars := map[string]*string{
		EnvServerURL:          &cfg.ServerBaseURL,
		EnvDataDir:            &cfg.DataDir,
		EnvLogFormat:          &cfg.LogFormat,
		EnvLogLevel:           &cfg.LogLevel,
		EnvGoogleClientID:     &cfg.GoogleClientID,
		EnvGoogleClientSecret: &cfg.GoogleClientSecret,
		EnvS3Region:           &cfg.S3Region,
		EnvS3Endpoint:         &cfg.S3Endpoint,
		EnvS3AccessKey:        &cfg.S3AccessKey,
		EnvS3SecretKey:        &cfg.S3SecretKey,
	}
	for name, dst := range strVars {
		if v, ok := os.LookupEnv(name); ok && v != "" {
			*dst = v
		}
	}

	if v, ok := os.LookupEnv(EnvRequestTimeout); ok && v != "" {
		d, err := parseTimeout(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvRequestTimeout, err)
		}
		cfg.RequestTimeout = d
	}
	return nil
}

// parseTimeout accepts a Go duration ("10s") or a number of seconds ("10").
func parseTimeout(v string) (time.Duration, error) {
	v = strings.TrimSpace(v)
	if secs, err := strconv.Atoi(v); err == nil {
		return time.Duration(secs) * time.Second, nil
	}
	return time.ParseDuration(v)
}
