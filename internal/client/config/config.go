package config

import (
	"os"
	"time"

	"github.com/dmitrijs2005/warrantyreminder/internal/logging"
)

// Config holds runtime settings for the Warranty Reminder client.
//
// Fields:
//   - ServerBaseURL: backend base URL including the API prefix.
//   - DataDir: directory holding the local database and downloads.
//   - RequestTimeout: per-request timeout of the API client.
//   - LogFormat, LogLevel: see logging.New.
//   - GoogleClientID, GoogleClientSecret: OAuth client for Google sign-in;
//     an empty client id disables it.
//   - S3*: S3-compatible storage for s3:// document links.
type Config struct {
	ServerBaseURL  string
	DataDir        string
	RequestTimeout time.Duration
	LogFormat      string
	LogLevel       string

	GoogleClientID     string
	GoogleClientSecret string

	S3Region    string
	S3Endpoint  string
	S3AccessKey string
	S3SecretKey string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerBaseURL = "http://localhost:5000/api"
	c.DataDir = ".warrantyreminder"
	c.RequestTimeout = 15 * time.Second
	c.LogFormat = logging.FormatText
	c.LogLevel = "info"
	c.S3Region = "us-east-1"
}

// LoadConfig builds a Config from os.Args.
func LoadConfig() (*Config, error) {
	return Load(os.Args[1:])
}

// Load applies defaults, then the environment (after an optional .env file),
// then a JSON file, then command-line flags. Later sources take precedence.
func Load(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseEnv(cfg, args); err != nil {
		return nil, err
	}
	if err := parseJSON(cfg, args); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	return cfg, nil
}
