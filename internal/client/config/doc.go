// Package config loads runtime configuration for the Warranty Reminder
// client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Environment variables WR_*, after an optional .env file (-e/-env, or
//     ./.env when present) is loaded with godotenv.
//  3. Optional JSON file selected with -c or -config.
//  4. Command-line flags, which override everything else.
//
// Supported flags
//
//	-a string   backend base URL, e.g. http://localhost:5000/api
//	-d string   data directory
//	-t int      request timeout (seconds)
//	-l string   log level (debug|info|warn|error)
//	-c string   JSON config file
//	-e string   .env file
//
// # JSON schema
//
//	{
//	  "server_base_url": "http://localhost:5000/api",
//	  "data_dir": "/home/me/.warrantyreminder",
//	  "request_timeout": "15s",
//	  "log_format": "zerolog",
//	  "log_level": "debug",
//	  "google_client_id": "...apps.googleusercontent.com",
//	  "s3_endpoint": "http://localhost:9000"
//	}
package config
