// Package config provides configuration loading and validation for fnkit
// tools.
//
// It uses Viper to load configuration from a YAML, JSON or TOML file and
// from environment variables, with an optional .env file loaded through
// godotenv.
//
// # Usage
//
//	var cfg MyConfig
//	err := config.Load("fnpipe", &cfg, config.WithConfigFile(path))
//
// Environment variables override file values using the service prefix and
// underscore-separated paths (e.g., FNPIPE_LOGGING_LEVEL).
package config
