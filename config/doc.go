// Package config loads service configuration from YAML files, .env files
// and environment variables using Viper.
//
// # Usage
//
//	var cfg AppConfig
//	err := config.LoadConfig("gladiaflow", &cfg)
//
// Environment variables override file values. GLADIA_API_KEY binds to
// gladia.api_key, POLLING_INTERVAL to polling.interval, and so on.
package config
