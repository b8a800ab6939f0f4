// Package config loads service configuration with Viper and godotenv.
//
// LoadConfig reads a YAML file, then a .env file, then the process
// environment, and unmarshals the result into a struct with mapstructure
// tags. Environment keys map to nested keys by splitting on underscores,
// optionally behind a prefix:
//
//	FETCHKIT_HTTP_TIMEOUT=5s  ->  http.timeout   (WithEnvPrefix("FETCHKIT"))
//
// # Usage
//
//	var cfg dataprovider.Config
//	err := config.LoadConfig("users-api", &cfg, config.WithConfigFile("config.yml"))
package config
