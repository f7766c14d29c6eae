// Package config handles configuration loading, parsing, and validation
// from environment variables (PRODUCTGEN_ prefix), an optional config.yaml,
// and an optional .env file. It provides type-safe access to the settings
// needed by the server and the generation backends.
package config
