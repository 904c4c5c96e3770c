// Package config loads and validates application configuration.
//
// Sources, in increasing precedence: built-in defaults, the YAML config
// file, environment variables with the INVSETTLE prefix. A .env file in the
// working directory is loaded into the environment first when present.
package config
