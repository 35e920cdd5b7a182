// Package config loads the Vital Stream backend configuration.
//
// Resolution order: built-in baseline, then an optional .env file, then
// process environment variables (PORT, DATABASE_*, VSB_*). The merged
// result is validated before use.
package config
