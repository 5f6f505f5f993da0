// Package config handles configuration management for hdrstrip.
// It layers embedded TOML defaults, an optional project file and
// HDRSTRIP_-prefixed environment variables, in that order of precedence.
package config
