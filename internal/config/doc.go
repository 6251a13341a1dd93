// Package config loads and validates the ticketflow configuration file.
//
// Configuration lives in TOML at ~/.config/ticketflow/config.toml, with a
// project-local ticketflow.toml fallback. Loading always starts from the
// defaults, so a missing file yields a usable configuration. Path fields are
// expanded (~) and normalized to absolute paths before validation.
package config
