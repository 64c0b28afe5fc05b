// Package config loads, normalizes, and validates backdate configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// BACKDATE_EXIFTOOL. The Config type centralizes every knob the CLI needs,
// so the tool binary, worker pool size, and history database location are
// discovered in one pass.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
