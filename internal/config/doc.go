// Package config loads, normalizes, and validates triagem configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// TRIAGEM_LANDMARKER and TRIAGEM_CASCADE_DIR. The Config type centralizes
// every knob the CLI and the analysis stages need.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
