// Package logs locates and reads the per-run JSON logs written by the
// pipeline.
package logs
