// Package ffprobe provides a typed wrapper around ffprobe JSON output.
//
// Inspect executes ffprobe and returns a Result; helper methods expose the
// values the analysis stages need: frame rate, frame count (reported or
// estimated), duration, and whether an audio track exists.
package ffprobe
