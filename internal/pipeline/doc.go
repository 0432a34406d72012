// Package pipeline runs the visual and audio stages for one video, writes
// the stage reports and the fused final report, and records the run in the
// history database.
//
// A Runner holds a lock file in the output directory for the duration of a
// run so two analyses never interleave their report files. Each run also gets
// a debug-level JSON log in the log directory.
package pipeline
