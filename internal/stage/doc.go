// Package stage defines the Handler contract shared by the visual and audio
// analysis stages, the Run record they fill in, and the Health summary the
// status command prints.
package stage
