// Package frames samples still images from a video for per-frame analysis.
//
// ffmpeg writes the selected frames as PNGs into a scratch directory under
// the configured work dir; each frame is decoded with imaging and handed to
// a Visitor in order.
package frames
