// Package audio extracts the speech track from a video and decodes it into
// PCM samples.
//
// ExtractWAV produces the mono 16 kHz WAV consumed by the transcriber;
// ReadPCM streams the same layout through ffmpeg for prosody analysis.
package audio
