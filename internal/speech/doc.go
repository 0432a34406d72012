// Package speech scores transcribed speech for depressive language and
// extracts simple prosody features (pitch, energy, zero-crossing rate and
// long pauses) from the extracted audio track.
//
// Transcription is delegated to WhisperX; a transcript supplied by the caller
// takes precedence. The keyword lists are Brazilian Portuguese and are matched
// against a locale-aware lowercase copy of the text.
package speech
