// Package whisperx runs WhisperX through uvx to transcribe the audio track
// extracted from a video.
//
// The service checks that uvx is available, builds the CLI invocation for
// the configured model and language, and loads the JSON transcript WhisperX
// writes. When uvx is missing it returns an error marked
// services.ErrUnavailable so callers can skip speech analysis.
package whisperx
