package ffprobe

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

const sampleJSON = `{
  "streams": [
    {"index": 0, "codec_type": "video", "codec_name": "h264", "width": 640, "height": 360,
     "r_frame_rate": "30/1", "avg_frame_rate": "30000/1001", "nb_frames": "900"},
    {"index": 1, "codec_type": "audio", "codec_name": "aac", "sample_rate": "48000", "channels": 2}
  ],
  "format": {"filename": "clip.mp4", "duration": "30.030000", "nb_streams": 2}
}`

func TestParseAndHelpers(t *testing.T) {
	result, err := Parse([]byte(sampleJSON))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !result.HasAudio() {
		t.Fatal("expected audio stream")
	}
	if got := result.FrameCount(); got != 900 {
		t.Fatalf("expected 900 frames, got %d", got)
	}
	if rate := result.FrameRate(); rate < 29.96 || rate > 29.98 {
		t.Fatalf("unexpected frame rate %v", rate)
	}
	if result.DurationSeconds() != 30.03 {
		t.Fatalf("unexpected duration %v", result.DurationSeconds())
	}
}

func TestFrameCountEstimatedFromDuration(t *testing.T) {
	result := Result{
		Streams: []Stream{{CodecType: "video", RFrameRate: "25/1", AvgFrameRate: "0/0"}},
		Format:  Format{Duration: "10.0"},
	}
	if got := result.FrameCount(); got != 250 {
		t.Fatalf("expected 250 estimated frames, got %d", got)
	}
	if result.HasAudio() {
		t.Fatal("expected no audio")
	}
}

func TestHelpersHandleInvalidNumbers(t *testing.T) {
	result := Result{
		Streams: []Stream{{CodecType: "video", RFrameRate: "bad", NBFrames: "N/A"}},
		Format:  Format{Duration: "nope"},
	}
	if result.DurationSeconds() != 0 || result.FrameRate() != 0 || result.FrameCount() != 0 {
		t.Fatalf("expected zero values, got %v %v %d", result.DurationSeconds(), result.FrameRate(), result.FrameCount())
	}
	if _, ok := (Result{}).VideoStream(); ok {
		t.Fatal("expected no video stream")
	}
}

func TestInspectUsesBinary(t *testing.T) {
	dir := t.TempDir()
	payload := filepath.Join(dir, "payload.json")
	if err := os.WriteFile(payload, []byte(sampleJSON), 0o644); err != nil {
		t.Fatalf("write payload: %v", err)
	}
	stub := filepath.Join(dir, "ffprobe")
	script := "#!/bin/sh\ncat " + payload + "\n"
	if err := os.WriteFile(stub, []byte(script), 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}

	result, err := Inspect(context.Background(), stub, "clip.mp4")
	if err != nil {
		t.Fatalf("Inspect: %v", err)
	}
	if result.FrameCount() != 900 {
		t.Fatalf("unexpected frame count %d", result.FrameCount())
	}

	if _, err := Inspect(context.Background(), stub, " "); err == nil {
		t.Fatal("expected error for empty path")
	}
}
