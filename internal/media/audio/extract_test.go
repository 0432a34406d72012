package audio

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDecodeS16LE(t *testing.T) {
	data := []byte{0x00, 0x00, 0xff, 0x7f, 0x00, 0x80, 0x01}
	samples := DecodeS16LE(data)
	if len(samples) != 3 {
		t.Fatalf("expected 3 samples, got %d", len(samples))
	}
	if samples[0] != 0 {
		t.Fatalf("expected silence, got %v", samples[0])
	}
	if math.Abs(samples[1]-32767.0/32768.0) > 1e-9 {
		t.Fatalf("unexpected max sample %v", samples[1])
	}
	if samples[2] != -1 {
		t.Fatalf("expected -1, got %v", samples[2])
	}
}

func TestExtractWAVInvokesFFmpegAndReuses(t *testing.T) {
	dir := t.TempDir()
	argsFile := filepath.Join(dir, "args.txt")
	stub := filepath.Join(dir, "ffmpeg")
	script := "#!/bin/sh\necho \"$@\" >> " + argsFile + "\nfor last; do :; done\nprintf 'RIFF' > \"$last\"\n"
	if err := os.WriteFile(stub, []byte(script), 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
	dest := filepath.Join(dir, "work", "clip_audio.wav")

	reused, err := ExtractWAV(context.Background(), stub, "clip.mp4", dest, true)
	if err != nil {
		t.Fatalf("ExtractWAV: %v", err)
	}
	if reused {
		t.Fatal("expected fresh extraction")
	}
	args, err := os.ReadFile(argsFile)
	if err != nil {
		t.Fatalf("read args: %v", err)
	}
	for _, fragment := range []string{"-i clip.mp4", "-ac 1", "-ar 16000", "-c:a pcm_s16le", dest} {
		if !strings.Contains(string(args), fragment) {
			t.Fatalf("expected %q in ffmpeg args %q", fragment, args)
		}
	}

	reused, err = ExtractWAV(context.Background(), stub, "clip.mp4", dest, true)
	if err != nil {
		t.Fatalf("second ExtractWAV: %v", err)
	}
	if !reused {
		t.Fatal("expected existing file to be reused")
	}
}

func TestExtractWAVReportsFailure(t *testing.T) {
	dir := t.TempDir()
	stub := filepath.Join(dir, "ffmpeg")
	if err := os.WriteFile(stub, []byte("#!/bin/sh\necho 'no audio stream' >&2\nexit 1\n"), 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
	_, err := ExtractWAV(context.Background(), stub, "clip.mp4", filepath.Join(dir, "out.wav"), false)
	if err == nil || !strings.Contains(err.Error(), "no audio stream") {
		t.Fatalf("expected ffmpeg stderr in error, got %v", err)
	}
}

func TestReadPCMDecodesStdout(t *testing.T) {
	dir := t.TempDir()
	stub := filepath.Join(dir, "ffmpeg")
	// Two samples: 0x4000 (0.5) and 0xc000 (-0.5).
	script := "#!/bin/sh\nprintf '\\000\\100\\000\\300'\n"
	if err := os.WriteFile(stub, []byte(script), 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
	samples, err := ReadPCM(context.Background(), stub, "clip.wav")
	if err != nil {
		t.Fatalf("ReadPCM: %v", err)
	}
	if len(samples) != 2 || samples[0] != 0.5 || samples[1] != -0.5 {
		t.Fatalf("unexpected samples %v", samples)
	}
}
