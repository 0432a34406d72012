package whisperx

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"triagem/internal/services"
)

func writeTranscript(t *testing.T, path string) {
	t.Helper()
	payload := `{"segments":[{"text":" Estou muito triste ","start":0,"end":1.5},{"text":"","start":1.5,"end":2},{"text":"e sozinho.","start":2,"end":3}]}`
	if err := os.WriteFile(path, []byte(payload), 0o644); err != nil {
		t.Fatalf("write transcript: %v", err)
	}
}

func TestTranscribeFileBuildsArgsAndLoadsText(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "clip_audio.wav")
	svc := NewService(Config{Language: "pt-BR"})

	var gotName string
	var gotArgs []string
	svc.WithCommandRunner(func(_ context.Context, name string, args ...string) error {
		gotName = name
		gotArgs = args
		writeTranscript(t, filepath.Join(dir, "clip_audio.json"))
		return nil
	})

	result, err := svc.TranscribeFile(context.Background(), source, dir)
	if err != nil {
		t.Fatalf("TranscribeFile: %v", err)
	}
	if gotName != UVXCommand {
		t.Fatalf("expected uvx, got %q", gotName)
	}
	joined := strings.Join(gotArgs, " ")
	for _, fragment := range []string{"whisperx " + source, "--model base", "--language pt", "--device cpu", "--output_format json"} {
		if !strings.Contains(joined, fragment) {
			t.Fatalf("expected %q in args %q", fragment, joined)
		}
	}
	if result.Text != "Estou muito triste e sozinho." {
		t.Fatalf("unexpected text %q", result.Text)
	}
	if len(result.Segments) != 3 || result.Reused {
		t.Fatalf("unexpected result %+v", result)
	}
}

func TestTranscribeFileCUDAArgs(t *testing.T) {
	svc := NewService(Config{Model: "small", CUDAEnabled: true})
	args := svc.buildArgs("a.wav", "/tmp/out")
	if !slices.Contains(args, CUDAIndexURL) || !slices.Contains(args, CUDADevice) {
		t.Fatalf("expected CUDA args, got %v", args)
	}
	if slices.Contains(args, CPUComputeType) {
		t.Fatalf("unexpected CPU compute type in %v", args)
	}
	if !slices.Contains(args, "small") {
		t.Fatalf("expected custom model in %v", args)
	}
}

func TestTranscribeFileReusesExistingJSON(t *testing.T) {
	dir := t.TempDir()
	writeTranscript(t, filepath.Join(dir, "clip_audio.json"))
	svc := NewService(Config{ReuseTranscript: true})
	svc.WithCommandRunner(func(context.Context, string, ...string) error {
		t.Fatal("runner should not be invoked when reusing")
		return nil
	})

	result, err := svc.TranscribeFile(context.Background(), filepath.Join(dir, "clip_audio.wav"), "")
	if err != nil {
		t.Fatalf("TranscribeFile: %v", err)
	}
	if !result.Reused || result.Text == "" {
		t.Fatalf("expected reused transcript, got %+v", result)
	}
}

func TestTranscribeFileWithoutUVX(t *testing.T) {
	svc := NewService(Config{})
	svc.lookPath = func(string) (string, error) { return "", errors.New("not found") }

	_, err := svc.TranscribeFile(context.Background(), filepath.Join(t.TempDir(), "a.wav"), "")
	if !errors.Is(err, services.ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}

func TestTranscribeFileRunnerFailure(t *testing.T) {
	svc := NewService(Config{})
	svc.WithCommandRunner(func(context.Context, string, ...string) error { return errors.New("exit 1") })

	_, err := svc.TranscribeFile(context.Background(), filepath.Join(t.TempDir(), "a.wav"), "")
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected ErrExternalTool, got %v", err)
	}
}

func TestTranscribeFileRequiresSource(t *testing.T) {
	if _, err := NewService(Config{}).TranscribeFile(context.Background(), "", ""); err == nil {
		t.Fatal("expected error for empty source")
	}
}
