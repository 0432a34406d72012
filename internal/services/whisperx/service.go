package whisperx

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	langpkg "triagem/internal/language"
	"triagem/internal/services"
)

// Service provides WhisperX transcription capabilities.
type Service struct {
	cfg           Config
	commandRunner func(ctx context.Context, name string, args ...string) error
	lookPath      func(string) (string, error)
}

// NewService creates a WhisperX service with the given configuration.
func NewService(cfg Config) *Service {
	return &Service{cfg: cfg, lookPath: exec.LookPath}
}

// WithCommandRunner sets a custom command runner (for testing).
func (s *Service) WithCommandRunner(runner func(ctx context.Context, name string, args ...string) error) {
	s.commandRunner = runner
}

// Model returns the configured model name for logging.
func (s *Service) Model() string {
	if s.cfg.Model != "" {
		return s.cfg.Model
	}
	return DefaultModel
}

// Language returns the ISO 639-1 language passed to WhisperX.
func (s *Service) Language() string {
	if lang := langpkg.ToISO2(s.cfg.Language); lang != "" {
		return lang
	}
	return DefaultLanguage
}

// Available reports whether uvx can be launched. A custom command runner is
// always considered available.
func (s *Service) Available() error {
	if s.commandRunner != nil {
		return nil
	}
	if _, err := s.lookPath(UVXCommand); err != nil {
		return services.Wrap(services.ErrUnavailable, "audio", "transcribe", "uvx not found on PATH", err)
	}
	return nil
}

// run executes a command, using the custom runner if set.
func (s *Service) run(ctx context.Context, name string, args ...string) error {
	if s.commandRunner != nil {
		return s.commandRunner(ctx, name, args...)
	}
	cmd := exec.CommandContext(ctx, name, args...) //nolint:gosec

	// Torch 2.6 changed torch.load default to weights_only=true, breaking WhisperX.
	if os.Getenv("TORCH_FORCE_NO_WEIGHTS_ONLY_LOAD") == "" {
		cmd.Env = append(os.Environ(), "TORCH_FORCE_NO_WEIGHTS_ONLY_LOAD=1")
	}

	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%s: %w: %s", name, err, strings.TrimSpace(string(output)))
	}
	return nil
}

// TranscribeResult contains the result of a transcription.
type TranscribeResult struct {
	// Text is the plain text transcription.
	Text string
	// JSONPath is the path to the generated JSON file.
	JSONPath string
	// Segments holds the timed segments backing Text.
	Segments []Segment
	// Reused is true when an existing transcript was loaded.
	Reused bool
}

// TranscribeFile transcribes an audio file and returns the text.
// The source should be the mono 16 kHz WAV extracted from the video.
// outputDir is where WhisperX will write its output files.
func (s *Service) TranscribeFile(ctx context.Context, source, outputDir string) (TranscribeResult, error) {
	var result TranscribeResult

	if source == "" {
		return result, fmt.Errorf("transcribe: source path required")
	}
	if outputDir == "" {
		outputDir = filepath.Dir(source)
	}
	baseName := strings.TrimSuffix(filepath.Base(source), filepath.Ext(source))
	result.JSONPath = filepath.Join(outputDir, baseName+".json")

	if s.cfg.ReuseTranscript {
		if segments, err := LoadSegments(result.JSONPath); err == nil {
			result.Segments = segments
			result.Text = joinSegments(segments)
			result.Reused = true
			return result, nil
		}
	}

	if err := s.Available(); err != nil {
		return result, err
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return result, fmt.Errorf("transcribe: ensure output dir: %w", err)
	}

	args := s.buildArgs(source, outputDir)
	if err := s.run(ctx, UVXCommand, args...); err != nil {
		return result, services.Wrap(services.ErrExternalTool, "audio", "transcribe", "whisperx failed", err)
	}

	segments, err := LoadSegments(result.JSONPath)
	if err != nil {
		return result, services.Wrap(services.ErrExternalTool, "audio", "transcribe", "whisperx produced no transcript", err)
	}
	result.Segments = segments
	result.Text = joinSegments(segments)
	return result, nil
}

// buildArgs constructs the uvx command arguments for WhisperX.
func (s *Service) buildArgs(source, outputDir string) []string {
	args := make([]string, 0, 24)

	if s.cfg.CUDAEnabled {
		args = append(args,
			"--index-url", CUDAIndexURL,
			"--extra-index-url", PypiIndexURL,
		)
	} else {
		args = append(args, "--index-url", PypiIndexURL)
	}

	args = append(args,
		"whisperx",
		source,
		"--model", s.Model(),
		"--batch_size", BatchSize,
		"--output_dir", outputDir,
		"--output_format", OutputFormat,
		"--vad_method", VADMethod,
		"--language", s.Language(),
	)

	if s.cfg.CUDAEnabled {
		args = append(args, "--device", CUDADevice)
	} else {
		args = append(args, "--device", CPUDevice, "--compute_type", CPUComputeType)
	}

	return args
}

// Segment represents a transcribed segment from WhisperX JSON output.
type Segment struct {
	Text  string  `json:"text"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

type whisperXPayload struct {
	Segments []Segment `json:"segments"`
}

// LoadSegments loads segments from a WhisperX JSON file.
func LoadSegments(jsonPath string) ([]Segment, error) {
	data, err := os.ReadFile(jsonPath)
	if err != nil {
		return nil, err
	}
	var payload whisperXPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("parse whisperx json: %w", err)
	}
	return payload.Segments, nil
}

func joinSegments(segments []Segment) string {
	parts := make([]string, 0, len(segments))
	for _, seg := range segments {
		if text := strings.TrimSpace(seg.Text); text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, " ")
}
