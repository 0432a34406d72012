package speech

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"triagem/internal/config"
	langpkg "triagem/internal/language"
	"triagem/internal/logging"
	"triagem/internal/media/audio"
	"triagem/internal/media/ffprobe"
	"triagem/internal/services"
	"triagem/internal/services/whisperx"
)

// Transcript sources recorded on Result.
const (
	SourceProvided = "provided"
	SourceWhisperX = "whisperx"
	SourceCached   = "whisperx-cache"
)

// ErrNoAudioStream reports a container without any audio stream.
var ErrNoAudioStream = fmt.Errorf("%w: video has no audio stream", services.ErrValidation)

// Transcriber turns an extracted WAV into text.
type Transcriber interface {
	Available() error
	TranscribeFile(ctx context.Context, source, outputDir string) (whisperx.TranscribeResult, error)
}

// Options configures an Analyzer. An empty FFprobeBinary skips the audio
// stream check before extraction.
type Options struct {
	FFmpegBinary   string
	FFprobeBinary  string
	WorkDir        string
	Language       string
	ReuseExtracted bool
}

// Result is the outcome of one speech stage run.
type Result struct {
	Video            string
	Transcript       string
	TranscriptSource string
	AudioPath        string
	Score            int
	// Keywords lists every keyword found, in list order.
	Keywords    []string
	Indicators  []string
	Hesitations int
	// Voice is nil when no audio could be decoded.
	Voice *VoiceFeatures
}

// HasTranscript reports whether any speech was available to score.
func (r Result) HasTranscript() bool {
	return strings.TrimSpace(r.Transcript) != ""
}

// Analyzer runs the speech stage.
type Analyzer struct {
	opts        Options
	transcriber Transcriber
	logger      *slog.Logger
	extract     func(ctx context.Context, ffmpeg, source, dest string, reuse bool) (bool, error)
	readPCM     func(ctx context.Context, ffmpeg, path string) ([]float64, error)
	inspect     func(ctx context.Context, binary, path string) (ffprobe.Result, error)
}

// NewAnalyzer wires an Analyzer around transcriber, which may be nil when
// transcripts are always supplied by the caller.
func NewAnalyzer(opts Options, transcriber Transcriber, logger *slog.Logger) *Analyzer {
	return &Analyzer{
		opts:        opts,
		transcriber: transcriber,
		logger:      logging.NewComponentLogger(logger, "audio"),
		extract:     audio.ExtractWAV,
		readPCM:     audio.ReadPCM,
		inspect:     ffprobe.Inspect,
	}
}

// New builds an Analyzer backed by WhisperX.
func New(cfg *config.Config, logger *slog.Logger) *Analyzer {
	svc := whisperx.NewService(whisperx.Config{
		Model:           cfg.Audio.Model,
		Language:        cfg.Audio.Language,
		CUDAEnabled:     cfg.Audio.CUDAEnabled,
		ReuseTranscript: cfg.Audio.ReuseExtracted,
	})
	return NewAnalyzer(Options{
		FFmpegBinary:   cfg.FFmpegBinary(),
		FFprobeBinary:  cfg.FFprobeBinary(),
		WorkDir:        cfg.Paths.WorkDir,
		Language:       cfg.Audio.Language,
		ReuseExtracted: cfg.Audio.ReuseExtracted,
	}, svc, logger)
}

// TranscriberReady reports whether speech can be transcribed when no
// transcript is supplied.
func (a *Analyzer) TranscriberReady() error {
	if a.transcriber == nil {
		return services.Wrap(services.ErrUnavailable, "audio", "transcribe", "no transcriber configured", nil)
	}
	return a.transcriber.Available()
}

// AudioPath returns where the extracted track for video is written.
func (a *Analyzer) AudioPath(video string) string {
	base := strings.TrimSuffix(filepath.Base(video), filepath.Ext(video))
	dir := a.opts.WorkDir
	if dir == "" {
		dir = filepath.Dir(video)
	}
	return filepath.Join(dir, base+"_audio.wav")
}

// Analyze scores the speech in video. A non-empty transcript skips
// transcription; voice features are still computed when the audio can be
// extracted. Without a transcript the result is empty and scores zero.
func (a *Analyzer) Analyze(ctx context.Context, video, transcript string) (Result, error) {
	logger := logging.WithContext(ctx, a.logger)
	result := Result{Video: video}

	if strings.TrimSpace(transcript) != "" {
		result.Transcript = transcript
		result.TranscriptSource = SourceProvided
		if path, err := a.extractAudio(ctx, video); errors.Is(err, ErrNoAudioStream) {
			logging.WarnWithContext(logger, "video has no audio stream; voice features skipped", "audio_stream_missing",
				logging.String(logging.FieldImpact, "speech score uses the transcript only"),
			)
		} else if err != nil {
			logging.WarnWithContext(logger, "audio extraction failed; voice features skipped", "audio_extract_failed",
				logging.Error(err),
				logging.String(logging.FieldImpact, "speech score uses the transcript only"),
			)
		} else {
			result.AudioPath = path
		}
	} else {
		path, err := a.extractAudio(ctx, video)
		if errors.Is(err, ErrNoAudioStream) {
			logging.WarnWithContext(logger, "video has no audio stream", "audio_stream_missing",
				logging.String(logging.FieldErrorHint, "pass --transcript to score speech for silent videos"),
				logging.String(logging.FieldImpact, "speech score is zero and no audio report is written"),
			)
			return result, nil
		}
		if err != nil {
			return result, err
		}
		result.AudioPath = path
		if err := a.transcribe(ctx, logger, &result); err != nil {
			return result, err
		}
	}

	if !result.HasTranscript() {
		logging.WarnWithContext(logger, "no transcript available", "transcript_empty",
			logging.String(logging.FieldImpact, "speech score is zero and no audio report is written"),
		)
		return result, nil
	}

	text := AnalyzeText(result.Transcript, langpkg.CaseTag(a.opts.Language))
	result.Score = text.Score
	result.Keywords = text.Keywords
	result.Indicators = text.Indicators
	result.Hesitations = text.Hesitations

	if result.AudioPath != "" {
		a.analyzeVoice(ctx, logger, &result)
	}

	logger.Info("speech analysis completed",
		logging.String(logging.FieldEventType, "stage_complete"),
		logging.String("transcript_source", result.TranscriptSource),
		logging.Int("transcript_chars", len([]rune(result.Transcript))),
		logging.Int("keywords", len(result.Keywords)),
		logging.Int("score", result.Score),
	)
	return result, nil
}

func (a *Analyzer) extractAudio(ctx context.Context, video string) (string, error) {
	if _, err := os.Stat(video); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", services.Wrap(services.ErrNotFound, "audio", "extract audio", "video file not found", err)
		}
		return "", services.Wrap(services.ErrValidation, "audio", "extract audio", "video file unreadable", err)
	}
	if !a.hasAudioStream(ctx, video) {
		return "", ErrNoAudioStream
	}
	dest := a.AudioPath(video)
	reused, err := a.extract(ctx, a.opts.FFmpegBinary, video, dest, a.opts.ReuseExtracted)
	if err != nil {
		return "", services.Wrap(services.ErrExternalTool, "audio", "extract audio", "ffmpeg failed", err)
	}
	a.logger.Debug("audio track ready", logging.String("path", dest), logging.Bool("reused", reused))
	return dest, nil
}

// hasAudioStream only answers false when ffprobe positively reports no audio
// stream; ffprobe failures leave the decision to ffmpeg.
func (a *Analyzer) hasAudioStream(ctx context.Context, video string) bool {
	if a.opts.FFprobeBinary == "" || a.inspect == nil {
		return true
	}
	info, err := a.inspect(ctx, a.opts.FFprobeBinary, video)
	if err != nil {
		a.logger.Debug("ffprobe failed; attempting extraction", logging.Error(err))
		return true
	}
	return info.HasAudio()
}

func (a *Analyzer) transcribe(ctx context.Context, logger *slog.Logger, result *Result) error {
	if err := a.TranscriberReady(); err != nil {
		return err
	}
	outDir := filepath.Join(filepath.Dir(result.AudioPath), "transcripts")
	tr, err := a.transcriber.TranscribeFile(ctx, result.AudioPath, outDir)
	if err != nil {
		return err
	}
	result.Transcript = tr.Text
	result.TranscriptSource = SourceWhisperX
	if tr.Reused {
		result.TranscriptSource = SourceCached
	}
	logger.Info("transcription ready",
		logging.String("json", tr.JSONPath),
		logging.Int("segments", len(tr.Segments)),
		logging.Bool("reused", tr.Reused),
	)
	return nil
}

func (a *Analyzer) analyzeVoice(ctx context.Context, logger *slog.Logger, result *Result) {
	samples, err := a.readPCM(ctx, a.opts.FFmpegBinary, result.AudioPath)
	if err != nil {
		logging.WarnWithContext(logger, "voice features unavailable", "voice_features_failed",
			logging.Error(err),
		)
		return
	}
	features := ExtractFeatures(samples, audio.SampleRate)
	score, indicators := features.Assess()
	result.Voice = &features
	result.Score += score
	result.Indicators = append(result.Indicators, indicators...)
}
