package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"triagem/internal/logging"
	"triagem/internal/services"
	"triagem/internal/speech"
	"triagem/internal/stage"
	"triagem/internal/videoanalysis"
)

// Stage names.
const (
	StageVisual = "visual"
	StageAudio  = "audio"
)

// VisualAnalyzer is satisfied by *videoanalysis.Analyzer.
type VisualAnalyzer interface {
	Analyze(ctx context.Context, video string) (videoanalysis.Result, error)
	Mode() string
}

// SpeechAnalyzer is satisfied by *speech.Analyzer.
type SpeechAnalyzer interface {
	Analyze(ctx context.Context, video, transcript string) (speech.Result, error)
	TranscriberReady() error
}

// VisualStage scores facial expressions and skin findings.
type VisualStage struct {
	analyzer VisualAnalyzer
	logger   *slog.Logger
}

// NewVisualStage wraps analyzer as a stage handler.
func NewVisualStage(analyzer VisualAnalyzer, logger *slog.Logger) *VisualStage {
	return &VisualStage{analyzer: analyzer, logger: logging.NewComponentLogger(logger, "stage.visual")}
}

// Name implements stage.Handler.
func (s *VisualStage) Name() string { return StageVisual }

// Prepare checks that the video can be read.
func (s *VisualStage) Prepare(_ context.Context, run *stage.Run) error {
	return requireVideo(StageVisual, run)
}

// Execute runs the visual analysis.
func (s *VisualStage) Execute(ctx context.Context, run *stage.Run) error {
	if s.analyzer == nil {
		return services.Wrap(services.ErrUnavailable, StageVisual, "execute", "visual analyzer not configured", nil)
	}
	result, err := s.analyzer.Analyze(ctx, run.Video)
	if err != nil {
		return err
	}
	run.Visual = &result
	logging.WithContext(ctx, s.logger).Info("visual stage complete",
		logging.String(logging.FieldEventType, "stage_complete"),
		logging.String("mode", result.Mode),
		logging.Int("frames", result.FramesAnalyzed),
		logging.Int("faces", result.FacesDetected),
		logging.Float64("score", result.Score),
		logging.Int("bruises", len(result.Bruises)),
		logging.Int("marks", len(result.Marks)),
	)
	return nil
}

// HealthCheck reports whether a face backend is configured.
func (s *VisualStage) HealthCheck(context.Context) stage.Health {
	if s.analyzer == nil {
		return stage.Unhealthy(StageVisual, "analyzer not configured")
	}
	if mode := s.analyzer.Mode(); mode == videoanalysis.ModeFramesOnly {
		return stage.Unhealthy(StageVisual, "no face backend; frames are counted only")
	}
	return stage.Health{Name: StageVisual, Ready: true, Detail: s.analyzer.Mode()}
}

// AudioStage scores speech from the transcript and the audio track.
type AudioStage struct {
	analyzer SpeechAnalyzer
	logger   *slog.Logger
}

// NewAudioStage wraps analyzer as a stage handler.
func NewAudioStage(analyzer SpeechAnalyzer, logger *slog.Logger) *AudioStage {
	return &AudioStage{analyzer: analyzer, logger: logging.NewComponentLogger(logger, "stage.audio")}
}

// Name implements stage.Handler.
func (s *AudioStage) Name() string { return StageAudio }

// Prepare checks the video unless a transcript was supplied, in which case
// the audio track is optional.
func (s *AudioStage) Prepare(_ context.Context, run *stage.Run) error {
	if run.Transcript != "" {
		return nil
	}
	return requireVideo(StageAudio, run)
}

// Execute runs the speech analysis.
func (s *AudioStage) Execute(ctx context.Context, run *stage.Run) error {
	if s.analyzer == nil {
		return services.Wrap(services.ErrUnavailable, StageAudio, "execute", "speech analyzer not configured", nil)
	}
	result, err := s.analyzer.Analyze(ctx, run.Video, run.Transcript)
	if err != nil {
		return err
	}
	run.Speech = &result
	logging.WithContext(ctx, s.logger).Info("audio stage complete",
		logging.String(logging.FieldEventType, "stage_complete"),
		logging.String("transcript_source", result.TranscriptSource),
		logging.Int("score", result.Score),
		logging.Int("keywords", len(result.Keywords)),
		logging.Bool("voice_features", result.Voice != nil),
	)
	return nil
}

// HealthCheck reports whether transcription is possible.
func (s *AudioStage) HealthCheck(context.Context) stage.Health {
	if s.analyzer == nil {
		return stage.Unhealthy(StageAudio, "analyzer not configured")
	}
	if err := s.analyzer.TranscriberReady(); err != nil {
		return stage.Unhealthy(StageAudio, err.Error())
	}
	return stage.Healthy(StageAudio)
}

func requireVideo(name string, run *stage.Run) error {
	if run == nil || run.Video == "" {
		return services.Wrap(services.ErrValidation, name, "prepare", "no video supplied", nil)
	}
	info, err := os.Stat(run.Video)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return services.Wrap(services.ErrNotFound, name, "prepare", "video not found: "+run.Video, nil)
		}
		return services.Wrap(services.ErrValidation, name, "prepare", "stat video", err)
	}
	if info.IsDir() {
		return services.Wrap(services.ErrValidation, name, "prepare", run.Video+" is a directory", nil)
	}
	return nil
}
