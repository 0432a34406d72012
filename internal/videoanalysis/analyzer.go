package videoanalysis

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log/slog"
	"os"
	"time"

	"triagem/internal/config"
	"triagem/internal/logging"
	"triagem/internal/media/ffprobe"
	"triagem/internal/media/frames"
	"triagem/internal/services"
	"triagem/internal/vision"
)

// Analysis modes, in order of preference.
const (
	ModeMesh       = "mesh"
	ModeCascade    = "cascade"
	ModeFramesOnly = "frames-only"
)

const progressEvery = 10

// Options configures an Analyzer.
type Options struct {
	FFmpegBinary  string
	FFprobeBinary string
	WorkDir       string
	SampleRate    int
	FaceMargin    float64
}

// OptionsFromConfig maps the [video] and [paths] sections onto Options.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		FFmpegBinary:  cfg.FFmpegBinary(),
		FFprobeBinary: cfg.FFprobeBinary(),
		WorkDir:       cfg.Paths.WorkDir,
		SampleRate:    cfg.Video.SampleRate,
		FaceMargin:    cfg.Video.FaceMargin,
	}
}

// Analyzer runs the visual stage over sampled frames of one video.
type Analyzer struct {
	opts       Options
	logger     *slog.Logger
	landmarker vision.Landmarker
	detector   vision.Detector
	now        func() time.Time
	inspect    func(ctx context.Context, binary, path string) (ffprobe.Result, error)
}

// NewAnalyzer returns an Analyzer with no face backend; attach one with
// WithLandmarker or WithDetector.
func NewAnalyzer(opts Options, logger *slog.Logger) *Analyzer {
	if opts.SampleRate <= 0 {
		opts.SampleRate = 30
	}
	return &Analyzer{
		opts:    opts,
		logger:  logging.NewComponentLogger(logger, "visual"),
		now:     time.Now,
		inspect: ffprobe.Inspect,
	}
}

// New builds an Analyzer from configuration. The face-mesh helper is
// preferred; Haar cascades are the fallback. When neither backend can be
// set up the analyzer still counts frames and logs a warning.
func New(cfg *config.Config, logger *slog.Logger) *Analyzer {
	a := NewAnalyzer(OptionsFromConfig(cfg), logger)
	if cfg.Video.LandmarkerCommand != "" {
		lm, err := vision.NewCommandLandmarker(cfg.Video.LandmarkerCommand)
		if err == nil {
			return a.WithLandmarker(lm)
		}
		logging.WarnWithContext(a.logger, "landmarker unavailable", "landmarker_unavailable",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check video.landmarker_command"),
		)
	}
	det, err := vision.NewCascadeDetector(cfg.Video.FaceCascade, cfg.Video.EyeCascade)
	if err != nil {
		logging.WarnWithContext(a.logger, "face detector unavailable", "detector_unavailable",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "set video.landmarker_command or build with -tags opencv"),
			logging.String(logging.FieldImpact, "frames are counted but no faces are analyzed"),
		)
		return a
	}
	return a.WithDetector(det)
}

// WithLandmarker selects the face-mesh backend.
func (a *Analyzer) WithLandmarker(lm vision.Landmarker) *Analyzer {
	a.landmarker = lm
	return a
}

// WithDetector selects the Haar cascade backend.
func (a *Analyzer) WithDetector(det vision.Detector) *Analyzer {
	a.detector = det
	return a
}

// Mode reports which face backend Analyze will use.
func (a *Analyzer) Mode() string {
	switch {
	case a.landmarker != nil:
		return ModeMesh
	case a.detector != nil:
		return ModeCascade
	default:
		return ModeFramesOnly
	}
}

// Close releases the cascade detector, if any.
func (a *Analyzer) Close() error {
	if a.detector == nil {
		return nil
	}
	return a.detector.Close()
}

// Analyze samples one frame out of every SampleRate frames and accumulates
// expression scores and skin findings for every detected face.
func (a *Analyzer) Analyze(ctx context.Context, video string) (Result, error) {
	logger := logging.WithContext(ctx, a.logger)
	started := a.now()

	if _, err := os.Stat(video); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Result{}, services.Wrap(services.ErrNotFound, "visual", "open video", "video file not found", err)
		}
		return Result{}, services.Wrap(services.ErrValidation, "visual", "open video", "video file unreadable", err)
	}

	a.logProbe(ctx, logger, video)

	mode := a.Mode()
	if mode == ModeFramesOnly {
		logging.WarnWithContext(logger, "no face backend configured", "visual_degraded",
			logging.String(logging.FieldImpact, "depression, bruise and mark scores stay at zero"),
		)
	}
	logger.Info("visual analysis started",
		logging.String("mode", mode),
		logging.Int("sample_rate", a.opts.SampleRate),
	)

	acc := newAccumulator()
	sampler := frames.Sampler{FFmpegBinary: a.opts.FFmpegBinary, WorkDir: a.opts.WorkDir}
	var frameErrors int
	processed, err := sampler.Sample(ctx, video, a.opts.SampleRate, func(frame frames.Frame) error {
		acc.frames++
		if ferr := a.analyzeFrame(ctx, mode, frame, acc); ferr != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			frameErrors++
			logger.Debug("frame analysis failed",
				logging.Int("frame", frame.SourceFrame),
				logging.Error(ferr),
			)
		}
		if frame.Index%progressEvery == 0 {
			logger.Info("frames processed", logging.Int("frames", frame.Index))
		}
		return nil
	})
	if err != nil {
		return Result{}, services.Wrap(services.ErrExternalTool, "visual", "sample frames", "frame sampling failed", err)
	}
	if frameErrors > 0 {
		logging.WarnWithContext(logger, "some frames could not be analyzed", "frame_errors",
			logging.Int("failed_frames", frameErrors),
			logging.Int("frames", processed),
		)
	}

	result := acc.finalize(video, started, mode)
	logger.Info("visual analysis completed",
		logging.String(logging.FieldEventType, "stage_complete"),
		logging.Int("frames", result.FramesAnalyzed),
		logging.Int("faces", result.FacesDetected),
		logging.Float64("score", result.Score),
		logging.Int("bruises", len(result.Bruises)),
		logging.Int("marks", len(result.Marks)),
		logging.Duration("elapsed", a.now().Sub(started)),
	)
	return result, nil
}

func (a *Analyzer) logProbe(ctx context.Context, logger *slog.Logger, video string) {
	probe, err := a.inspect(ctx, a.opts.FFprobeBinary, video)
	if err != nil {
		logger.Debug("ffprobe failed", logging.Error(err))
		return
	}
	stream, ok := probe.VideoStream()
	if !ok {
		logging.WarnWithContext(logger, "no video stream reported by ffprobe", "probe_no_video")
		return
	}
	logger.Info("video probed",
		logging.Int("total_frames", probe.FrameCount()),
		logging.Float64("fps", probe.FrameRate()),
		logging.Int("width", stream.Width),
		logging.Int("height", stream.Height),
	)
}

func (a *Analyzer) analyzeFrame(ctx context.Context, mode string, frame frames.Frame, acc *accumulator) error {
	switch mode {
	case ModeMesh:
		return a.analyzeMesh(ctx, frame, acc)
	case ModeCascade:
		return a.analyzeCascade(frame, acc)
	default:
		return nil
	}
}

func (a *Analyzer) analyzeMesh(ctx context.Context, frame frames.Frame, acc *accumulator) error {
	meshes, err := a.landmarker.Landmarks(ctx, frame.Path)
	if err != nil {
		return err
	}
	b := frame.Image.Bounds()
	for _, mesh := range meshes {
		expr, err := vision.MeshExpression(mesh, b.Dx(), b.Dy())
		if err != nil {
			return fmt.Errorf("frame %d: %w", frame.SourceFrame, err)
		}
		acc.addFace(frame.Image, vision.MeshBounds(mesh, b.Dx(), b.Dy()), expr, a.opts.FaceMargin)
	}
	return nil
}

func (a *Analyzer) analyzeCascade(frame frames.Frame, acc *accumulator) error {
	faces, err := a.detector.Detect(frame.Image)
	if err != nil {
		return err
	}
	for _, face := range faces {
		expr := vision.CascadeExpression(face.Eyes, vision.MeanBrightness(frame.Image, face.Box))
		acc.addFace(frame.Image, face.Box, expr, a.opts.FaceMargin)
	}
	return nil
}

type accumulator struct {
	frames     int
	faces      int
	score      float64
	indicators []string
	bruises    []vision.Finding
	marks      []vision.Finding
}

func newAccumulator() *accumulator {
	return &accumulator{}
}

func (acc *accumulator) addFace(img image.Image, face image.Rectangle, expr vision.Expression, margin float64) {
	acc.faces++
	acc.score += float64(expr.Score)
	acc.indicators = append(acc.indicators, expr.Indicators...)
	bruises, marks := vision.DetectSkinFindings(img, face, margin)
	acc.bruises = append(acc.bruises, bruises...)
	acc.marks = append(acc.marks, marks...)
}
