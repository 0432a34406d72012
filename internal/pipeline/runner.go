package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"triagem/internal/history"
	"triagem/internal/logging"
	"triagem/internal/report"
	"triagem/internal/services"
	"triagem/internal/stage"
)

// LockName is the lock file created in the output directory while a run is
// writing reports.
const LockName = ".triagem.lock"

// ErrBusy is returned when another run holds the output directory lock.
var ErrBusy = errors.New("output directory is locked by another analysis")

// Scope selects which stages run and which reports are written.
type Scope string

const (
	ScopeFull  Scope = "full"
	ScopeVideo Scope = "video"
	ScopeAudio Scope = "audio"
)

// Request describes one analysis.
type Request struct {
	Video string
	// Transcript, when non-empty, replaces transcription.
	Transcript string
	Scope      Scope
}

// Recorder stores completed runs. *history.Store satisfies it.
type Recorder interface {
	Record(ctx context.Context, e history.Entry) (history.Entry, error)
}

// Options configures a Runner.
type Options struct {
	OutputDir     string
	LogDir        string
	RetentionDays int
}

// StageOutcome is the result of one stage in a run.
type StageOutcome struct {
	Name     string
	Status   string
	Duration time.Duration
	Err      error
}

// Outcome summarizes a finished run.
type Outcome struct {
	RunID       string
	Video       string
	Scope       Scope
	StartedAt   time.Time
	LogPath     string
	Stages      []StageOutcome
	VideoReport *report.VideoReport
	AudioReport *report.AudioReport
	Final       *report.FinalReport
	Files       []string
	HistoryID   string
}

// Runner executes the analysis stages and writes the reports.
type Runner struct {
	opts     Options
	visual   stage.Handler
	audio    stage.Handler
	recorder Recorder
	logger   *slog.Logger
	now      func() time.Time
	newID    func() string
}

// NewRunner wires the visual and audio handlers. Either may be nil; a full
// run then uses whichever stage is configured.
func NewRunner(opts Options, visual, audio stage.Handler, logger *slog.Logger) *Runner {
	return &Runner{
		opts:   opts,
		visual: visual,
		audio:  audio,
		logger: logging.NewComponentLogger(logger, "pipeline"),
		now:    time.Now,
		newID:  uuid.NewString,
	}
}

// WithRecorder enables history recording for full runs.
func (r *Runner) WithRecorder(rec Recorder) *Runner {
	r.recorder = rec
	return r
}

// Handlers returns the configured stage handlers.
func (r *Runner) Handlers() []stage.Handler {
	var out []stage.Handler
	for _, h := range []stage.Handler{r.visual, r.audio} {
		if h != nil {
			out = append(out, h)
		}
	}
	return out
}

func (r *Runner) handlersFor(scope Scope) ([]stage.Handler, error) {
	var selected []stage.Handler
	switch scope {
	case ScopeFull:
		selected = r.Handlers()
	case ScopeVideo:
		if r.visual != nil {
			selected = []stage.Handler{r.visual}
		}
	case ScopeAudio:
		if r.audio != nil {
			selected = []stage.Handler{r.audio}
		}
	default:
		return nil, fmt.Errorf("%w: unknown scope %q", services.ErrValidation, scope)
	}
	if len(selected) == 0 {
		return nil, services.Wrap(services.ErrConfiguration, "pipeline", "select stages",
			fmt.Sprintf("no stage configured for scope %s", scope), nil)
	}
	return selected, nil
}

// Run analyzes req.Video. A failing stage is logged and the run continues
// with the remaining stages; the error is returned only when every selected
// stage failed or the reports could not be written.
func (r *Runner) Run(ctx context.Context, req Request) (Outcome, error) {
	if req.Scope == "" {
		req.Scope = ScopeFull
	}
	handlers, err := r.handlersFor(req.Scope)
	if err != nil {
		return Outcome{}, err
	}
	video := strings.TrimSpace(req.Video)
	if video == "" {
		return Outcome{}, services.Wrap(services.ErrValidation, "pipeline", "run", "no video supplied", nil)
	}
	if abs, err := filepath.Abs(video); err == nil {
		video = abs
	}

	outDir := r.opts.OutputDir
	if outDir == "" {
		outDir = "."
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return Outcome{}, fmt.Errorf("ensure output dir: %w", err)
	}
	lock := flock.New(filepath.Join(outDir, LockName))
	locked, err := lock.TryLock()
	if err != nil {
		return Outcome{}, fmt.Errorf("acquire output lock: %w", err)
	}
	if !locked {
		return Outcome{}, fmt.Errorf("%w: %s", ErrBusy, outDir)
	}
	defer func() { _ = lock.Unlock() }()

	out := Outcome{
		RunID:     r.newID(),
		Video:     video,
		Scope:     req.Scope,
		StartedAt: r.now(),
	}
	ctx = services.WithRunID(ctx, out.RunID)
	ctx = services.WithVideo(ctx, video)

	logger := r.logger
	runLog, err := logging.OpenRunLog(r.opts.LogDir, out.RunID, out.StartedAt)
	if err != nil {
		logging.WarnWithContext(logging.WithContext(ctx, logger), "run log unavailable", "run_log_unavailable",
			logging.Error(err),
			logging.String(logging.FieldImpact, "this run is only logged to the console"),
		)
	} else if runLog != nil {
		defer func() { _ = runLog.Close() }()
		logger = logging.TeeLogger(logger, runLog.Handler)
		out.LogPath = runLog.Path
	}
	runLogger := logging.WithContext(ctx, logger)
	runLogger.Info("analysis started",
		logging.String(logging.FieldEventType, "run_start"),
		logging.String("scope", string(req.Scope)),
		logging.String("output_dir", outDir),
	)

	run := &stage.Run{
		ID:         out.RunID,
		Video:      video,
		Transcript: strings.TrimSpace(req.Transcript),
		StartedAt:  out.StartedAt,
	}
	var firstErr error
	succeeded := 0
	for _, h := range handlers {
		so := r.runStage(ctx, logger, h, run)
		out.Stages = append(out.Stages, so)
		if so.Err == nil {
			succeeded++
			continue
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return out, ctxErr
		}
		if firstErr == nil {
			firstErr = so.Err
		}
	}
	if succeeded == 0 {
		runLogger.Error("analysis failed", logging.String(logging.FieldEventType, "run_failed"), logging.Error(firstErr))
		return out, firstErr
	}

	if err := r.writeReports(ctx, runLogger, outDir, run, &out); err != nil {
		return out, err
	}

	removed := logging.CleanupOldLogs(runLogger, r.opts.RetentionDays, logging.RetentionTarget{
		Dir:     r.opts.LogDir,
		Pattern: logging.RunLogPattern,
		Exclude: []string{out.LogPath},
	})
	runLogger.Info("analysis complete",
		logging.String(logging.FieldEventType, "run_complete"),
		logging.Int("files", len(out.Files)),
		logging.Int("logs_pruned", removed),
		logging.Duration("duration", r.now().Sub(out.StartedAt)),
	)
	return out, nil
}

func (r *Runner) runStage(ctx context.Context, logger *slog.Logger, h stage.Handler, run *stage.Run) StageOutcome {
	name := h.Name()
	ctx = services.WithStage(ctx, name)
	stageLogger := logging.WithContext(ctx, logger)
	start := r.now()

	err := h.Prepare(ctx, run)
	if err == nil {
		err = h.Execute(ctx, run)
	}
	so := StageOutcome{
		Name:     name,
		Status:   services.FailureStatus(err),
		Duration: r.now().Sub(start),
		Err:      err,
	}
	if err != nil {
		logging.WarnWithContext(stageLogger, "stage did not complete; continuing without it", "stage_failed",
			logging.Error(err),
			logging.String("status", so.Status),
			logging.String(logging.FieldImpact, name+" score counts as zero in the final report"),
		)
		return so
	}
	stageLogger.Debug("stage finished", logging.Duration("duration", so.Duration))
	return so
}

func (r *Runner) writeReports(ctx context.Context, logger *slog.Logger, outDir string, run *stage.Run, out *Outcome) error {
	record := func(paths report.Paths) {
		out.Files = append(out.Files, paths.JSON, paths.Text)
		logger.Info("report written", logging.String("json", paths.JSON), logging.String("text", paths.Text))
	}

	if run.Visual != nil {
		vr := report.NewVideoReport(*run.Visual, out.StartedAt)
		out.VideoReport = &vr
		paths, err := report.WriteVideo(outDir, vr)
		if err != nil {
			return fmt.Errorf("write video report: %w", err)
		}
		record(paths)
	}

	if run.Speech != nil {
		if run.Speech.HasTranscript() {
			ar := report.NewAudioReport(*run.Speech)
			out.AudioReport = &ar
			paths, err := report.WriteAudio(outDir, ar)
			if err != nil {
				return fmt.Errorf("write audio report: %w", err)
			}
			record(paths)
		} else {
			logger.Info("no speech found; audio report skipped", logging.String(logging.FieldEventType, "audio_report_skipped"))
		}
	}

	if out.Scope != ScopeFull {
		return nil
	}
	final := report.NewFinalReport(out.Video, out.VideoReport, out.AudioReport, out.StartedAt)
	out.Final = &final
	paths, err := report.WriteFinal(outDir, final)
	if err != nil {
		return fmt.Errorf("write final report: %w", err)
	}
	record(paths)
	logger.Info("risk classified",
		logging.String(logging.FieldEventType, "risk_classified"),
		logging.Float64("score_total", final.AnaliseIntegrada.Depressao.ScoreTotal),
		logging.String("tier", final.AnaliseIntegrada.Depressao.NivelRisco),
	)

	if r.recorder != nil {
		entry, err := r.recorder.Record(ctx, historyEntry(out, &final, paths.JSON))
		if err != nil {
			logging.WarnWithContext(logger, "history record failed", "history_record_failed",
				logging.Error(err),
				logging.String(logging.FieldImpact, "this run will not appear in `triagem history`"),
			)
		} else {
			out.HistoryID = entry.ID
		}
	}
	return nil
}

func historyEntry(out *Outcome, final *report.FinalReport, reportPath string) history.Entry {
	in := final.AnaliseIntegrada
	entry := history.Entry{
		ID:             out.RunID,
		Video:          out.Video,
		CreatedAt:      out.StartedAt,
		VisualScore:    in.Depressao.ScoreVisual,
		AudioScore:     in.Depressao.ScoreAudio,
		TotalScore:     in.Depressao.ScoreTotal,
		Risk:           in.Depressao.NivelRisco,
		Bruises:        in.ViolenciaDomestica.HematomasDetectados,
		Marks:          in.ProblemasSaude.MarcasDetectadas,
		AudioAvailable: out.AudioReport != nil,
		ReportPath:     reportPath,
	}
	if out.VideoReport != nil {
		entry.Frames = out.VideoReport.FramesAnalisados
	}
	return entry
}
