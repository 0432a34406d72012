package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"triagem/internal/config"
	"triagem/internal/history"
	"triagem/internal/logging"
	"triagem/internal/pipeline"
	"triagem/internal/speech"
	"triagem/internal/stage"
	"triagem/internal/videoanalysis"
)

type commandContext struct {
	configFlag *string
	outputFlag *string

	configOnce sync.Once
	config     *config.Config
	configPath string
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
}

func newCommandContext(configFlag, outputFlag *string) *commandContext {
	return &commandContext{
		configFlag: configFlag,
		outputFlag: outputFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, resolved, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if c.outputFlag != nil && strings.TrimSpace(*c.outputFlag) != "" {
			dir, err := config.ExpandPath(strings.TrimSpace(*c.outputFlag))
			if err != nil {
				c.configErr = fmt.Errorf("resolve --output-dir: %w", err)
				return
			}
			cfg.Paths.OutputDir = dir
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
		c.configPath = resolved
	})
	return c.config, c.configErr
}

func (c *commandContext) ensureLogger() *slog.Logger {
	c.loggerOnce.Do(func() {
		logger, err := logging.NewFromConfig(c.config)
		if err != nil {
			logger, _ = logging.NewFromConfig(nil)
		}
		c.logger = logger
	})
	return c.logger
}

// stages builds the visual and audio handlers. The returned closer releases
// the face detector.
func (c *commandContext) stages(cfg *config.Config) (visual, audio stage.Handler, closer func()) {
	logger := c.ensureLogger()
	visualAnalyzer := videoanalysis.New(cfg, logger)
	visual = pipeline.NewVisualStage(visualAnalyzer, logger)
	if cfg.Audio.Enabled {
		audio = pipeline.NewAudioStage(speech.New(cfg, logger), logger)
	}
	return visual, audio, func() {
		if err := visualAnalyzer.Close(); err != nil {
			logger.Debug("close face detector", logging.Error(err))
		}
	}
}

func (c *commandContext) newRunner(ctx context.Context, cfg *config.Config) (*pipeline.Runner, func(), error) {
	visual, audio, closeStages := c.stages(cfg)
	runner := pipeline.NewRunner(pipeline.Options{
		OutputDir:     cfg.Paths.OutputDir,
		LogDir:        cfg.Paths.LogDir,
		RetentionDays: cfg.Logging.RetentionDays,
	}, visual, audio, c.ensureLogger())

	cleanup := closeStages
	if cfg.History.Enabled {
		store, err := history.Open(ctx, cfg.Paths.HistoryDB)
		if err != nil {
			closeStages()
			return nil, nil, fmt.Errorf("open history: %w", err)
		}
		runner.WithRecorder(store)
		cleanup = func() {
			closeStages()
			_ = store.Close()
		}
	}
	return runner, cleanup, nil
}

var errHistoryDisabled = errors.New("history is disabled (set history.enabled = true)")

func (c *commandContext) withHistory(cmd *cobra.Command, fn func(*history.Store) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	if !cfg.History.Enabled {
		return errHistoryDisabled
	}
	store, err := history.Open(cmd.Context(), cfg.Paths.HistoryDB)
	if err != nil {
		return fmt.Errorf("open history: %w", err)
	}
	defer store.Close()
	return fn(store)
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
