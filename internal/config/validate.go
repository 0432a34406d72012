package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateVideo(); err != nil {
		return err
	}
	if err := c.validateAudio(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validatePaths() error {
	if strings.TrimSpace(c.Paths.OutputDir) == "" {
		return errors.New("paths.output_dir must be set")
	}
	if strings.TrimSpace(c.Paths.WorkDir) == "" {
		return errors.New("paths.work_dir must be set")
	}
	if c.History.Enabled && strings.TrimSpace(c.Paths.HistoryDB) == "" {
		return errors.New("paths.history_db must be set when history.enabled is true")
	}
	return nil
}

func (c *Config) validateVideo() error {
	if c.Video.SampleRate <= 0 {
		return errors.New("video.sample_rate must be positive")
	}
	if c.Video.FaceMargin < 0 || c.Video.FaceMargin > 1 {
		return errors.New("video.face_margin must be between 0 and 1")
	}
	return nil
}

func (c *Config) validateAudio() error {
	if !c.Audio.Enabled {
		return nil
	}
	if strings.TrimSpace(c.Audio.Model) == "" {
		return errors.New("audio.model must be set when audio.enabled is true")
	}
	if len(c.Audio.Language) < 2 {
		return fmt.Errorf("audio.language %q is not a language code", c.Audio.Language)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
}
