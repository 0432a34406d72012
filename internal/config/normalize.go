package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	if err := c.normalizeVideo(); err != nil {
		return err
	}
	c.normalizeAudio()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.OutputDir) == "" {
		c.Paths.OutputDir = defaultOutputDir
	}
	if c.Paths.OutputDir, err = expandPath(c.Paths.OutputDir); err != nil {
		return fmt.Errorf("paths.output_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.WorkDir) == "" {
		c.Paths.WorkDir = defaultWorkDir()
	}
	if c.Paths.WorkDir, err = expandPath(c.Paths.WorkDir); err != nil {
		return fmt.Errorf("paths.work_dir: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.HistoryDB) == "" {
		c.Paths.HistoryDB = defaultHistoryDB
	}
	if c.Paths.HistoryDB, err = expandPath(c.Paths.HistoryDB); err != nil {
		return fmt.Errorf("paths.history_db: %w", err)
	}
	return nil
}

func (c *Config) normalizeVideo() error {
	if c.Video.SampleRate == 0 {
		c.Video.SampleRate = defaultSampleRate
	}
	if c.Video.FaceMargin == 0 {
		c.Video.FaceMargin = defaultFaceMargin
	}

	c.Video.LandmarkerCommand = strings.TrimSpace(c.Video.LandmarkerCommand)
	if c.Video.LandmarkerCommand == "" {
		if value, ok := os.LookupEnv("TRIAGEM_LANDMARKER"); ok {
			c.Video.LandmarkerCommand = strings.TrimSpace(value)
		}
	}

	cascadeDir := ""
	if value, ok := os.LookupEnv("TRIAGEM_CASCADE_DIR"); ok {
		cascadeDir = strings.TrimSpace(value)
	}
	var err error
	if c.Video.FaceCascade, err = resolveCascade(c.Video.FaceCascade, defaultFaceCascade, cascadeDir); err != nil {
		return fmt.Errorf("video.face_cascade: %w", err)
	}
	if c.Video.EyeCascade, err = resolveCascade(c.Video.EyeCascade, defaultEyeCascade, cascadeDir); err != nil {
		return fmt.Errorf("video.eye_cascade: %w", err)
	}
	return nil
}

// resolveCascade keeps bare file names relative to the cascade directory so
// OpenCV's bundled data path can be supplied through the environment.
func resolveCascade(value, fallback, dir string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		value = fallback
	}
	if dir != "" && !strings.ContainsRune(value, filepath.Separator) {
		value = filepath.Join(dir, value)
	}
	if !strings.ContainsRune(value, filepath.Separator) {
		return value, nil
	}
	return expandPath(value)
}

func (c *Config) normalizeAudio() {
	c.Audio.Model = strings.TrimSpace(c.Audio.Model)
	if c.Audio.Model == "" {
		c.Audio.Model = defaultWhisperModel
	}
	c.Audio.Language = strings.ToLower(strings.TrimSpace(c.Audio.Language))
	if c.Audio.Language == "" {
		c.Audio.Language = defaultSpeechLanguage
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if c.Logging.RetentionDays < 0 {
		c.Logging.RetentionDays = 0
	}
}
