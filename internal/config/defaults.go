package config

const (
	defaultOutputDir      = "."
	defaultLogDir         = "~/.local/share/triagem/logs"
	defaultHistoryDB      = "~/.local/share/triagem/history.db"
	defaultLogRetention   = 30
	defaultLogFormat      = "console"
	defaultLogLevel       = "info"
	defaultSampleRate     = 30
	defaultFaceMargin     = 0.3
	defaultFaceCascade    = "haarcascade_frontalface_default.xml"
	defaultEyeCascade     = "haarcascade_eye.xml"
	defaultWhisperModel   = "base"
	defaultSpeechLanguage = "pt"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			OutputDir: defaultOutputDir,
			WorkDir:   defaultWorkDir(),
			LogDir:    defaultLogDir,
			HistoryDB: defaultHistoryDB,
		},
		Video: Video{
			SampleRate:  defaultSampleRate,
			FaceCascade: defaultFaceCascade,
			EyeCascade:  defaultEyeCascade,
			FaceMargin:  defaultFaceMargin,
		},
		Audio: Audio{
			Enabled:        true,
			Model:          defaultWhisperModel,
			Language:       defaultSpeechLanguage,
			ReuseExtracted: true,
		},
		History: History{
			Enabled: true,
		},
		Logging: Logging{
			Format:        defaultLogFormat,
			Level:         defaultLogLevel,
			RetentionDays: defaultLogRetention,
		},
	}
}
