package whisperx

// Config captures runtime settings for WhisperX operations.
type Config struct {
	// Model is the WhisperX model to use (e.g., "base", "small").
	Model string
	// Language is the spoken language code passed to WhisperX.
	Language string
	// CUDAEnabled enables GPU acceleration.
	CUDAEnabled bool
	// ReuseTranscript loads an existing WhisperX JSON next to the audio
	// instead of transcribing again.
	ReuseTranscript bool
}

// WhisperX configuration constants.
const (
	DefaultModel    = "base"
	DefaultLanguage = "pt"
	CUDAIndexURL    = "https://download.pytorch.org/whl/cu128"
	PypiIndexURL    = "https://pypi.org/simple"
	BatchSize       = "4"
	OutputFormat    = "json"
	VADMethod       = "silero"
	CPUDevice       = "cpu"
	CUDADevice      = "cuda"
	CPUComputeType  = "float32"
)

// UVXCommand launches WhisperX in an isolated Python environment.
const UVXCommand = "uvx"
