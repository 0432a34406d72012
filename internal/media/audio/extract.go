package audio

import (
	"bytes"
	"context"
	"encoding/binary"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// SampleRate is the rate used for every extracted track. WhisperX and the
// prosody features both operate on mono 16 kHz audio.
const SampleRate = 16000

// ExtractWAV writes the first audio stream of source to dest as a mono 16 kHz
// pcm_s16le WAV. When reuse is true and dest already exists it is kept.
// The returned bool reports whether an existing file was reused.
func ExtractWAV(ctx context.Context, ffmpegBinary, source, dest string, reuse bool) (bool, error) {
	if reuse {
		if info, err := os.Stat(dest); err == nil && !info.IsDir() && info.Size() > 0 {
			return true, nil
		}
	}
	if strings.TrimSpace(ffmpegBinary) == "" {
		ffmpegBinary = "ffmpeg"
	}
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return false, fmt.Errorf("extract audio: ensure directory: %w", err)
	}
	args := []string{
		"-y",
		"-hide_banner",
		"-loglevel", "error",
		"-i", source,
		"-vn",
		"-sn",
		"-dn",
		"-ac", "1",
		"-ar", fmt.Sprintf("%d", SampleRate),
		"-c:a", "pcm_s16le",
		dest,
	}
	cmd := exec.CommandContext(ctx, ffmpegBinary, args...) //nolint:gosec
	if output, err := cmd.CombinedOutput(); err != nil {
		return false, fmt.Errorf("ffmpeg extract: %w: %s", err, strings.TrimSpace(string(output)))
	}
	return false, nil
}

// ReadPCM decodes path through ffmpeg into mono 16 kHz samples scaled to [-1, 1].
func ReadPCM(ctx context.Context, ffmpegBinary, path string) ([]float64, error) {
	if strings.TrimSpace(ffmpegBinary) == "" {
		ffmpegBinary = "ffmpeg"
	}
	args := []string{
		"-hide_banner", "-loglevel", "error",
		"-i", path,
		"-ac", "1",
		"-ar", fmt.Sprintf("%d", SampleRate),
		"-f", "s16le",
		"-",
	}
	cmd := exec.CommandContext(ctx, ffmpegBinary, args...) //nolint:gosec
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("ffmpeg pcm extract: %w: %s", err, strings.TrimSpace(stderr.String()))
	}
	return DecodeS16LE(stdout.Bytes()), nil
}

// DecodeS16LE converts little-endian signed 16-bit samples to floats in [-1, 1].
// A trailing odd byte is ignored.
func DecodeS16LE(data []byte) []float64 {
	samples := make([]float64, len(data)/2)
	for i := range samples {
		v := int16(binary.LittleEndian.Uint16(data[i*2:]))
		samples[i] = float64(v) / 32768.0
	}
	return samples
}
