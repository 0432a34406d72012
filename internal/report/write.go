package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Paths lists the files written for one report.
type Paths struct {
	JSON string
	Text string
}

// EncodeJSON renders v with two-space indentation and without HTML escaping,
// so accented text and symbols stay readable.
func EncodeJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write stores <dir>/<name>.json and <dir>/<name>.txt.
func Write(dir, name string, v any, text string) (Paths, error) {
	payload, err := EncodeJSON(v)
	if err != nil {
		return Paths{}, fmt.Errorf("report %s: encode: %w", name, err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return Paths{}, fmt.Errorf("report %s: ensure dir: %w", name, err)
	}
	paths := Paths{
		JSON: filepath.Join(dir, name+".json"),
		Text: filepath.Join(dir, name+".txt"),
	}
	if err := writeAtomic(paths.JSON, payload); err != nil {
		return Paths{}, fmt.Errorf("report %s: %w", name, err)
	}
	if err := writeAtomic(paths.Text, []byte(text)); err != nil {
		return Paths{}, fmt.Errorf("report %s: %w", name, err)
	}
	return paths, nil
}

// WriteVideo stores analysis_report.{json,txt}.
func WriteVideo(dir string, r VideoReport) (Paths, error) {
	return Write(dir, VideoReportName, r, RenderVideoText(r))
}

// WriteAudio stores audio_analysis_report.{json,txt}.
func WriteAudio(dir string, r AudioReport) (Paths, error) {
	return Write(dir, AudioReportName, r, RenderAudioText(r))
}

// WriteFinal stores RELATORIO_FINAL_INTEGRADO.{json,txt}.
func WriteFinal(dir string, r FinalReport) (Paths, error) {
	return Write(dir, FinalReportName, r, RenderFinalText(r))
}

func writeAtomic(target string, data []byte) error {
	tmp := filepath.Join(filepath.Dir(target), fmt.Sprintf(".triagem-report-%d.tmp", time.Now().UnixNano()))
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write temp: %w", err)
	}
	if err := os.Rename(tmp, target); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("rename: %w", err)
	}
	return nil
}
