package vision

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"triagem/internal/services"
)

// Landmarker returns one face mesh per face found in a frame image file.
type Landmarker interface {
	Landmarks(ctx context.Context, framePath string) ([]Mesh, error)
}

// CommandLandmarker runs an external face-mesh helper as
// `<command...> <frame.png>` and decodes its JSON stdout:
//
//	{"faces":[{"landmarks":[{"x":0.41,"y":0.37,"z":-0.02}, ...]}]}
type CommandLandmarker struct {
	args   []string
	runner func(ctx context.Context, name string, args ...string) ([]byte, error)
}

// NewCommandLandmarker splits command on whitespace. An empty command yields
// an error wrapping services.ErrUnavailable.
func NewCommandLandmarker(command string) (*CommandLandmarker, error) {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return nil, services.Wrap(services.ErrUnavailable, "visual", "landmarks", "no landmarker command configured", nil)
	}
	return &CommandLandmarker{args: fields, runner: runOutput}, nil
}

// WithCommandRunner replaces process execution (for testing).
func (l *CommandLandmarker) WithCommandRunner(runner func(ctx context.Context, name string, args ...string) ([]byte, error)) {
	l.runner = runner
}

type landmarkPayload struct {
	Faces []struct {
		Landmarks Mesh `json:"landmarks"`
	} `json:"faces"`
}

// Landmarks runs the helper on framePath. Faces with no landmarks are dropped.
func (l *CommandLandmarker) Landmarks(ctx context.Context, framePath string) ([]Mesh, error) {
	args := append(append([]string{}, l.args[1:]...), framePath)
	output, err := l.runner(ctx, l.args[0], args...)
	if err != nil {
		return nil, services.Wrap(services.ErrExternalTool, "visual", "landmarks", "landmarker failed", err)
	}
	return ParseLandmarks(output)
}

// ParseLandmarks decodes the helper's JSON payload.
func ParseLandmarks(data []byte) ([]Mesh, error) {
	var payload landmarkPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("decode landmarks: %w", err)
	}
	meshes := make([]Mesh, 0, len(payload.Faces))
	for _, face := range payload.Faces {
		if len(face.Landmarks) == 0 {
			continue
		}
		meshes = append(meshes, face.Landmarks)
	}
	return meshes, nil
}

func runOutput(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...) //nolint:gosec
	output, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return nil, fmt.Errorf("%s: %w: %s", name, err, strings.TrimSpace(string(exitErr.Stderr)))
		}
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return output, nil
}
