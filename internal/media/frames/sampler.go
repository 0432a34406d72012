package frames

import (
	"context"
	"errors"
	"fmt"
	"image"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"

	"github.com/disintegration/imaging"
)

// Frame is one sampled video frame.
type Frame struct {
	// Index counts processed frames from 1.
	Index int
	// SourceFrame is the 1-based position of the frame in the video.
	SourceFrame int
	Path        string
	Image       image.Image
}

// Visitor receives sampled frames in order. Returning an error stops sampling.
type Visitor func(Frame) error

// ErrStop may be returned by a Visitor to end sampling without an error.
var ErrStop = errors.New("stop sampling")

// Sampler extracts every Nth frame from a video using ffmpeg.
type Sampler struct {
	FFmpegBinary string
	// WorkDir hosts the temporary PNG directory for each call.
	WorkDir string
	// KeepFrames leaves the PNG directory in place after sampling.
	KeepFrames bool
}

// Sample decodes one frame out of every `every` frames (those whose 1-based
// position is a multiple of every) and calls visit for each. It returns the
// number of frames visited.
func (s Sampler) Sample(ctx context.Context, video string, every int, visit Visitor) (int, error) {
	if every <= 0 {
		return 0, fmt.Errorf("sample frames: invalid interval %d", every)
	}
	if _, err := os.Stat(video); err != nil {
		return 0, fmt.Errorf("sample frames: %w", err)
	}
	if err := os.MkdirAll(s.workDir(), 0o755); err != nil {
		return 0, fmt.Errorf("sample frames: ensure work dir: %w", err)
	}
	dir, err := os.MkdirTemp(s.workDir(), "frames-")
	if err != nil {
		return 0, fmt.Errorf("sample frames: temp dir: %w", err)
	}
	if !s.KeepFrames {
		defer os.RemoveAll(dir)
	}

	if err := s.extract(ctx, video, every, dir); err != nil {
		return 0, err
	}

	paths, err := listFrames(dir)
	if err != nil {
		return 0, err
	}

	visited := 0
	for i, path := range paths {
		if err := ctx.Err(); err != nil {
			return visited, err
		}
		img, err := imaging.Open(path)
		if err != nil {
			return visited, fmt.Errorf("decode frame %s: %w", filepath.Base(path), err)
		}
		visited++
		frame := Frame{
			Index:       i + 1,
			SourceFrame: (i + 1) * every,
			Path:        path,
			Image:       img,
		}
		if err := visit(frame); err != nil {
			if errors.Is(err, ErrStop) {
				return visited, nil
			}
			return visited, err
		}
	}
	return visited, nil
}

// SelectFilter returns the ffmpeg select expression keeping frames whose
// 1-based position is divisible by every.
func SelectFilter(every int) string {
	return fmt.Sprintf(`select=not(mod(n+1\,%d))`, every)
}

func (s Sampler) extract(ctx context.Context, video string, every int, dir string) error {
	binary := strings.TrimSpace(s.FFmpegBinary)
	if binary == "" {
		binary = "ffmpeg"
	}
	args := []string{
		"-hide_banner",
		"-loglevel", "error",
		"-i", video,
		"-an",
		"-vf", SelectFilter(every),
		"-fps_mode", "vfr",
		filepath.Join(dir, "frame_%06d.png"),
	}
	cmd := exec.CommandContext(ctx, binary, args...) //nolint:gosec
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("ffmpeg frame sample: %w: %s", err, strings.TrimSpace(string(output)))
	}
	return nil
}

func (s Sampler) workDir() string {
	if strings.TrimSpace(s.WorkDir) == "" {
		return os.TempDir()
	}
	return s.WorkDir
}

func listFrames(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("list frames: %w", err)
	}
	paths := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".png") {
			continue
		}
		paths = append(paths, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(paths)
	return paths, nil
}
