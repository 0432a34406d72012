package videoanalysis

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/disintegration/imaging"

	"triagem/internal/media/ffprobe"
	"triagem/internal/services"
	"triagem/internal/vision"
)

func fakeFFmpeg(t *testing.T, fixtures string) string {
	t.Helper()
	stub := filepath.Join(t.TempDir(), "ffmpeg")
	script := "#!/bin/sh\n" +
		"for last; do :; done\n" +
		"out=$(dirname \"$last\")\n" +
		"cp " + fixtures + "/*.png \"$out\"/\n"
	if err := os.WriteFile(stub, []byte(script), 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
	return stub
}

// writeBruisedFrames saves count 200x200 skin-toned frames, each with a purple
// patch near the upper-left of the face box (60,60)-(140,140).
func writeBruisedFrames(t *testing.T, count int) string {
	t.Helper()
	dir := t.TempDir()
	for i := 1; i <= count; i++ {
		img := image.NewNRGBA(image.Rect(0, 0, 200, 200))
		draw.Draw(img, img.Bounds(), &image.Uniform{C: color.NRGBA{R: 224, G: 172, B: 140, A: 255}}, image.Point{}, draw.Src)
		draw.Draw(img, image.Rect(50, 50, 70, 70), &image.Uniform{C: color.NRGBA{R: 128, B: 128, A: 255}}, image.Point{}, draw.Src)
		if err := imaging.Save(img, filepath.Join(dir, fmt.Sprintf("frame_%06d.png", i))); err != nil {
			t.Fatalf("save fixture: %v", err)
		}
	}
	return dir
}

func touchVideo(t *testing.T) string {
	t.Helper()
	video := filepath.Join(t.TempDir(), "clip.mp4")
	if err := os.WriteFile(video, []byte("video"), 0o644); err != nil {
		t.Fatalf("write video: %v", err)
	}
	return video
}

func newTestAnalyzer(t *testing.T, frames int) *Analyzer {
	t.Helper()
	a := NewAnalyzer(Options{
		FFmpegBinary: fakeFFmpeg(t, writeBruisedFrames(t, frames)),
		WorkDir:      t.TempDir(),
		SampleRate:   30,
		FaceMargin:   0.3,
	}, nil)
	a.inspect = func(context.Context, string, string) (ffprobe.Result, error) {
		return ffprobe.Result{Streams: []ffprobe.Stream{{CodecType: "video", Width: 200, Height: 200, AvgFrameRate: "30/1", NBFrames: "60"}}}, nil
	}
	return a
}

type fakeLandmarker struct {
	mesh  vision.Mesh
	calls int
}

func (f *fakeLandmarker) Landmarks(context.Context, string) ([]vision.Mesh, error) {
	f.calls++
	return []vision.Mesh{f.mesh}, nil
}

// tiredMesh spans (60,60)-(140,140) on a 200x200 frame with narrow eyes and a
// closed mouth.
func tiredMesh() vision.Mesh {
	mesh := make(vision.Mesh, 468)
	for i := range mesh {
		mesh[i] = vision.Landmark{X: 0.5, Y: 0.5}
	}
	mesh[0] = vision.Landmark{X: 0.3, Y: 0.3}
	mesh[1] = vision.Landmark{X: 0.7, Y: 0.7}
	mesh[159] = vision.Landmark{X: 0.4, Y: 0.40}
	mesh[145] = vision.Landmark{X: 0.4, Y: 0.42}
	mesh[386] = vision.Landmark{X: 0.6, Y: 0.40}
	mesh[374] = vision.Landmark{X: 0.6, Y: 0.42}
	mesh[61] = vision.Landmark{X: 0.4, Y: 0.6}
	mesh[291] = vision.Landmark{X: 0.6, Y: 0.6}
	mesh[13] = vision.Landmark{X: 0.5, Y: 0.60}
	mesh[14] = vision.Landmark{X: 0.5, Y: 0.61}
	return mesh
}

func TestAnalyzeMeshMode(t *testing.T) {
	lm := &fakeLandmarker{mesh: tiredMesh()}
	a := newTestAnalyzer(t, 2).WithLandmarker(lm)

	result, err := a.Analyze(context.Background(), touchVideo(t))
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if result.Mode != ModeMesh || lm.calls != 2 {
		t.Fatalf("unexpected mode %q calls %d", result.Mode, lm.calls)
	}
	if result.FramesAnalyzed != 2 || result.FacesDetected != 2 {
		t.Fatalf("unexpected counts %+v", result)
	}
	if result.Score != 4 {
		t.Fatalf("score = %v, want 4", result.Score)
	}
	want := []string{vision.IndicatorTiredEyes, vision.IndicatorFlatMouth}
	if !slices.Equal(result.Indicators, want) {
		t.Fatalf("indicators = %v, want %v", result.Indicators, want)
	}
	if len(result.Bruises) != 2 || result.BruiseRisk != 6 {
		t.Fatalf("unexpected bruises %v risk %d", result.Bruises, result.BruiseRisk)
	}
	if got := result.BruiseLocations["esquerda - testa/superior"]; got != 2 {
		t.Fatalf("unexpected locations %v", result.BruiseLocations)
	}
	if len(result.Marks) != 0 || len(result.MarkTypes) != 0 {
		t.Fatalf("unexpected marks %v", result.Marks)
	}
}

type fakeDetector struct {
	eyes   int
	calls  int
	closed bool
}

func (f *fakeDetector) Detect(image.Image) ([]vision.DetectedFace, error) {
	f.calls++
	return []vision.DetectedFace{{Box: image.Rect(60, 60, 140, 140), Eyes: f.eyes}}, nil
}

func (f *fakeDetector) Close() error {
	f.closed = true
	return nil
}

func TestAnalyzeCascadeMode(t *testing.T) {
	det := &fakeDetector{eyes: 1}
	a := newTestAnalyzer(t, 3).WithDetector(det)

	result, err := a.Analyze(context.Background(), touchVideo(t))
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if result.Mode != ModeCascade || result.FramesAnalyzed != 3 {
		t.Fatalf("unexpected result %+v", result)
	}
	if det.calls != 3 {
		t.Fatalf("detector calls = %d, want one per frame", det.calls)
	}
	// One missing eye per frame; the skin tone is bright enough.
	if result.Score != 1 {
		t.Fatalf("score = %v, want 1", result.Score)
	}
	if !slices.Equal(result.Indicators, []string{vision.IndicatorMissingEyes}) {
		t.Fatalf("unexpected indicators %v", result.Indicators)
	}
	if result.BruiseRisk != 9 {
		t.Fatalf("risk = %d, want 9", result.BruiseRisk)
	}
	if err := a.Close(); err != nil || !det.closed {
		t.Fatalf("expected detector closed, err=%v", err)
	}
}

func TestAnalyzeFramesOnly(t *testing.T) {
	a := newTestAnalyzer(t, 3)
	result, err := a.Analyze(context.Background(), touchVideo(t))
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if result.Mode != ModeFramesOnly || result.FramesAnalyzed != 3 {
		t.Fatalf("unexpected result %+v", result)
	}
	if result.Score != 0 || len(result.Indicators) != 0 || len(result.Bruises) != 0 {
		t.Fatalf("expected empty findings, got %+v", result)
	}
	if result.BruiseLocations == nil || result.MarkTypes == nil {
		t.Fatal("expected initialized maps")
	}
}

func TestAnalyzeMissingVideo(t *testing.T) {
	a := newTestAnalyzer(t, 1)
	_, err := a.Analyze(context.Background(), filepath.Join(t.TempDir(), "missing.mp4"))
	if !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDedupeKeepsFirstSeenOrder(t *testing.T) {
	got := dedupe([]string{"b", "a", "b", "c", "a"})
	if !slices.Equal(got, []string{"b", "a", "c"}) {
		t.Fatalf("dedupe = %v", got)
	}
}
