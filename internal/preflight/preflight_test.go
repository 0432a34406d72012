package preflight

import (
	"os"
	"path/filepath"
	"testing"

	"triagem/internal/config"
)

func TestCheckDirectoryAccess(t *testing.T) {
	dir := t.TempDir()
	if result := CheckDirectoryAccess("test", dir); !result.Passed {
		t.Fatalf("expected pass for temp dir, got: %s", result.Detail)
	}

	missing := filepath.Join(dir, "nope")
	if result := CheckDirectoryAccess("test", missing); result.Passed {
		t.Fatal("expected failure for missing dir")
	}

	file := filepath.Join(dir, "file")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if result := CheckDirectoryAccess("test", file); result.Passed {
		t.Fatal("expected failure for regular file")
	}
}

func TestCheckReadableFile(t *testing.T) {
	dir := t.TempDir()
	cascade := filepath.Join(dir, "face.xml")
	if err := os.WriteFile(cascade, []byte("<opencv_storage/>"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if result := CheckReadableFile("cascade", cascade); !result.Passed {
		t.Fatalf("expected readable file to pass: %s", result.Detail)
	}
	if result := CheckReadableFile("cascade", dir); result.Passed {
		t.Fatal("expected directory to fail")
	}
}

func TestCheckLandmarker(t *testing.T) {
	if result := CheckLandmarker(""); result.Passed {
		t.Fatal("expected unconfigured helper to fail")
	}
	if result := CheckLandmarker("definitely-missing-mesh --json"); result.Passed {
		t.Fatal("expected missing helper to fail")
	}
	helper := filepath.Join(t.TempDir(), "mesh")
	if err := os.WriteFile(helper, []byte("#!/bin/sh\nexit 0\n"), 0o755); err != nil {
		t.Fatalf("write: %v", err)
	}
	if result := CheckLandmarker(helper + " --refine"); !result.Passed {
		t.Fatalf("expected helper to resolve: %s", result.Detail)
	}
}

func TestRunAllUsesCascadesWithoutLandmarker(t *testing.T) {
	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.OutputDir = base
	cfg.Paths.WorkDir = base
	cfg.Paths.LogDir = ""
	cfg.Video.LandmarkerCommand = ""
	cfg.Video.FaceCascade = filepath.Join(base, "missing-face.xml")
	cfg.Video.EyeCascade = filepath.Join(base, "missing-eye.xml")

	results := RunAll(&cfg)
	if len(results) != 4 {
		t.Fatalf("expected 4 results, got %d: %+v", len(results), results)
	}
	failed := Failed(results)
	if len(failed) != 2 || failed[0].Name != "Face cascade" {
		t.Fatalf("unexpected failures: %+v", failed)
	}
}

func TestCheckSystemDepsHonoursAudioToggle(t *testing.T) {
	cfg := config.Default()
	if got := len(CheckSystemDeps(&cfg)); got != 3 {
		t.Fatalf("expected 3 requirements with audio enabled, got %d", got)
	}
	cfg.Audio.Enabled = false
	if got := len(CheckSystemDeps(&cfg)); got != 2 {
		t.Fatalf("expected 2 requirements with audio disabled, got %d", got)
	}
}
