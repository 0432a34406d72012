package vision

import (
	"image"
	"image/color"
	"math"
	"slices"
	"testing"
)

func testMesh(eyeTop, eyeBottom, lipTop, lipBottom float64) Mesh {
	mesh := make(Mesh, 468)
	for i := range mesh {
		mesh[i] = Landmark{X: 0.5, Y: 0.5}
	}
	mesh[leftEyeTop] = Landmark{X: 0.35, Y: eyeTop}
	mesh[leftEyeBottom] = Landmark{X: 0.35, Y: eyeBottom}
	mesh[rightEyeTop] = Landmark{X: 0.65, Y: eyeTop}
	mesh[rightEyeBottom] = Landmark{X: 0.65, Y: eyeBottom}
	mesh[mouthLeft] = Landmark{X: 0.3, Y: 0.7}
	mesh[mouthRight] = Landmark{X: 0.7, Y: 0.7}
	mesh[mouthTop] = Landmark{X: 0.5, Y: lipTop}
	mesh[mouthBottom] = Landmark{X: 0.5, Y: lipBottom}
	return mesh
}

func TestMeshExpressionFlagsTiredFlatFace(t *testing.T) {
	expr, err := MeshExpression(testMesh(0.40, 0.45, 0.70, 0.72), 100, 100)
	if err != nil {
		t.Fatalf("MeshExpression: %v", err)
	}
	if math.Abs(expr.EyeOpenness-5) > 1e-9 {
		t.Fatalf("eye openness = %v, want 5", expr.EyeOpenness)
	}
	if math.Abs(expr.MouthRatio-0.05) > 1e-9 {
		t.Fatalf("mouth ratio = %v, want 0.05", expr.MouthRatio)
	}
	if expr.Score != 4 {
		t.Fatalf("score = %d, want 4", expr.Score)
	}
	want := []string{IndicatorTiredEyes, IndicatorFlatMouth}
	if !slices.Equal(expr.Indicators, want) {
		t.Fatalf("indicators = %v, want %v", expr.Indicators, want)
	}
}

func TestMeshExpressionOpenFace(t *testing.T) {
	expr, err := MeshExpression(testMesh(0.30, 0.45, 0.60, 0.70), 100, 100)
	if err != nil {
		t.Fatalf("MeshExpression: %v", err)
	}
	if expr.Score != 0 || len(expr.Indicators) != 0 {
		t.Fatalf("expected no indicators, got %+v", expr)
	}
}

func TestMeshExpressionZeroMouthWidth(t *testing.T) {
	mesh := testMesh(0.30, 0.45, 0.60, 0.70)
	mesh[mouthRight] = mesh[mouthLeft]
	expr, err := MeshExpression(mesh, 100, 100)
	if err != nil {
		t.Fatalf("MeshExpression: %v", err)
	}
	if expr.MouthRatio != 0 || !slices.Contains(expr.Indicators, IndicatorFlatMouth) {
		t.Fatalf("expected zero ratio flagged as flat, got %+v", expr)
	}
}

func TestMeshExpressionRejectsShortMesh(t *testing.T) {
	if _, err := MeshExpression(make(Mesh, 10), 100, 100); err == nil {
		t.Fatal("expected error for short mesh")
	}
}

func TestCascadeExpression(t *testing.T) {
	tests := []struct {
		name       string
		eyes       int
		brightness float64
		score      int
	}{
		{"both eyes bright", 2, 120, 0},
		{"one eye bright", 1, 120, 1},
		{"both eyes dim", 2, 79.9, 1},
		{"no eyes dim", 0, 10, 2},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			expr := CascadeExpression(tc.eyes, tc.brightness)
			if expr.Score != tc.score || len(expr.Indicators) != tc.score {
				t.Fatalf("got %+v, want score %d", expr, tc.score)
			}
		})
	}
}

func TestMeshBounds(t *testing.T) {
	mesh := Mesh{{X: 0.2, Y: 0.3}, {X: 0.6, Y: 0.1}, {X: 0.4, Y: 0.9}}
	got := MeshBounds(mesh, 100, 200)
	want := image.Rect(20, 20, 60, 180)
	if got != want {
		t.Fatalf("MeshBounds = %v, want %v", got, want)
	}
	if !MeshBounds(nil, 100, 100).Empty() {
		t.Fatal("expected empty bounds for empty mesh")
	}
}

func TestMeanBrightness(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 20, 20))
	for y := 0; y < 20; y++ {
		for x := 0; x < 20; x++ {
			v := uint8(50)
			if x >= 10 {
				v = 150
			}
			img.SetNRGBA(x, y, color.NRGBA{R: v, G: v, B: v, A: 255})
		}
	}
	if got := MeanBrightness(img, image.Rect(0, 0, 10, 20)); math.Abs(got-50) > 0.5 {
		t.Fatalf("left brightness = %v, want 50", got)
	}
	if got := MeanBrightness(img, img.Bounds()); math.Abs(got-100) > 0.5 {
		t.Fatalf("full brightness = %v, want 100", got)
	}
	if got := MeanBrightness(img, image.Rect(40, 40, 50, 50)); got != 0 {
		t.Fatalf("outside brightness = %v, want 0", got)
	}
}
