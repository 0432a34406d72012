package vision

import (
	"image"
	"image/color"
	"image/draw"
	"testing"
)

var skinTone = color.NRGBA{R: 224, G: 172, B: 140, A: 255}

func skinFrame() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 200, 200))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: skinTone}, image.Point{}, draw.Src)
	return img
}

func paint(img *image.NRGBA, rect image.Rectangle, c color.NRGBA) {
	draw.Draw(img, rect, &image.Uniform{C: c}, image.Point{}, draw.Src)
}

var testFace = image.Rect(60, 60, 140, 140)

func TestSkinRegionClampsToFrame(t *testing.T) {
	bounds := image.Rect(0, 0, 200, 200)
	if got, want := SkinRegion(testFace, bounds, 0.3), image.Rect(36, 36, 164, 164); got != want {
		t.Fatalf("SkinRegion = %v, want %v", got, want)
	}
	edge := image.Rect(0, 0, 100, 100)
	if got, want := SkinRegion(edge, bounds, 0.3), image.Rect(0, 0, 130, 130); got != want {
		t.Fatalf("SkinRegion = %v, want %v", got, want)
	}
}

func TestDetectSkinFindingsPlainSkin(t *testing.T) {
	bruises, marks := DetectSkinFindings(skinFrame(), testFace, 0.3)
	if len(bruises) != 0 || len(marks) != 0 {
		t.Fatalf("expected no findings, got bruises=%v marks=%v", bruises, marks)
	}
}

func TestDetectSkinFindingsBruise(t *testing.T) {
	img := skinFrame()
	paint(img, image.Rect(50, 50, 70, 70), color.NRGBA{R: 128, B: 128, A: 255})

	bruises, marks := DetectSkinFindings(img, testFace, 0.3)
	if len(marks) != 0 {
		t.Fatalf("expected no red marks, got %v", marks)
	}
	if len(bruises) != 1 {
		t.Fatalf("expected one bruise, got %v", bruises)
	}
	got := bruises[0]
	if got.Type != FindingBruise || got.Area != 400 {
		t.Fatalf("unexpected bruise %+v", got)
	}
	if got.Location != "esquerda - testa/superior" {
		t.Fatalf("unexpected location %q", got.Location)
	}
}

func TestDetectSkinFindingsRedMark(t *testing.T) {
	img := skinFrame()
	paint(img, image.Rect(120, 120, 132, 132), color.NRGBA{R: 200, G: 30, B: 30, A: 255})

	bruises, marks := DetectSkinFindings(img, testFace, 0.3)
	if len(bruises) != 0 {
		t.Fatalf("expected no bruises, got %v", bruises)
	}
	if len(marks) != 1 {
		t.Fatalf("expected one red mark, got %v", marks)
	}
	if marks[0].Type != FindingRedMark || marks[0].Area != 144 {
		t.Fatalf("unexpected mark %+v", marks[0])
	}
	if marks[0].Location != "direita - inferior/queixo" {
		t.Fatalf("unexpected location %q", marks[0].Location)
	}
}

func TestDetectSkinFindingsIgnoresSpecksAndLargeBlobs(t *testing.T) {
	img := skinFrame()
	// Removed by opening.
	paint(img, image.Rect(100, 50, 103, 53), color.NRGBA{R: 200, G: 30, B: 30, A: 255})
	// Too small after opening (area 64 <= 80).
	paint(img, image.Rect(60, 130, 68, 138), color.NRGBA{R: 200, G: 30, B: 30, A: 255})

	_, marks := DetectSkinFindings(img, testFace, 0.3)
	if len(marks) != 0 {
		t.Fatalf("expected small blobs to be dropped, got %v", marks)
	}
}

func TestToOpenCVHSVScale(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	img.SetNRGBA(0, 0, color.NRGBA{R: 128, B: 128, A: 255})
	hsv := toOpenCVHSV(img)
	if got, want := hsv.pix[0], [3]int{150, 255, 128}; got != want {
		t.Fatalf("HSV = %v, want %v", got, want)
	}
}
